package main

import (
	"github.com/spf13/cobra"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/report"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "Print temples dedicated per year",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd.Context(), "build")
		if err != nil {
			return err
		}

		years, err := report.PerYear(reg.Inverted())
		if err != nil {
			return err
		}
		return report.WriteYears(cmd.OutOrStdout(), years)
	},
}

func init() {
	rootCmd.AddCommand(yearsCmd)
}
