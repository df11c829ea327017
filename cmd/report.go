package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/report"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print value counts for every indexed attribute",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportFormat != "text" && reportFormat != "yaml" {
			return eris.Errorf("report: unknown format %q (want text or yaml)", reportFormat)
		}

		reg, err := loadRegistry(cmd.Context(), "build")
		if err != nil {
			return err
		}

		sums := report.Summary(reg.Inverted())
		if reportFormat == "yaml" {
			return report.WriteYAML(cmd.OutOrStdout(), sums)
		}
		return report.WriteText(cmd.OutOrStdout(), sums)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "output format: text or yaml")
	rootCmd.AddCommand(reportCmd)
}
