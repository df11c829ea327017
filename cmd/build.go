package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the registry, filling caches as needed, and print counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd.Context(), "build")
		if err != nil {
			return err
		}

		var builtCount int
		countries := make(map[string]bool)
		for _, rec := range reg.Entities() {
			if rec.IsBuilt() {
				builtCount++
			}
			if rec.Country != "" {
				countries[rec.Country] = true
			}
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "temples:   %d\n", reg.Len())
		_, _ = fmt.Fprintf(out, "built:     %d\n", builtCount)
		_, _ = fmt.Fprintf(out, "pending:   %d\n", reg.Len()-builtCount)
		_, _ = fmt.Fprintf(out, "countries: %d\n", len(countries))

		zap.L().Info("registry built",
			zap.Int("temples", reg.Len()),
			zap.Int("built", builtCount),
			zap.Int("countries", len(countries)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
