package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the registry to a file",
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx <path>",
	Short: "Write the forward table as a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd.Context(), "build")
		if err != nil {
			return err
		}

		if err := report.WriteXLSX(args[0], reg.Forward()); err != nil {
			return err
		}
		zap.L().Info("exported spreadsheet", zap.String("path", args[0]), zap.Int("rows", reg.Len()))
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d temples to %s\n", reg.Len(), args[0])
		return nil
	},
}

var exportGeoJSONCmd = &cobra.Command{
	Use:   "geojson <path>",
	Short: "Write temple locations as a GeoJSON FeatureCollection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(cmd.Context(), "build")
		if err != nil {
			return err
		}

		f, err := os.Create(args[0])
		if err != nil {
			return eris.Wrap(err, "export: create file")
		}
		defer f.Close() //nolint:errcheck

		if err := report.WriteGeoJSON(f, reg.Entities()); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return eris.Wrap(err, "export: close file")
		}
		zap.L().Info("exported geojson", zap.String("path", args[0]), zap.Int("features", reg.Len()))
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d temples to %s\n", reg.Len(), args[0])
		return nil
	},
}

func init() {
	exportCmd.AddCommand(exportXLSXCmd, exportGeoJSONCmd)
	rootCmd.AddCommand(exportCmd)
}
