package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/search"
)

var nearestN int

var nearestCmd = &cobra.Command{
	Use:   "nearest <lat> <lng>",
	Short: "List the temples closest to a point",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return eris.Wrapf(err, "nearest: parse latitude %q", args[0])
		}
		lng, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return eris.Wrapf(err, "nearest: parse longitude %q", args[1])
		}

		reg, err := loadRegistry(cmd.Context(), "build")
		if err != nil {
			return err
		}

		hits, err := search.Nearest(reg.Entities(), lat, lng, nearestN)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tSTATUS\tCOUNTRY\tKM")
		for _, h := range hits {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\n", h.Record.Name, h.Record.Status(), h.Record.Country, h.DistanceKm)
		}
		return w.Flush()
	},
}

func init() {
	nearestCmd.Flags().IntVarP(&nearestN, "limit", "n", 5, "number of temples to list")
	rootCmd.AddCommand(nearestCmd)
}
