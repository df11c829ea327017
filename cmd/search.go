package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/search"
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

var searchFuzzy int

var searchCmd = &cobra.Command{
	Use:   "search <attribute> <query>",
	Short: "Find temples whose attribute matches a query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		attr, err := temple.ParseAttribute(args[0])
		if err != nil {
			return err
		}

		reg, err := loadRegistry(cmd.Context(), "build")
		if err != nil {
			return err
		}

		records := search.Attribute(reg, attr, args[1], searchFuzzy)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "NAME\tSTATUS\t%s\n", attr)
		for _, rec := range records {
			v, _ := rec.Key(attr)
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Name, rec.Status(), v)
		}
		return w.Flush()
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchFuzzy, "fuzzy", 0, "maximum edit distance for fuzzy matches (0 = exact/substring)")
	rootCmd.AddCommand(searchCmd)
}
