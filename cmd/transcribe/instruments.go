package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-transcribe/instrument"
)

var instrumentsFamily string

func init() {
	instrumentsCmd.Flags().StringVar(&instrumentsFamily, "family", "", "only list instruments of this family")
	rootCmd.AddCommand(instrumentsCmd)
}

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List the known instruments and their transpositions",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := instrument.Load()
		if err != nil {
			return err
		}

		list := catalog.All()
		if instrumentsFamily != "" {
			list = catalog.ByFamily(instrumentsFamily)
			if len(list) == 0 {
				return fmt.Errorf("unknown family %q (have: %s)",
					instrumentsFamily, strings.Join(catalog.Families(), ", "))
			}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tFAMILY\tTRANSPOSITION\tCLEFS\tRANGE")
		for _, inst := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%+d\t%s\t%s-%s\n",
				inst.ID, inst.Name, inst.Family, inst.TranspositionSemitones,
				strings.Join(inst.Clefs, ","),
				inst.SoundingRange.Lowest, inst.SoundingRange.Highest)
		}
		return w.Flush()
	},
}
