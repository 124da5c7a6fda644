package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aiexplorations/beam-column-simulation/internal/material"
	"github.com/spf13/cobra"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the material catalog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("MATERIAL CATALOG:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  Name\tE (GPa)\tG (GPa)\tν\tρ (kg/m³)\tσ_y (MPa)")
		for _, name := range material.Names() {
			m, err := material.Lookup(name)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "  %s\t%.0f\t%.1f\t%.2f\t%.0f\t%.0f\n",
				m.Name, m.E/1e9, m.ShearModulus()/1e9, m.PoissonRatio, m.Density, m.YieldStress/1e6)
		}
		w.Flush()
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(materialsCmd)
}
