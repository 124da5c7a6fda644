package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aiexplorations/beam-column-simulation/internal/beam"
	"github.com/aiexplorations/beam-column-simulation/internal/diagram"
	"github.com/aiexplorations/beam-column-simulation/internal/material"
	"github.com/aiexplorations/beam-column-simulation/internal/section"
	"github.com/spf13/cobra"
)

var (
	// Geometry inputs
	solveLength float64
	solveWidth  float64
	solveHeight float64

	// Material and support
	solveMaterial    string
	solveSupport     string
	solveOrientation string

	// Loading
	solveAxial      float64
	solveLateral    float64
	solveSelfWeight bool
	solvePointLoads []string

	// Solver options
	solvePoints int
	solveMargin float64

	// Output options
	solveCharts bool
	solvePlot   string
)

// Presentation-layer input ranges. The solver re-validates its own
// invariants independently of these.
const (
	minLength, maxLength = 0.5, 5.0   // m
	minDim, maxDim       = 0.01, 0.3  // m
	maxAxialKN           = 500.0      // kN
	maxLateralKNM        = 100.0      // kN/m
	maxPointLoadKN       = 100.0      // kN
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a beam-column for deflection, forces, stresses and strains",
	Long: `Solve the Timoshenko beam-column boundary value problem for a
rectangular prismatic member and report the sampled deflection, rotation,
bending moment and shear together with derived stresses and strains.

The axial load enters the moment gradient through the P-Δ term, so the
reported moments include second-order amplification. Loads act downward
unless a point load is marked ":up".

Point loads are given as MAGNITUDE_KN@FRACTION[:up|:down], e.g. 25@0.2
for 25 kN downward at one fifth of the span (at most 5 loads).

Examples:
  # 2 m steel cantilever, 50 kN axial, 10 kN/m lateral, two point loads
  beamcol solve --length 2 --width 0.1 --height 0.1 --material Steel \
    --support cantilever --axial 50 --lateral 10 \
    --point-load 25@0.2 --point-load 25@0.8:up

  # Simply supported aluminum beam, midspan load, PNG diagrams
  beamcol solve -L 3 -b 0.05 -H 0.15 --material Aluminum \
    --support simply_supported --point-load 10@0.5 --plot out/beam`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	// Geometry flags
	solveCmd.Flags().Float64VarP(&solveLength, "length", "L", 0, "Member length (m) [required]")
	solveCmd.Flags().Float64VarP(&solveWidth, "width", "b", 0, "Section width (m) [required]")
	solveCmd.Flags().Float64VarP(&solveHeight, "height", "H", 0, "Section height (m) [required]")

	// Material and support flags
	solveCmd.Flags().StringVar(&solveMaterial, "material", "Steel", "Material name (Steel, Aluminum, Wood, Concrete)")
	solveCmd.Flags().StringVar(&solveSupport, "support", "cantilever", "Support kind (cantilever, simply_supported, fixed_fixed, hinged_free)")
	solveCmd.Flags().StringVar(&solveOrientation, "orientation", "horizontal", "Display orientation (horizontal, vertical)")

	// Loading flags
	solveCmd.Flags().Float64VarP(&solveAxial, "axial", "P", 0, "Axial compressive load (kN)")
	solveCmd.Flags().Float64VarP(&solveLateral, "lateral", "w", 0, "Distributed lateral load (kN/m, downward)")
	solveCmd.Flags().BoolVar(&solveSelfWeight, "self-weight", true, "Include self-weight as distributed load")
	solveCmd.Flags().StringArrayVar(&solvePointLoads, "point-load", nil, "Point load MAGNITUDE_KN@FRACTION[:up|:down] (repeatable, max 5)")

	// Solver flags
	solveCmd.Flags().IntVarP(&solvePoints, "points", "n", beam.DefaultSamplePoints, "Number of output sample points")
	solveCmd.Flags().Float64Var(&solveMargin, "margin", beam.DefaultCriticalLoadMargin, "Fraction of the buckling load at which solving refuses")

	// Output flags
	solveCmd.Flags().BoolVar(&solveCharts, "charts", true, "Render terminal charts of the solution fields")
	solveCmd.Flags().StringVar(&solvePlot, "plot", "", "Base path for image diagrams; a .png/.svg/.pdf extension picks the format (writes <base>_deflection.png etc.)")

	solveCmd.MarkFlagRequired("length")
	solveCmd.MarkFlagRequired("width")
	solveCmd.MarkFlagRequired("height")
}

func runSolve(cmd *cobra.Command, args []string) error {
	prob, err := buildProblem()
	if err != nil {
		return err
	}

	solver := beam.NewSolver(prob)
	field, err := solver.Solve(solvePoints)
	if err != nil {
		return err
	}

	pp := beam.NewPostprocessor(prob)
	stresses := pp.StressStrain(field)
	summary, err := beam.Summarize(prob, field, stresses)
	if err != nil {
		return err
	}

	printSolveReport(prob, field, stresses, summary)

	if solvePlot != "" {
		base, ext := plotTarget(solvePlot)
		if err := exportPlots(prob, field, stresses, base, ext); err != nil {
			return fmt.Errorf("plot export: %w", err)
		}
		fmt.Printf("  Diagrams written to %s_*%s\n\n", base, ext)
	}
	return nil
}

// plotTarget splits the --plot value into a base path and an output
// format. An explicit .png/.svg/.pdf extension selects the format;
// anything else stays part of the base and the format defaults to .png.
func plotTarget(path string) (base, ext string) {
	ext = filepath.Ext(path)
	switch ext {
	case ".png", ".svg", ".pdf":
		return strings.TrimSuffix(path, ext), ext
	}
	return path, ".png"
}

// buildProblem applies the presentation-layer range checks and assembles
// the core Problem (which re-validates on Solve).
func buildProblem() (beam.Problem, error) {
	var prob beam.Problem

	if solveLength < minLength || solveLength > maxLength {
		return prob, fmt.Errorf("length %.3g m outside [%.1f, %.1f] m", solveLength, minLength, maxLength)
	}
	if solveWidth < minDim || solveWidth > maxDim {
		return prob, fmt.Errorf("width %.3g m outside [%.2f, %.2f] m", solveWidth, minDim, maxDim)
	}
	if solveHeight < minDim || solveHeight > maxDim {
		return prob, fmt.Errorf("height %.3g m outside [%.2f, %.2f] m", solveHeight, minDim, maxDim)
	}
	if solveAxial < 0 || solveAxial > maxAxialKN {
		return prob, fmt.Errorf("axial load %.3g kN outside [0, %.0f] kN", solveAxial, maxAxialKN)
	}
	if solveLateral < 0 || solveLateral > maxLateralKNM {
		return prob, fmt.Errorf("lateral load %.3g kN/m outside [0, %.0f] kN/m", solveLateral, maxLateralKNM)
	}

	mat, err := material.Lookup(solveMaterial)
	if err != nil {
		return prob, err
	}

	orientation := beam.Orientation(strings.ToLower(solveOrientation))
	if orientation != beam.Horizontal && orientation != beam.Vertical {
		return prob, fmt.Errorf("orientation %q is not horizontal or vertical", solveOrientation)
	}

	loads := make([]beam.PointLoad, 0, len(solvePointLoads))
	for _, spec := range solvePointLoads {
		pl, err := parsePointLoad(spec)
		if err != nil {
			return prob, err
		}
		loads = append(loads, pl)
	}

	prob = beam.Problem{
		Length:             solveLength,
		Section:            section.Rectangular{Width: solveWidth, Height: solveHeight},
		Material:           mat,
		Support:            beam.BoundaryCondition(strings.ToLower(solveSupport)),
		Orientation:        orientation,
		AxialLoad:          solveAxial * 1e3,
		LateralLoad:        solveLateral * 1e3,
		IncludeSelfWeight:  solveSelfWeight,
		PointLoads:         loads,
		CriticalLoadMargin: solveMargin,
	}
	return prob, nil
}

// parsePointLoad parses MAGNITUDE_KN@FRACTION[:up|:down].
func parsePointLoad(spec string) (beam.PointLoad, error) {
	var pl beam.PointLoad

	body := spec
	direction := beam.Downward
	if idx := strings.LastIndex(body, ":"); idx >= 0 {
		switch strings.ToLower(body[idx+1:]) {
		case "up":
			direction = beam.Upward
		case "down":
			direction = beam.Downward
		default:
			return pl, fmt.Errorf("point load %q: direction must be up or down", spec)
		}
		body = body[:idx]
	}

	parts := strings.Split(body, "@")
	if len(parts) != 2 {
		return pl, fmt.Errorf("point load %q: expected MAGNITUDE_KN@FRACTION[:up|:down]", spec)
	}
	magnitude, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return pl, fmt.Errorf("point load %q: bad magnitude: %v", spec, err)
	}
	position, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return pl, fmt.Errorf("point load %q: bad position: %v", spec, err)
	}
	if magnitude < 0 || magnitude > maxPointLoadKN {
		return pl, fmt.Errorf("point load %q: magnitude outside [0, %.0f] kN", spec, maxPointLoadKN)
	}
	if position < 0 || position > 1 {
		return pl, fmt.Errorf("point load %q: position fraction outside [0, 1]", spec)
	}

	pl = beam.PointLoad{Magnitude: magnitude * 1e3, Position: position, Direction: direction}
	return pl, nil
}

func printSolveReport(prob beam.Problem, field *beam.SolutionField, stresses *beam.StressStrainField, summary *beam.Summary) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BEAM-COLUMN ANALYSIS (TIMOSHENKO, SECOND ORDER)")
	fmt.Println("═══════════════════════════════════════════════════════════════")

	fractions := make([]float64, 0, len(prob.PointLoads))
	upward := make([]bool, 0, len(prob.PointLoads))
	for _, pl := range prob.PointLoads {
		fractions = append(fractions, pl.Position)
		upward = append(upward, pl.Direction == beam.Upward)
	}
	fmt.Print(diagram.SupportSketch(string(prob.Support), fractions, upward))
	fmt.Println()

	// Input summary
	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Length (L):\t%.3f m (%s)\n", prob.Length, prob.Orientation)
	fmt.Fprintf(w, "  Section (b x h):\t%.3f x %.3f m\n", prob.Section.Width, prob.Section.Height)
	fmt.Fprintf(w, "  Material:\t%s (E = %.0f GPa)\n", prob.Material.Name, prob.Material.E/1e9)
	fmt.Fprintf(w, "  Support:\t%s\n", prob.Support)
	fmt.Fprintf(w, "  Axial load (P):\t%.2f kN\n", prob.AxialLoad/1e3)
	fmt.Fprintf(w, "  Lateral load:\t%.2f kN/m\n", prob.LateralLoad/1e3)
	fmt.Fprintf(w, "  Self-weight:\t%.3f kN/m\n", prob.SelfWeightLoad()/1e3)
	for i, pl := range prob.PointLoads {
		fmt.Fprintf(w, "  Point load %d:\t%.2f kN %s at x = %.2f L\n", i+1, pl.Magnitude/1e3, pl.Direction, pl.Position)
	}
	w.Flush()
	fmt.Println()

	// Section properties
	fmt.Println("SECTION PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Area (A):\t%.4g m²\n", prob.Section.Area())
	fmt.Fprintf(w, "  Moment of inertia (I):\t%.4g m⁴\n", prob.Section.MomentOfInertia())
	fmt.Fprintf(w, "  Shear area (A_s = 5A/6):\t%.4g m²\n", prob.Section.ShearArea())
	fmt.Fprintf(w, "  Bending stiffness (EI):\t%.4g N·m²\n", prob.Material.E*prob.Section.MomentOfInertia())
	w.Flush()
	fmt.Println()

	if solveCharts {
		fmt.Print(diagram.FieldChart("DEFLECTION", scale(field.Deflection, 1e3), "mm"))
		fmt.Print(diagram.FieldChart("BENDING MOMENT", scale(field.Moment, 1e-3), "kN·m"))
		fmt.Print(diagram.FieldChart("SHEAR FORCE", scale(field.Shear, 1e-3), "kN"))
		fmt.Print(diagram.FieldChart("COMBINED STRESS", scale(stresses.CombinedStress, 1e-6), "MPa"))
		fmt.Println()
	}

	// Result summary
	utilization := fmt.Sprintf("Yield utilization: %.1f %%", summary.YieldUtilization*100)
	fmt.Print(diagram.DrawSummaryBox("RESULT SUMMARY", []string{
		fmt.Sprintf("Max deflection:      %.3f mm", summary.MaxDeflection*1e3),
		fmt.Sprintf("Max moment:          %.3f kN·m", summary.MaxMoment/1e3),
		fmt.Sprintf("Max shear:           %.3f kN", summary.MaxShear/1e3),
		fmt.Sprintf("Max bending stress:  %.2f MPa", summary.MaxBendingStress/1e6),
		fmt.Sprintf("Max combined stress: %.2f MPa", summary.MaxCombinedStress/1e6),
		fmt.Sprintf("Critical load (Pcr): %.2f kN", summary.CriticalBucklingLoad/1e3),
		utilization,
	}))
	fmt.Println()
}

func exportPlots(prob beam.Problem, field *beam.SolutionField, stresses *beam.StressStrainField, base, ext string) error {
	supportX := supportPositions(prob)
	loadX := make([]float64, 0, len(prob.PointLoads))
	for _, pl := range prob.PointLoads {
		loadX = append(loadX, pl.Position*prob.Length)
	}

	plots := []struct {
		suffix string
		fp     diagram.FieldPlot
	}{
		{"deflection", diagram.FieldPlot{Title: "Deflected Shape", YLabel: "Deflection (mm)", X: field.X, Y: scale(field.Deflection, 1e3), SupportX: supportX, PointLoadX: loadX}},
		{"moment", diagram.FieldPlot{Title: "Bending Moment", YLabel: "Moment (kN·m)", X: field.X, Y: scale(field.Moment, 1e-3), SupportX: supportX}},
		{"shear", diagram.FieldPlot{Title: "Shear Force", YLabel: "Shear (kN)", X: field.X, Y: scale(field.Shear, 1e-3), SupportX: supportX, PointLoadX: loadX}},
		{"stress", diagram.FieldPlot{Title: "Combined Stress (extreme fiber)", YLabel: "Stress (MPa)", X: field.X, Y: scale(stresses.CombinedStress, 1e-6), SupportX: supportX}},
	}
	for _, pl := range plots {
		if err := diagram.ExportFieldPlot(pl.fp, fmt.Sprintf("%s_%s%s", base, pl.suffix, ext)); err != nil {
			return err
		}
	}
	return nil
}

func supportPositions(prob beam.Problem) []float64 {
	switch prob.Support {
	case beam.SimplySupported, beam.FixedFixed:
		return []float64{0, prob.Length}
	default:
		return []float64{0}
	}
}

func scale(vals []float64, factor float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v * factor
	}
	return out
}
