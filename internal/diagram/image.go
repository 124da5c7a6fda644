package diagram

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// FieldPlot describes one solution field chart along the member.
type FieldPlot struct {
	Title  string
	YLabel string

	X []float64 // positions along the member (m)
	Y []float64 // field values, pre-scaled to the display unit

	// SupportX marks support positions on the zero line (m).
	SupportX []float64

	// PointLoadX marks point-load positions (m).
	PointLoadX []float64
}

// ExportFieldPlot saves a field chart to an image file. The format
// follows the file extension (.png, .svg, .pdf); anything else gets
// ".png" appended.
func ExportFieldPlot(fp FieldPlot, filename string) error {
	p := plot.New()
	p.Title.Text = fp.Title
	p.X.Label.Text = "Position along member (m)"
	p.Y.Label.Text = fp.YLabel

	// Zero reference line.
	if n := len(fp.X); n > 1 {
		zeroLine, err := plotter.NewLine(plotter.XYs{
			{X: fp.X[0], Y: 0},
			{X: fp.X[n-1], Y: 0},
		})
		if err != nil {
			return err
		}
		zeroLine.LineStyle.Width = vg.Points(1)
		zeroLine.LineStyle.Color = color.Gray{Y: 128}
		zeroLine.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(zeroLine)
	}

	pts := make(plotter.XYs, len(fp.X))
	for i := range fp.X {
		pts[i] = plotter.XY{X: fp.X[i], Y: fp.Y[i]}
	}
	fieldLine, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	fieldLine.LineStyle.Width = vg.Points(2)
	fieldLine.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(fieldLine)

	if len(fp.SupportX) > 0 {
		supportPts := make(plotter.XYs, len(fp.SupportX))
		for i, x := range fp.SupportX {
			supportPts[i] = plotter.XY{X: x, Y: 0}
		}
		supports, err := plotter.NewScatter(supportPts)
		if err != nil {
			return err
		}
		supports.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		supports.GlyphStyle.Radius = vg.Points(5)
		supports.GlyphStyle.Shape = draw.PyramidGlyph{}
		p.Add(supports)
	}

	if len(fp.PointLoadX) > 0 {
		loadPts := make(plotter.XYs, len(fp.PointLoadX))
		for i, x := range fp.PointLoadX {
			loadPts[i] = plotter.XY{X: x, Y: 0}
		}
		loads, err := plotter.NewScatter(loadPts)
		if err != nil {
			return err
		}
		loads.GlyphStyle.Color = color.RGBA{R: 139, G: 69, B: 19, A: 255}
		loads.GlyphStyle.Radius = vg.Points(4)
		loads.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(loads)
	}

	width := 8 * vg.Inch
	height := 4 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
