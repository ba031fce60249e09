package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/pairpot/internal/forcefield"
)

// SaveScanPlot writes E(d) and dE/dd to an image. The format follows the
// file extension (png, svg, pdf, ...).
func SaveScanPlot(path, title string, samples []forcefield.Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("viz: no samples to plot")
	}

	energy := make(plotter.XYs, len(samples))
	deriv := make(plotter.XYs, len(samples))
	for i, s := range samples {
		energy[i].X, energy[i].Y = s.D, s.Energy
		deriv[i].X, deriv[i].Y = s.D, s.Deriv
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "d"
	p.Y.Label.Text = "E, dE/dd"

	eLine, err := plotter.NewLine(energy)
	if err != nil {
		return err
	}
	eLine.Color = color.RGBA{B: 200, A: 255}
	eLine.Width = vg.Points(1.5)

	dLine, err := plotter.NewLine(deriv)
	if err != nil {
		return err
	}
	dLine.Color = color.RGBA{R: 200, A: 255}
	dLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), eLine, dLine)
	p.Legend.Add("E", eLine)
	p.Legend.Add("dE/dd", dLine)
	p.Legend.Top = true

	// axis limits set after Add, which widens them to the data range
	if lo := forcefield.Minimum(samples).Energy; lo < 0 {
		p.Y.Min = 2 * lo
		p.Y.Max = -2 * lo
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
