package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pairpot/internal/forcefield"
)

// Summary describes what was evaluated, for the report header.
type Summary struct {
	Name      string
	Family    string
	Particles int
	Pairs     int
	Cutoff    float64
	Smooth    bool
	Volume    float64
}

// RenderResult draws the energy, virial and the largest forces.
func RenderResult(s Summary, res *forcefield.Result, top int) string {
	var b strings.Builder

	b.WriteString(Title.Render(fmt.Sprintf("%s (%s)", s.Name, s.Family)) + "\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("%d particles, %d neighbor entries, cutoff %.3g, smoothing %v",
		s.Particles, s.Pairs, s.Cutoff, s.Smooth)) + "\n\n")

	b.WriteString(Metric("energy  ", fmt.Sprintf("%.10g", res.Energy)) + "\n")
	net := res.NetForce()
	b.WriteString(Metric("net force", fmt.Sprintf("(%.2e, %.2e, %.2e)", net[0], net[1], net[2])) + "\n")
	if p, err := res.Pressure(s.Volume); err == nil {
		b.WriteString(Metric("pressure", fmt.Sprintf("%.6g", p)) + "\n")
	}
	if eig, ok := res.PrincipalVirial(); ok {
		b.WriteString(Metric("principal virial", fmt.Sprintf("%.4g %.4g %.4g", eig[0], eig[1], eig[2])) + "\n")
	}

	b.WriteString("\n" + HeaderStyle.Render("virial") + "\n")
	for i := 0; i < 3; i++ {
		b.WriteString(fmt.Sprintf("  % 14.6e % 14.6e % 14.6e\n", res.Virial.At(i, 0), res.Virial.At(i, 1), res.Virial.At(i, 2)))
	}

	n := len(res.Gradient) / 3
	mags := make([]float64, n)
	for i := range mags {
		f := res.Force(i)
		mags[i] = math.Sqrt(f[0]*f[0] + f[1]*f[1] + f[2]*f[2])
	}
	if n > 1 {
		b.WriteString("\n" + HeaderStyle.Render("|force| per particle") + "\n")
		b.WriteString("  " + SparklineChart(mags, min(n, 60)) + "\n")
	}

	b.WriteString("\n" + HeaderStyle.Render("forces") + "\n")
	for _, i := range largest(mags, top) {
		f := res.Force(i)
		b.WriteString(fmt.Sprintf("  %5d  % 12.5e % 12.5e % 12.5e\n", i, f[0], f[1], f[2]))
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// largest returns the indices of the k biggest values, biggest first.
func largest(values []float64, k int) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < len(idx) && i < k; i++ {
		best := i
		for j := i + 1; j < len(idx); j++ {
			if values[idx[j]] > values[idx[best]] {
				best = j
			}
		}
		idx[i], idx[best] = idx[best], idx[i]
	}
	return idx[:min(k, len(idx))]
}

// RenderScan plots energy and dE/dd against distance.
func RenderScan(title string, samples []forcefield.Sample, width, height int) string {
	energy := make([]float64, len(samples))
	deriv := make([]float64, len(samples))
	for i, s := range samples {
		energy[i] = s.Energy
		deriv[i] = s.Deriv
	}

	first, last := samples[0].D, samples[len(samples)-1].D
	m := forcefield.Minimum(samples)

	eGraph := asciigraph.Plot(energy,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("energy, d in [%.3g, %.3g]", first, last)),
	)
	dGraph := asciigraph.Plot(deriv,
		asciigraph.Height(height/2+1),
		asciigraph.Width(width),
		asciigraph.Caption("dE/dd"),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		Title.Render(title),
		eGraph,
		"",
		dGraph,
		"",
		Metric("lowest sample", fmt.Sprintf("E=%.8g at d=%.6g", m.Energy, m.D)),
	)
}

// RenderChecks tabulates derivative checks against a relative tolerance.
func RenderChecks(checks []forcefield.Check, tol float64) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-8s %10s %18s %18s %10s", "family", "d", "analytic", "numeric", "rel.err")) + "\n")
	for _, c := range checks {
		status := Pass.Render("ok")
		if c.RelError > tol {
			status = Fail.Render("FAIL")
		}
		b.WriteString(fmt.Sprintf("%-8s %10.4f %18.10e %18.10e %10.2e %s\n",
			c.Family, c.D, c.Analytic, c.Numeric, c.RelError, status))
	}
	return b.String()
}

// RenderEOS plots energy per particle against the scale factor.
func RenderEOS(title string, samples []forcefield.Sample, width, height int) string {
	energy := make([]float64, len(samples))
	for i, s := range samples {
		energy[i] = s.Energy
	}
	graph := asciigraph.Plot(energy,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("E/N, scale in [%.3g, %.3g]", samples[0].D, samples[len(samples)-1].D)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, Title.Render(title), graph)
}
