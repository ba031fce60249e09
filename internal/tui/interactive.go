package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pairpot/internal/config"
	"github.com/san-kum/pairpot/internal/forcefield"
	"github.com/san-kum/pairpot/internal/pairpot"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var familyInfo = map[string]string{
	"lj":     "lennard-jones 12-6",
	"mm3":    "mm3 buckingham",
	"grimme": "damped c6 dispersion",
	"ei":     "(damped) coulomb",
}

type state int

const (
	stateMenu state = iota
	stateExplore
)

type preset struct {
	family, name string
}

type model struct {
	state   state
	cursor  int
	presets []preset

	cfg     *config.Config
	pot     *pairpot.PairPotential
	total   float64
	err     error
	d       float64
	step    float64
	dmin    float64
	dmax    float64
	curve   []float64
	sweep   bool
	forward bool

	width  int
	height int
}

func newModel() model {
	m := model{width: 80, height: 24, step: 0.01}
	for _, family := range config.Families {
		for _, name := range config.ListPresets(family) {
			m.presets = append(m.presets, preset{family, name})
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(40*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateExplore || !m.sweep {
			return m, nil
		}
		m.advance()
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateExplore:
		return m.exploreKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) == 0 {
			return m, nil
		}
		p := m.presets[m.cursor]
		m.open(config.GetPreset(p.family, p.name))
		m.state = stateExplore
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) exploreKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.sweep = false
		m.state = stateMenu
		return m, tea.ClearScreen
	case "left", "h":
		m.d = max(m.d-m.step, m.dmin)
	case "right", "l":
		m.d = min(m.d+m.step, m.dmax)
	case "up", "k":
		m.step = min(m.step*10, 1)
	case "down", "j":
		m.step = max(m.step/10, 1e-4)
	case "s":
		m.pot.SetSmoothing(!m.pot.Smoothing())
		m.refresh()
	case "a", " ":
		m.sweep = !m.sweep
		m.forward = true
		if m.sweep {
			return m, tick()
		}
	}
	return m, nil
}

// open binds the preset's family and evaluates the whole preset once.
func (m *model) open(cfg *config.Config) {
	m.cfg = cfg
	m.err = nil
	m.sweep = false
	pot, err := cfg.Potential()
	if err != nil {
		m.err = err
		return
	}
	m.pot = pot

	ev, err := forcefield.FromConfig(cfg)
	if err != nil {
		m.err = err
		return
	}
	res, err := ev.Compute(context.Background())
	if err != nil {
		m.err = err
		return
	}
	m.total = res.Energy

	m.dmin = 0.5 * pairDistance(cfg)
	m.dmax = cfg.Cutoff
	m.d = pairDistance(cfg)
	m.refresh()
}

func (m *model) refresh() {
	samples := forcefield.Scan(m.pot, 1, 0, m.dmin, m.dmax, 120)
	limit := clipFor(samples)
	m.curve = make([]float64, len(samples))
	for i, s := range samples {
		// clip the repulsive wall so the well stays visible
		m.curve[i] = min(s.Energy, limit)
	}
}

func (m *model) advance() {
	if m.forward {
		m.d += m.step * 5
	} else {
		m.d -= m.step * 5
	}
	if m.d >= m.dmax {
		m.d, m.forward = m.dmax, false
	}
	if m.d <= m.dmin {
		m.d, m.forward = m.dmin, true
	}
}

func clipFor(samples []forcefield.Sample) float64 {
	lo := forcefield.Minimum(samples).Energy
	if lo >= 0 {
		return samples[len(samples)-1].Energy + 1
	}
	return -lo
}

func pairDistance(cfg *config.Config) float64 {
	if len(cfg.Particles) < 2 {
		return cfg.Cutoff / 2
	}
	a, b := cfg.Particles[0].Pos, cfg.Particles[1].Pos
	var d2 float64
	for k := range 3 {
		d2 += (b[k] - a[k]) * (b[k] - a[k])
	}
	if d2 == 0 {
		return cfg.Cutoff / 2
	}
	return math.Sqrt(d2)
}

func (m model) View() string {
	switch m.state {
	case stateExplore:
		return m.exploreView()
	}
	return m.menuView()
}

func (m model) menuView() string {
	var b strings.Builder
	b.WriteString(cyan.Render("pairpot") + dim.Render("  explorer") + "\n\n")
	for i, p := range m.presets {
		line := fmt.Sprintf("%-8s %-12s", p.family, p.name)
		info := dim.Render(familyInfo[p.family])
		if i == m.cursor {
			b.WriteString(magenta.Render("> ") + white.Render(line) + " " + info + "\n")
		} else {
			b.WriteString("  " + dim.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + dim.Render("j/k move  enter open  q quit"))
	return b.String()
}

func (m model) exploreView() string {
	var b strings.Builder
	b.WriteString(cyan.Render(m.cfg.Name) + dim.Render("  "+m.cfg.Family) + "\n\n")
	if m.err != nil {
		b.WriteString(yellow.Render("error: "+m.err.Error()) + "\n\n")
		b.WriteString(dim.Render("q back"))
		return b.String()
	}

	e, g := m.pot.Pair(1, 0, m.d, true)
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		dim.Render("d"), white.Render(fmt.Sprintf("%.4f", m.d)),
		dim.Render("E"), green.Render(fmt.Sprintf("% .8e", e)),
		dim.Render("dE/dd"), green.Render(fmt.Sprintf("% .8e", g*m.d)),
	))
	b.WriteString(fmt.Sprintf("%s %s   %s %v   %s %.4g\n\n",
		dim.Render("preset energy"), white.Render(fmt.Sprintf("%.10g", m.total)),
		dim.Render("smoothing"), m.pot.Smoothing(),
		dim.Render("step"), m.step,
	))

	width := max(m.width-12, 20)
	b.WriteString(asciigraph.Plot(m.curve,
		asciigraph.Height(max(m.height-12, 5)),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("E(d), d in [%.3g, %.3g]", m.dmin, m.dmax)),
	))
	b.WriteString("\n" + marker(m.d, m.dmin, m.dmax, width) + "\n\n")

	b.WriteString(dim.Render("h/l move  j/k step  s smoothing  a sweep  q back"))
	return b.String()
}

// marker places a caret under the plot at distance d.
func marker(d, lo, hi float64, width int) string {
	if hi <= lo {
		return ""
	}
	pos := int((d - lo) / (hi - lo) * float64(width-1))
	pos = min(max(pos, 0), width-1)
	// asciigraph reserves room for the axis labels on the left
	return strings.Repeat(" ", pos+10) + yellow.Render("^")
}

func RunExplorer() error {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
