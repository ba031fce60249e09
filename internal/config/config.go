package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pairpot/internal/nlist"
	"github.com/san-kum/pairpot/internal/pairpot"
	"github.com/san-kum/pairpot/internal/topology"
)

const (
	DefaultFamily = "lj"
	DefaultCutoff = 10.0
	DefaultSigma  = 1.0
	DefaultEps    = 1.0
)

var (
	ErrUnknownFamily = errors.New("config: unknown potential family")
	ErrNoParticles   = errors.New("config: no particles")
	ErrBadCutoff     = errors.New("config: cutoff must be positive")
)

// Families lists the accepted values of Config.Family.
var Families = []string{"lj", "mm3", "grimme", "ei"}

type Config struct {
	Name      string           `yaml:"name"`
	Family    string           `yaml:"family"`
	Cutoff    float64          `yaml:"cutoff"`
	Smooth    bool             `yaml:"smooth"`
	Alpha     float64          `yaml:"alpha"`
	Cell      [3]float64       `yaml:"cell"`
	Scalings  topology.Factors `yaml:"scalings"`
	Particles []Particle       `yaml:"particles"`
	Bonds     [][2]int         `yaml:"bonds"`
}

type Particle struct {
	Pos     [3]float64 `yaml:"pos"`
	Sigma   float64    `yaml:"sigma"`
	Epsilon float64    `yaml:"epsilon"`
	R0      float64    `yaml:"r0"`
	C6      float64    `yaml:"c6"`
	Charge  float64    `yaml:"charge"`
}

// DefaultConfig is a Lennard-Jones dimer at the potential minimum.
func DefaultConfig() *Config {
	return &Config{
		Name:     "dimer",
		Family:   DefaultFamily,
		Cutoff:   DefaultCutoff,
		Scalings: topology.DefaultFactors(),
		Particles: []Particle{
			{Pos: [3]float64{0, 0, 0}, Sigma: DefaultSigma, Epsilon: DefaultEps},
			{Pos: [3]float64{1.122462048309373, 0, 0}, Sigma: DefaultSigma, Epsilon: DefaultEps},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Particles = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !knownFamily(c.Family) {
		return fmt.Errorf("%w: %q", ErrUnknownFamily, c.Family)
	}
	if len(c.Particles) == 0 {
		return ErrNoParticles
	}
	if c.Cutoff <= 0 {
		return ErrBadCutoff
	}
	if c.Alpha < 0 {
		return fmt.Errorf("config: alpha %g: %w", c.Alpha, pairpot.ErrParameterBounds)
	}
	for k, l := range c.Cell {
		if l < 0 {
			return fmt.Errorf("config: cell axis %d: %w", k, nlist.ErrBadCell)
		}
	}
	return c.Scalings.Validate()
}

func knownFamily(name string) bool {
	for _, f := range Families {
		if f == name {
			return true
		}
	}
	return false
}

func (c *Config) Positions() [][3]float64 {
	pos := make([][3]float64, len(c.Particles))
	for i, p := range c.Particles {
		pos[i] = p.Pos
	}
	return pos
}

// Scaled returns a copy with positions and cell lengths multiplied by s.
func (c *Config) Scaled(s float64) *Config {
	out := *c
	out.Particles = make([]Particle, len(c.Particles))
	for i, p := range c.Particles {
		for k := range p.Pos {
			p.Pos[k] *= s
		}
		out.Particles[i] = p
	}
	for k := range out.Cell {
		out.Cell[k] *= s
	}
	out.Bonds = append([][2]int(nil), c.Bonds...)
	return &out
}

// NewFamily builds the configured family. The returned family keeps views
// of freshly allocated parameter slices owned by the caller of NewFamily.
func (c *Config) NewFamily() (pairpot.Family, error) {
	n := len(c.Particles)
	column := func(get func(Particle) float64) []float64 {
		out := make([]float64, n)
		for i, p := range c.Particles {
			out[i] = get(p)
		}
		return out
	}

	sigma := func(p Particle) float64 { return p.Sigma }
	epsilon := func(p Particle) float64 { return p.Epsilon }

	switch c.Family {
	case "lj":
		f, err := pairpot.NewLennardJones(column(sigma), column(epsilon))
		if err != nil {
			return nil, err
		}
		return f, nil
	case "mm3":
		f, err := pairpot.NewMM3Buckingham(column(sigma), column(epsilon))
		if err != nil {
			return nil, err
		}
		return f, nil
	case "grimme":
		f, err := pairpot.NewGrimmeDispersion(
			column(func(p Particle) float64 { return p.R0 }),
			column(func(p Particle) float64 { return p.C6 }))
		if err != nil {
			return nil, err
		}
		return f, nil
	case "ei":
		f, err := pairpot.NewElectrostatic(column(func(p Particle) float64 { return p.Charge }), c.Alpha)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, c.Family)
}

// Potential returns a ready pair potential for the configuration.
func (c *Config) Potential() (*pairpot.PairPotential, error) {
	f, err := c.NewFamily()
	if err != nil {
		return nil, err
	}
	return pairpot.New(
		pairpot.WithFamily(f),
		pairpot.WithCutoff(c.Cutoff),
		pairpot.WithSmoothing(c.Smooth),
	), nil
}
