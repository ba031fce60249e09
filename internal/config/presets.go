package config

import (
	"sort"

	"github.com/san-kum/pairpot/internal/topology"
)

var Presets = map[string]map[string]*Config{
	"lj": {
		"dimer": DefaultConfig(),
		"argon-fcc": {
			Name: "argon-fcc", Family: "lj", Cutoff: 8.5, Smooth: true,
			Cell:      [3]float64{10.52, 10.52, 10.52},
			Scalings:  topology.DefaultFactors(),
			Particles: fcc(5.26, 2, Particle{Sigma: 3.405, Epsilon: 0.2381}),
		},
		"chain": {
			Name: "chain", Family: "lj", Cutoff: 12,
			Scalings: topology.Factors{Scale1: 0, Scale2: 0, Scale3: 0.5, Scale4: 1},
			Particles: []Particle{
				{Pos: [3]float64{0, 0, 0}, Sigma: 3.5, Epsilon: 0.066},
				{Pos: [3]float64{1.53, 0, 0}, Sigma: 3.5, Epsilon: 0.066},
				{Pos: [3]float64{2.04, 1.44, 0}, Sigma: 3.5, Epsilon: 0.066},
				{Pos: [3]float64{3.57, 1.44, 0}, Sigma: 3.5, Epsilon: 0.066},
				{Pos: [3]float64{4.08, 2.88, 0}, Sigma: 3.5, Epsilon: 0.066},
			},
			Bonds: [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}},
		},
	},
	"mm3": {
		"dimer": {
			Name: "dimer", Family: "mm3", Cutoff: 10,
			Scalings: topology.DefaultFactors(),
			Particles: []Particle{
				{Pos: [3]float64{0, 0, 0}, Sigma: 3.6, Epsilon: 0.027},
				{Pos: [3]float64{0, 0, 3.6}, Sigma: 3.6, Epsilon: 0.027},
			},
		},
	},
	"grimme": {
		"dimer": {
			Name: "dimer", Family: "grimme", Cutoff: 15,
			Scalings: topology.DefaultFactors(),
			Particles: []Particle{
				{Pos: [3]float64{0, 0, 0}, R0: 1.452, C6: 1.75},
				{Pos: [3]float64{3.2, 0, 0}, R0: 1.452, C6: 1.75},
			},
		},
	},
	"ei": {
		"ion-pair": {
			Name: "ion-pair", Family: "ei", Cutoff: 20,
			Scalings: topology.DefaultFactors(),
			Particles: []Particle{
				{Pos: [3]float64{0, 0, 0}, Charge: 1},
				{Pos: [3]float64{2.36, 0, 0}, Charge: -1},
			},
		},
		"nacl-ewald": {
			Name: "nacl-ewald", Family: "ei", Cutoff: 9, Alpha: 0.3,
			Cell:      [3]float64{5.64, 5.64, 5.64},
			Scalings:  topology.DefaultFactors(),
			Particles: rockSalt(5.64),
		},
	},
}

func GetPreset(family, name string) *Config {
	byName, ok := Presets[family]
	if !ok {
		return nil
	}
	cfg, ok := byName[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Particles = append([]Particle(nil), cfg.Particles...)
	c.Bonds = append([][2]int(nil), cfg.Bonds...)
	return &c
}

func ListPresets(family string) []string {
	byName, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// fcc replicates a four-site face-centred cubic cell n times per axis.
func fcc(a float64, n int, proto Particle) []Particle {
	basis := [4][3]float64{{0, 0, 0}, {0.5, 0.5, 0}, {0.5, 0, 0.5}, {0, 0.5, 0.5}}
	out := make([]Particle, 0, 4*n*n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				for _, b := range basis {
					p := proto
					p.Pos = [3]float64{(float64(x) + b[0]) * a, (float64(y) + b[1]) * a, (float64(z) + b[2]) * a}
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// rockSalt fills one conventional cell with four cations and four anions.
func rockSalt(a float64) []Particle {
	cation := fcc(a, 1, Particle{Charge: 1})
	anion := fcc(a, 1, Particle{Charge: -1})
	for i := range anion {
		anion[i].Pos[0] += 0.5 * a
		if anion[i].Pos[0] >= a {
			anion[i].Pos[0] -= a
		}
	}
	return append(cation, anion...)
}
