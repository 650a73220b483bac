package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinsim/internal/kin"
	"github.com/san-kum/kinsim/internal/mechanisms"
)

const (
	DefaultDt        = 0.0001
	DefaultDuration  = 1.0
	DefaultTolerance = 1e-6
)

type Config struct {
	Mechanism  string             `yaml:"mechanism"`
	Integrator string             `yaml:"integrator"`
	Dt         float64            `yaml:"dt"`
	Duration   float64            `yaml:"duration"`
	Tolerance  float64            `yaml:"tolerance"`
	Adaptive   bool               `yaml:"adaptive"`
	Grid       GridConfig         `yaml:"grid"`
	InitConc   map[string]float64 `yaml:"init_conc"`
	Rates      map[string]float64 `yaml:"rates"`

	// Custom mass-action network, used when mechanism is "custom".
	Species   []string         `yaml:"species"`
	Reactions []ReactionConfig `yaml:"reactions"`
}

// GridConfig describes a two-segment output grid: fine spacing up to
// the join time, coarse spacing after. All zero means a plain uniform
// grid from dt and duration.
type GridConfig struct {
	Join     float64 `yaml:"join"`
	FineDt   float64 `yaml:"fine_dt"`
	CoarseDt float64 `yaml:"coarse_dt"`
}

type ReactionConfig struct {
	K         float64        `yaml:"k"`
	Reactants map[string]int `yaml:"reactants"`
	Products  map[string]int `yaml:"products"`
}

func DefaultConfig() *Config {
	return &Config{
		Mechanism:  "triangle",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Tolerance:  DefaultTolerance,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
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

// BuildGrid returns the output time grid, or nil when the simulator
// should derive a uniform grid from dt and duration.
func (c *Config) BuildGrid() ([]float64, error) {
	if c.Grid.Join == 0 && c.Grid.FineDt == 0 && c.Grid.CoarseDt == 0 {
		return nil, nil
	}
	return kin.TwoSegmentGrid(0, c.Grid.Join, c.Duration, c.Grid.FineDt, c.Grid.CoarseDt)
}

// InitConcFor assembles the initial concentration vector for a
// mechanism, species by name. Unlisted species start at zero; a nil
// map means the mechanism default is used by the caller.
func (c *Config) InitConcFor(m kin.Mechanism) (kin.Conc, error) {
	if len(c.InitConc) == 0 {
		return nil, nil
	}
	species := m.Species()
	index := make(map[string]int, len(species))
	for i, s := range species {
		index[s] = i
	}
	conc := make(kin.Conc, len(species))
	for name, v := range c.InitConc {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", kin.ErrUnknownSpecies, name)
		}
		conc[i] = v
	}
	return conc, nil
}

// BuildCustom constructs a mass-action network from the species and
// reactions sections.
func (c *Config) BuildCustom() (*mechanisms.Network, error) {
	if len(c.Species) == 0 {
		return nil, fmt.Errorf("custom mechanism needs a species list")
	}
	if len(c.Reactions) == 0 {
		return nil, fmt.Errorf("custom mechanism needs at least one reaction")
	}
	n := mechanisms.NewNetwork(c.Species...)
	for _, r := range c.Reactions {
		if err := n.AddReaction(r.K, r.Reactants, r.Products); err != nil {
			return nil, err
		}
	}
	return n, nil
}
