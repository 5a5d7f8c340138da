package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// Seed drives the random dependency sets of fanout cases.
	Seed      int64           `toml:"seed"`
	Propagate []PropagateCase `toml:"propagate"`
	Fanout    []FanoutCase    `toml:"fanout"`
}

// PropagateCase builds Width chains of Depth signals, each link kept in
// sync by an effect, and times writes to the shared source.
type PropagateCase struct {
	Width      int `toml:"width"`
	Depth      int `toml:"depth"`
	Iterations int `toml:"iterations"`
}

// FanoutCase builds Sources signals plus one object signal and Effects
// effects reading Reads random sources each.
type FanoutCase struct {
	Name       string `toml:"name"`
	Sources    int    `toml:"sources"`
	Effects    int    `toml:"effects"`
	Reads      int    `toml:"reads"`
	Iterations int    `toml:"iterations"`
}

func DefaultConfig() Config {
	cfg := Config{}
	for _, w := range []int{1, 10, 100} {
		for _, d := range []int{1, 10, 100} {
			cfg.Propagate = append(cfg.Propagate, PropagateCase{Width: w, Depth: d, Iterations: 100})
		}
	}
	cfg.Fanout = []FanoutCase{
		{Name: "simple component", Sources: 2, Effects: 10, Reads: 2, Iterations: 10_000},
		{Name: "wide", Sources: 100, Effects: 1_000, Reads: 4, Iterations: 2_000},
		{Name: "dense", Sources: 25, Effects: 1_000, Reads: 25, Iterations: 1_000},
	}
	return cfg
}

// LoadConfig reads cases from a TOML file. An empty path yields the
// defaults, and so does a file that defines no cases at all.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}

	if len(cfg.Propagate) == 0 && len(cfg.Fanout) == 0 {
		def := DefaultConfig()
		cfg.Propagate, cfg.Fanout = def.Propagate, def.Fanout
	}
	for i := range cfg.Fanout {
		if cfg.Fanout[i].Name == "" {
			cfg.Fanout[i].Name = fmt.Sprintf("fanout-%d", i+1)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	var errs []error
	for i, c := range cfg.Propagate {
		if c.Width < 1 || c.Depth < 1 || c.Iterations < 1 {
			errs = append(errs, fmt.Errorf("propagate[%d]: width, depth and iterations must be positive", i))
		}
	}
	for i, c := range cfg.Fanout {
		if c.Sources < 1 || c.Effects < 1 || c.Iterations < 1 {
			errs = append(errs, fmt.Errorf("fanout[%d] %q: sources, effects and iterations must be positive", i, c.Name))
		}
		if c.Reads < 1 || c.Reads > c.Sources {
			errs = append(errs, fmt.Errorf("fanout[%d] %q: reads must be between 1 and sources", i, c.Name))
		}
	}
	return errors.Join(errs...)
}
