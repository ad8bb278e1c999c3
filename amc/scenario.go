package amc

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SweepSpec is a sweep scenario loaded from YAML. CLI flags override its
// values; absent fields fall back to DefaultSweepConfig.
type SweepSpec struct {
	Modulations []int    `yaml:"mods"`
	SNRStartDB  *float64 `yaml:"snr_start_db,omitempty"` // nil = default
	SNRStopDB   *float64 `yaml:"snr_stop_db,omitempty"`  // nil = default
	SNRStepDB   *float64 `yaml:"snr_step_db,omitempty"`  // nil = default
	Bits        int64    `yaml:"bits"`
	Runs        int      `yaml:"runs"`
	Pilots      int64    `yaml:"pilots,omitempty"`
	Coding      bool     `yaml:"coding,omitempty"`
	CodedOnly   bool     `yaml:"coded_only,omitempty"`
	Seed        *uint64  `yaml:"seed,omitempty"` // nil = unseeded
	Workers     int      `yaml:"workers,omitempty"`
}

// LoadSweepSpec reads and parses a sweep scenario file. Unknown YAML fields
// are rejected to catch typos early.
func LoadSweepSpec(path string) (*SweepSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep spec: %w", err)
	}
	var spec SweepSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing sweep spec: %w", err)
	}
	return &spec, nil
}

// SweepConfig converts the spec into a validated-ready SweepConfig, filling
// unset fields from the defaults.
func (sp *SweepSpec) SweepConfig() SweepConfig {
	cfg := DefaultSweepConfig()
	if len(sp.Modulations) > 0 {
		cfg.Modulations = sp.Modulations
	}
	if sp.SNRStartDB != nil {
		cfg.SNRStartDB = *sp.SNRStartDB
	}
	if sp.SNRStopDB != nil {
		cfg.SNRStopDB = *sp.SNRStopDB
	}
	if sp.SNRStepDB != nil {
		cfg.SNRStepDB = *sp.SNRStepDB
	}
	if sp.Bits > 0 {
		cfg.Bits = sp.Bits
	}
	if sp.Runs > 0 {
		cfg.Runs = sp.Runs
	}
	cfg.Coding = sp.Coding
	cfg.CodedOnly = sp.CodedOnly
	if sp.Seed != nil {
		cfg.Seed = NewSeed(*sp.Seed)
	}
	if sp.Workers > 0 {
		cfg.Workers = sp.Workers
	}
	return cfg
}
