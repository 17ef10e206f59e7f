package dynamo

import (
	"errors"
	"testing"

	"github.com/san-kum/rigsim/internal/interval"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"zero order", func(c *Config) { c.Order = 0 }, "Order"},
		{"negative tolerance", func(c *Config) { c.AbsTol = -1 }, "AbsTol"},
		{"safety above one", func(c *Config) { c.Safety = 1.5 }, "Safety"},
		{"shrink of one", func(c *Config) { c.MinShrink = 1 }, "MinShrink"},
		{"max below min", func(c *Config) { c.MaxStep = c.MinStep / 2 }, "MaxStep"},
		{"too many last terms", func(c *Config) { c.LastTerms = c.Order + 1 }, "LastTerms"},
		{"fixed without step", func(c *Config) { c.Adaptive = false; c.Step = 0 }, "Step"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("error = %v, want *ConfigError", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("field = %s, want %s", cerr.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestSolverErrorUnwraps(t *testing.T) {
	err := &SolverError{Op: "enclosure", Time: interval.Point(1), Step: 0.5, Wrapped: ErrEnclosureNotFound}
	if !errors.Is(err, ErrEnclosureNotFound) {
		t.Error("SolverError does not unwrap")
	}
	if err.Error() == "" {
		t.Error("empty message")
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{Unvalidated: "unvalidated", Validated: "validated", Stepped: "stepped", Failed: "failed"} {
		if p.String() != want {
			t.Errorf("%d.String() = %s", p, p.String())
		}
	}
}
