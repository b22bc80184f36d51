// Package config loads typed configuration via Viper: environment
// variables under the DISCOVERY_ prefix, with an optional YAML file
// overlay, generalized from the teacher's requireEnv/getEnvOrDefault
// cmd/engine/main.go helpers into a structured loader in the style of
// turtacn-KeyIP-Intelligence's internal/config package.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "DISCOVERY"

// RunConfig governs one pipeline run: which seeds to start from, which
// moves are allowed, how deep to search, and the model-finder/scoring
// knobs spec.md section 4.7 names.
type RunConfig struct {
	Seeds            []string `mapstructure:"seeds"`
	AllowedMoves     []string `mapstructure:"allowed_moves"`
	Depth            int      `mapstructure:"depth"`
	MinModelSize     int      `mapstructure:"min_model_size"`
	MaxModelSize     int      `mapstructure:"max_model_size"`
	MaxModelsPerSize int      `mapstructure:"max_models_per_size"`
	SolverTimeoutMs  int      `mapstructure:"solver_timeout_ms"`
	ScoreThreshold   float64  `mapstructure:"score_threshold"`
	TopN             int      `mapstructure:"top_n"`
	Workers          int      `mapstructure:"workers"`
}

// ServerConfig governs the discoveryd HTTP/WebSocket control plane.
type ServerConfig struct {
	Port             string `mapstructure:"port"`
	AuthToken        string `mapstructure:"auth_token"`
	AllowedOrigins   string `mapstructure:"allowed_origins"`
	DatabaseURL      string `mapstructure:"database_url"`
	RateLimitPerMin  int    `mapstructure:"rate_limit_per_min"`
	RateLimitBurst   int    `mapstructure:"rate_limit_burst"`
	Environment      string `mapstructure:"environment"`
}

// ApplyRunDefaults fills in the zero-valued fields of cfg with the
// baseline exploration parameters.
func ApplyRunDefaults(cfg *RunConfig) {
	if len(cfg.Seeds) == 0 {
		cfg.Seeds = []string{"Semigroup", "Monoid", "Group", "Ring", "Lattice", "LieAlgebra", "Quasigroup", "BooleanAlgebra"}
	}
	if cfg.Depth == 0 {
		cfg.Depth = 2
	}
	if cfg.MinModelSize == 0 {
		cfg.MinModelSize = 1
	}
	if cfg.MaxModelSize == 0 {
		cfg.MaxModelSize = 6
	}
	if cfg.MaxModelsPerSize == 0 {
		cfg.MaxModelsPerSize = 4
	}
	if cfg.SolverTimeoutMs == 0 {
		cfg.SolverTimeoutMs = 2000
	}
	if cfg.ScoreThreshold == 0 {
		cfg.ScoreThreshold = 0.2
	}
	if cfg.TopN == 0 {
		cfg.TopN = 200
	}
}

// Validate checks RunConfig invariants.
func (c *RunConfig) Validate() error {
	if c.Depth < 1 {
		return fmt.Errorf("config: depth must be >= 1, got %d", c.Depth)
	}
	if c.MinModelSize < 1 || c.MaxModelSize < c.MinModelSize {
		return fmt.Errorf("config: invalid model size range [%d, %d]", c.MinModelSize, c.MaxModelSize)
	}
	if c.ScoreThreshold < 0 || c.ScoreThreshold > 1 {
		return fmt.Errorf("config: score_threshold must be in [0,1], got %f", c.ScoreThreshold)
	}
	if c.TopN < 1 {
		return fmt.Errorf("config: top_n must be >= 1, got %d", c.TopN)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// ApplyServerDefaults fills in the zero-valued fields of cfg.
func ApplyServerDefaults(cfg *ServerConfig) {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.RateLimitPerMin == 0 {
		cfg.RateLimitPerMin = 10
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 3
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// bindEnvs recursively binds every mapstructure-tagged field of iface so
// that AutomaticEnv picks up nested keys like DISCOVERY_SCORE_THRESHOLD.
func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ift := reflect.TypeOf(iface)
	if ift.Kind() == reflect.Ptr {
		ift = ift.Elem()
	}
	for i := 0; i < ift.NumField(); i++ {
		field := ift.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "," {
			continue
		}
		newParts := append(parts, tag)
		if field.Type.Kind() == reflect.Struct {
			bindEnvs(v, reflect.New(field.Type).Elem().Interface(), newParts...)
		} else {
			_ = v.BindEnv(strings.Join(newParts, "."))
		}
	}
}

// LoadRunConfig builds a RunConfig from DISCOVERY_* environment
// variables, optionally overlaid with a YAML file at configPath (pass
// "" to skip the file).
func LoadRunConfig(configPath string) (*RunConfig, error) {
	v := newViper()
	bindEnvs(v, RunConfig{})

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %q: %w", configPath, err)
		}
	}

	cfg := &RunConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal run config: %w", err)
	}
	ApplyRunDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadServerConfig builds a ServerConfig from DISCOVERY_* environment
// variables, optionally overlaid with a YAML file at configPath.
func LoadServerConfig(configPath string) (*ServerConfig, error) {
	v := newViper()
	bindEnvs(v, ServerConfig{})

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %q: %w", configPath, err)
		}
	}

	cfg := &ServerConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal server config: %w", err)
	}
	ApplyServerDefaults(cfg)
	return cfg, nil
}
