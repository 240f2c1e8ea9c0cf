package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mealplanner/internal/ga"
	"mealplanner/internal/recipe"
)

var (
	// ErrInvalidConfig wraps every validation failure
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the root configuration structure
type Config struct {
	Seed    int64         `yaml:"seed" toml:"seed"`
	GA      ga.Config     `yaml:"ga" toml:"ga"`
	Target  ga.Target     `yaml:"target" toml:"target"`
	Weights ga.Weights    `yaml:"weights" toml:"weights"`
	Plan    PlanConfig    `yaml:"plan" toml:"plan"`
	Catalog CatalogConfig `yaml:"catalog" toml:"catalog"`
	Logging LogConfig     `yaml:"logging" toml:"logging"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// PlanConfig defines the slot layout and diet of the plan
type PlanConfig struct {
	Slots    []string `yaml:"slots" toml:"slots"`
	DietType string   `yaml:"diet_type" toml:"diet_type"`
}

// CatalogConfig selects the recipe provider: a local file or a remote service
type CatalogConfig struct {
	Path      string   `yaml:"path" toml:"path"`
	URL       string   `yaml:"url" toml:"url"`
	APIKeyEnv string   `yaml:"api_key_env" toml:"api_key_env"`
	Timeout   Duration `yaml:"timeout" toml:"timeout"`

	// APIKey is resolved from APIKeyEnv, never read from the file
	APIKey string `yaml:"-" toml:"-"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	EveryGenSummary bool   `yaml:"every_gen_summary" toml:"every_gen_summary"`
	TopNDebug       int    `yaml:"topn_debug" toml:"topn_debug"`
	CSVPath         string `yaml:"csv_path" toml:"csv_path"`
	JSONPath        string `yaml:"json_path" toml:"json_path"`
	PlanPath        string `yaml:"plan_path" toml:"plan_path"`
}

// MetricsConfig defines the prometheus endpoint; empty Addr disables it
type MetricsConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// Duration decodes "30s"-style strings from YAML and TOML
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	return d.UnmarshalText([]byte(n.Value))
}

// Default returns the configuration used for fields a file leaves out
func Default() *Config {
	return &Config{
		Seed:    1337,
		GA:      ga.DefaultConfig(),
		Weights: ga.DefaultWeights(),
		Plan: PlanConfig{
			Slots: []string{"breakfast", "lunch", "dinner"},
		},
		Catalog: CatalogConfig{
			APIKeyEnv: "RECIPE_API_KEY",
			Timeout:   Duration(30 * time.Second),
		},
		Logging: LogConfig{
			EveryGenSummary: true,
			TopNDebug:       3,
		},
	}
}

// Load reads a YAML or TOML (by extension) config file and returns a Config.
// Fields absent from the file keep their Default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	applyDefaults(cfg)
	cfg.Catalog.APIKey = os.Getenv(cfg.Catalog.APIKeyEnv)
	return cfg, nil
}

// LoadEnv loads .env style files into the process environment. Missing
// files are skipped; existing variables are not overwritten.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// applyDefaults fills fields where zero is never a meaningful choice
func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.GA.TournamentSize <= 0 {
		cfg.GA.TournamentSize = ga.DefaultTournamentSize
	}
	if cfg.GA.Workers <= 0 {
		cfg.GA.Workers = runtime.NumCPU()
	}
	if cfg.Catalog.Timeout <= 0 {
		cfg.Catalog.Timeout = Duration(30 * time.Second)
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
	if cfg.Logging.PlanPath == "" {
		cfg.Logging.PlanPath = "artifacts/plan.json"
	}
	cfg.Plan.DietType = string(recipe.NormalizeDiet(cfg.Plan.DietType))
}

// Validate checks that the configuration describes a runnable search
func (c *Config) Validate() error {
	if err := c.GA.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	t := c.Target
	if t.Calories < 0 || t.Carbs < 0 || t.Protein < 0 || t.Fat < 0 {
		return fmt.Errorf("%w: targets must be >= 0", ErrInvalidConfig)
	}
	w := c.Weights
	if w.Calories < 0 || w.Carbs < 0 || w.Protein < 0 || w.Fat < 0 {
		return fmt.Errorf("%w: weights must be >= 0", ErrInvalidConfig)
	}

	if len(c.Plan.Slots) == 0 {
		return fmt.Errorf("%w: plan needs at least one slot", ErrInvalidConfig)
	}
	if _, err := c.MealSlots(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Plan.DietType == "" {
		return fmt.Errorf("%w: plan.diet_type is required", ErrInvalidConfig)
	}

	if c.Catalog.Path == "" && c.Catalog.URL == "" {
		return fmt.Errorf("%w: catalog.path or catalog.url is required", ErrInvalidConfig)
	}
	return nil
}

// MealSlots parses the configured slot layout
func (c *Config) MealSlots() ([]recipe.MealType, error) {
	slots := make([]recipe.MealType, len(c.Plan.Slots))
	for i, s := range c.Plan.Slots {
		m, err := recipe.ParseMealType(s)
		if err != nil {
			return nil, fmt.Errorf("plan.slots[%d]: %w", i, err)
		}
		slots[i] = m
	}
	return slots, nil
}

// Diet returns the configured diet type
func (c *Config) Diet() recipe.DietType {
	return recipe.NormalizeDiet(c.Plan.DietType)
}

// Fitness builds the fitness function for the configured target
func (c *Config) Fitness() ga.MacroFitness {
	return ga.MacroFitness{Target: c.Target, Weights: c.Weights}
}
