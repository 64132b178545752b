package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"skirmish/meta"
)

var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New()

type Config struct {
	PlyLimit      int         `yaml:"ply_limit" validate:"required,gte=1"`
	MeleeRange    int         `yaml:"melee_range" validate:"gte=0"`
	RangedRange   int         `yaml:"ranged_range" validate:"gte=0"`
	Trace         string      `yaml:"trace" validate:"omitempty,oneof=off cutoffs expansions all"`
	StrictTargets bool        `yaml:"strict_targets"`
	Server        Server      `yaml:"server"`
	Environment   Environment `yaml:"environment"`
	Simulation    Simulation  `yaml:"simulation"`
}

type Server struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// Environment is the hosting environment the agent plays against.
type Environment struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

type Simulation struct {
	Turns  int    `yaml:"turns" validate:"gte=1"`
	Seed   uint64 `yaml:"seed"`
	Width  int    `yaml:"width" validate:"gte=2"`
	Height int    `yaml:"height" validate:"gte=3"`
}

// Default holds every setting except the ply limit, which must come from the
// config file or the command line.
func Default() Config {
	return Config{
		MeleeRange:  meta.MELEE_RANGE,
		RangedRange: meta.RANGED_RANGE,
		Trace:       "off",
		Server:      Server{Addr: "localhost:8080"},
		Environment: Environment{Addr: "localhost:8081"},
		Simulation: Simulation{
			Turns:  meta.MAX_TURNS,
			Seed:   1,
			Width:  16,
			Height: 16,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the defaults.
// The result is not validated so that flags can still override it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ValidateWithoutSearch validates everything but the ply limit, for commands
// that never plan a turn.
func (c Config) ValidateWithoutSearch() error {
	if err := validate.StructExcept(c, "PlyLimit"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
