// Package gamecfg loads the game-tuning configuration: boss stages,
// cooldowns and display constants. The file is YAML and can be edited
// while the bot runs; Provider picks up changes via fsnotify.
package gamecfg

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration with YAML parsing of "1h30m" forms.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the complete game-tuning configuration.
type Config struct {
	Boss  VariantConfig `yaml:"boss"`
	Whale VariantConfig `yaml:"whale"`
	Burn  BurnConfig    `yaml:"burn"`
}

// VariantConfig tunes one boss variant.
type VariantConfig struct {
	// MaxSupply is the reference maximum shown on the HP line.
	MaxSupply int64 `yaml:"max_supply"`

	// GlobalCooldown gates all attackers collectively.
	GlobalCooldown Duration `yaml:"global_cooldown"`

	// StatusCooldown gates the per-actor status check.
	StatusCooldown Duration `yaml:"status_cooldown"`

	// TracksActorCooldown controls whether attacks stamp the
	// per-actor cooldown anchor alongside the global one.
	TracksActorCooldown bool `yaml:"tracks_actor_cooldown"`

	// DefeatAtZero marks the variant as defeated once the reading
	// drops to zero or below.
	DefeatAtZero bool `yaml:"defeat_at_zero"`

	// Stages list the boss forms in ascending reading order. The
	// stage whose MinReading is the highest bound not exceeding the
	// current reading is active.
	Stages []StageConfig `yaml:"stages"`

	// RecentEvents is how many history entries the panel shows.
	RecentEvents int `yaml:"recent_events"`

	// RevealDivisor controls how much of the stage art one point of
	// damage uncovers: lines shown = 1 + magnitude/RevealDivisor.
	RevealDivisor int64 `yaml:"reveal_divisor"`
}

// StageConfig names one boss form and its lower reading bound.
type StageConfig struct {
	Name       string `yaml:"name"`
	MinReading int64  `yaml:"min_reading"`
}

// BurnConfig tunes the burn report.
type BurnConfig struct {
	// MaxDays caps how many day offsets one expression can expand to.
	MaxDays int `yaml:"max_days"`

	// MaxDisplayLines caps report rows before head/tail truncation.
	MaxDisplayLines int `yaml:"max_display_lines"`
}

// Default returns the tuning the bot ships with.
func Default() *Config {
	return &Config{
		Boss: VariantConfig{
			MaxSupply:           38_892_000,
			GlobalCooldown:      Duration(90 * time.Minute),
			StatusCooldown:      Duration(30 * time.Minute),
			TracksActorCooldown: true,
			Stages: []StageConfig{
				{Name: "serpent", MinReading: 0},
				{Name: "wounded", MinReading: 26_000_000},
				{Name: "dragon", MinReading: 27_000_000},
			},
			RecentEvents:  3,
			RevealDivisor: 500,
		},
		Whale: VariantConfig{
			MaxSupply:      300_000,
			GlobalCooldown: Duration(90 * time.Minute),
			StatusCooldown: Duration(30 * time.Minute),
			DefeatAtZero:   true,
			Stages: []StageConfig{
				{Name: "whale", MinReading: 0},
			},
			RecentEvents:  3,
			RevealDivisor: 500,
		},
		Burn: BurnConfig{
			MaxDays:         365,
			MaxDisplayLines: 20,
		},
	}
}

// Load reads and validates a game config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run
// with.
func (c *Config) Validate() error {
	if err := c.Boss.validate("boss"); err != nil {
		return err
	}
	if err := c.Whale.validate("whale"); err != nil {
		return err
	}
	if c.Burn.MaxDays <= 0 {
		return fmt.Errorf("burn.max_days must be positive, got %d", c.Burn.MaxDays)
	}
	if c.Burn.MaxDisplayLines <= 0 {
		return fmt.Errorf("burn.max_display_lines must be positive, got %d", c.Burn.MaxDisplayLines)
	}
	return nil
}

func (v *VariantConfig) validate(name string) error {
	if v.GlobalCooldown <= 0 {
		return fmt.Errorf("%s.global_cooldown must be positive", name)
	}
	if v.StatusCooldown <= 0 {
		return fmt.Errorf("%s.status_cooldown must be positive", name)
	}
	if len(v.Stages) == 0 {
		return fmt.Errorf("%s.stages must not be empty", name)
	}
	for i := 1; i < len(v.Stages); i++ {
		if v.Stages[i].MinReading <= v.Stages[i-1].MinReading {
			return fmt.Errorf("%s.stages must have strictly ascending min_reading, got %d after %d",
				name, v.Stages[i].MinReading, v.Stages[i-1].MinReading)
		}
	}
	for _, s := range v.Stages {
		if s.Name == "" {
			return fmt.Errorf("%s has a stage with an empty name", name)
		}
	}
	if v.RecentEvents <= 0 {
		return fmt.Errorf("%s.recent_events must be positive", name)
	}
	if v.RevealDivisor <= 0 {
		return fmt.Errorf("%s.reveal_divisor must be positive", name)
	}
	return nil
}

// Stage returns the name of the active stage for a reading.
func (v *VariantConfig) Stage(reading int64) string {
	active := v.Stages[0].Name
	for _, s := range v.Stages {
		if reading >= s.MinReading {
			active = s.Name
		}
	}
	return active
}
