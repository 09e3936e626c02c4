package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"stick-battle-arena/assets"
	"stick-battle-arena/internal/component"
	"stick-battle-arena/internal/weapon"
)

// Config holds the game configuration.
type Config struct {
	Match   MatchConfig   `yaml:"match"`
	Arena   ArenaConfig   `yaml:"arena"`
	Player  PlayerConfig  `yaml:"player"`
	Input   InputConfig   `yaml:"input"`
	Log     LogConfig     `yaml:"log"`
	Audio   AudioConfig   `yaml:"audio"`
	Metrics MetricsConfig `yaml:"metrics"`
	Items   []ItemConfig  `yaml:"items" validate:"min=1,unique=Kind,dive"`
}

type MatchConfig struct {
	Tick           time.Duration `yaml:"tick" validate:"gt=0"`
	Lives          int           `yaml:"lives" validate:"min=1"`
	KillBonus      int           `yaml:"kill_bonus" validate:"min=0"`
	TimeLimit      time.Duration `yaml:"time_limit" validate:"min=0"`
	SpawnInterval  time.Duration `yaml:"spawn_interval" validate:"gt=0"`
	MaxGroundItems int           `yaml:"max_ground_items" validate:"min=0"`
	ItemLifespan   time.Duration `yaml:"item_lifespan" validate:"gt=0"`
	Seed           int64         `yaml:"seed"` // 0 picks a random seed
}

type ArenaConfig struct {
	Width   int `yaml:"width" validate:"min=12,max=200"`
	Height  int `yaml:"height" validate:"min=7,max=100"`
	Pillars int `yaml:"pillars" validate:"min=0"`
}

type PlayerConfig struct {
	MaxHealth int `yaml:"max_health" validate:"gt=0"`
}

type InputConfig struct {
	// ReleaseAfter is how long the use key must stay quiet before the
	// button counts as released.
	ReleaseAfter time.Duration `yaml:"release_after" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	File   string `yaml:"file"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume" validate:"gte=0,lte=1"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// ItemConfig defines one item kind that can spawn in the arena.
type ItemConfig struct {
	Kind            string `yaml:"kind" validate:"required"`
	Name            string `yaml:"name"`
	Glyph           string `yaml:"glyph" validate:"required"`
	Durability      int    `yaml:"durability" validate:"gt=0"`
	Weapon          string `yaml:"weapon" validate:"oneof=melee bow pistol"`
	Damage          int    `yaml:"damage" validate:"gte=0"`
	Reach           int    `yaml:"reach" validate:"gte=0"`
	Speed           int    `yaml:"speed" validate:"required_unless=Weapon melee,gte=0"`
	Range           int    `yaml:"range" validate:"required_unless=Weapon melee,gte=0"`
	Wear            int    `yaml:"wear" validate:"gte=0"`
	Projectile      string `yaml:"projectile" validate:"required_unless=Weapon melee"`
	ProjectileGlyph string `yaml:"projectile_glyph"`
}

// DisplayName returns Name, falling back to Kind.
func (ic ItemConfig) DisplayName() string {
	if ic.Name != "" {
		return ic.Name
	}
	return ic.Kind
}

// Behaviour builds a fresh weapon behaviour for one item of this kind.
func (ic ItemConfig) Behaviour() weapon.Behaviour {
	shot := weapon.Shot{
		Projectile: ic.Projectile,
		Glyph:      ic.ProjectileGlyph,
		Damage:     ic.Damage,
		Speed:      ic.Speed,
		Range:      ic.Range,
	}
	switch ic.Weapon {
	case "bow":
		return &weapon.Bow{Shot: shot, Wear: ic.Wear}
	case "pistol":
		return weapon.Pistol{Shot: shot, Wear: ic.Wear}
	default:
		return weapon.Melee{Damage: ic.Damage, Reach: ic.Reach, Wear: ic.Wear}
	}
}

// ProjectileTemplate returns the flight template for shots of this kind.
func (ic ItemConfig) ProjectileTemplate() component.Projectile {
	return component.Projectile{Kind: ic.Projectile, Damage: ic.Damage, Speed: ic.Speed, Range: ic.Range}
}

// Item looks up an item kind.
func (c *Config) Item(kind string) (ItemConfig, bool) {
	for _, ic := range c.Items {
		if ic.Kind == kind {
			return ic, true
		}
	}
	return ItemConfig{}, false
}

// Load builds the configuration from the embedded defaults, the optional
// YAML file at path, a .env file in the working directory and the
// process environment, in that order, and validates the result.
func Load(path string) (*Config, error) {
	var overlays [][]byte
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		overlays = append(overlays, raw)
	}
	cfg, err := Parse(overlays...)
	if err != nil {
		return nil, err
	}

	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes the embedded defaults and then each overlay on top.
// Lists such as items are replaced, not merged.
func Parse(overlays ...[]byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(assets.DefaultConfig, cfg); err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}
	for _, raw := range overlays {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from environment variables found by lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("ARENA_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup("ARENA_LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := lookup("ARENA_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := lookup("ARENA_METRICS_ADDR"); ok {
		cfg.Metrics.Addr = v
	}
	if v, ok := lookup("ARENA_SOUND"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ARENA_SOUND value: %w", err)
		}
		cfg.Audio.Enabled = b
	}
	if v, ok := lookup("ARENA_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ARENA_SEED value: %w", err)
		}
		cfg.Match.Seed = n
	}
	if v, ok := lookup("ARENA_LIVES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ARENA_LIVES value: %w", err)
		}
		cfg.Match.Lives = n
	}
	return nil
}
