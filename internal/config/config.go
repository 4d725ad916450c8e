package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tunable game parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Planet     PlanetConfig     `yaml:"planet"`
	Player     PlayerConfig     `yaml:"player"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Game       GameConfig       `yaml:"game"`
	Client     ClientConfig     `yaml:"client"`
	SSH        SSHConfig        `yaml:"ssh"`
}

// WorldConfig holds the logical canvas dimensions.
// They bound enemy spawning and projectile expiry.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlanetConfig holds the planet parameters. The planet sits at the world center.
type PlanetConfig struct {
	Radius float64 `yaml:"radius"`
}

// PlayerConfig holds turret parameters.
type PlayerConfig struct {
	Radius     float64 `yaml:"radius"`
	RingRadius float64 `yaml:"ring_radius"` // Distance from planet center to turret center
}

// ProjectileConfig holds projectile pool parameters.
type ProjectileConfig struct {
	Pool   int     `yaml:"pool"`
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"` // World units per tick
}

// EnemyConfig holds enemy pool and spawn parameters.
type EnemyConfig struct {
	Kind          string        `yaml:"kind"` // "asteroid" or "basic"
	Pool          int           `yaml:"pool"`
	Initial       int           `yaml:"initial"` // Enemies started when the world is built
	Speed         float64       `yaml:"speed"`   // World units per tick
	SpawnInterval time.Duration `yaml:"spawn_interval"`
}

// GameConfig holds scoring and terminal-state parameters.
type GameConfig struct {
	Lives    int   `yaml:"lives"`
	WinScore int   `yaml:"win_score"`
	Seed     int64 `yaml:"seed"` // 0 = time based
}

// ClientConfig holds frontend loop parameters.
type ClientConfig struct {
	TargetFPS            int           `yaml:"target_fps"`
	MaxTermWidth         int           `yaml:"max_term_width"`
	MaxTermHeight        int           `yaml:"max_term_height"`
	InactivityWarn       time.Duration `yaml:"inactivity_warn"`
	InactivityDisconnect time.Duration `yaml:"inactivity_disconnect"`
	ShutdownDisplay      time.Duration `yaml:"shutdown_display"`
}

// SSHConfig holds the SSH listener settings. Environment variables override these.
type SSHConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// FrameTime returns the target duration of one client frame.
func (c ClientConfig) FrameTime() time.Duration {
	if c.TargetFPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TargetFPS)
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid parameter in the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Planet.Radius <= 0 {
		errs = append(errs, fmt.Errorf("planet radius must be positive, got %v", c.Planet.Radius))
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, fmt.Errorf("player radius must be positive, got %v", c.Player.Radius))
	}
	if c.Player.RingRadius < 0 {
		errs = append(errs, fmt.Errorf("player ring radius must not be negative, got %v", c.Player.RingRadius))
	}
	if c.Projectile.Speed <= 0 {
		errs = append(errs, fmt.Errorf("projectile speed must be positive, got %v", c.Projectile.Speed))
	}
	if c.Projectile.Pool < 1 {
		errs = append(errs, fmt.Errorf("projectile pool must hold at least one slot, got %d", c.Projectile.Pool))
	}
	if c.Enemy.Pool < 1 {
		errs = append(errs, fmt.Errorf("enemy pool must hold at least one slot, got %d", c.Enemy.Pool))
	}
	if c.Enemy.Initial < 0 || c.Enemy.Initial > c.Enemy.Pool {
		errs = append(errs, fmt.Errorf("initial enemies must be within [0,%d], got %d", c.Enemy.Pool, c.Enemy.Initial))
	}
	if c.Enemy.Speed <= 0 {
		errs = append(errs, fmt.Errorf("enemy speed must be positive, got %v", c.Enemy.Speed))
	}
	if c.Enemy.SpawnInterval <= 0 {
		errs = append(errs, fmt.Errorf("enemy spawn interval must be positive, got %v", c.Enemy.SpawnInterval))
	}
	if c.Enemy.Kind != "asteroid" && c.Enemy.Kind != "basic" {
		errs = append(errs, fmt.Errorf("unknown enemy kind %q", c.Enemy.Kind))
	}
	if c.Game.Lives < 1 {
		errs = append(errs, fmt.Errorf("lives must be at least 1, got %d", c.Game.Lives))
	}
	if c.Game.WinScore < 1 {
		errs = append(errs, fmt.Errorf("win score must be at least 1, got %d", c.Game.WinScore))
	}
	return errors.Join(errs...)
}
