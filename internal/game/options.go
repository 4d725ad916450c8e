package game

import (
	"fmt"
	"time"

	"github.com/tomz197/planetdefense/internal/config"
	"github.com/tomz197/planetdefense/internal/object"
)

// Options holds the fixed parameters a world is built with.
type Options struct {
	Bounds           object.Bounds
	PlanetRadius     float64
	PlayerRadius     float64
	RingRadius       float64
	ProjectilePool   int
	ProjectileRadius float64
	ProjectileSpeed  float64
	EnemyKind        object.EnemyKind
	EnemyPool        int
	EnemySpeed       float64
	InitialEnemies   int
	SpawnInterval    time.Duration
	Lives            int
	WinScore         int
	Seed             int64 // 0 = time based
}

// DefaultOptions returns the reference parameters: an 800x800 canvas,
// 30 projectiles, 20 asteroids with 5 in flight at the start, one spawn
// per second, 3 lives.
func DefaultOptions() Options {
	return Options{
		Bounds:           object.Bounds{Width: 800, Height: 800},
		PlanetRadius:     80,
		PlayerRadius:     object.PlayerRadius,
		RingRadius:       object.PlayerRingRadius,
		ProjectilePool:   30,
		ProjectileRadius: object.ProjectileRadius,
		ProjectileSpeed:  object.ProjectileSpeed,
		EnemyKind:        object.EnemyAsteroid,
		EnemyPool:        20,
		InitialEnemies:   5,
		EnemySpeed:       1,
		SpawnInterval:    time.Second,
		Lives:            3,
		WinScore:         50,
	}
}

// OptionsFromConfig converts a loaded configuration into world options.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	kind, err := object.ParseEnemyKind(cfg.Enemy.Kind)
	if err != nil {
		return Options{}, fmt.Errorf("enemy config: %w", err)
	}
	return Options{
		Bounds:           object.Bounds{Width: cfg.World.Width, Height: cfg.World.Height},
		PlanetRadius:     cfg.Planet.Radius,
		PlayerRadius:     cfg.Player.Radius,
		RingRadius:       cfg.Player.RingRadius,
		ProjectilePool:   cfg.Projectile.Pool,
		ProjectileRadius: cfg.Projectile.Radius,
		ProjectileSpeed:  cfg.Projectile.Speed,
		EnemyKind:        kind,
		EnemyPool:        cfg.Enemy.Pool,
		EnemySpeed:       cfg.Enemy.Speed,
		InitialEnemies:   cfg.Enemy.Initial,
		SpawnInterval:    cfg.Enemy.SpawnInterval,
		Lives:            cfg.Game.Lives,
		WinScore:         cfg.Game.WinScore,
		Seed:             cfg.Game.Seed,
	}, nil
}
