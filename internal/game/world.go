// Package game owns the entity pools and runs the per-frame simulation.
//
// A World is single-threaded: Push, Tick and Snapshot must all be called from
// the goroutine that drives frames. Frontends that read input concurrently
// hand events over with Push on that goroutine; the queue is drained at the
// start of the next Tick so input is applied in a deterministic order.
package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/planetdefense/internal/object"
)

// World holds all game state for one player.
type World struct {
	opts Options

	planet      *object.Planet
	player      *object.Player
	projectiles *object.Pool[*object.Projectile]
	enemies     *object.Pool[*object.Enemy]
	spawner     *object.EnemySpawner
	rand        *rand.Rand

	pointer object.Vec
	score   int
	lives   int
	over    bool
	debug   bool

	queue  []Input
	events []Event
	scorer worldScorer
}

// New builds a world and pre-allocates every pool slot.
func New(opts Options) *World {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	planet := object.NewPlanet(opts.Bounds, opts.PlanetRadius)
	w := &World{
		opts:    opts,
		planet:  planet,
		player:  object.NewPlayer(planet, opts.PlayerRadius, opts.RingRadius),
		spawner: object.NewEnemySpawner(opts.SpawnInterval),
		rand:    rand.New(rand.NewSource(seed)),
		projectiles: object.NewPool(opts.ProjectilePool, func() *object.Projectile {
			return object.NewProjectile(opts.ProjectileRadius, opts.ProjectileSpeed)
		}),
		enemies: object.NewPool(opts.EnemyPool, func() *object.Enemy {
			return object.NewEnemy(opts.EnemyKind, opts.EnemySpeed)
		}),
	}
	w.scorer = worldScorer{w: w}
	w.reset()
	return w
}

// reset restores the starting state without allocating new slots.
func (w *World) reset() {
	w.projectiles.ResetAll()
	w.enemies.ResetAll()
	w.spawner.Reset()
	w.player.Reset(w.planet)
	w.pointer = w.player.Muzzle()
	w.score = 0
	w.lives = w.opts.Lives
	w.over = false

	for i := 0; i < w.opts.InitialEnemies; i++ {
		w.SpawnEnemy()
	}
}

// Restart starts a new game in place.
func (w *World) Restart() {
	w.reset()
}

// Push queues an input event for the next Tick.
func (w *World) Push(in Input) {
	w.queue = append(w.queue, in)
}

// Tick advances the simulation by one frame. delta is the wall-clock time
// since the previous frame and only drives the spawn timer; entities move a
// fixed distance per tick.
func (w *World) Tick(delta time.Duration) {
	w.events = w.events[:0]
	w.drainInput()

	if !w.over {
		w.player.Update(w.planet, w.pointer)

		for _, p := range w.projectiles.Slots() {
			p.Update(w.opts.Bounds)
		}

		ctx := w.updateContext()
		for _, e := range w.enemies.Slots() {
			e.Update(ctx)
		}

		if w.spawner.Advance(delta) {
			w.SpawnEnemy()
		}
	}

	w.checkGameOver()
}

func (w *World) drainInput() {
	for _, in := range w.queue {
		switch in.Kind {
		case InputPointerMove:
			w.pointer = object.Vec{X: in.X, Y: in.Y}
		case InputPointerDown:
			w.pointer = object.Vec{X: in.X, Y: in.Y}
			if !w.over {
				w.player.Update(w.planet, w.pointer)
			}
			w.Shoot()
		case InputFire:
			w.Shoot()
		case InputToggleDebug:
			w.debug = !w.debug
		case InputRestart:
			w.Restart()
		}
	}
	w.queue = w.queue[:0]
}

func (w *World) updateContext() object.UpdateContext {
	return object.UpdateContext{
		Bounds:      w.opts.Bounds,
		Planet:      w.planet,
		Player:      w.player,
		Projectiles: w.projectiles,
		Scorer:      &w.scorer,
	}
}

// checkGameOver latches the terminal state.
func (w *World) checkGameOver() {
	if w.over {
		return
	}
	if w.score >= w.opts.WinScore || w.lives == 0 {
		w.over = true
		w.events = append(w.events, Event{Type: EventGameOver, Won: w.Won()})
	}
}

// Shoot fires one projectile from the turret. Returns false if the game is
// over or every projectile is in flight.
func (w *World) Shoot() bool {
	if w.over {
		return false
	}
	if !w.player.Shoot(w.projectiles) {
		return false
	}
	w.events = append(w.events, Event{Type: EventShot})
	return true
}

// SpawnEnemy activates the first free enemy. Returns false if the game is
// over or the pool is exhausted.
func (w *World) SpawnEnemy() bool {
	if w.over {
		return false
	}
	e := w.spawner.Spawn(w.enemies, object.SpawnContext{
		Bounds: w.opts.Bounds,
		Planet: w.planet,
		Rand:   w.rand,
	})
	if e == nil {
		return false
	}
	w.events = append(w.events, Event{Type: EventEnemySpawned})
	return true
}

// Score returns the current score.
func (w *World) Score() int { return w.score }

// Lives returns the remaining lives.
func (w *World) Lives() int { return w.lives }

// GameOver reports whether the terminal state has been reached.
func (w *World) GameOver() bool { return w.over }

// Won reports whether the score reached the target.
func (w *World) Won() bool { return w.score >= w.opts.WinScore }

// Debug reports whether collision overlays are enabled.
func (w *World) Debug() bool { return w.debug }

// Options returns the parameters the world was built with.
func (w *World) Options() Options { return w.opts }

// Events returns what happened during the last Tick. The slice is reused.
func (w *World) Events() []Event { return w.events }

// Planet returns the planet.
func (w *World) Planet() *object.Planet { return w.planet }

// Player returns the turret.
func (w *World) Player() *object.Player { return w.player }

// Projectiles returns the projectile pool.
func (w *World) Projectiles() *object.Pool[*object.Projectile] { return w.projectiles }

// Enemies returns the enemy pool.
func (w *World) Enemies() *object.Pool[*object.Enemy] { return w.enemies }

// worldScorer applies entity-reported score and life changes to the world.
type worldScorer struct {
	w *World
}

func (s *worldScorer) LoseLife(cause object.Impact) {
	if s.w.lives > 0 {
		s.w.lives--
	}
	t := EventPlanetHit
	if cause == object.ImpactPlayer {
		t = EventPlayerHit
	}
	s.w.events = append(s.w.events, Event{Type: t})
}

func (s *worldScorer) AddScore(points int) {
	if points > 0 {
		s.w.score += points
	}
	s.w.events = append(s.w.events, Event{Type: EventEnemyDestroyed, Points: points})
}
