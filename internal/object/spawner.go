package object

import "time"

// EnemySpawner activates pooled enemies on a fixed interval.
type EnemySpawner struct {
	interval time.Duration
	elapsed  time.Duration
}

// NewEnemySpawner creates a spawner that fires once per interval.
func NewEnemySpawner(interval time.Duration) *EnemySpawner {
	if interval <= 0 {
		interval = time.Second
	}
	return &EnemySpawner{interval: interval}
}

// Elapsed returns the time accumulated since the last spawn.
func (s *EnemySpawner) Elapsed() time.Duration {
	return s.elapsed
}

// Advance accumulates delta and reports whether a spawn is due.
// When it fires the timer restarts from zero; any overshoot is discarded.
func (s *EnemySpawner) Advance(delta time.Duration) bool {
	s.elapsed += delta
	if s.elapsed > s.interval {
		s.elapsed = 0
		return true
	}
	return false
}

// Reset clears the accumulated time.
func (s *EnemySpawner) Reset() {
	s.elapsed = 0
}

// Spawn starts the first free enemy in the pool. Returns the activated enemy,
// or nil when the pool is exhausted.
func (s *EnemySpawner) Spawn(pool *Pool[*Enemy], ctx SpawnContext) *Enemy {
	e, ok := pool.Acquire()
	if !ok {
		return nil
	}
	e.Start(ctx)
	return e
}
