package game

import (
	"testing"
	"time"

	"github.com/tomz197/planetdefense/internal/config"
	"github.com/tomz197/planetdefense/internal/object"
)

const frame = 16 * time.Millisecond

// quietOptions returns defaults with a fixed seed and a spawn timer that
// never fires during a test.
func quietOptions() Options {
	opts := DefaultOptions()
	opts.Seed = 1
	opts.SpawnInterval = time.Hour
	opts.InitialEnemies = 0
	return opts
}

// placeEnemy activates the next free enemy and moves it to (x, y) with the
// given per-tick velocity.
func placeEnemy(t *testing.T, w *World, x, y, vx, vy float64) *object.Enemy {
	t.Helper()
	e, ok := w.Enemies().Acquire()
	if !ok {
		t.Fatal("enemy pool exhausted")
	}
	if !w.SpawnEnemy() {
		t.Fatal("SpawnEnemy failed")
	}
	e.Pos = object.Vec{X: x, Y: y}
	e.Vel = object.Vec{X: vx, Y: vy}
	return e
}

func hasEvent(events []Event, typ EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

func TestNewWorld(t *testing.T) {
	w := New(quietOptions())

	if w.Score() != 0 || w.Lives() != 3 || w.GameOver() {
		t.Fatalf("score=%d lives=%d over=%v", w.Score(), w.Lives(), w.GameOver())
	}
	if got := w.Projectiles().Len(); got != 30 {
		t.Errorf("projectile pool = %d, want 30", got)
	}
	if got := w.Enemies().Len(); got != 20 {
		t.Errorf("enemy pool = %d, want 20", got)
	}
	if got := w.Enemies().Active(); got != 0 {
		t.Errorf("active enemies = %d, want 0", got)
	}
	if got := w.Planet().Pos; got != (object.Vec{X: 400, Y: 400}) {
		t.Errorf("planet at %v", got)
	}
	if got := w.Player().Pos; got != (object.Vec{X: 400, Y: 300}) {
		t.Errorf("player at %v, want (400,300)", got)
	}
}

func TestInitialEnemies(t *testing.T) {
	opts := quietOptions()
	opts.InitialEnemies = 3
	w := New(opts)
	if got := w.Enemies().Active(); got != 3 {
		t.Fatalf("active enemies = %d, want 3", got)
	}

	w.Restart()
	if got := w.Enemies().Active(); got != 3 {
		t.Fatalf("active enemies after restart = %d, want 3", got)
	}
}

func TestSpawnTimer(t *testing.T) {
	opts := quietOptions()
	opts.SpawnInterval = time.Second
	w := New(opts)

	w.Tick(400 * time.Millisecond)
	w.Tick(400 * time.Millisecond)
	if got := w.Enemies().Active(); got != 0 {
		t.Fatalf("spawned early: %d active", got)
	}

	w.Tick(400 * time.Millisecond)
	if got := w.Enemies().Active(); got != 1 {
		t.Fatalf("active enemies = %d, want 1", got)
	}
	if !hasEvent(w.Events(), EventEnemySpawned) {
		t.Error("missing spawn event")
	}

	e := w.Enemies().Slots()[0]
	b := w.Options().Bounds
	if e.Pos.X > 0 && e.Pos.X < b.Width && e.Pos.Y > 0 && e.Pos.Y < b.Height {
		t.Errorf("enemy spawned inside the canvas at %v", e.Pos)
	}
}

func TestPlanetImpactsEndGame(t *testing.T) {
	w := New(quietOptions())

	for i := 0; i < 3; i++ {
		if w.GameOver() {
			t.Fatalf("game over after %d impacts", i)
		}
		placeEnemy(t, w, 400, 520, 0, -1)
		w.Tick(frame)
		if got, want := w.Lives(), 2-i; got != want {
			t.Fatalf("lives = %d, want %d", got, want)
		}
		if !hasEvent(w.Events(), EventPlanetHit) {
			t.Fatalf("impact %d: missing planet hit event", i)
		}
	}

	if !w.GameOver() {
		t.Fatal("expected game over")
	}
	if w.Won() {
		t.Error("expected loss")
	}
	if !hasEvent(w.Events(), EventGameOver) {
		t.Error("missing game over event")
	}
}

func TestLivesNeverNegative(t *testing.T) {
	opts := quietOptions()
	opts.Lives = 1
	w := New(opts)

	placeEnemy(t, w, 400, 520, 0, -1)
	placeEnemy(t, w, 520, 400, -1, 0)
	w.Tick(frame)

	if w.Lives() != 0 {
		t.Fatalf("lives = %d, want 0", w.Lives())
	}
	if !w.GameOver() {
		t.Fatal("expected game over")
	}
}

func TestPlayerImpact(t *testing.T) {
	w := New(quietOptions())

	// Turret sits at (400,300); this enemy reaches it before the planet.
	placeEnemy(t, w, 400, 229, 0, 1)
	w.Tick(frame)

	if w.Lives() != 2 {
		t.Fatalf("lives = %d, want 2", w.Lives())
	}
	if !hasEvent(w.Events(), EventPlayerHit) {
		t.Error("missing player hit event")
	}
}

func TestShootAndWin(t *testing.T) {
	opts := quietOptions()
	opts.WinScore = 1
	w := New(opts)

	e := placeEnemy(t, w, 585, 400, 0, 0)
	w.Push(PointerDown(700, 400))
	w.Tick(frame)

	if !hasEvent(w.Events(), EventShot) {
		t.Fatal("missing shot event")
	}
	if got := w.Player().Pos; got != (object.Vec{X: 500, Y: 400}) {
		t.Fatalf("player at %v, want (500,400)", got)
	}
	if !e.Dying() || e.Frame != 1 {
		t.Fatalf("enemy not hit: lives=%d frame=%d", e.Lives, e.Frame)
	}
	if got := w.Projectiles().Active(); got != 0 {
		t.Errorf("projectile survived the hit: %d active", got)
	}

	for i := 0; i < e.MaxFrame-1; i++ {
		w.Tick(frame)
	}
	if w.Score() != 0 || e.IsFree() {
		t.Fatalf("scored too early: score=%d free=%v", w.Score(), e.IsFree())
	}

	w.Tick(frame)
	if w.Score() != 1 {
		t.Fatalf("score = %d, want 1", w.Score())
	}
	if !e.IsFree() {
		t.Error("enemy should be freed after its animation")
	}
	if !w.GameOver() || !w.Won() {
		t.Fatalf("over=%v won=%v", w.GameOver(), w.Won())
	}

	var snap Snapshot
	w.Snapshot(&snap)
	if got := snap.Banner(); got != "YOU WIN!" {
		t.Errorf("banner = %q", got)
	}
}

func TestFrozenAfterGameOver(t *testing.T) {
	opts := quietOptions()
	opts.Lives = 1
	opts.SpawnInterval = time.Second
	w := New(opts)

	far := placeEnemy(t, w, 100, 100, 1, 1)
	w.Push(PointerDown(700, 400))
	placeEnemy(t, w, 400, 520, 0, -1)
	w.Tick(frame)
	if !w.GameOver() {
		t.Fatal("expected game over")
	}

	var before Snapshot
	w.Snapshot(&before)
	farPos := far.Pos

	for i := 0; i < 10; i++ {
		w.Tick(2 * time.Second)
	}
	if w.Shoot() {
		t.Error("Shoot succeeded after game over")
	}
	if w.SpawnEnemy() {
		t.Error("SpawnEnemy succeeded after game over")
	}
	w.Push(PointerDown(100, 400))
	w.Tick(frame)

	var after Snapshot
	w.Snapshot(&after)
	if after.Score != before.Score || after.Lives != before.Lives {
		t.Errorf("score/lives changed: %d/%d -> %d/%d", before.Score, before.Lives, after.Score, after.Lives)
	}
	if len(after.Projectiles) != len(before.Projectiles) || len(after.Enemies) != len(before.Enemies) {
		t.Fatalf("entity counts changed: %d/%d -> %d/%d",
			len(before.Projectiles), len(before.Enemies), len(after.Projectiles), len(after.Enemies))
	}
	for i := range before.Projectiles {
		if after.Projectiles[i] != before.Projectiles[i] {
			t.Errorf("projectile %d moved: %v -> %v", i, before.Projectiles[i], after.Projectiles[i])
		}
	}
	if far.Pos != farPos {
		t.Errorf("enemy moved after game over: %v -> %v", farPos, far.Pos)
	}
	if after.Player != before.Player {
		t.Errorf("turret moved after game over")
	}
	if got := after.Banner(); got != "GAME OVER" {
		t.Errorf("banner = %q", got)
	}
}

func TestRestart(t *testing.T) {
	opts := quietOptions()
	opts.Lives = 1
	w := New(opts)

	placeEnemy(t, w, 400, 520, 0, -1)
	w.Tick(frame)
	if !w.GameOver() {
		t.Fatal("expected game over")
	}

	w.Push(Input{Kind: InputRestart})
	w.Tick(frame)
	if w.GameOver() || w.Score() != 0 || w.Lives() != 1 {
		t.Fatalf("after restart: over=%v score=%d lives=%d", w.GameOver(), w.Score(), w.Lives())
	}
	if w.Enemies().Active() != 0 || w.Projectiles().Active() != 0 {
		t.Error("pools not cleared on restart")
	}
}

func TestPointerMoveAims(t *testing.T) {
	w := New(quietOptions())

	w.Push(PointerMove(400, 700))
	w.Tick(frame)
	if got := w.Player().Pos; got != (object.Vec{X: 400, Y: 500}) {
		t.Fatalf("player at %v, want (400,500)", got)
	}
	if w.Projectiles().Active() != 0 {
		t.Error("pointer move must not shoot")
	}

	// Degenerate pointer keeps the last aim.
	w.Push(PointerMove(400, 400))
	w.Tick(frame)
	if got := w.Player().Pos; got != (object.Vec{X: 400, Y: 500}) {
		t.Fatalf("player at %v after degenerate pointer", got)
	}
}

func TestInputOrder(t *testing.T) {
	w := New(quietOptions())

	w.Push(PointerDown(700, 400))
	w.Push(PointerDown(100, 400))
	w.Push(Input{Kind: InputToggleDebug})
	w.Tick(frame)

	if !w.Debug() {
		t.Error("debug not toggled")
	}
	slots := w.Projectiles().Slots()
	if slots[0].IsFree() || slots[1].IsFree() {
		t.Fatal("expected two projectiles")
	}
	if slots[0].Vel.X <= 0 || slots[1].Vel.X >= 0 {
		t.Errorf("shots fired out of order: %v, %v", slots[0].Vel, slots[1].Vel)
	}

	w.Push(Input{Kind: InputToggleDebug})
	w.Tick(frame)
	if w.Debug() {
		t.Error("debug not toggled back")
	}
}

func TestProjectilePoolExhaustion(t *testing.T) {
	w := New(quietOptions())

	for i := 0; i < w.Projectiles().Len(); i++ {
		if !w.Shoot() {
			t.Fatalf("shot %d dropped", i)
		}
	}
	if w.Shoot() {
		t.Error("shot with exhausted pool")
	}
	if w.Score() != 0 || w.Lives() != 3 {
		t.Error("exhaustion changed score or lives")
	}
}

func TestBasicEnemiesAreHarmless(t *testing.T) {
	opts := quietOptions()
	opts.EnemyKind = object.EnemyBasic
	w := New(opts)

	e := placeEnemy(t, w, 400, 520, 0, -1)
	for i := 0; i < 1000 && !e.IsFree(); i++ {
		w.Tick(frame)
	}
	if !e.IsFree() {
		t.Fatal("basic enemy never left the canvas")
	}
	if w.Lives() != 3 || w.Score() != 0 {
		t.Errorf("lives=%d score=%d", w.Lives(), w.Score())
	}
}

func TestSnapshotListsActiveOnly(t *testing.T) {
	w := New(quietOptions())
	placeEnemy(t, w, 100, 100, 0, 0)
	w.Shoot()
	w.Push(PointerMove(10, 20))
	w.Tick(frame)

	var snap Snapshot
	w.Snapshot(&snap)
	if len(snap.Enemies) != 1 || len(snap.Projectiles) != 1 {
		t.Fatalf("enemies=%d projectiles=%d", len(snap.Enemies), len(snap.Projectiles))
	}
	if snap.PointerX != 10 || snap.PointerY != 20 {
		t.Errorf("pointer = (%v,%v)", snap.PointerX, snap.PointerY)
	}
	if snap.Banner() != "" {
		t.Errorf("banner while playing: %q", snap.Banner())
	}
	if snap.Width != 800 || snap.Planet.Radius != 80 {
		t.Errorf("bad geometry: %+v", snap)
	}

	w.Restart()
	w.Snapshot(&snap)
	if len(snap.Enemies) != 0 || len(snap.Projectiles) != 0 {
		t.Errorf("stale entities after restart: %d/%d", len(snap.Enemies), len(snap.Projectiles))
	}
}

func TestSameSeedSameSpawns(t *testing.T) {
	a, b := New(quietOptions()), New(quietOptions())
	for i := 0; i < 5; i++ {
		a.SpawnEnemy()
		b.SpawnEnemy()
	}
	for i, e := range a.Enemies().Slots() {
		if e.Pos != b.Enemies().Slots()[i].Pos {
			t.Fatalf("slot %d diverged: %v vs %v", i, e.Pos, b.Enemies().Slots()[i].Pos)
		}
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if opts.EnemyKind != object.EnemyAsteroid || opts.ProjectilePool != 30 || opts.Lives != 3 || opts.InitialEnemies != 5 {
		t.Errorf("unexpected options: %+v", opts)
	}

	cfg.Enemy.Kind = "ufo"
	if _, err := OptionsFromConfig(cfg); err == nil {
		t.Error("expected error for unknown kind")
	}
}
