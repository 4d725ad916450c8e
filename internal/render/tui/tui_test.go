package tui

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/planetdefense/internal/config"
	"github.com/tomz197/planetdefense/internal/draw"
	"github.com/tomz197/planetdefense/internal/game"
)

type recordingSound struct {
	events []game.Event
}

func (r *recordingSound) Play(events []game.Event) {
	r.events = append(r.events, events...)
}

func newTestFrontend(t *testing.T) (*Frontend, tcell.SimulationScreen, *recordingSound) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 40)

	cfg := config.Default()
	cfg.Game.Seed = 3
	cfg.Enemy.SpawnInterval = time.Hour
	cfg.Enemy.Initial = 0

	snd := &recordingSound{}
	f, err := New(screen, cfg, Options{Logger: log.New(io.Discard), Sound: snd})
	if err != nil {
		t.Fatal(err)
	}
	return f, screen, snd
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestQuitKeys(t *testing.T) {
	f, _, _ := newTestFrontend(t)

	tests := []struct {
		name string
		ev   tcell.Event
		quit bool
	}{
		{"q", key('q'), true},
		{"Q", key('Q'), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"debug", key('d'), false},
		{"other", key('x'), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := !f.handleEvent(tt.ev); got != tt.quit {
				t.Errorf("quit = %v, want %v", got, tt.quit)
			}
		})
	}
}

func TestStartAndShoot(t *testing.T) {
	f, _, snd := newTestFrontend(t)

	f.session.Step(time.Millisecond)
	if f.session.Started() {
		t.Fatal("started without input")
	}

	f.handleEvent(key(' '))
	if !f.session.Started() {
		t.Fatal("space did not start the game")
	}

	// Press on the right half of the canvas, then release.
	f.handleEvent(tcell.NewEventMouse(70, 20, tcell.Button1, tcell.ModNone))
	f.handleEvent(tcell.NewEventMouse(70, 20, tcell.ButtonNone, tcell.ModNone))
	f.session.Step(time.Millisecond)

	if got := f.World().Projectiles().Active(); got != 1 {
		t.Fatalf("active projectiles = %d, want 1", got)
	}
	if p := f.World().Player(); p.Pos.X <= 400 {
		t.Errorf("turret at %v did not swing toward the click", p.Pos)
	}

	var shot bool
	for _, ev := range snd.events {
		shot = shot || ev.Type == game.EventShot
	}
	if !shot {
		t.Error("sound did not receive the shot")
	}
}

func TestHeldButtonFiresOnce(t *testing.T) {
	f, _, _ := newTestFrontend(t)
	f.session.Start()

	for i := 0; i < 3; i++ {
		f.handleEvent(tcell.NewEventMouse(70, 20, tcell.Button1, tcell.ModNone))
	}
	f.session.Step(time.Millisecond)

	if got := f.World().Projectiles().Active(); got != 1 {
		t.Errorf("active projectiles = %d, want 1", got)
	}
}

func TestClickOutsideCanvas(t *testing.T) {
	f, screen, _ := newTestFrontend(t)
	screen.SetSize(120, 40)
	f.handleEvent(tcell.NewEventResize(120, 40))
	f.session.Start()

	if f.layout.OffsetCol != 20 {
		t.Fatalf("offset = %d, want 20", f.layout.OffsetCol)
	}

	f.handleEvent(tcell.NewEventMouse(5, 20, tcell.Button1, tcell.ModNone))
	f.session.Step(time.Millisecond)
	if got := f.World().Projectiles().Active(); got != 0 {
		t.Errorf("click outside the canvas fired %d projectiles", got)
	}
}

func TestDrawShowsWorld(t *testing.T) {
	f, screen, _ := newTestFrontend(t)
	f.session.Start()
	f.draw()

	// The planet fills the canvas center.
	r, _, _, _ := screen.GetContent(40, 20)
	if r != draw.BlockFull {
		t.Errorf("center cell = %q, want %q", r, draw.BlockFull)
	}

	// HUD on the top row.
	var hud []rune
	for x := 1; x < 6; x++ {
		r, _, _, _ := screen.GetContent(x, 0)
		hud = append(hud, r)
	}
	if string(hud) != "Score" {
		t.Errorf("hud = %q", string(hud))
	}
}

func TestRunQuits(t *testing.T) {
	f, screen, _ := newTestFrontend(t)
	if err := screen.PostEvent(key('q')); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- f.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("frontend did not quit")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	f, _, _ := newTestFrontend(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := f.Run(ctx); err != nil {
		t.Fatal(err)
	}
}
