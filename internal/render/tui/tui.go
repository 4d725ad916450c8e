// Package tui runs a local game on a tcell screen.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/planetdefense/internal/config"
	"github.com/tomz197/planetdefense/internal/draw"
	"github.com/tomz197/planetdefense/internal/game"
	"github.com/tomz197/planetdefense/internal/render"
)

// Options configures a Frontend.
type Options struct {
	Logger *log.Logger        // Default logger when nil
	Sound  render.SoundPlayer // Optional
}

var (
	styleCanvas = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleWin    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLose   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Frontend draws a World on a tcell screen and feeds it keys and mouse events.
type Frontend struct {
	screen  tcell.Screen
	session *render.Session
	snap    game.Snapshot
	canvas  *draw.Canvas
	layout  draw.Layout
	cfg     *config.Config
	pressed bool // Button 1 held at the last mouse event
}

// New creates a frontend on an initialized screen.
func New(screen tcell.Screen, cfg *config.Config, opts Options) (*Frontend, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	worldOpts, err := game.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	f := &Frontend{
		screen:  screen,
		session: render.NewSession(game.New(worldOpts), opts.Sound, logger.WithPrefix("tui")),
		cfg:     cfg,
	}
	f.relayout()
	return f, nil
}

// World returns the world being played.
func (f *Frontend) World() *game.World {
	return f.session.World()
}

// Run polls events and draws frames until the player quits or ctx is
// cancelled. The caller owns the screen and calls Fini.
func (f *Frontend) Run(ctx context.Context) error {
	f.screen.EnableMouse(tcell.MouseMotionEvents)
	defer f.screen.DisableMouse()

	ticker := time.NewTicker(f.cfg.Client.FrameTime())
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !f.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			f.session.Step(now.Sub(last))
			last = now
			f.draw()
		}
	}
}

// handleEvent translates one tcell event. It returns false when the player quits.
func (f *Frontend) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			f.session.Fire()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				f.session.Fire()
			case 'r', 'R':
				f.session.Restart()
			case 'd', 'D':
				f.session.ToggleDebug()
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		down := ev.Buttons()&tcell.Button1 != 0
		press := down && !f.pressed
		f.pressed = down

		x, y, ok := f.canvas.TerminalToLogical(col, row)
		if ok || (press && !f.session.Started()) {
			f.session.Pointer(x, y, press)
		}

	case *tcell.EventResize:
		f.screen.Sync()
		f.relayout()
	}
	return true
}

// relayout fits the canvas to the current screen size.
func (f *Frontend) relayout() {
	w, h := f.screen.Size()
	f.layout = draw.FitSquare(w, h, f.cfg.Client.MaxTermWidth, f.cfg.Client.MaxTermHeight)
	if f.canvas == nil {
		f.canvas = draw.NewCanvas(f.layout.Width, f.layout.Height, f.cfg.World.Width, f.cfg.World.Height)
	} else {
		f.canvas.Resize(f.layout.Width, f.layout.Height)
	}
	f.canvas.SetOffset(f.layout.OffsetCol, f.layout.OffsetRow)
}

// draw paints the whole frame. tcell diffs against the terminal itself.
func (f *Frontend) draw() {
	f.screen.Clear()
	f.canvas.Clear()

	f.session.World().Snapshot(&f.snap)
	if f.session.Started() {
		render.DrawWorld(f.canvas, &f.snap)
	}

	offCol, offRow := f.layout.OffsetCol, f.layout.OffsetRow
	f.canvas.EachCell(func(col, row int, ch rune) {
		f.screen.SetContent(offCol+col, offRow+row, ch, nil, styleCanvas)
	})

	f.drawText(&f.snap)
	f.screen.Show()
}

// drawText overlays the HUD or the title on the canvas.
func (f *Frontend) drawText(s *game.Snapshot) {
	left := f.layout.OffsetCol
	right := f.layout.OffsetCol + f.layout.Width
	top := f.layout.OffsetRow
	bottom := f.layout.OffsetRow + f.layout.Height - 1
	centerX := left + f.layout.Width/2
	centerY := top + f.layout.Height/2

	if !f.session.Started() {
		f.putCentered(centerX, centerY-2, "PLANET DEFENSE", styleWin)
		f.putCentered(centerX, centerY, "Mouse aims, click or SPACE shoots", styleText)
		f.putCentered(centerX, centerY+1, "D debug   R restart   Q quit", styleText)
		f.putCentered(centerX, centerY+3, "Press SPACE or click to start", styleText)
		return
	}

	f.put(left+1, top, fmt.Sprintf("Score: %d / %d", s.Score, s.WinScore), styleText)
	lives := fmt.Sprintf("Lives: %d", s.Lives)
	f.put(right-len(lives)-1, top, lives, styleText)

	if s.Debug {
		f.put(left+1, bottom, fmt.Sprintf("proj %d  enemies %d", len(s.Projectiles), len(s.Enemies)), styleText)
	}

	if s.Over {
		style := styleLose
		if s.Won {
			style = styleWin
		}
		f.putCentered(centerX, centerY-1, s.Banner(), style)
		f.putCentered(centerX, centerY+1, "Press R to play again, Q to quit", styleText)
	}
}

func (f *Frontend) put(col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		f.screen.SetContent(col+i, row, r, nil, style)
	}
}

func (f *Frontend) putCentered(centerX, row int, s string, style tcell.Style) {
	f.put(centerX-len(s)/2, row, s, style)
}
