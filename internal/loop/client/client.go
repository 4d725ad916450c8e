// Package client runs one player's game on a terminal: it reads keys and
// mouse reports, ticks the player's World and renders it with half-blocks.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/planetdefense/internal/config"
	"github.com/tomz197/planetdefense/internal/draw"
	"github.com/tomz197/planetdefense/internal/game"
	"github.com/tomz197/planetdefense/internal/input"
	"github.com/tomz197/planetdefense/internal/loop/server"
	"github.com/tomz197/planetdefense/internal/render"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	session      *render.Session
	snap         game.Snapshot
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	writer       io.Writer
	inputStream  *input.Stream
	in           input.Input // Input gathered this frame
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	cfg          *config.Config
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Config       *config.Config     // Defaults when nil
	Logger       *log.Logger        // Default logger when nil
	Sound        render.SoundPlayer // Optional
}

// NewClient creates a client registered with the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	worldOpts, err := game.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("user", opts.Username, "client", handle.ID)

	// Size the canvas from the current terminal; updateScreen keeps it in sync.
	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	layout := draw.FitSquare(termWidth, termHeight, cfg.Client.MaxTermWidth, cfg.Client.MaxTermHeight)
	canvas := draw.NewCanvas(layout.Width, layout.Height, cfg.World.Width, cfg.World.Height)
	canvas.SetOffset(layout.OffsetCol, layout.OffsetRow)
	chunkWriter := draw.NewChunkWriter(w)
	chunkWriter.SetOffset(layout.OffsetCol, layout.OffsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		session:      render.NewSession(game.New(worldOpts), opts.Sound, logger),
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		cfg:          cfg,
		logger:       logger,
	}, nil
}

// Run starts the client loop. Blocks until the player quits, the context is
// cancelled or the server shuts the client down.
func (c *Client) Run(ctx context.Context) error {
	draw.EnterScreen(c.writer, input.EnableMouse)
	defer draw.ExitScreen(c.writer, input.DisableMouse)
	defer c.server.UnregisterClient(c.handle.ID)

	frameTime := c.cfg.Client.FrameTime()
	lastTime := time.Now()

	for c.state.Running {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying, GameStateOver:
			c.updateGame()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("drawing frame: %w", err)
		}

		if elapsed := time.Since(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
	return nil
}

// processInput reads pending input and tracks player activity.
func (c *Client) processInput() {
	c.in = input.ReadInput(c.inputStream)

	if len(c.in.Pressed) > 0 || len(c.in.Pointer) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if idle := time.Since(c.lastInput); idle > c.cfg.Client.InactivityDisconnect {
		c.logger.Info("disconnecting inactive client", "idle", idle.Round(time.Second))
		c.state.Running = false
	} else if idle > c.cfg.Client.InactivityWarn {
		c.state.isInactive = true
	}

	if c.in.Closed {
		c.logger.Debug("input closed")
		c.state.Running = false
	}
	if c.in.Quit || c.in.Escape {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown {
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = c.cfg.Client.ShutdownDisplay
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes. On a layout change the terminal is
// cleared so nothing is left outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	layout := draw.FitSquare(termWidth, termHeight, c.cfg.Client.MaxTermWidth, c.cfg.Client.MaxTermHeight)

	if layout.Width != c.canvas.TerminalWidth() || layout.Height != c.canvas.TerminalHeight() ||
		layout.OffsetCol != c.canvas.OffsetCol() || layout.OffsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.Resize(layout.Width, layout.Height)
		c.canvas.SetOffset(layout.OffsetCol, layout.OffsetRow)
		c.chunkWriter.SetOffset(layout.OffsetCol, layout.OffsetRow)
	}
}

// pushPointer forwards mouse reports that land on the canvas to the world.
func (c *Client) pushPointer() {
	for _, ev := range c.in.Pointer {
		x, y, ok := c.canvas.TerminalToLogical(ev.Col, ev.Row)
		if !ok {
			continue
		}
		c.session.Pointer(x, y, ev.Press)
	}
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	start := c.in.Fire
	for _, ev := range c.in.Pointer {
		start = start || ev.Press
	}
	if start {
		c.startGame()
	}
}

// startGame begins a fresh game.
func (c *Client) startGame() {
	c.session.Start()
	c.state.GameState = GameStatePlaying
}

// updateGame forwards input to the session, advances it one frame and
// reports finished games to the server.
func (c *Client) updateGame() {
	c.pushPointer()
	if c.in.Fire {
		c.session.Fire()
	}
	if c.in.ToggleDebug {
		c.session.ToggleDebug()
	}
	if c.in.Restart {
		c.session.Restart()
	}

	world := c.session.World()
	for _, ev := range c.session.Step(c.state.delta) {
		if ev.Type == game.EventGameOver {
			c.server.ReportResult(c.handle.ID, world.Score(), ev.Won)
		}
	}

	switch {
	case world.GameOver():
		c.state.GameState = GameStateOver
	case c.state.GameState == GameStateOver:
		c.state.GameState = GameStatePlaying
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
