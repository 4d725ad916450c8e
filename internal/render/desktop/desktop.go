// Package desktop runs a local game in an ebiten window.
package desktop

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/planetdefense/internal/config"
	"github.com/tomz197/planetdefense/internal/game"
	"github.com/tomz197/planetdefense/internal/object"
	"github.com/tomz197/planetdefense/internal/render"
)

// Options configures a Game.
type Options struct {
	Logger *log.Logger        // Default logger when nil
	Sound  render.SoundPlayer // Optional
}

var (
	colorBackground = color.RGBA{0x05, 0x05, 0x12, 0xff}
	colorPlanet     = color.RGBA{0x2e, 0x8b, 0x57, 0xff}
	colorPlayer     = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	colorProjectile = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorAsteroid   = color.RGBA{0xb0, 0x9a, 0x80, 0xff}
	colorBasic      = color.RGBA{0xdc, 0x14, 0x3c, 0xff}
	colorExplosion  = color.RGBA{0xff, 0x8c, 0x00, 0xff}
	colorDebug      = color.RGBA{0x00, 0xff, 0xff, 0xff}
)

const strokeWidth = 2

// Game implements ebiten.Game around a Session.
type Game struct {
	session *render.Session
	snap    game.Snapshot
	width   int
	height  int
	cursorX int
	cursorY int
}

// New creates a window game for cfg.
func New(cfg *config.Config, opts Options) (*Game, error) {
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

	return &Game{
		session: render.NewSession(game.New(worldOpts), opts.Sound, logger.WithPrefix("desktop")),
		width:   int(cfg.World.Width),
		height:  int(cfg.World.Height),
		cursorX: -1,
		cursorY: -1,
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("Planet Defense")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update reads input and advances the world by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if x, y := ebiten.CursorPosition(); x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.session.Pointer(float64(x), float64(y), false)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.session.Pointer(float64(g.cursorX), float64(g.cursorY), true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.session.Fire()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.session.ToggleDebug()
	}

	g.session.Step(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	s := &g.snap
	g.session.World().Snapshot(s)

	if !g.session.Started() {
		ebitenutil.DebugPrintAt(screen, "PLANET DEFENSE", g.width/2-42, g.height/2-40)
		ebitenutil.DebugPrintAt(screen, "Mouse aims, click or SPACE shoots", g.width/2-99, g.height/2)
		ebitenutil.DebugPrintAt(screen, "D debug   R restart   Q quit", g.width/2-84, g.height/2+16)
		ebitenutil.DebugPrintAt(screen, "Click or press SPACE to start", g.width/2-87, g.height/2+48)
		return
	}

	fillCircle(screen, s.Planet, colorPlanet)

	p := s.Player
	strokeCircle(screen, p.Body, colorPlayer)
	vector.StrokeLine(screen,
		float32(p.X), float32(p.Y),
		float32(p.X+p.AimX*p.Radius*render.BarrelLength), float32(p.Y+p.AimY*p.Radius*render.BarrelLength),
		strokeWidth, colorPlayer, true)

	for _, b := range s.Projectiles {
		fillCircle(screen, b, colorProjectile)
	}
	for _, e := range s.Enemies {
		drawEnemy(screen, e)
	}

	if s.Debug {
		strokeCircle(screen, s.Planet, colorDebug)
		for _, e := range s.Enemies {
			strokeCircle(screen, e.Body, colorDebug)
		}
		x, y := float32(s.PointerX), float32(s.PointerY)
		vector.StrokeLine(screen, x-10, y, x+10, y, 1, colorDebug, false)
		vector.StrokeLine(screen, x, y-10, x, y+10, 1, colorDebug, false)
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("TPS %0.1f  FPS %0.1f  proj %d  enemies %d", ebiten.ActualTPS(), ebiten.ActualFPS(), len(s.Projectiles), len(s.Enemies)),
			8, g.height-20)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d / %d", s.Score, s.WinScore), 8, 8)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Lives: %d", s.Lives), g.width-72, 8)

	if s.Over {
		banner := s.Banner()
		ebitenutil.DebugPrintAt(screen, banner, g.width/2-len(banner)*3, g.height/2-8)
		ebitenutil.DebugPrintAt(screen, "Press R to play again, Q to quit", g.width/2-96, g.height/2+16)
	}
}

// Layout keeps the world size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func drawEnemy(screen *ebiten.Image, e game.EnemyView) {
	if e.Kind == object.EnemyBasic {
		strokeCircle(screen, e.Body, colorBasic)
		return
	}

	if e.Dying {
		for _, sp := range render.ExplosionSpokes(e.Frame, e.MaxFrame, e.Radius) {
			vector.StrokeLine(screen,
				float32(e.X+sp[0].X), float32(e.Y+sp[0].Y),
				float32(e.X+sp[1].X), float32(e.Y+sp[1].Y),
				strokeWidth, colorExplosion, true)
		}
		return
	}

	outline := render.AsteroidOutline(e.Row, e.Radius)
	for i := range outline {
		a, b := outline[i], outline[(i+1)%len(outline)]
		vector.StrokeLine(screen,
			float32(e.X+a.X), float32(e.Y+a.Y),
			float32(e.X+b.X), float32(e.Y+b.Y),
			strokeWidth, colorAsteroid, true)
	}
}

func fillCircle(screen *ebiten.Image, b game.Body, c color.Color) {
	vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), float32(b.Radius), c, true)
}

func strokeCircle(screen *ebiten.Image, b game.Body, c color.Color) {
	vector.StrokeCircle(screen, float32(b.X), float32(b.Y), float32(b.Radius), strokeWidth, c, true)
}
