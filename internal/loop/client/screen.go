package client

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/planetdefense/internal/draw"
	"github.com/tomz197/planetdefense/internal/game"
	"github.com/tomz197/planetdefense/internal/render"
)

// topScoreRows is how many leaderboard entries the game over screen lists.
const topScoreRows = 5

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On state or inactivity transitions, clear the terminal so text from the
	// previous screen does not linger.
	if c.state.GameState != c.state.prevGameState || c.state.isInactive != c.state.wasInactive {
		draw.ClearScreen(c.chunkWriter)
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	c.session.World().Snapshot(&c.snap)
	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOver {
		render.DrawWorld(c.canvas, &c.snap)
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)
	c.drawUI(&c.snap)

	return c.chunkWriter.Flush()
}

// writeText writes s at canvas cell (col, row) and marks the cells so the
// canvas repaints them once the text is gone.
func (c *Client) writeText(col, row int, s string) {
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len(s))
}

// writeCentered writes s centered on the canvas column centerX.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.writeText(centerX-len(s)/2, row, s)
}

// writeColored writes s centered on centerX in an ANSI color.
func (c *Client) writeColored(centerX, row int, s, color string) {
	col := centerX - len(s)/2
	c.chunkWriter.WriteAt(col, row, color+s+draw.ColorReset)
	c.canvas.MarkTextDirty(col, row, len(s))
}

// drawUI draws the text overlay for the current state.
func (c *Client) drawUI(s *game.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth/2 + 1
	centerY := termHeight/2 + 1

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, s)
	case GameStateOver:
		c.drawPlayingHUD(termWidth, termHeight, s)
		c.drawOverScreen(centerX, centerY, s)
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	titleArt := []string{
		` ___ _      _   _  _ ___ _____ `,
		`| _ \ |    /_\ | \| | __|_   _|`,
		`|  _/ |__ / _ \| .' | _|  | |  `,
		`|_| |____/_/ \_\_|\_|___| |_|  `,
		`  ___  ___ ___ ___ _  _  ___ ___ `,
		` |   \| __| __| __| \| |/ __| __|`,
		` | |) | _|| _|| _|| .' |\__ \ _| `,
		` |___/|___|_| |___|_|\_||___/___|`,
	}

	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	titleStartY := centerY - 9
	for i, line := range titleArt {
		c.writeText(centerX-titleWidth/2, titleStartY+i, line)
	}

	controlsY := titleStartY + len(titleArt) + 2
	c.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"Mouse  . . . . . .  Aim",
		"Click / SPACE  .  Shoot",
		"D  . . . . . . .  Debug",
		"R  . . . . . .  Restart",
		"Q / ESC . . . . .  Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	opts := c.session.World().Options()
	goal := fmt.Sprintf("Score %d before the planet takes %d hits", opts.WinScore, opts.Lives)
	c.writeCentered(centerX, controlsY+len(controlLines)+2, goal)

	prompt := ">>  Press SPACE or click to Start  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = fmt.Sprintf("%*s", len(prompt), "")
	}
	c.writeCentered(centerX, controlsY+len(controlLines)+4, prompt)
}

// drawPlayingHUD draws score, lives and player count. Fields are padded to a
// fixed width so shrinking values leave nothing behind.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, s *game.Snapshot) {
	c.writeText(2, 1, fmt.Sprintf("Score: %-4d / %-4d", s.Score, s.WinScore))

	lives := fmt.Sprintf("Lives: %-3d", s.Lives)
	c.writeText(termWidth-len(lives)-1, 1, lives)

	players := fmt.Sprintf("Players: %-4d", c.server.Players())
	c.writeText(termWidth-len(players)-1, termHeight, players)

	if s.Debug {
		dbg := fmt.Sprintf("proj %2d  enemies %2d  aim %6.1f", len(s.Projectiles), len(s.Enemies), s.Player.Angle*180/math.Pi)
		c.writeText(2, termHeight, dbg)

		col, row := c.canvas.LogicalToTerminal(s.PointerX, s.PointerY)
		c.writeText(col, row, "+")
	}
}

// drawOverScreen draws the win/lose banner and the leaderboard.
func (c *Client) drawOverScreen(centerX, centerY int, s *game.Snapshot) {
	color := draw.ColorBrightRed
	if s.Won {
		color = draw.ColorBrightGreen
	}
	c.writeColored(centerX, centerY-4, s.Banner(), color)

	c.writeCentered(centerX, centerY-2, fmt.Sprintf("Score: %d", s.Score))

	top := c.server.TopScores(topScoreRows)
	if len(top) > 0 {
		c.writeCentered(centerX, centerY, "Best scores")
		for i, e := range top {
			line := fmt.Sprintf("%d. %-16.16s %4d", i+1, e.Username, e.Score)
			c.writeCentered(centerX, centerY+1+i, line)
		}
	}

	prompt := "Press R to play again, Q to quit"
	c.writeCentered(centerX, centerY+topScoreRows+3, prompt)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeColored(centerX, centerY-2, "INACTIVITY WARNING", draw.ColorBrightCyan)

	left := c.cfg.Client.InactivityDisconnect - time.Since(c.lastInput)
	msg := fmt.Sprintf("You will be disconnected in %d seconds.", int(left.Seconds()))
	c.writeCentered(centerX, centerY, msg)

	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeColored(centerX, centerY-3, "SERVER SHUTTING DOWN", draw.ColorBrightYellow)
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer.Seconds()) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
