package client

import "time"

// GameState represents the current phase of a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateOver                      // Win or loss banner, waiting for restart
	GameStateShutdown                  // Server is shutting down
)

// String returns the state name used in logs.
func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateOver:
		return "over"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState holds the per-connection presentation state. The game itself
// lives in the client's World.
type ClientState struct {
	GameState     GameState
	prevGameState GameState
	Running       bool
	delta         time.Duration // Frame delta time
	shutdownTimer time.Duration // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Inactivity warning is showing
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		prevGameState: GameStateStart,
		Running:       true,
	}
}
