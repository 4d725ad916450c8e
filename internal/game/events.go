package game

// InputKind identifies a queued input event.
type InputKind int

const (
	InputPointerMove InputKind = iota // Pointer moved; retarget the turret
	InputPointerDown                  // Pointer pressed; retarget then fire once
	InputFire                         // Fire once along the current aim
	InputToggleDebug                  // Flip the collision overlay flag
	InputRestart                      // Start a fresh game
)

// Input is an event delivered by a frontend. X and Y are world coordinates.
type Input struct {
	Kind InputKind
	X, Y float64
}

// PointerMove builds a pointer-move input.
func PointerMove(x, y float64) Input {
	return Input{Kind: InputPointerMove, X: x, Y: y}
}

// PointerDown builds a pointer-down input.
func PointerDown(x, y float64) Input {
	return Input{Kind: InputPointerDown, X: x, Y: y}
}

// EventType identifies something that happened during a tick.
type EventType int

const (
	EventShot EventType = iota
	EventEnemySpawned
	EventEnemyDestroyed
	EventPlanetHit
	EventPlayerHit
	EventGameOver
)

// String returns the event name used in logs.
func (t EventType) String() string {
	switch t {
	case EventShot:
		return "shot"
	case EventEnemySpawned:
		return "enemy_spawned"
	case EventEnemyDestroyed:
		return "enemy_destroyed"
	case EventPlanetHit:
		return "planet_hit"
	case EventPlayerHit:
		return "player_hit"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is emitted by the world for frontends (sound, logs).
type Event struct {
	Type   EventType
	Points int  // Score awarded, for EventEnemyDestroyed
	Won    bool // Outcome, for EventGameOver
}
