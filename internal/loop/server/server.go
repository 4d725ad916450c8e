// Package server keeps track of the players connected to one process: who is
// online, the best result each of them reached, and shutdown notification.
// Every session simulates its own world; only this registry is shared.
package server

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// GameServer is the interface clients use to talk to the session registry.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportResult(clientID int, score int, won bool)
	TopScores(n int) []TopScoreEntry
	Players() int
}

// ClientHandle represents a client's registration with the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to the client (shutdown)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	Won      bool
	At       time.Time
	clientID int // Tie-break: the earlier registration ranks first
}

// Server is the mutex-guarded registry shared by all sessions.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	best         map[string]TopScoreEntry // Best result per username
	logger       *log.Logger
	now          func() time.Time
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates an empty registry. A nil logger uses the default logger.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		best:         make(map[string]TopScoreEntry),
		logger:       logger.WithPrefix("server"),
		now:          time.Now,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, 4),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle
	s.logger.Debug("client registered", "id", handle.ID, "user", username, "players", len(s.clients))
	return handle
}

// UnregisterClient removes a client and closes its event channel.
// Unknown IDs are ignored.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.logger.Debug("client unregistered", "id", clientID, "players", len(s.clients))
}

// ReportResult records the outcome of a finished game. Only the best score
// per username is kept.
func (s *Server) ReportResult(clientID int, score int, won bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	s.logger.Info("game finished", "user", handle.Username, "score", score, "won", won)

	prev, seen := s.best[handle.Username]
	if seen && prev.Score >= score {
		return
	}
	s.best[handle.Username] = TopScoreEntry{
		Username: handle.Username,
		Score:    score,
		Won:      won,
		At:       s.now(),
		clientID: clientID,
	}
}

// TopScores returns up to n best results, highest score first.
func (s *Server) TopScores(n int) []TopScoreEntry {
	s.mu.RLock()
	entries := make([]TopScoreEntry, 0, len(s.best))
	for _, e := range s.best {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b TopScoreEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.clientID, b.clientID)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// up to the given timeout.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	n := len(s.clients)
	s.mu.RUnlock()
	s.logger.Info("shutdown broadcast", "players", n)

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Players() == 0 {
			return
		}
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "players", s.Players())
			return
		case <-ticker.C:
		}
	}
}
