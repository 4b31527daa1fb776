// Package directory is the membership collaborator: it resolves participant
// ids into display names for user-facing output. The engine never touches
// it — only the command/event glue does.
package directory

import (
	"sync"
)

// Directory resolves a participant id to a human display name.
type Directory interface {
	DisplayName(participantID string) string
}

// Static is an in-memory Directory fed by client handshakes. Unknown ids
// fall back to a generic label rather than failing.
type Static struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewStatic creates an empty directory.
func NewStatic() *Static {
	return &Static{names: make(map[string]string)}
}

// Register records or updates a participant's display name.
func (s *Static) Register(participantID, displayName string) {
	if displayName == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[participantID] = displayName
}

// DisplayName returns the registered name, or a fallback label.
func (s *Static) DisplayName(participantID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if name, ok := s.names[participantID]; ok {
		return name
	}
	return "Participant " + participantID
}
