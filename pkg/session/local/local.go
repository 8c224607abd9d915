// Package local provides an in-memory implementation of the session.Store
// interface.
//
// State lives in process memory keyed by conversation ID. This is the
// single-instance deployment story; a shared backend (e.g., Redis) would be
// needed to run multiple replicas behind a load balancer.
package local

import (
	"context"
	"sync"

	"github.com/rosemira/rosebot/pkg/session"
)

// DefaultWindow is the number of turns retained per conversation when the
// configured window is zero.
const DefaultWindow = 20

// Config holds configuration for the local session store.
type Config struct {
	// Window is the maximum number of turns retained per conversation.
	// Defaults to DefaultWindow when zero.
	Window int
}

type conversationState struct {
	turns     []session.Turn
	suggested []string
	seen      map[string]struct{}
}

// Store implements session.Store using in-process data structures.
type Store struct {
	window int

	mu            sync.RWMutex
	conversations map[string]*conversationState
}

// NewStore creates a local in-memory session store.
func NewStore(config Config) *Store {
	window := config.Window
	if window <= 0 {
		window = DefaultWindow
	}

	return &Store{
		window:        window,
		conversations: make(map[string]*conversationState),
	}
}

func (s *Store) state(conversationID string) *conversationState {
	state, ok := s.conversations[conversationID]
	if !ok {
		state = &conversationState{seen: make(map[string]struct{})}
		s.conversations[conversationID] = state
	}
	return state
}

// AppendTurn records a turn, trimming the oldest once the window is full.
func (s *Store) AppendTurn(_ context.Context, conversationID string, turn session.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state(conversationID)
	state.turns = append(state.turns, turn)
	if len(state.turns) > s.window {
		state.turns = state.turns[len(state.turns)-s.window:]
	}

	return nil
}

// History returns the retained transcript, oldest first.
func (s *Store) History(_ context.Context, conversationID string) ([]session.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.conversations[conversationID]
	if !ok {
		return nil, nil
	}

	// Return a copy to avoid callers mutating internal state.
	result := make([]session.Turn, len(state.turns))
	copy(result, state.turns)

	return result, nil
}

// AddSuggested marks products as suggested, ignoring duplicates.
func (s *Store) AddSuggested(_ context.Context, conversationID string, products []string) error {
	if len(products) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state(conversationID)
	for _, p := range products {
		if _, ok := state.seen[p]; ok {
			continue
		}
		state.seen[p] = struct{}{}
		state.suggested = append(state.suggested, p)
	}

	return nil
}

// Suggested returns the products already suggested, in suggestion order.
func (s *Store) Suggested(_ context.Context, conversationID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.conversations[conversationID]
	if !ok {
		return nil, nil
	}

	result := make([]string, len(state.suggested))
	copy(result, state.suggested)

	return result, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

var _ session.Store = (*Store)(nil)
