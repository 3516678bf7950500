package store

import (
	"log/slog"
	"sync"

	"github.com/idilsaglam/tada/internal/reducer"
)

// Reducer folds one action into a state.
type Reducer[S any] func(state S, action reducer.Action) S

// Store holds the current state and runs every dispatched action through
// its reducer. It is the only stateful piece; reducers stay pure.
type Store[S any] struct {
	// notifyMu orders notifications; it is taken before mu.
	notifyMu sync.Mutex
	mu       sync.Mutex
	reduce   Reducer[S]
	state    S
	nextSub  int
	subs     map[int]func(S)
	log      *slog.Logger
}

// New creates a store. A nil logger falls back to slog.Default().
func New[S any](reduce Reducer[S], initial S, logger *slog.Logger) *Store[S] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store[S]{
		reduce: reduce,
		state:  initial,
		subs:   make(map[int]func(S)),
		log:    logger,
	}
}

func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies action and returns the resulting state. Subscribers see
// states in dispatch order, outside the state lock, so they may call State
// but must not Dispatch.
func (s *Store[S]) Dispatch(action reducer.Action) S {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = s.reduce(s.state, action)
	next := s.state
	subs := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.log.Debug("dispatch", "action", reducer.EnvelopeOf(action))
	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers fn for every future dispatch. The returned func
// removes it; calling it more than once is harmless.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
