// Package store holds the client application state: five slices composed into
// one container, changed only by dispatching actions through a serialized
// reducer.
package store

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/service"
	"github.com/noah-isme/elitebuilders-client/internal/storage"
)

// Listener observes every state change. Listeners run while the dispatch lock
// is held and must not dispatch synchronously.
type Listener func(state RootState, action Action)

// Options configures a Store.
type Options struct {
	Services      service.Collaborators
	Storage       storage.Storage
	Logger        zerolog.Logger
	Validate      *validator.Validate
	Middleware    []Middleware
	ViewportWidth int
	// Preloaded replaces the state read from storage when set.
	Preloaded *RootState
}

// Store is the process-wide state container.
type Store struct {
	dispatchMu sync.Mutex
	stateMu    sync.RWMutex
	state      RootState

	listenersMu sync.Mutex
	listeners   map[int]Listener
	listenerSeq int
	order       []int

	dispatch DispatchFunc
	services service.Collaborators
	storage  storage.Storage
	validate *validator.Validate
	logger   zerolog.Logger
	inflight sync.WaitGroup
}

// New builds a Store, reading the persisted session and preferences from
// storage unless a preloaded state is supplied.
func New(ctx context.Context, opts Options) *Store {
	logger := opts.Logger.With().Str("component", "store").Logger()

	validate := opts.Validate
	if validate == nil {
		validate = newValidator()
	}
	backing := opts.Storage
	if backing == nil {
		backing = storage.NewMemoryStorage()
	}

	s := &Store{
		listeners: make(map[int]Listener),
		services:  opts.Services,
		storage:   backing,
		validate:  validate,
		logger:    logger,
	}

	if opts.Preloaded != nil {
		s.state = *opts.Preloaded
	} else {
		s.state = InitialState(ctx, backing, opts.ViewportWidth, logger)
	}

	chain := []Middleware{LoggingMiddleware(logger), MetricsMiddleware(), PersistenceMiddleware(backing, logger)}
	chain = append(chain, opts.Middleware...)
	s.dispatch = applyMiddleware(s, chain)

	return s
}

// Dispatch sends action through the middleware chain and the reducer.
func (s *Store) Dispatch(action Action) Action {
	return s.dispatch(action)
}

// GetState returns a snapshot of the current state.
func (s *Store) GetState() RootState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Subscribe registers a listener and returns a function removing it.
func (s *Store) Subscribe(listener Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	s.listenerSeq++
	id := s.listenerSeq
	s.listeners[id] = listener
	s.order = append(s.order, id)

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, candidate := range s.order {
			if candidate == id {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Wait blocks until every async operation started on the store has settled.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// Services returns the collaborators the store's operations call.
func (s *Store) Services() service.Collaborators {
	return s.services
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return validate
}

// reduce applies the reducer and notifies listeners in dispatch order.
func (s *Store) reduce(action Action) Action {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.stateMu.Lock()
	next := rootReducer(s.state, action)
	s.state = next
	s.stateMu.Unlock()

	for _, listener := range s.snapshotListeners() {
		listener(next, action)
	}
	return action
}

func (s *Store) snapshotListeners() []Listener {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	out := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.listeners[id])
	}
	return out
}
