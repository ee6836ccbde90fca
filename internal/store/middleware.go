package store

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/observability"
	"github.com/noah-isme/elitebuilders-client/internal/storage"
)

// DispatchFunc hands an action to the next stage of the pipeline.
type DispatchFunc func(Action) Action

// MiddlewareAPI is what a middleware sees of the store.
type MiddlewareAPI struct {
	Dispatch DispatchFunc
	GetState func() RootState
}

// Middleware wraps the dispatch pipeline.
type Middleware func(api MiddlewareAPI) func(next DispatchFunc) DispatchFunc

// applyMiddleware composes chain around the reducer. The first middleware is outermost.
func applyMiddleware(s *Store, chain []Middleware) DispatchFunc {
	api := MiddlewareAPI{
		Dispatch: func(action Action) Action { return s.Dispatch(action) },
		GetState: s.GetState,
	}

	dispatch := DispatchFunc(s.reduce)
	for i := len(chain) - 1; i >= 0; i-- {
		dispatch = chain[i](api)(dispatch)
	}
	return dispatch
}

// LoggingMiddleware writes one debug line per action and a warning per rejection.
func LoggingMiddleware(logger zerolog.Logger) Middleware {
	return func(MiddlewareAPI) func(DispatchFunc) DispatchFunc {
		return func(next DispatchFunc) DispatchFunc {
			return func(action Action) Action {
				event := logger.Debug()
				if strings.HasSuffix(action.Type, phaseRejected) {
					event = logger.Warn().Str("error", action.Error)
				}
				if action.Meta.RequestID != "" {
					event = event.Str("request_id", action.Meta.RequestID)
				}
				event.Str("action", action.Type).Msg("dispatch")
				return next(action)
			}
		}
	}
}

// MetricsMiddleware counts dispatched actions by type.
func MetricsMiddleware() Middleware {
	observability.RegisterMetrics()
	return func(MiddlewareAPI) func(DispatchFunc) DispatchFunc {
		return func(next DispatchFunc) DispatchFunc {
			return func(action Action) Action {
				observability.StoreActions().WithLabelValues(action.Type).Inc()
				return next(action)
			}
		}
	}
}

// PersistenceMiddleware writes the dark mode preference after it changes and
// removes the stored token on logout.
func PersistenceMiddleware(backing storage.Storage, logger zerolog.Logger) Middleware {
	log := logger.With().Str("component", "persistence").Logger()

	return func(api MiddlewareAPI) func(DispatchFunc) DispatchFunc {
		return func(next DispatchFunc) DispatchFunc {
			return func(action Action) Action {
				result := next(action)

				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				switch action.Type {
				case ActionUIToggleDarkMode, ActionUISetDarkMode:
					darkMode := api.GetState().UI.DarkMode
					if err := backing.Set(ctx, storage.KeyDarkMode, strconv.FormatBool(darkMode)); err != nil {
						log.Error().Err(err).Msg("failed to persist dark mode")
					}
				case ActionAuthLogout:
					if err := backing.Delete(ctx, storage.KeyToken); err != nil {
						log.Error().Err(err).Msg("failed to clear stored token")
					}
				}
				return result
			}
		}
	}
}
