package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/elitebuilders-client/internal/observability"
	"github.com/noah-isme/elitebuilders-client/internal/service"
	"github.com/noah-isme/elitebuilders-client/internal/storage"
)

const tracerName = "github.com/noah-isme/elitebuilders-client/internal/store"

// ErrNoToken rejects operations that need a session before any collaborator call.
var ErrNoToken = &Rejection{Message: "No token available"}

// Rejection is a failure carrying the message stored on the slice.
type Rejection struct {
	Message string
	Err     error
}

func (r *Rejection) Error() string {
	if r.Err != nil {
		return r.Message + ": " + r.Err.Error()
	}
	return r.Message
}

func (r *Rejection) Unwrap() error { return r.Err }

// Reject builds a Rejection with an explicit message.
func Reject(message string) error {
	return &Rejection{Message: message}
}

// ThunkAPI is handed to the body of an async operation.
type ThunkAPI struct {
	Dispatch  DispatchFunc
	GetState  func() RootState
	Services  service.Collaborators
	Storage   storage.Storage
	Validate  *validator.Validate
	Logger    zerolog.Logger
	RequestID string
}

// AsyncThunk describes an async operation. Starting it dispatches the pending
// action synchronously, runs the body on its own goroutine, then dispatches the
// fulfilled or rejected action.
type AsyncThunk[A, R any] struct {
	TypePrefix     string
	DefaultMessage string
	Run            func(ctx context.Context, arg A, api ThunkAPI) (R, error)
}

// Task is one in-flight run of an AsyncThunk.
type Task[R any] struct {
	requestID string
	done      chan struct{}
	result    R
	err       error
}

// RequestID identifies the run in the action metadata of all three phases.
func (t *Task[R]) RequestID() string { return t.requestID }

// Done is closed once the settling action has been dispatched.
func (t *Task[R]) Done() <-chan struct{} { return t.done }

// Wait blocks until the task settles or ctx ends. A rejected task returns a *Rejection.
func (t *Task[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Start runs the thunk against s. The caller's ctx is passed to collaborators;
// cancelling it rejects the run.
func (t AsyncThunk[A, R]) Start(ctx context.Context, s *Store, arg A) *Task[R] {
	task := &Task[R]{requestID: uuid.NewString(), done: make(chan struct{})}
	meta := ActionMeta{RequestID: task.requestID, Arg: arg}

	api := ThunkAPI{
		Dispatch:  s.Dispatch,
		GetState:  s.GetState,
		Services:  s.services,
		Storage:   s.storage,
		Validate:  s.validate,
		Logger:    s.logger.With().Str("operation", t.TypePrefix).Str("request_id", task.requestID).Logger(),
		RequestID: task.requestID,
	}

	s.inflight.Add(1)
	s.Dispatch(Action{Type: Pending(t.TypePrefix), Meta: meta})

	go func() {
		defer s.inflight.Done()
		defer close(task.done)

		ctx, span := otel.Tracer(tracerName).Start(ctx, "thunk."+t.TypePrefix)
		span.SetAttributes(attribute.String("thunk.request_id", task.requestID))
		defer span.End()

		start := time.Now()
		result, err := t.run(ctx, arg, api)
		outcome := "fulfilled"

		if err != nil {
			outcome = "rejected"
			message := rejectionMessage(err, t.DefaultMessage)
			task.err = asRejection(err, message)
			span.RecordError(err)
			span.SetStatus(codes.Error, message)
			s.Dispatch(Action{Type: Rejected(t.TypePrefix), Error: message, Meta: meta})
		} else {
			task.result = result
			s.Dispatch(Action{Type: Fulfilled(t.TypePrefix), Payload: result, Meta: meta})
		}

		observability.ThunkDuration().WithLabelValues(t.TypePrefix, outcome).Observe(time.Since(start).Seconds())
	}()

	return task
}

func (t AsyncThunk[A, R]) run(ctx context.Context, arg A, api ThunkAPI) (result R, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic in %s: %v", t.TypePrefix, recovered)
		}
	}()

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return t.Run(ctx, arg, api)
}

// asRejection returns err itself when it already is a Rejection.
func asRejection(err error, message string) *Rejection {
	if rejection, ok := err.(*Rejection); ok {
		return rejection
	}
	return &Rejection{Message: message, Err: err}
}

// rejectionMessage prefers an explicit rejection message, then the server
// detail, then the operation default.
func rejectionMessage(err error, fallback string) string {
	var rejection *Rejection
	if errors.As(err, &rejection) && rejection.Message != "" {
		return rejection.Message
	}
	if detail := service.DetailFromError(err); detail != "" {
		return detail
	}
	if fallback == "" {
		return "An unknown error occurred"
	}
	return fallback
}

// validationMessage renders validator failures as one readable line.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "email":
			parts = append(parts, field+" must be a valid email")
		case "url":
			parts = append(parts, field+" must be a valid url")
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", field, fieldErr.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// validateRequest runs struct validation and turns failures into a Rejection.
func validateRequest(api ThunkAPI, payload any) error {
	if api.Validate == nil {
		return nil
	}
	if err := api.Validate.Struct(payload); err != nil {
		return &Rejection{Message: validationMessage(err), Err: err}
	}
	return nil
}
