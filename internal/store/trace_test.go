package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return recorder
}

func endedSpan(t *testing.T, recorder *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range recorder.Ended() {
		if span.Name() == name {
			return span
		}
	}
	require.Failf(t, "span not recorded", "no ended span named %q", name)
	return nil
}

func TestThunkRunsInsideSpan(t *testing.T) {
	recorder := installRecorder(t)
	s := newTestStore(t, newFakeBackend(), nil)

	var seen trace.SpanContext
	thunk := AsyncThunk[string, string]{
		TypePrefix:     "test/traced",
		DefaultMessage: "Traced operation failed",
		Run: func(ctx context.Context, arg string, _ ThunkAPI) (string, error) {
			seen = trace.SpanContextFromContext(ctx)
			if arg == "fail" {
				return "", errors.New("backend down")
			}
			return arg, nil
		},
	}

	_, err := thunk.Start(context.Background(), s, "ok").Wait(context.Background())
	require.NoError(t, err)

	span := endedSpan(t, recorder, "thunk.test/traced")
	require.True(t, seen.IsValid())
	require.Equal(t, span.SpanContext().SpanID(), seen.SpanID())
	require.Equal(t, codes.Unset, span.Status().Code)
}

func TestRejectedThunkMarksSpan(t *testing.T) {
	recorder := installRecorder(t)
	s := newTestStore(t, newFakeBackend(), nil)

	task := s.GetUserProfile(context.Background())
	_, err := task.Wait(context.Background())
	require.Error(t, err)

	span := endedSpan(t, recorder, "thunk."+PrefixGetUserProfile)
	require.Equal(t, codes.Error, span.Status().Code)
	require.Equal(t, "No token available", span.Status().Description)
	require.NotEmpty(t, span.Events())
}

func TestExistingRejectionIsNotWrapped(t *testing.T) {
	s := newTestStore(t, newFakeBackend(), nil)

	_, err := s.GetUserProfile(context.Background()).Wait(context.Background())
	require.ErrorIs(t, err, ErrNoToken)
	require.Equal(t, "No token available", err.Error())

	_, err = s.Login(context.Background(), "not-an-email", "secret").Wait(context.Background())
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, SelectAuthError(s.GetState()), rejection.Message)
}
