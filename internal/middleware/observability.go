package middleware

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/elitebuilders-client/internal/observability"
)

var idSegment = regexp.MustCompile(`/[0-9a-fA-F-]{8,}|/\d+`)

// Observability records Prometheus metrics and structured latency logs for every backend request.
func Observability(logger zerolog.Logger) Middleware {
	observability.RegisterMetrics()
	log := logger.With().Str("component", "api_client").Logger()

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)
			duration := time.Since(start)

			route := routeTemplate(req.URL.Path)
			method := req.Method
			status := 0
			if resp != nil {
				status = resp.StatusCode
			}
			statusLabel := fmt.Sprintf("%d", status)
			if err != nil {
				statusLabel = "error"
			}

			observability.APIRequests().WithLabelValues(method, route, statusLabel).Inc()
			observability.APILatency().WithLabelValues(method, route).Observe(duration.Seconds())

			latencyMs := float64(duration) / float64(time.Millisecond)
			requestLogger := log.With().
				Str("correlation_id", req.Header.Get(HeaderCorrelationID)).
				Str("route", route).
				Str("method", method).
				Int("status", status).
				Float64("latency_ms", latencyMs).
				Str("latency_bucket", latencyBucket(duration)).
				Logger()

			switch {
			case err != nil:
				requestLogger.Error().Err(err).Msg("api request failed")
			case status >= http.StatusInternalServerError:
				requestLogger.Error().Msg("api request failed")
			case status >= http.StatusBadRequest:
				requestLogger.Warn().Msg("api request completed with client error")
			default:
				requestLogger.Debug().Msg("api request completed")
			}

			return resp, err
		})
	}
}

func routeTemplate(path string) string {
	return idSegment.ReplaceAllString(path, "/:id")
}

func latencyBucket(duration time.Duration) string {
	switch {
	case duration <= 25*time.Millisecond:
		return "<=25ms"
	case duration <= 50*time.Millisecond:
		return "<=50ms"
	case duration <= 100*time.Millisecond:
		return "<=100ms"
	case duration <= 250*time.Millisecond:
		return "<=250ms"
	case duration <= 500*time.Millisecond:
		return "<=500ms"
	default:
		return ">500ms"
	}
}
