package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// TokenSource yields the current bearer token, or an empty string when the
// client is signed out.
type TokenSource func(ctx context.Context) string

// BearerToken attaches the token from source as an Authorization header.
// Tokens that are past their exp claim are not sent.
func BearerToken(source TokenSource, logger zerolog.Logger) Middleware {
	log := logger.With().Str("component", "bearer_token").Logger()

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if source == nil || req.Header.Get("Authorization") != "" {
				return next.RoundTrip(req)
			}

			token := strings.TrimSpace(source(req.Context()))
			if token == "" {
				return next.RoundTrip(req)
			}
			if TokenExpired(token, time.Now()) {
				log.Debug().Str("path", req.URL.Path).Msg("skipping expired bearer token")
				return next.RoundTrip(req)
			}

			clone := req.Clone(req.Context())
			clone.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(clone)
		})
	}
}

// TokenExpiry reads the exp claim without verifying the signature. Opaque
// tokens and tokens without exp report ok=false.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired reports whether token carries an exp claim at or before now.
func TokenExpired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return !exp.After(now)
}
