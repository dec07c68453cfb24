package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rahulnair-dev/event-platform/internal/auth"
	"github.com/rahulnair-dev/event-platform/internal/model"
)

type contextKey int

const principalKey contextKey = iota

// PrincipalFrom extracts the authenticated principal set by Authenticator.
func PrincipalFrom(r *http.Request) (model.Principal, bool) {
	p, ok := r.Context().Value(principalKey).(model.Principal)
	return p, ok
}

// WithPrincipal returns a request carrying the given principal. Used by
// handler tests to bypass token verification.
func WithPrincipal(r *http.Request, p model.Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

// Authenticator verifies the bearer token and stores the principal in the
// request context. Requests without a valid token are rejected.
func Authenticator(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFrom(r); ok {
				// Already authenticated (test injection).
				next.ServeHTTP(w, r)
				return
			}
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "authorization header required")
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			principal, err := tokens.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, WithPrincipal(r, principal))
		})
	}
}

// AccessLog writes one structured log line per request.
func AccessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}
