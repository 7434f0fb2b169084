package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ademgunay/nest-api-sandbox/internal/auth"
	"github.com/ademgunay/nest-api-sandbox/internal/metrics"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Authenticator resolves a bearer token to the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
}

// Authenticate requires "Authorization: Bearer <token>" and stores the resolved
// auth.Identity in the request context. Every token problem is answered with the same
// 401 body; the actual reason only goes to the log and the rejection counter.
func Authenticate(a Authenticator, log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, reason := bearerToken(r.Header.Get("Authorization"))
			if reason != "" {
				reject(w, r, log, reason, nil)
				return
			}

			id, err := a.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthenticated) {
					reject(w, r, log, rejectionReason(err), err)
					return
				}
				log.Error("authenticate request",
					zap.String("request_id", chimw.GetReqID(r.Context())),
					zap.Error(err))
				writeJSONError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// WithIdentity returns ctx carrying id. Used by tests that bypass the middleware.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "missing"
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", "scheme"
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", "missing"
	}
	return token, ""
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, auth.ErrInvalidToken):
		return "invalid"
	default:
		return "unknown_user"
	}
}

func reject(w http.ResponseWriter, r *http.Request, log *zap.Logger, reason string, err error) {
	metrics.IncTokenRejection(reason)
	fields := []zap.Field{
		zap.String("request_id", chimw.GetReqID(r.Context())),
		zap.String("reason", reason),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	log.Info("token rejected", fields...)
	writeJSONError(w, "unauthorized", http.StatusUnauthorized)
}
