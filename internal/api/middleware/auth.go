package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUser  = "X-User-ID header is required"
	msgInvalidUser  = "X-User-ID must be a positive integer"
	msgInvalidRole  = "X-User-Role must be one of client, staff, admin"
)

type callerKey struct{}

// Auth кладёт domain.Caller в контекст по заголовкам сессии портала
// Без X-User-Role вызывающий считается клиентом
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUser)
			return
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUser)
			return
		}

		role := domain.RoleClient
		if rawRole := r.Header.Get(HeaderUserRole); rawRole != "" {
			parsed, ok := domain.ParseRole(rawRole)
			if !ok {
				handlers.RespondUnauthorized(w, msgInvalidRole)
				return
			}
			role = parsed
		}

		ctx := WithCaller(r.Context(), domain.Caller{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithCaller кладёт вызывающего в контекст
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext вызывающий, установленный Auth
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	return caller, ok
}

// RequireCaller вызывающий из контекста; при его отсутствии отвечает 401
func RequireCaller(w http.ResponseWriter, r *http.Request) (domain.Caller, bool) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
	}
	return caller, ok
}
