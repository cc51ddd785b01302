package middleware

import (
	"context"
	"net/http"

	"trizone/pkg/model"
)

const CallerKey contextKey = "caller"

// RoleHeader names the upstream header that decides the caller's capability.
// The gateway in front of this service is trusted to strip it from untrusted
// traffic.
const RoleHeader = "X-User-Role"

// CallerFromHeader resolves the request's capability object once, at the edge.
// Handlers read it from the context and pass it into services explicitly;
// nothing downstream inspects headers.
func CallerFromHeader() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := model.GuestCaller()
			if role := r.Header.Get(RoleHeader); role == model.RoleAdmin {
				caller = model.Caller{Role: model.RoleAdmin}
			}

			ctx := context.WithValue(r.Context(), CallerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext returns the caller resolved at the edge, or a guest caller
// when the middleware did not run (tests, health routes).
func CallerFromContext(ctx context.Context) model.Caller {
	if caller, ok := ctx.Value(CallerKey).(model.Caller); ok {
		return caller
	}
	return model.GuestCaller()
}
