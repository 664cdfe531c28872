package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/auth"
	"github.com/Hamza-Malik05/plant-management-backend/internal/handler/http/response"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/jwt"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type supervisorKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the supervisor ID from its claims on the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims[jwt.ClaimType].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			supervisorID, ok := claims[jwt.ClaimSupervisorID].(string)
			if !ok || supervisorID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			httplog.SetAttrs(r.Context(), slog.String("supervisor_id", supervisorID))
			ctx := context.WithValue(r.Context(), supervisorKey{}, supervisorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// SupervisorID returns the authenticated supervisor, if any.
func SupervisorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(supervisorKey{}).(string)
	return id, ok
}
