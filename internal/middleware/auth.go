package middleware

import (
	"net/http"

	"eway-hosted/internal/auth"
	"eway-hosted/internal/logger"
	"eway-hosted/internal/utils"

	"go.uber.org/zap"
)

// AuthMiddleware attaches the caller's id and role to the request context
// when a valid token is present. Requests without one pass through anonymous.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid access token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers that are not authenticated as an admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if utils.GetUserRoleFromContext(r.Context()) != utils.RoleAdmin {
			utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
