package middleware

import (
	"net/http"
	"strings"

	"gezana/internal/data/entity"
	"gezana/internal/data/repository"
	"gezana/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the bearer session token and rejects the request
// when it is missing or invalid. The session owner's role is resolved and
// placed in the context; downstream authorization reads it from there.
func AuthSession(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or malformed authorization token")
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session")
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			user, err := userRepo.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err), zap.String("user_id", session.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || !user.IsActive {
				logger.Warn("Session points at a missing or deactivated user",
					zap.String("user_id", session.UserID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID, string(user.Role))
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the bearer token when present but never rejects:
// a missing, malformed, or expired token simply leaves the request
// unauthenticated so it proceeds as a guest. Same goes for a session
// whose user cannot be resolved.
func OptionalAuth(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil || session == nil {
				if err != nil {
					logger.Warn("Session lookup failed, degrading to guest", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), session.UserID)
			if err != nil || user == nil || !user.IsActive {
				if err != nil {
					logger.Warn("User lookup failed, degrading to guest", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID, string(user.Role))
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole checks the authenticated user's role against the allowed set.
// Must run after AuthSession.
func RequireRole(userRepo repository.UserRepository, logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Role check: failed to get user",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil || !user.IsActive {
				utils.ResponseForbidden(w, "Account is not active")
				return
			}

			for _, role := range roles {
				if user.Role == role {
					ctx := utils.SetUserContext(r.Context(), userID, string(user.Role))
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			logger.Warn("Role check: access denied",
				zap.String("user_id", userID.String()),
				zap.String("role", string(user.Role)),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, "Insufficient permissions")
		})
	}
}

// Admin requires the admin role. Must run after AuthSession.
func Admin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(userRepo, logger, entity.RoleAdmin)
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
