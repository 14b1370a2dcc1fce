package middleware

import (
	"context"
	"net/http"
	"strings"

	"content-review/internal/data/repository"
	"content-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticate resolves the bearer token to an actor and rejects requests
// without a valid session.
func Authenticate(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or malformed authorization header")
				return
			}

			ctx, ok := resolveActor(w, r.Context(), token, sessionRepo, userRepo, logger)
			if !ok {
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
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

// resolveActor validates the session and loads the matching user into the
// context as the actor. On failure it writes the response and reports false.
func resolveActor(w http.ResponseWriter, ctx context.Context, token string, sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) (context.Context, bool) {
	// Tokens are uuids; anything else can never match a session, and
	// binding it against the uuid column would error instead of missing.
	if _, err := uuid.Parse(token); err != nil {
		utils.ResponseUnauthorized(w, "Invalid or expired session")
		return ctx, false
	}

	session, err := sessionRepo.FindValidSession(ctx, token)
	if err != nil {
		logger.Error("Failed to validate session", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return ctx, false
	}
	if session == nil {
		utils.ResponseUnauthorized(w, "Invalid or expired session")
		return ctx, false
	}

	user, err := userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		logger.Error("Failed to load session user",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()))
		utils.ResponseInternalError(w, "Internal server error")
		return ctx, false
	}
	if user == nil || !user.IsActive {
		utils.ResponseUnauthorized(w, "Invalid or expired session")
		return ctx, false
	}

	ctx = utils.SetActorContext(ctx, user.Actor())
	ctx = utils.SetTokenContext(ctx, token)
	return ctx, true
}
