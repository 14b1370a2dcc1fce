package wire

import (
	"content-review/internal/adaptor"
	"content-review/internal/data/repository"
	"content-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAuth configures signup, token exchange and signout. Only signout
// needs a session: it revokes the one the request arrived with.
func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/auth", func(r chi.Router) {
		r.MethodNotAllowed(adaptor.MethodNotAllowed)

		r.Post("/signup", authHandler.Signup)
		r.Post("/token", authHandler.Token)

		r.With(middleware.Authenticate(repo.Session, repo.User, log)).
			Post("/signout", authHandler.Signout)
	})
}
