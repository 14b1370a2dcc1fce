package wire

import (
	"content-review/internal/adaptor"
	"content-review/internal/data/repository"
	"content-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user management routes. Everything here requires a
// valid session; role checks happen in the service layer.
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.With(middleware.Authenticate(repo.Session, repo.User, log)).Route("/users", func(r chi.Router) {
		r.MethodNotAllowed(adaptor.MethodNotAllowed)

		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)

		// The literal route must register before the wildcard so "me"
		// never resolves as a username.
		r.Get("/me", userHandler.GetMe)
		r.Patch("/me", userHandler.UpdateMe)

		r.Get("/{username}", userHandler.GetUser)
		r.Patch("/{username}", userHandler.UpdateUser)
		r.Delete("/{username}", userHandler.DeleteUser)
	})
}
