package wire

import (
	"content-review/internal/adaptor"
	"content-review/internal/data/repository"
	"content-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireTitle configures title routes and mounts the nested review tree.
// Reads are public, mutations need a session.
func wireTitle(
	r chi.Router,
	titleHandler *adaptor.TitleHandler,
	reviewHandler *adaptor.ReviewHandler,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.Authenticate(repo.Session, repo.User, log)

	r.Route("/titles", func(r chi.Router) {
		r.MethodNotAllowed(adaptor.MethodNotAllowed)

		r.Get("/", titleHandler.ListTitles)
		r.Get("/{titleID}", titleHandler.GetTitle)

		r.With(auth).Post("/", titleHandler.CreateTitle)
		r.With(auth).Patch("/{titleID}", titleHandler.UpdateTitle)
		r.With(auth).Delete("/{titleID}", titleHandler.DeleteTitle)

		wireReview(r, reviewHandler, commentHandler, auth)
	})
}
