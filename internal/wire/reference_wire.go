package wire

import (
	"content-review/internal/adaptor"
	"content-review/internal/data/repository"
	"content-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireReference configures category and genre routes. Listings are public,
// mutations need a session.
func wireReference(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	genreHandler *adaptor.GenreHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	auth := middleware.Authenticate(repo.Session, repo.User, log)

	r.Route("/categories", func(r chi.Router) {
		r.MethodNotAllowed(adaptor.MethodNotAllowed)

		r.Get("/", categoryHandler.ListCategories)
		r.With(auth).Post("/", categoryHandler.CreateCategory)
		r.With(auth).Delete("/{slug}", categoryHandler.DeleteCategory)
	})

	r.Route("/genres", func(r chi.Router) {
		r.MethodNotAllowed(adaptor.MethodNotAllowed)

		r.Get("/", genreHandler.ListGenres)
		r.With(auth).Post("/", genreHandler.CreateGenre)
		r.With(auth).Delete("/{slug}", genreHandler.DeleteGenre)
	})
}
