package wire

import (
	"net/http"

	"content-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireReview configures the review and comment routes nested under a
// title. Reads are public, mutations need a session.
func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	commentHandler *adaptor.CommentHandler,
	auth func(http.Handler) http.Handler,
) {
	r.Route("/{titleID}/reviews", func(r chi.Router) {
		r.MethodNotAllowed(adaptor.MethodNotAllowed)

		r.Get("/", reviewHandler.ListReviews)
		r.Get("/{reviewID}", reviewHandler.GetReview)

		r.With(auth).Post("/", reviewHandler.CreateReview)
		r.With(auth).Patch("/{reviewID}", reviewHandler.UpdateReview)
		r.With(auth).Delete("/{reviewID}", reviewHandler.DeleteReview)

		r.Route("/{reviewID}/comments", func(r chi.Router) {
			r.MethodNotAllowed(adaptor.MethodNotAllowed)

			r.Get("/", commentHandler.ListComments)
			r.Get("/{commentID}", commentHandler.GetComment)

			r.With(auth).Post("/", commentHandler.CreateComment)
			r.With(auth).Patch("/{commentID}", commentHandler.UpdateComment)
			r.With(auth).Delete("/{commentID}", commentHandler.DeleteComment)
		})
	})
}
