package wire

import (
	"net/http"

	"content-review/internal/adaptor"
	"content-review/internal/data/repository"
	"content-review/internal/usecase"
	"content-review/pkg/mailer"
	"content-review/pkg/middleware"
	"content-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, mail mailer.Mailer, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, mail, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS)

	// Unsupported verbs on known routes (PUT included) get a JSON 405
	// instead of chi's plain-text default. Each nested subrouter sets the
	// same handler, since chi only copies it one mount level down.
	r.MethodNotAllowed(adaptor.MethodNotAllowed)

	r.Route("/api/v1", func(r chi.Router) {
		wireAuth(r, handler.Auth, repo, logger)
		wireUser(r, handler.User, repo, logger)
		wireReference(r, handler.Category, handler.Genre, repo, logger)
		wireTitle(r, handler.Title, handler.Review, handler.Comment, repo, logger)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
