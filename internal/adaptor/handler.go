package adaptor

import (
	"net/http"

	"content-review/internal/dto/request"
	"content-review/internal/usecase"
	"content-review/pkg/apperr"
	"content-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Category *CategoryHandler
	Genre    *GenreHandler
	Title    *TitleHandler
	Review   *ReviewHandler
	Comment  *CommentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Category: NewCategoryHandler(service.Category, log),
		Genre:    NewGenreHandler(service.Genre, log),
		Title:    NewTitleHandler(service.Title, log),
		Review:   NewReviewHandler(service.Review, log),
		Comment:  NewCommentHandler(service.Comment, log),
	}
}

// handleServiceError maps a service error onto the HTTP response by its
// kind. Unknown kinds are treated as internal.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		log.Warn(operation+" rejected", zap.Error(err))
		field := apperr.FieldOf(err)
		var errors any
		if field != "" {
			errors = map[string]string{field: err.Error()}
		}
		utils.ResponseBadRequest(w, err.Error(), errors)

	case apperr.KindConflict:
		log.Warn(operation+" conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case apperr.KindPermission:
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case apperr.KindNotFound:
		log.Warn(operation+" not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case apperr.KindDelivery:
		log.Error(operation+" delivery failed", zap.Error(err))
		utils.ResponseBadGateway(w, "Failed to deliver confirmation email")

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// parsePagination reads page/per_page/search from the query string.
func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
		Search:  query.Get("search"),
	}
}

// parseUUIDParam extracts a UUID path parameter, reporting ok=false after
// writing the error response.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := utils.ParseUUID(raw)
	if err != nil {
		utils.ResponseNotFound(w, "Resource not found")
		return uuid.Nil, false
	}
	return id, true
}

// MethodNotAllowed rejects verbs the API does not support, full PUT
// replacement among them.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.ResponseMethodNotAllowed(w, "Method "+r.Method+" is not allowed")
}
