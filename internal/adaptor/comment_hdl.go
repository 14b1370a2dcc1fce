package adaptor

import (
	"encoding/json"
	"net/http"

	"content-review/internal/dto/request"
	"content-review/internal/usecase"
	"content-review/pkg/utils"

	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// ListComments handles GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments (public)
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := parseUUIDParam(w, r, "reviewID")
	if !ok {
		return
	}

	comments, err := h.service.List(r.Context(), titleID, reviewID, parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "list comments")
		return
	}

	utils.ResponseSuccess(w, "success", comments)
}

// GetComment handles GET .../comments/{commentID} (public)
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID, ok := parseUUIDParam(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := parseUUIDParam(w, r, "reviewID")
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(w, r, "commentID")
	if !ok {
		return
	}

	comment, err := h.service.Get(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleServiceError(w, h.log, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// CreateComment handles POST .../reviews/{reviewID}/comments (protected)
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID, ok := parseUUIDParam(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := parseUUIDParam(w, r, "reviewID")
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	comment, err := h.service.Create(r.Context(), actor, titleID, reviewID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// UpdateComment handles PATCH .../comments/{commentID} (protected)
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID, ok := parseUUIDParam(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := parseUUIDParam(w, r, "reviewID")
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(w, r, "commentID")
	if !ok {
		return
	}

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	comment, err := h.service.Update(r.Context(), actor, titleID, reviewID, commentID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "success", comment)
}

// DeleteComment handles DELETE .../comments/{commentID} (protected)
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	titleID, ok := parseUUIDParam(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := parseUUIDParam(w, r, "reviewID")
	if !ok {
		return
	}
	commentID, ok := parseUUIDParam(w, r, "commentID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, titleID, reviewID, commentID); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}
