package usecase

import (
	"context"
	"time"

	"content-review/internal/auth"
	"content-review/internal/data/entity"
	"content-review/internal/data/repository"
	"content-review/internal/dto/request"
	"content-review/internal/dto/response"
	"content-review/pkg/apperr"
	"content-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error)
	Create(ctx context.Context, actor *auth.Actor, titleID, reviewID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	Update(ctx context.Context, actor *auth.Actor, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	Delete(ctx context.Context, actor *auth.Actor, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	userRepo    repository.UserRepository
	log         *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		commentRepo: repo.Comment,
		reviewRepo:  repo.Review,
		userRepo:    repo.User,
		log:         log.With(zap.String("service", "comment")),
	}
}

func (cs *commentService) List(ctx context.Context, titleID, reviewID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	if err := cs.checkReviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	req.Normalize()
	offset := utils.CalculateOffset(req.Page, req.PerPage)

	comments, err := cs.commentRepo.FindByReviewID(ctx, reviewID, req.PerPage, offset)
	if err != nil {
		cs.log.Error("Failed to list comments", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, apperr.Internal("failed to list comments", err)
	}

	total, err := cs.commentRepo.CountByReviewID(ctx, reviewID)
	if err != nil {
		cs.log.Error("Failed to count comments", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, apperr.Internal("failed to count comments", err)
	}

	items := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		username, err := cs.authorUsername(ctx, comment.AuthorID)
		if err != nil {
			return nil, err
		}
		items[i] = response.CommentToResponse(comment, username)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (cs *commentService) Get(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error) {
	comment, err := cs.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return cs.toResponse(ctx, comment)
}

func (cs *commentService) Create(ctx context.Context, actor *auth.Actor, titleID, reviewID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if !auth.Comments.Allows(actor, auth.ActionCreate, nil) {
		return nil, apperr.Forbidden()
	}

	if err := cs.checkReviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}

	if err := cs.commentRepo.Create(ctx, comment); err != nil {
		cs.log.Error("Failed to create comment", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, apperr.Internal("failed to create comment", err)
	}

	cs.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID.String()),
		zap.String("author", actor.Username))

	resp := response.CommentToResponse(comment, actor.Username)
	return &resp, nil
}

func (cs *commentService) Update(ctx context.Context, actor *auth.Actor, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	comment, err := cs.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !auth.Comments.Allows(actor, auth.ActionUpdate, &comment.AuthorID) {
		return nil, apperr.Forbidden()
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := cs.commentRepo.Update(ctx, comment); err != nil {
		cs.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, apperr.Internal("failed to update comment", err)
	}

	cs.log.Info("Comment updated",
		zap.String("comment_id", commentID.String()),
		zap.String("actor", actor.Username))

	return cs.toResponse(ctx, comment)
}

func (cs *commentService) Delete(ctx context.Context, actor *auth.Actor, titleID, reviewID, commentID uuid.UUID) error {
	comment, err := cs.findComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !auth.Comments.Allows(actor, auth.ActionDelete, &comment.AuthorID) {
		return apperr.Forbidden()
	}

	if err := cs.commentRepo.Delete(ctx, commentID); err != nil {
		cs.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID.String()))
		return apperr.Internal("failed to delete comment", err)
	}

	cs.log.Info("Comment deleted",
		zap.String("comment_id", commentID.String()),
		zap.String("actor", actor.Username))
	return nil
}

// findComment loads a comment and verifies the title/review/comment chain.
func (cs *commentService) findComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*entity.Comment, error) {
	if err := cs.checkReviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := cs.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		cs.log.Error("Failed to find comment", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, apperr.Internal("failed to find comment", err)
	}
	if comment == nil || comment.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}

	return comment, nil
}

func (cs *commentService) checkReviewExists(ctx context.Context, titleID, reviewID uuid.UUID) error {
	review, err := cs.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		cs.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return apperr.Internal("failed to find review", err)
	}
	if review == nil || review.TitleID != titleID {
		return apperr.NotFound("Review")
	}
	return nil
}

func (cs *commentService) authorUsername(ctx context.Context, authorID uuid.UUID) (string, error) {
	author, err := cs.userRepo.FindByID(ctx, authorID)
	if err != nil {
		cs.log.Error("Failed to find comment author", zap.Error(err), zap.String("author_id", authorID.String()))
		return "", apperr.Internal("failed to find comment author", err)
	}
	if author == nil {
		return "", nil
	}
	return author.Username, nil
}

func (cs *commentService) toResponse(ctx context.Context, comment *entity.Comment) (*response.CommentResponse, error) {
	username, err := cs.authorUsername(ctx, comment.AuthorID)
	if err != nil {
		return nil, err
	}
	resp := response.CommentToResponse(comment, username)
	return &resp, nil
}
