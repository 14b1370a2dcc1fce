package usecase

import (
	"context"
	"time"

	"content-review/internal/auth"
	"content-review/internal/data/entity"
	"content-review/internal/data/repository"
	"content-review/internal/dto/request"
	"content-review/internal/dto/response"
	"content-review/internal/validation"
	"content-review/pkg/apperr"
	"content-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	List(ctx context.Context, titleID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error)
	Create(ctx context.Context, actor *auth.Actor, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Update(ctx context.Context, actor *auth.Actor, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, actor *auth.Actor, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	userRepo   repository.UserRepository
	log        *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		reviewRepo: repo.Review,
		titleRepo:  repo.Title,
		userRepo:   repo.User,
		log:        log.With(zap.String("service", "review")),
	}
}

func (rs *reviewService) List(ctx context.Context, titleID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := rs.checkTitleExists(ctx, titleID); err != nil {
		return nil, err
	}

	req.Normalize()
	offset := utils.CalculateOffset(req.Page, req.PerPage)

	reviews, err := rs.reviewRepo.FindByTitleID(ctx, titleID, req.PerPage, offset)
	if err != nil {
		rs.log.Error("Failed to list reviews", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, apperr.Internal("failed to list reviews", err)
	}

	total, err := rs.reviewRepo.CountByTitleID(ctx, titleID)
	if err != nil {
		rs.log.Error("Failed to count reviews", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, apperr.Internal("failed to count reviews", err)
	}

	items := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		username, err := rs.authorUsername(ctx, review.AuthorID)
		if err != nil {
			return nil, err
		}
		items[i] = response.ReviewToResponse(review, username)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (rs *reviewService) Get(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error) {
	review, err := rs.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return rs.toResponse(ctx, review)
}

func (rs *reviewService) Create(ctx context.Context, actor *auth.Actor, titleID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if !auth.Reviews.Allows(actor, auth.ActionCreate, nil) {
		return nil, apperr.Forbidden()
	}

	if err := validation.ValidateScore(req.Score); err != nil {
		return nil, apperr.Validation("score", err.Error())
	}

	if err := rs.checkTitleExists(ctx, titleID); err != nil {
		return nil, err
	}

	existing, err := rs.reviewRepo.FindByTitleAndAuthor(ctx, titleID, actor.ID)
	if err != nil {
		rs.log.Error("Failed to check existing review", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, apperr.Internal("failed to check existing review", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("review", "You have already reviewed this title")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  titleID,
		AuthorID: actor.ID,
		Score:    req.Score,
		Text:     req.Text,
	}

	if err := rs.reviewRepo.Create(ctx, review); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, err
		}
		rs.log.Error("Failed to create review", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, apperr.Internal("failed to create review", err)
	}

	rs.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID.String()),
		zap.String("author", actor.Username))

	resp := response.ReviewToResponse(review, actor.Username)
	return &resp, nil
}

func (rs *reviewService) Update(ctx context.Context, actor *auth.Actor, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	review, err := rs.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !auth.Reviews.Allows(actor, auth.ActionUpdate, &review.AuthorID) {
		return nil, apperr.Forbidden()
	}

	if req.Score != nil {
		if err := validation.ValidateScore(*req.Score); err != nil {
			return nil, apperr.Validation("score", err.Error())
		}
		review.Score = *req.Score
	}
	if req.Text != nil {
		review.Text = *req.Text
	}

	if err := rs.reviewRepo.Update(ctx, review); err != nil {
		rs.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, apperr.Internal("failed to update review", err)
	}

	rs.log.Info("Review updated",
		zap.String("review_id", reviewID.String()),
		zap.String("actor", actor.Username))

	return rs.toResponse(ctx, review)
}

func (rs *reviewService) Delete(ctx context.Context, actor *auth.Actor, titleID, reviewID uuid.UUID) error {
	review, err := rs.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !auth.Reviews.Allows(actor, auth.ActionDelete, &review.AuthorID) {
		return apperr.Forbidden()
	}

	if err := rs.reviewRepo.Delete(ctx, reviewID); err != nil {
		rs.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return apperr.Internal("failed to delete review", err)
	}

	rs.log.Info("Review deleted",
		zap.String("review_id", reviewID.String()),
		zap.String("actor", actor.Username))
	return nil
}

// findReview loads a review and verifies it belongs to the given title.
// A review reached through the wrong title is treated as absent.
func (rs *reviewService) findReview(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	if err := rs.checkTitleExists(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := rs.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		rs.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, apperr.Internal("failed to find review", err)
	}
	if review == nil || review.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}

	return review, nil
}

func (rs *reviewService) checkTitleExists(ctx context.Context, titleID uuid.UUID) error {
	title, err := rs.titleRepo.FindByID(ctx, titleID)
	if err != nil {
		rs.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID.String()))
		return apperr.Internal("failed to find title", err)
	}
	if title == nil {
		return apperr.NotFound("Title")
	}
	return nil
}

func (rs *reviewService) authorUsername(ctx context.Context, authorID uuid.UUID) (string, error) {
	author, err := rs.userRepo.FindByID(ctx, authorID)
	if err != nil {
		rs.log.Error("Failed to find review author", zap.Error(err), zap.String("author_id", authorID.String()))
		return "", apperr.Internal("failed to find review author", err)
	}
	if author == nil {
		return "", nil
	}
	return author.Username, nil
}

func (rs *reviewService) toResponse(ctx context.Context, review *entity.Review) (*response.ReviewResponse, error) {
	username, err := rs.authorUsername(ctx, review.AuthorID)
	if err != nil {
		return nil, err
	}
	resp := response.ReviewToResponse(review, username)
	return &resp, nil
}
