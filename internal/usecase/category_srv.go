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

type CategoryService interface {
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	Create(ctx context.Context, actor *auth.Actor, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	Delete(ctx context.Context, actor *auth.Actor, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	log          *zap.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		log:          log.With(zap.String("service", "category")),
	}
}

func (cs *categoryService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	req.Normalize()
	offset := utils.CalculateOffset(req.Page, req.PerPage)

	categories, err := cs.categoryRepo.FindAll(ctx, req.Search, req.PerPage, offset)
	if err != nil {
		cs.log.Error("Failed to list categories", zap.Error(err))
		return nil, apperr.Internal("failed to list categories", err)
	}

	total, err := cs.categoryRepo.CountAll(ctx, req.Search)
	if err != nil {
		cs.log.Error("Failed to count categories", zap.Error(err))
		return nil, apperr.Internal("failed to count categories", err)
	}

	items := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		items[i] = response.CategoryToResponse(category)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (cs *categoryService) Create(ctx context.Context, actor *auth.Actor, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if !auth.Reference.Allows(actor, auth.ActionCreate, nil) {
		return nil, apperr.Forbidden()
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := cs.categoryRepo.Create(ctx, category); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, err
		}
		cs.log.Error("Failed to create category", zap.Error(err), zap.String("slug", req.Slug))
		return nil, apperr.Internal("failed to create category", err)
	}

	cs.log.Info("Category created",
		zap.String("slug", category.Slug),
		zap.String("actor", actor.Username))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (cs *categoryService) Delete(ctx context.Context, actor *auth.Actor, slug string) error {
	if !auth.Reference.Allows(actor, auth.ActionDelete, nil) {
		return apperr.Forbidden()
	}

	deleted, err := cs.categoryRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		cs.log.Error("Failed to delete category", zap.Error(err), zap.String("slug", slug))
		return apperr.Internal("failed to delete category", err)
	}
	if !deleted {
		return apperr.NotFound("Category")
	}

	cs.log.Info("Category deleted",
		zap.String("slug", slug),
		zap.String("actor", actor.Username))
	return nil
}
