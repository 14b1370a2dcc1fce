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

type TitleService interface {
	List(ctx context.Context, req *request.PaginatedRequest, filter *request.TitleListFilter) (*response.PaginatedResponse[response.TitleResponse], error)
	Get(ctx context.Context, titleID uuid.UUID) (*response.TitleResponse, error)
	Create(ctx context.Context, actor *auth.Actor, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	Update(ctx context.Context, actor *auth.Actor, titleID uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	Delete(ctx context.Context, actor *auth.Actor, titleID uuid.UUID) error
}

type titleService struct {
	titleRepo      repository.TitleRepository
	categoryRepo   repository.CategoryRepository
	genreRepo      repository.GenreRepository
	titleGenreRepo repository.TitleGenreRepository
	log            *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		titleRepo:      repo.Title,
		categoryRepo:   repo.Category,
		genreRepo:      repo.Genre,
		titleGenreRepo: repo.TitleGenre,
		log:            log.With(zap.String("service", "title")),
	}
}

func (ts *titleService) List(ctx context.Context, req *request.PaginatedRequest, filter *request.TitleListFilter) (*response.PaginatedResponse[response.TitleResponse], error) {
	req.Normalize()
	offset := utils.CalculateOffset(req.Page, req.PerPage)

	repoFilter := repository.TitleFilter{
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Year:         filter.Year,
		Name:         filter.Name,
	}

	titles, err := ts.titleRepo.FindAll(ctx, repoFilter, req.PerPage, offset)
	if err != nil {
		ts.log.Error("Failed to list titles", zap.Error(err))
		return nil, apperr.Internal("failed to list titles", err)
	}

	total, err := ts.titleRepo.CountAll(ctx, repoFilter)
	if err != nil {
		ts.log.Error("Failed to count titles", zap.Error(err))
		return nil, apperr.Internal("failed to count titles", err)
	}

	items := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := ts.assembleResponse(ctx, title)
		if err != nil {
			return nil, err
		}
		items[i] = *resp
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (ts *titleService) Get(ctx context.Context, titleID uuid.UUID) (*response.TitleResponse, error) {
	title, err := ts.titleRepo.FindByID(ctx, titleID)
	if err != nil {
		ts.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, apperr.Internal("failed to find title", err)
	}
	if title == nil {
		return nil, apperr.NotFound("Title")
	}

	return ts.assembleResponse(ctx, title)
}

func (ts *titleService) Create(ctx context.Context, actor *auth.Actor, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if !auth.Titles.Allows(actor, auth.ActionCreate, nil) {
		return nil, apperr.Forbidden()
	}

	if err := validation.ValidateYear(req.Year); err != nil {
		return nil, apperr.Validation("year", err.Error())
	}

	categoryID, err := ts.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := ts.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := ts.titleRepo.Create(ctx, title); err != nil {
		ts.log.Error("Failed to create title", zap.Error(err), zap.String("name", req.Name))
		return nil, apperr.Internal("failed to create title", err)
	}

	if len(genres) > 0 {
		if err := ts.titleGenreRepo.Replace(ctx, title.ID, genreIDs(genres)); err != nil {
			ts.log.Error("Failed to attach genres", zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, apperr.Internal("failed to attach genres", err)
		}
	}

	ts.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name),
		zap.String("actor", actor.Username))

	return ts.assembleResponse(ctx, title)
}

func (ts *titleService) Update(ctx context.Context, actor *auth.Actor, titleID uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if !auth.Titles.Allows(actor, auth.ActionUpdate, nil) {
		return nil, apperr.Forbidden()
	}

	title, err := ts.titleRepo.FindByID(ctx, titleID)
	if err != nil {
		ts.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, apperr.Internal("failed to find title", err)
	}
	if title == nil {
		return nil, apperr.NotFound("Title")
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validation.ValidateYear(*req.Year); err != nil {
			return nil, apperr.Validation("year", err.Error())
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		categoryID, err := ts.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}
	title.UpdatedAt = time.Now()

	if err := ts.titleRepo.Update(ctx, title); err != nil {
		ts.log.Error("Failed to update title", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, apperr.Internal("failed to update title", err)
	}

	if req.Genres != nil {
		genres, err := ts.resolveGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}
		if err := ts.titleGenreRepo.Replace(ctx, title.ID, genreIDs(genres)); err != nil {
			ts.log.Error("Failed to replace genres", zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, apperr.Internal("failed to replace genres", err)
		}
	}

	ts.log.Info("Title updated",
		zap.String("title_id", title.ID.String()),
		zap.String("actor", actor.Username))

	return ts.assembleResponse(ctx, title)
}

func (ts *titleService) Delete(ctx context.Context, actor *auth.Actor, titleID uuid.UUID) error {
	if !auth.Titles.Allows(actor, auth.ActionDelete, nil) {
		return apperr.Forbidden()
	}

	title, err := ts.titleRepo.FindByID(ctx, titleID)
	if err != nil {
		ts.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID.String()))
		return apperr.Internal("failed to find title", err)
	}
	if title == nil {
		return apperr.NotFound("Title")
	}

	if err := ts.titleRepo.Delete(ctx, titleID); err != nil {
		ts.log.Error("Failed to delete title", zap.Error(err), zap.String("title_id", titleID.String()))
		return apperr.Internal("failed to delete title", err)
	}

	ts.log.Info("Title deleted",
		zap.String("title_id", titleID.String()),
		zap.String("actor", actor.Username))
	return nil
}

// resolveCategory maps a category slug to its ID. A nil slug means the
// title has no category.
func (ts *titleService) resolveCategory(ctx context.Context, slug *string) (*uuid.UUID, error) {
	if slug == nil {
		return nil, nil
	}

	category, err := ts.categoryRepo.FindBySlug(ctx, *slug)
	if err != nil {
		ts.log.Error("Failed to find category", zap.Error(err), zap.String("slug", *slug))
		return nil, apperr.Internal("failed to find category", err)
	}
	if category == nil {
		return nil, apperr.Validation("category", "Category "+*slug+" does not exist")
	}

	return &category.ID, nil
}

// resolveGenres maps genre slugs to entities, failing if any slug is unknown.
func (ts *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	genres, err := ts.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		ts.log.Error("Failed to find genres", zap.Error(err))
		return nil, apperr.Internal("failed to find genres", err)
	}

	found := make(map[string]bool, len(genres))
	for _, genre := range genres {
		found[genre.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, apperr.Validation("genre", "Genre "+slug+" does not exist")
		}
	}

	return genres, nil
}

func (ts *titleService) assembleResponse(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	genres, err := ts.genreRepo.FindByTitleID(ctx, title.ID)
	if err != nil {
		ts.log.Error("Failed to find title genres", zap.Error(err), zap.String("title_id", title.ID.String()))
		return nil, apperr.Internal("failed to find title genres", err)
	}

	var category *entity.Category
	if title.CategoryID != nil {
		category, err = ts.categoryRepo.FindByID(ctx, *title.CategoryID)
		if err != nil {
			ts.log.Error("Failed to find title category", zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, apperr.Internal("failed to find title category", err)
		}
	}

	resp := response.TitleToResponse(title, genres, category)
	return &resp, nil
}

func genreIDs(genres []*entity.Genre) []uuid.UUID {
	ids := make([]uuid.UUID, len(genres))
	for i, genre := range genres {
		ids[i] = genre.ID
	}
	return ids
}
