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

type GenreService interface {
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error)
	Create(ctx context.Context, actor *auth.Actor, req *request.CreateGenreRequest) (*response.GenreResponse, error)
	Delete(ctx context.Context, actor *auth.Actor, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
	log       *zap.Logger
}

func NewGenreService(genreRepo repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		genreRepo: genreRepo,
		log:       log.With(zap.String("service", "genre")),
	}
}

func (gs *genreService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error) {
	req.Normalize()
	offset := utils.CalculateOffset(req.Page, req.PerPage)

	genres, err := gs.genreRepo.FindAll(ctx, req.Search, req.PerPage, offset)
	if err != nil {
		gs.log.Error("Failed to list genres", zap.Error(err))
		return nil, apperr.Internal("failed to list genres", err)
	}

	total, err := gs.genreRepo.CountAll(ctx, req.Search)
	if err != nil {
		gs.log.Error("Failed to count genres", zap.Error(err))
		return nil, apperr.Internal("failed to count genres", err)
	}

	items := make([]response.GenreResponse, len(genres))
	for i, genre := range genres {
		items[i] = response.GenreToResponse(genre)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (gs *genreService) Create(ctx context.Context, actor *auth.Actor, req *request.CreateGenreRequest) (*response.GenreResponse, error) {
	if !auth.Reference.Allows(actor, auth.ActionCreate, nil) {
		return nil, apperr.Forbidden()
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := gs.genreRepo.Create(ctx, genre); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, err
		}
		gs.log.Error("Failed to create genre", zap.Error(err), zap.String("slug", req.Slug))
		return nil, apperr.Internal("failed to create genre", err)
	}

	gs.log.Info("Genre created",
		zap.String("slug", genre.Slug),
		zap.String("actor", actor.Username))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (gs *genreService) Delete(ctx context.Context, actor *auth.Actor, slug string) error {
	if !auth.Reference.Allows(actor, auth.ActionDelete, nil) {
		return apperr.Forbidden()
	}

	deleted, err := gs.genreRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		gs.log.Error("Failed to delete genre", zap.Error(err), zap.String("slug", slug))
		return apperr.Internal("failed to delete genre", err)
	}
	if !deleted {
		return apperr.NotFound("Genre")
	}

	gs.log.Info("Genre deleted",
		zap.String("slug", slug),
		zap.String("actor", actor.Username))
	return nil
}
