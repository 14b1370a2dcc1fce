package usecase

import (
	"context"
	"testing"
	"time"

	"content-review/internal/auth"
	"content-review/internal/data/entity"
	"content-review/internal/data/repository"
	"content-review/internal/dto/request"
	"content-review/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTitleFixture(t *testing.T) (TitleService, *repository.Repository, *auth.Actor) {
	t.Helper()
	repo := newFakeRepository()
	svc := NewTitleService(repo, zap.NewNop())
	admin := seedUser(t, repo, "admin", auth.RoleAdmin, false)
	return svc, repo, asActor(admin)
}

func seedCategory(t *testing.T, repo *repository.Repository, name, slug string) *entity.Category {
	t.Helper()
	category := &entity.Category{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		Slug:       slug,
	}
	require.NoError(t, repo.Category.Create(context.Background(), category))
	return category
}

func seedGenre(t *testing.T, repo *repository.Repository, name, slug string) *entity.Genre {
	t.Helper()
	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       name,
		Slug:       slug,
	}
	require.NoError(t, repo.Genre.Create(context.Background(), genre))
	return genre
}

func TestTitleCreate_ResolvesCategoryAndGenres(t *testing.T) {
	svc, repo, admin := newTitleFixture(t)
	seedCategory(t, repo, "Books", "books")
	seedGenre(t, repo, "Satire", "satire")
	seedGenre(t, repo, "Fantasy", "fantasy")

	category := "books"
	resp, err := svc.Create(context.Background(), admin, &request.CreateTitleRequest{
		Name:     "The Master and Margarita",
		Year:     1967,
		Category: &category,
		Genres:   []string{"satire", "fantasy"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Category)
	require.Equal(t, "books", resp.Category.Slug)
	require.Len(t, resp.Genres, 2)
	require.Nil(t, resp.Rating)
}

func TestTitleCreate_UnknownCategory(t *testing.T) {
	svc, _, admin := newTitleFixture(t)

	category := "missing"
	_, err := svc.Create(context.Background(), admin, &request.CreateTitleRequest{
		Name:     "Orphaned",
		Year:     2000,
		Category: &category,
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
	require.Equal(t, "category", apperr.FieldOf(err))
}

func TestTitleCreate_UnknownGenre(t *testing.T) {
	svc, repo, admin := newTitleFixture(t)
	seedGenre(t, repo, "Satire", "satire")

	_, err := svc.Create(context.Background(), admin, &request.CreateTitleRequest{
		Name:   "Half known",
		Year:   2000,
		Genres: []string{"satire", "missing"},
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
	require.Equal(t, "genre", apperr.FieldOf(err))
}

func TestTitleCreate_FutureYearRejected(t *testing.T) {
	svc, _, admin := newTitleFixture(t)

	_, err := svc.Create(context.Background(), admin, &request.CreateTitleRequest{
		Name: "Not yet released",
		Year: time.Now().Year() + 1,
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
	require.Equal(t, "year", apperr.FieldOf(err))
}

func TestTitleCreate_NonAdminForbidden(t *testing.T) {
	svc, repo, _ := newTitleFixture(t)
	plain := seedUser(t, repo, "plain", auth.RoleUser, false)

	_, err := svc.Create(context.Background(), asActor(plain), &request.CreateTitleRequest{
		Name: "Denied",
		Year: 2000,
	})
	require.True(t, apperr.IsKind(err, apperr.KindPermission))

	_, err = svc.Create(context.Background(), nil, &request.CreateTitleRequest{
		Name: "Denied",
		Year: 2000,
	})
	require.True(t, apperr.IsKind(err, apperr.KindPermission))
}

func TestTitleUpdate_ReplacesGenres(t *testing.T) {
	svc, repo, admin := newTitleFixture(t)
	seedGenre(t, repo, "Satire", "satire")
	seedGenre(t, repo, "Fantasy", "fantasy")

	created, err := svc.Create(context.Background(), admin, &request.CreateTitleRequest{
		Name:   "Shifting shelves",
		Year:   1990,
		Genres: []string{"satire"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), admin, uuid.MustParse(created.ID), &request.UpdateTitleRequest{
		Genres: []string{"fantasy"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Genres, 1)
	require.Equal(t, "fantasy", updated.Genres[0].Slug)
}

func TestTitleGet_Unknown(t *testing.T) {
	svc, _, _ := newTitleFixture(t)

	_, err := svc.Get(context.Background(), uuid.New())
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestTitleDelete(t *testing.T) {
	svc, _, admin := newTitleFixture(t)

	created, err := svc.Create(context.Background(), admin, &request.CreateTitleRequest{
		Name: "Short lived",
		Year: 2001,
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	require.NoError(t, svc.Delete(context.Background(), admin, id))

	_, err = svc.Get(context.Background(), id)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestTitleRatingAveragesCurrentScores(t *testing.T) {
	svc, repo, admin := newTitleFixture(t)
	reviews := NewReviewService(repo, zap.NewNop())

	created, err := svc.Create(context.Background(), admin, &request.CreateTitleRequest{
		Name: "Heart of a Dog",
		Year: 1925,
	})
	require.NoError(t, err)
	titleID := uuid.MustParse(created.ID)
	require.Nil(t, created.Rating)

	alice := seedUser(t, repo, "alice", auth.RoleUser, false)
	bob := seedUser(t, repo, "bob", auth.RoleUser, false)

	first, err := reviews.Create(context.Background(), asActor(alice), titleID, &request.CreateReviewRequest{
		Score: 8,
		Text:  "Sharp but uneven",
	})
	require.NoError(t, err)

	second, err := reviews.Create(context.Background(), asActor(bob), titleID, &request.CreateReviewRequest{
		Score: 10,
		Text:  "A classic",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), titleID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	require.InDelta(t, 9.0, *got.Rating, 1e-9)

	// Removing the lower score shifts the mean to the remaining one.
	require.NoError(t, reviews.Delete(context.Background(), asActor(alice), titleID, uuid.MustParse(first.ID)))

	got, err = svc.Get(context.Background(), titleID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	require.InDelta(t, 10.0, *got.Rating, 1e-9)

	// No reviews left: rating goes back to null rather than zero.
	require.NoError(t, reviews.Delete(context.Background(), asActor(bob), titleID, uuid.MustParse(second.ID)))

	got, err = svc.Get(context.Background(), titleID)
	require.NoError(t, err)
	require.Nil(t, got.Rating)
}
