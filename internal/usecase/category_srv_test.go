package usecase

import (
	"context"
	"testing"

	"content-review/internal/auth"
	"content-review/internal/dto/request"
	"content-review/pkg/apperr"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCategoryLifecycle(t *testing.T) {
	repo := newFakeRepository()
	svc := NewCategoryService(repo.Category, zap.NewNop())
	admin := asActor(seedUser(t, repo, "admin", auth.RoleAdmin, false))

	created, err := svc.Create(context.Background(), admin, &request.CreateCategoryRequest{
		Name: "Books",
		Slug: "books",
	})
	require.NoError(t, err)
	require.Equal(t, "books", created.Slug)

	// duplicate slug
	_, err = svc.Create(context.Background(), admin, &request.CreateCategoryRequest{
		Name: "Books again",
		Slug: "books",
	})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))

	// anonymous listing works
	list, err := svc.List(context.Background(), &request.PaginatedRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), list.Total)

	// anonymous mutation does not
	_, err = svc.Create(context.Background(), nil, &request.CreateCategoryRequest{Name: "Films", Slug: "films"})
	require.True(t, apperr.IsKind(err, apperr.KindPermission))
	err = svc.Delete(context.Background(), nil, "books")
	require.True(t, apperr.IsKind(err, apperr.KindPermission))

	require.NoError(t, svc.Delete(context.Background(), admin, "books"))
	err = svc.Delete(context.Background(), admin, "books")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGenreLifecycle(t *testing.T) {
	repo := newFakeRepository()
	svc := NewGenreService(repo.Genre, zap.NewNop())
	admin := asActor(seedUser(t, repo, "admin", auth.RoleAdmin, false))

	created, err := svc.Create(context.Background(), admin, &request.CreateGenreRequest{
		Name: "Satire",
		Slug: "satire",
	})
	require.NoError(t, err)
	require.Equal(t, "satire", created.Slug)

	list, err := svc.List(context.Background(), &request.PaginatedRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), list.Total)

	err = svc.Delete(context.Background(), admin, "missing")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
	require.NoError(t, svc.Delete(context.Background(), admin, "satire"))
}
