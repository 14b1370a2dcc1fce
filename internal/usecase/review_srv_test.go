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

func newReviewFixture(t *testing.T) (ReviewService, *repository.Repository, *entity.Title) {
	t.Helper()
	repo := newFakeRepository()
	svc := NewReviewService(repo, zap.NewNop())

	now := time.Now()
	title := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "The Master and Margarita",
		Year:         1967,
	}
	require.NoError(t, repo.Title.Create(context.Background(), title))

	return svc, repo, title
}

func TestReviewCreate_OnePerAuthor(t *testing.T) {
	svc, repo, title := newReviewFixture(t)
	author := seedUser(t, repo, "reader", auth.RoleUser, false)

	_, err := svc.Create(context.Background(), asActor(author), title.ID, &request.CreateReviewRequest{
		Score: 8,
		Text:  "Loved it",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), asActor(author), title.ID, &request.CreateReviewRequest{
		Score: 9,
		Text:  "Changed my mind",
	})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestReviewCreate_UnknownTitle(t *testing.T) {
	svc, repo, _ := newReviewFixture(t)
	author := seedUser(t, repo, "reader", auth.RoleUser, false)

	_, err := svc.Create(context.Background(), asActor(author), uuid.New(), &request.CreateReviewRequest{
		Score: 8,
		Text:  "Loved it",
	})
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestReviewCreate_AnonymousForbidden(t *testing.T) {
	svc, _, title := newReviewFixture(t)

	_, err := svc.Create(context.Background(), nil, title.ID, &request.CreateReviewRequest{
		Score: 8,
		Text:  "Loved it",
	})
	require.True(t, apperr.IsKind(err, apperr.KindPermission))
}

func TestReviewCreate_ScoreBounds(t *testing.T) {
	svc, repo, title := newReviewFixture(t)
	author := seedUser(t, repo, "reader", auth.RoleUser, false)

	_, err := svc.Create(context.Background(), asActor(author), title.ID, &request.CreateReviewRequest{
		Score: 11,
		Text:  "Off the scale",
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
	require.Equal(t, "score", apperr.FieldOf(err))
}

func TestReviewUpdate_OwnerModeratorAndStranger(t *testing.T) {
	svc, repo, title := newReviewFixture(t)
	owner := seedUser(t, repo, "owner", auth.RoleUser, false)
	stranger := seedUser(t, repo, "stranger", auth.RoleUser, false)
	mod := seedUser(t, repo, "mod", auth.RoleModerator, false)

	created, err := svc.Create(context.Background(), asActor(owner), title.ID, &request.CreateReviewRequest{
		Score: 5,
		Text:  "Middling",
	})
	require.NoError(t, err)
	reviewID := uuid.MustParse(created.ID)

	newText := "Better on reread"
	_, err = svc.Update(context.Background(), asActor(stranger), title.ID, reviewID, &request.UpdateReviewRequest{
		Text: &newText,
	})
	require.True(t, apperr.IsKind(err, apperr.KindPermission))

	updated, err := svc.Update(context.Background(), asActor(owner), title.ID, reviewID, &request.UpdateReviewRequest{
		Text: &newText,
	})
	require.NoError(t, err)
	require.Equal(t, newText, updated.Text)

	score := 7
	updated, err = svc.Update(context.Background(), asActor(mod), title.ID, reviewID, &request.UpdateReviewRequest{
		Score: &score,
	})
	require.NoError(t, err)
	require.Equal(t, score, updated.Score)
}

func TestReviewGet_WrongTitleIsNotFound(t *testing.T) {
	svc, repo, title := newReviewFixture(t)
	author := seedUser(t, repo, "reader", auth.RoleUser, false)

	now := time.Now()
	otherTitle := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "Another book",
		Year:         1990,
	}
	require.NoError(t, repo.Title.Create(context.Background(), otherTitle))

	created, err := svc.Create(context.Background(), asActor(author), title.ID, &request.CreateReviewRequest{
		Score: 8,
		Text:  "Loved it",
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), otherTitle.ID, uuid.MustParse(created.ID))
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestReviewDelete_ModeratorMayDeleteOthers(t *testing.T) {
	svc, repo, title := newReviewFixture(t)
	owner := seedUser(t, repo, "owner", auth.RoleUser, false)
	mod := seedUser(t, repo, "mod", auth.RoleModerator, false)

	created, err := svc.Create(context.Background(), asActor(owner), title.ID, &request.CreateReviewRequest{
		Score: 3,
		Text:  "Spam",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), asActor(mod), title.ID, uuid.MustParse(created.ID)))

	_, err = svc.Get(context.Background(), title.ID, uuid.MustParse(created.ID))
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestReviewList_ResolvesAuthors(t *testing.T) {
	svc, repo, title := newReviewFixture(t)
	author := seedUser(t, repo, "reader", auth.RoleUser, false)

	_, err := svc.Create(context.Background(), asActor(author), title.ID, &request.CreateReviewRequest{
		Score: 10,
		Text:  "A masterpiece",
	})
	require.NoError(t, err)

	resp, err := svc.List(context.Background(), title.ID, &request.PaginatedRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	require.Equal(t, "reader", resp.Items[0].Author)
}
