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

func newCommentFixture(t *testing.T) (CommentService, *repository.Repository, *entity.Title, *entity.Review) {
	t.Helper()
	repo := newFakeRepository()
	svc := NewCommentService(repo, zap.NewNop())

	now := time.Now()
	title := &entity.Title{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "Solaris",
		Year:         1961,
	}
	require.NoError(t, repo.Title.Create(context.Background(), title))

	reviewer := seedUser(t, repo, "reviewer", auth.RoleUser, false)
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		TitleID:    title.ID,
		AuthorID:   reviewer.ID,
		Score:      9,
		Text:       "Unsettling and brilliant",
	}
	require.NoError(t, repo.Review.Create(context.Background(), review))

	return svc, repo, title, review
}

func TestCommentCreate(t *testing.T) {
	svc, repo, title, review := newCommentFixture(t)
	commenter := seedUser(t, repo, "commenter", auth.RoleUser, false)

	resp, err := svc.Create(context.Background(), asActor(commenter), title.ID, review.ID, &request.CreateCommentRequest{
		Text: "Couldn't agree more",
	})
	require.NoError(t, err)
	require.Equal(t, "commenter", resp.Author)
	require.Equal(t, review.ID.String(), resp.ReviewID)
}

func TestCommentCreate_ReviewUnderWrongTitle(t *testing.T) {
	svc, repo, _, review := newCommentFixture(t)
	commenter := seedUser(t, repo, "commenter", auth.RoleUser, false)

	_, err := svc.Create(context.Background(), asActor(commenter), uuid.New(), review.ID, &request.CreateCommentRequest{
		Text: "Lost",
	})
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCommentUpdate_OwnerOnly(t *testing.T) {
	svc, repo, title, review := newCommentFixture(t)
	owner := seedUser(t, repo, "owner", auth.RoleUser, false)
	stranger := seedUser(t, repo, "stranger", auth.RoleUser, false)

	created, err := svc.Create(context.Background(), asActor(owner), title.ID, review.ID, &request.CreateCommentRequest{
		Text: "First thought",
	})
	require.NoError(t, err)
	commentID := uuid.MustParse(created.ID)

	newText := "Second thought"
	_, err = svc.Update(context.Background(), asActor(stranger), title.ID, review.ID, commentID, &request.UpdateCommentRequest{
		Text: &newText,
	})
	require.True(t, apperr.IsKind(err, apperr.KindPermission))

	updated, err := svc.Update(context.Background(), asActor(owner), title.ID, review.ID, commentID, &request.UpdateCommentRequest{
		Text: &newText,
	})
	require.NoError(t, err)
	require.Equal(t, newText, updated.Text)
}

func TestCommentDelete_AdminMayDeleteOthers(t *testing.T) {
	svc, repo, title, review := newCommentFixture(t)
	owner := seedUser(t, repo, "owner", auth.RoleUser, false)
	admin := seedUser(t, repo, "admin", auth.RoleAdmin, false)

	created, err := svc.Create(context.Background(), asActor(owner), title.ID, review.ID, &request.CreateCommentRequest{
		Text: "Soon gone",
	})
	require.NoError(t, err)
	commentID := uuid.MustParse(created.ID)

	require.NoError(t, svc.Delete(context.Background(), asActor(admin), title.ID, review.ID, commentID))

	_, err = svc.Get(context.Background(), title.ID, review.ID, commentID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCommentList(t *testing.T) {
	svc, repo, title, review := newCommentFixture(t)
	commenter := seedUser(t, repo, "commenter", auth.RoleUser, false)

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Create(context.Background(), asActor(commenter), title.ID, review.ID, &request.CreateCommentRequest{
			Text: text,
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), title.ID, review.ID, &request.PaginatedRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.Total)
	require.Len(t, resp.Items, 3)
}
