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

func newUserFixture() (UserService, *repository.Repository) {
	repo := newFakeRepository()
	return NewUserService(repo.User, zap.NewNop()), repo
}

func seedUser(t *testing.T, repo *repository.Repository, username string, role auth.Role, super bool) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Username:     username,
		Email:        username + "@example.com",
		Role:         role,
		IsSuperuser:  super,
		IsActive:     true,
		Confirmed:    true,
	}
	require.NoError(t, repo.User.Create(context.Background(), user))
	return user
}

func asActor(user *entity.User) *auth.Actor {
	return &auth.Actor{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Superuser: user.IsSuperuser,
	}
}

func TestUserList_AdminOnly(t *testing.T) {
	svc, repo := newUserFixture()
	admin := seedUser(t, repo, "admin", auth.RoleAdmin, false)
	plain := seedUser(t, repo, "plain", auth.RoleUser, false)
	mod := seedUser(t, repo, "mod", auth.RoleModerator, false)

	_, err := svc.List(context.Background(), nil, &request.PaginatedRequest{})
	require.True(t, apperr.IsKind(err, apperr.KindPermission))

	_, err = svc.List(context.Background(), asActor(plain), &request.PaginatedRequest{})
	require.True(t, apperr.IsKind(err, apperr.KindPermission))

	_, err = svc.List(context.Background(), asActor(mod), &request.PaginatedRequest{})
	require.True(t, apperr.IsKind(err, apperr.KindPermission))

	resp, err := svc.List(context.Background(), asActor(admin), &request.PaginatedRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(3), resp.Total)
}

func TestUserCreate_DefaultsToUserRole(t *testing.T) {
	svc, repo := newUserFixture()
	admin := seedUser(t, repo, "admin", auth.RoleAdmin, false)

	resp, err := svc.Create(context.Background(), asActor(admin), &request.CreateUserRequest{
		Username: "fresh",
		Email:    "fresh@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, auth.RoleUser, resp.Role)

	// admin-created accounts can authenticate without the signup flow
	user, _ := repo.User.FindByUsername(context.Background(), "fresh")
	require.True(t, user.Confirmed)
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	svc, repo := newUserFixture()
	admin := seedUser(t, repo, "admin", auth.RoleAdmin, false)
	seedUser(t, repo, "taken", auth.RoleUser, false)

	_, err := svc.Create(context.Background(), asActor(admin), &request.CreateUserRequest{
		Username: "taken",
		Email:    "fresh@example.com",
	})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
	require.Equal(t, "username", apperr.FieldOf(err))
}

func TestUserDelete_TieBreak(t *testing.T) {
	svc, repo := newUserFixture()
	admin := seedUser(t, repo, "admin", auth.RoleAdmin, false)
	otherAdmin := seedUser(t, repo, "admin2", auth.RoleAdmin, false)
	super := seedUser(t, repo, "root", auth.RoleUser, true)
	plain := seedUser(t, repo, "plain", auth.RoleUser, false)

	// admin may not delete a fellow admin
	err := svc.Delete(context.Background(), asActor(admin), otherAdmin.Username)
	require.True(t, apperr.IsKind(err, apperr.KindPermission))

	// nor a superuser
	err = svc.Delete(context.Background(), asActor(admin), super.Username)
	require.True(t, apperr.IsKind(err, apperr.KindPermission))

	// but any regular account is fair game
	require.NoError(t, svc.Delete(context.Background(), asActor(admin), plain.Username))

	// a superuser may delete an admin
	require.NoError(t, svc.Delete(context.Background(), asActor(super), otherAdmin.Username))
}

func TestUserDelete_UnknownTarget(t *testing.T) {
	svc, repo := newUserFixture()
	admin := seedUser(t, repo, "admin", auth.RoleAdmin, false)

	err := svc.Delete(context.Background(), asActor(admin), "ghost")
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateMe_StripsRole(t *testing.T) {
	svc, repo := newUserFixture()
	plain := seedUser(t, repo, "plain", auth.RoleUser, false)

	role := "admin"
	bio := "still just a reader"
	resp, err := svc.UpdateMe(context.Background(), asActor(plain), &request.UpdateUserRequest{
		Role: &role,
		Bio:  &bio,
	})
	require.NoError(t, err)
	require.Equal(t, auth.RoleUser, resp.Role)
	require.Equal(t, bio, resp.Bio)
}

func TestUpdate_AdminChangesRole(t *testing.T) {
	svc, repo := newUserFixture()
	admin := seedUser(t, repo, "admin", auth.RoleAdmin, false)
	plain := seedUser(t, repo, "plain", auth.RoleUser, false)

	role := "moderator"
	resp, err := svc.Update(context.Background(), asActor(admin), plain.Username, &request.UpdateUserRequest{
		Role: &role,
	})
	require.NoError(t, err)
	require.Equal(t, auth.RoleModerator, resp.Role)
}

func TestUpdate_UsernameCollision(t *testing.T) {
	svc, repo := newUserFixture()
	admin := seedUser(t, repo, "admin", auth.RoleAdmin, false)
	plain := seedUser(t, repo, "plain", auth.RoleUser, false)
	seedUser(t, repo, "taken", auth.RoleUser, false)

	taken := "taken"
	_, err := svc.Update(context.Background(), asActor(admin), plain.Username, &request.UpdateUserRequest{
		Username: &taken,
	})
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestGetMe_RequiresActor(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.GetMe(context.Background(), nil)
	require.True(t, apperr.IsKind(err, apperr.KindPermission))
}
