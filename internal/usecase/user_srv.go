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

type UserService interface {
	List(ctx context.Context, actor *auth.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Get(ctx context.Context, actor *auth.Actor, username string) (*response.UserResponse, error)
	Create(ctx context.Context, actor *auth.Actor, req *request.CreateUserRequest) (*response.UserResponse, error)
	Update(ctx context.Context, actor *auth.Actor, username string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, actor *auth.Actor, username string) error
	GetMe(ctx context.Context, actor *auth.Actor) (*response.UserResponse, error)
	UpdateMe(ctx context.Context, actor *auth.Actor, req *request.UpdateUserRequest) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) List(ctx context.Context, actor *auth.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if !auth.Users.Allows(actor, auth.ActionRead, nil) {
		return nil, apperr.Forbidden()
	}

	req.Normalize()
	offset := utils.CalculateOffset(req.Page, req.PerPage)

	users, err := us.userRepo.FindAll(ctx, req.Search, req.PerPage, offset)
	if err != nil {
		us.log.Error("Failed to list users", zap.Error(err))
		return nil, apperr.Internal("failed to list users", err)
	}

	total, err := us.userRepo.CountAll(ctx, req.Search)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, apperr.Internal("failed to count users", err)
	}

	items := make([]response.UserResponse, len(users))
	for i, user := range users {
		items[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (us *userService) Get(ctx context.Context, actor *auth.Actor, username string) (*response.UserResponse, error) {
	if !auth.Users.Allows(actor, auth.ActionRead, nil) {
		return nil, apperr.Forbidden()
	}

	user, err := us.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Create(ctx context.Context, actor *auth.Actor, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if !auth.Users.Allows(actor, auth.ActionCreate, nil) {
		return nil, apperr.Forbidden()
	}

	if err := us.checkUsernameFree(ctx, req.Username, uuid.Nil); err != nil {
		return nil, err
	}
	if err := us.checkEmailFree(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	role := auth.Role(req.Role)
	if req.Role == "" {
		role = auth.RoleUser
	}

	now := time.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
		IsActive:  true,
		Confirmed: true, // admin-created accounts skip the signup flow
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, err
		}
		us.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, apperr.Internal("failed to create user", err)
	}

	us.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("actor", actor.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Update(ctx context.Context, actor *auth.Actor, username string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if !auth.Users.Allows(actor, auth.ActionUpdate, nil) {
		return nil, apperr.Forbidden()
	}

	target, err := us.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return us.applyUpdate(ctx, target, req)
}

// Delete enforces the destroy tie-break: superusers may delete anyone,
// admins only non-admin targets.
func (us *userService) Delete(ctx context.Context, actor *auth.Actor, username string) error {
	if !auth.Users.Allows(actor, auth.ActionDelete, nil) {
		return apperr.Forbidden()
	}

	target, err := us.findByUsername(ctx, username)
	if err != nil {
		return err
	}

	if !auth.CanDeleteUser(actor, target.Role, target.IsSuperuser) {
		us.log.Warn("User delete refused",
			zap.String("actor", actor.Username),
			zap.String("target", target.Username))
		return apperr.Forbidden()
	}

	if err := us.userRepo.Delete(ctx, target.ID); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("username", username))
		return apperr.Internal("failed to delete user", err)
	}

	us.log.Info("User deleted",
		zap.String("target", target.Username),
		zap.String("actor", actor.Username))
	return nil
}

func (us *userService) GetMe(ctx context.Context, actor *auth.Actor) (*response.UserResponse, error) {
	if actor == nil {
		return nil, apperr.Forbidden()
	}

	user, err := us.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		us.log.Error("Failed to load own profile", zap.Error(err), zap.String("user_id", actor.ID.String()))
		return nil, apperr.Internal("failed to load profile", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateMe lets any authenticated user edit their own record. The role
// field is silently stripped: self-service never escalates.
func (us *userService) UpdateMe(ctx context.Context, actor *auth.Actor, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if actor == nil {
		return nil, apperr.Forbidden()
	}

	user, err := us.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		us.log.Error("Failed to load own profile", zap.Error(err), zap.String("user_id", actor.ID.String()))
		return nil, apperr.Internal("failed to load profile", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}

	req.StripRole()
	return us.applyUpdate(ctx, user, req)
}

// ==================== HELPER METHODS ====================

func (us *userService) findByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("username", username))
		return nil, apperr.Internal("failed to find user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

// checkUsernameFree fails with a Conflict unless username is unused or
// held by selfID.
func (us *userService) checkUsernameFree(ctx context.Context, username string, selfID uuid.UUID) error {
	existing, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		us.log.Error("Failed to check username", zap.Error(err), zap.String("username", username))
		return apperr.Internal("failed to check username", err)
	}
	if existing != nil && existing.ID != selfID {
		return apperr.Conflict("username", "This username is already taken")
	}
	return nil
}

func (us *userService) checkEmailFree(ctx context.Context, email string, selfID uuid.UUID) error {
	existing, err := us.userRepo.FindByEmail(ctx, email)
	if err != nil {
		us.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return apperr.Internal("failed to check email", err)
	}
	if existing != nil && existing.ID != selfID {
		return apperr.Conflict("email", "This email is already in use")
	}
	return nil
}

func (us *userService) applyUpdate(ctx context.Context, target *entity.User, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if req.Username != nil && *req.Username != target.Username {
		if err := us.checkUsernameFree(ctx, *req.Username, target.ID); err != nil {
			return nil, err
		}
		target.Username = *req.Username
	}
	if req.Email != nil && *req.Email != target.Email {
		if err := us.checkEmailFree(ctx, *req.Email, target.ID); err != nil {
			return nil, err
		}
		target.Email = *req.Email
	}
	if req.FirstName != nil {
		target.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		target.LastName = *req.LastName
	}
	if req.Bio != nil {
		target.Bio = *req.Bio
	}
	if req.Role != nil {
		target.Role = auth.Role(*req.Role)
	}
	target.UpdatedAt = time.Now()

	if err := us.userRepo.Update(ctx, target); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, err
		}
		us.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", target.ID.String()))
		return nil, apperr.Internal("failed to update user", err)
	}

	resp := response.UserToResponse(target)
	return &resp, nil
}
