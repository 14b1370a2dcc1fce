package usecase

import (
	"context"
	"fmt"
	"time"

	"content-review/internal/auth"
	"content-review/internal/data/entity"
	"content-review/internal/data/repository"
	"content-review/internal/dto/request"
	"content-review/internal/dto/response"
	"content-review/pkg/apperr"
	"content-review/pkg/mailer"
	"content-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
	Signout(ctx context.Context) error
}

type authService struct {
	repo   *repository.Repository // userRepo, confirmationCodeRepo & sessionRepo
	config *utils.Config
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Signup registers a fresh (username, email) pair or, for an exact repeat
// of an existing pair, regenerates the confirmation code. A pair that
// half-matches an existing user is rejected: username and email must
// jointly identify at most one account.
func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	// 1. Resolve both halves of the pair
	byUsername, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, apperr.Internal("failed to check username", err)
	}

	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, apperr.Internal("failed to check email", err)
	}

	// 2. Pair consistency
	if byUsername != nil && byUsername.Email != req.Email {
		return nil, apperr.Conflict("username", "This username is already taken")
	}
	if byEmail != nil && byEmail.Username != req.Username {
		return nil, apperr.Conflict("email", "This email is already in use")
	}

	// 3. Existing pair resends; a fresh pair creates the account
	user := byUsername
	if user == nil {
		now := time.Now()
		user = &entity.User{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username: req.Username,
			Email:    req.Email,
			Role:     auth.RoleUser,
			IsActive: true,
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			if apperr.KindOf(err) == apperr.KindConflict {
				// lost the race against a concurrent signup
				return nil, err
			}
			s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
			return nil, apperr.Internal("failed to create account", err)
		}

		s.log.Info("User registered",
			zap.String("user_id", user.ID.String()),
			zap.String("username", user.Username))
	}

	// 4. Fresh code replaces any outstanding one
	code := utils.GenerateConfirmationCode()
	if err := s.storeConfirmationCode(ctx, user.ID, code); err != nil {
		return nil, err
	}

	// 5. Dispatch out of band. A delivery failure means the signup is not
	// acknowledged; the overwritten code is simply replaced on retry.
	subject := "Your confirmation code"
	body := fmt.Sprintf("Your confirmation code is %s", code)
	if err := s.mail.Send(ctx, user.Email, subject, body); err != nil {
		s.log.Error("Failed to deliver confirmation code",
			zap.Error(err),
			zap.String("email", user.Email))
		return nil, apperr.Delivery(err)
	}

	s.log.Info("Confirmation code dispatched",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.SignupResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Token exchanges a (username, confirmation code) pair for an access
// credential. The code is single-use: a successful exchange consumes it.
func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	// 1. Find user
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for token", zap.Error(err), zap.String("username", req.Username))
		return nil, apperr.Internal("failed to find user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}

	// 2. Find outstanding code
	stored, err := s.repo.ConfirmationCode.FindByUserID(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to find confirmation code", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal("failed to find confirmation code", err)
	}
	if stored == nil {
		return nil, apperr.Validation("confirmation_code", "Confirmation code does not exist")
	}

	// 3. Compare
	if !utils.CheckSecretHash(req.ConfirmationCode, stored.CodeHash) {
		s.log.Warn("Confirmation code mismatch", zap.String("username", req.Username))
		return nil, apperr.Validation("confirmation_code", "Invalid confirmation code")
	}

	// 4. Confirm the account on first successful exchange
	if !user.Confirmed {
		user.Confirmed = true
		user.UpdatedAt = time.Now()
		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Error("Failed to confirm user", zap.Error(err), zap.String("user_id", user.ID.String()))
			return nil, apperr.Internal("failed to confirm account", err)
		}
	}

	// 5. Consume the code
	if err := s.repo.ConfirmationCode.DeleteByUserID(ctx, user.ID); err != nil {
		s.log.Warn("Failed to consume confirmation code",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		// token is still issued; the stale code is replaced on next signup
	}

	// 6. Issue credential
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Internal("failed to issue token", err)
	}

	s.log.Info("Token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.TokenResponse{
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) storeConfirmationCode(ctx context.Context, userID uuid.UUID, code string) error {
	hash, err := utils.HashSecret(code)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return apperr.Internal("failed to generate confirmation code", err)
	}

	now := time.Now()
	record := &entity.ConfirmationCode{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		CodeHash:  hash,
		UpdatedAt: now,
	}

	if err := s.repo.ConfirmationCode.Upsert(ctx, record); err != nil {
		s.log.Error("Failed to store confirmation code",
			zap.Error(err), zap.String("user_id", userID.String()))
		return apperr.Internal("failed to store confirmation code", err)
	}

	return nil
}

// Signout revokes the session behind the presented bearer token. The token
// keeps answering 401 afterwards even though it has not expired.
func (s *authService) Signout(ctx context.Context) error {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok {
		return apperr.Forbidden()
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return apperr.Internal("failed to revoke session", err)
	}

	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	expiry := time.Duration(s.config.Session.ExpiryHours) * time.Hour
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: time.Now().Add(expiry),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
