package repository

import (
	"context"
	"fmt"

	"content-review/internal/data/entity"
	"content-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ConfirmationCodeRepository interface {
	Upsert(ctx context.Context, code *entity.ConfirmationCode) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ConfirmationCode, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type confirmationCodeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewConfirmationCodeRepository(db database.PgxIface, log *zap.Logger) ConfirmationCodeRepository {
	return &confirmationCodeRepository{
		db:  db,
		log: log.With(zap.String("repository", "confirmation_code")),
	}
}

// Upsert writes the outstanding code for a user, replacing any prior one.
// One row per user: a re-signup invalidates the previous code atomically.
func (r *confirmationCodeRepository) Upsert(ctx context.Context, code *entity.ConfirmationCode) error {
	query := `
		INSERT INTO confirmation_codes (id, user_id, code_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET code_hash = EXCLUDED.code_hash, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		code.ID,
		code.UserID,
		code.CodeHash,
		code.CreatedAt,
		code.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert confirmation code",
			zap.Error(err),
			zap.String("user_id", code.UserID.String()),
		)
		return fmt.Errorf("upsert confirmation code for user %s: %w", code.UserID.String(), err)
	}

	return nil
}

func (r *confirmationCodeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.ConfirmationCode, error) {
	query := `
		SELECT id, user_id, code_hash, created_at, updated_at
		FROM confirmation_codes
		WHERE user_id = $1
	`

	var code entity.ConfirmationCode
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&code.ID,
		&code.UserID,
		&code.CodeHash,
		&code.CreatedAt,
		&code.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find confirmation code",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find confirmation code for user %s: %w", userID.String(), err)
	}

	return &code, nil
}

func (r *confirmationCodeRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM confirmation_codes WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		r.log.Error("Failed to delete confirmation code",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("delete confirmation code for user %s: %w", userID.String(), err)
	}

	return nil
}
