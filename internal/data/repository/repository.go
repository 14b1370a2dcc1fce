package repository

import (
	"errors"

	"content-review/pkg/apperr"
	"content-review/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Repository struct {
	User             UserRepository
	Session          SessionRepository
	ConfirmationCode ConfirmationCodeRepository
	Category         CategoryRepository
	Genre            GenreRepository
	Title            TitleRepository
	TitleGenre       TitleGenreRepository
	Review           ReviewRepository
	Comment          CommentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:             NewUserRepository(db, log),
		Session:          NewSessionRepository(db, log),
		ConfirmationCode: NewConfirmationCodeRepository(db, log),
		Category:         NewCategoryRepository(db, log),
		Genre:            NewGenreRepository(db, log),
		Title:            NewTitleRepository(db, log),
		TitleGenre:       NewTitleGenreRepository(db, log),
		Review:           NewReviewRepository(db, log),
		Comment:          NewCommentRepository(db, log),
	}
}

// translateUnique maps a unique-constraint violation to the Conflict error
// for its field. The pre-checks in the services race against concurrent
// writers; this is the atomic fallback at commit time.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}

	switch pgErr.ConstraintName {
	case "users_username_key":
		return apperr.Conflict("username", "This username is already taken")
	case "users_email_key":
		return apperr.Conflict("email", "This email is already in use")
	case "categories_slug_key":
		return apperr.Conflict("slug", "This category slug is already in use")
	case "genres_slug_key":
		return apperr.Conflict("slug", "This genre slug is already in use")
	case "uniq_review_title_author":
		return apperr.Conflict("title", "You have already reviewed this title")
	case "confirmation_codes_user_id_key":
		return apperr.Conflict("user", "A confirmation code already exists for this user")
	}

	return apperr.Conflict("", "Duplicate value for "+pgErr.ConstraintName)
}
