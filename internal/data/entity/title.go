package entity

import (
	"github.com/google/uuid"
)

type Title struct {
	BaseNoDelete
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`

	// Rating is the average of associated review scores, nil when the
	// title has no reviews. Computed on read, never stored.
	Rating *float64 `db:"rating"`
}
