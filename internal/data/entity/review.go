package entity

import (
	"github.com/google/uuid"
)

// Review belongs to exactly one title and one author; at most one review
// per (title, author) pair, enforced by a unique constraint.
type Review struct {
	BaseSimple
	TitleID  uuid.UUID `db:"title_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Score    int       `db:"score"` // 1-10
	Text     string    `db:"text"`
}
