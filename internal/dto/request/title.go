package request

type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50"`
	Genres      []string `json:"genre" validate:"omitempty,dive,max=50"`
}

type UpdateTitleRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=256"`
	Year        *int     `json:"year,omitempty"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,max=50"`
	Genres      []string `json:"genre,omitempty" validate:"omitempty,dive,max=50"`
}

// TitleListFilter carries the query-string filters for title listings
type TitleListFilter struct {
	Category string
	Genre    string
	Year     int
	Name     string
}
