package books

type ListBooksQuery struct {
	Limit     int     `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=500"`
	Offset    int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	AuthorID  *int    `query:"author_id" json:"author_id,omitempty" validate:"omitempty,min=1"`
	GenreID   *int    `query:"genre_id" json:"genre_id,omitempty" validate:"omitempty,min=1"`
	Search    *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
	Status    *string `query:"status" json:"status,omitempty" validate:"omitempty,oneof=all read unread abandoned"`
	Sort      *string `query:"sort" json:"sort,omitempty" validate:"omitempty,oneof=title author added finished"`
	Direction *string `query:"direction" json:"direction,omitempty" validate:"omitempty,oneof=asc desc"`
}

type CreateBookPayload struct {
	Title        string   `json:"title" validate:"required,max=300"`
	Author       *string  `json:"author,omitempty" validate:"omitempty,max=200"`
	Status       string   `json:"status" default:"to-read" validate:"oneof=to-read reading finished abandoned"`
	Rating       int      `json:"rating,omitempty" validate:"min=0,max=10"`
	StartedDate  *string  `json:"started_date,omitempty" validate:"omitempty,date"`
	FinishedDate *string  `json:"finished_date,omitempty" validate:"omitempty,date"`
	Link         *string  `json:"link,omitempty" validate:"omitempty,url"`
	Notes        *string  `json:"notes,omitempty" validate:"omitempty,max=10000"`
	Genres       []string `json:"genres,omitempty" validate:"omitempty,dive,max=100"`
}

type UpdateBookPayload struct {
	Title        *string  `json:"title,omitempty" validate:"omitempty,max=300"`
	Author       *string  `json:"author,omitempty" validate:"omitempty,max=200"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=to-read reading finished abandoned"`
	Rating       *int     `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	StartedDate  *string  `json:"started_date,omitempty" validate:"omitempty,date"`
	FinishedDate *string  `json:"finished_date,omitempty" validate:"omitempty,date"`
	Link         *string  `json:"link,omitempty" validate:"omitempty,url"`
	Notes        *string  `json:"notes,omitempty" validate:"omitempty,max=10000"`
	Genres       []string `json:"genres,omitempty" validate:"omitempty,dive,max=100"`
}
