package wanted

type CreateWantedBookPayload struct {
	Title  string  `json:"title" validate:"required,max=300"`
	Author *string `json:"author,omitempty" validate:"omitempty,max=200"`
}

type ListWantedBooksQuery struct {
	Limit    int  `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=500"`
	Offset   int  `query:"offset" json:"offset,omitempty" validate:"min=0"`
	AuthorID *int `query:"author_id" json:"author_id,omitempty" validate:"omitempty,min=1"`
}

type UpdateWantedBookPayload struct {
	Title  *string `json:"title,omitempty" validate:"omitempty,max=300"`
	Author *string `json:"author,omitempty" validate:"omitempty,max=200"`
}
