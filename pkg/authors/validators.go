package authors

type CreateAuthorPayload struct {
	Name string `json:"name" validate:"required,max=200"`
}

type ListAuthorsQuery struct {
	Limit  int     `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=500"`
	Offset int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
	Sort   *string `query:"sort" json:"sort,omitempty" validate:"omitempty,oneof=name sort_name"`
}

type UpdateAuthorPayload struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=200"`
}
