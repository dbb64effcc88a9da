package request

// Length is in minutes, capped at entity.MaxMovieLength.
type MovieRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	Genre  string `json:"genre" validate:"required,max=100"`
	Length int    `json:"length" validate:"gte=1,lte=10080"`
}

// MovieUpdateRequest: name comes from the URL and is not changeable.
type MovieUpdateRequest struct {
	Genre  string `json:"genre" validate:"required,max=100"`
	Length int    `json:"length" validate:"gte=1,lte=10080"`
}
