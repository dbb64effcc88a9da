package request

type RoomRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Rows    int    `json:"rows" validate:"gte=1"`
	Columns int    `json:"columns" validate:"gte=1"`
}

type RoomUpdateRequest struct {
	Rows    int `json:"rows" validate:"gte=1"`
	Columns int `json:"columns" validate:"gte=1"`
}
