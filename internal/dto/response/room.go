package response

import "ticket-service/internal/data/entity"

type RoomResponse struct {
	Name     string `json:"name"`
	Rows     int    `json:"rows"`
	Columns  int    `json:"columns"`
	Capacity int    `json:"capacity"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		Name:     room.Name,
		Rows:     room.Rows,
		Columns:  room.Columns,
		Capacity: room.Capacity(),
	}
}
