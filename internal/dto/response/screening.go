package response

import (
	"ticket-service/internal/data/entity"
	"ticket-service/pkg/utils"
)

// ScreeningResponse pairs a screening with its resolved movie and room.
type ScreeningResponse struct {
	Movie    MovieResponse `json:"movie"`
	Room     string        `json:"room"`
	StartsAt string        `json:"starts_at"`
}

// TimetableEntry is one row of a room's agenda.
type TimetableEntry struct {
	Movie       string `json:"movie"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	BreakEndsAt string `json:"break_ends_at"`
}

type TimetableResponse struct {
	Room       string           `json:"room"`
	Screenings []TimetableEntry `json:"screenings"`
}

func ScreeningToResponse(s *entity.Screening, movie *entity.Movie, room *entity.Room) ScreeningResponse {
	return ScreeningResponse{
		Movie:    MovieToResponse(movie),
		Room:     room.Name,
		StartsAt: utils.FormatScreeningTime(s.StartsAt),
	}
}
