package response

import "ticket-service/internal/data/entity"

type MovieResponse struct {
	Name   string `json:"name"`
	Genre  string `json:"genre"`
	Length int    `json:"length"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		Name:   movie.Name,
		Genre:  movie.Genre,
		Length: movie.Length,
	}
}
