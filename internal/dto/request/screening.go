package request

// ScreeningRequest identifies a screening by movie, room and start time.
// StartsAt uses the "2006-01-02 15:04" layout in the server's local zone.
type ScreeningRequest struct {
	Movie    string `json:"movie" validate:"required"`
	Room     string `json:"room" validate:"required"`
	StartsAt string `json:"starts_at" validate:"required,datetime=2006-01-02 15:04"`
}
