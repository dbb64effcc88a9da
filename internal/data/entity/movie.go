package entity

import "time"

// MaxMovieLength caps Length at one week of minutes, far below the
// point where Duration would overflow.
const MaxMovieLength = 7 * 24 * 60

// Movie is identified by its Name; Genre and Length are mutable.
type Movie struct {
	Base
	Name   string `db:"name"`
	Genre  string `db:"genre"`
	Length int    `db:"length"` // minutes
}

func (m *Movie) Duration() time.Duration {
	return time.Duration(m.Length) * time.Minute
}
