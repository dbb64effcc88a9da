package entity

// Room is identified by its Name. Rows and Columns are capacity bookkeeping only.
type Room struct {
	Base
	Name    string `db:"name"`
	Rows    int    `db:"row_count"`
	Columns int    `db:"column_count"`
}

func (r *Room) Capacity() int {
	return r.Rows * r.Columns
}
