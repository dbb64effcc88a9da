// Package schedule decides whether a screening fits into a room's timetable.
//
// Every screening occupies [start, end) and is followed by a fixed break of
// BreakDuration during which no other screening in the same room may start.
// The checks here are pure: no I/O, no locking, no clock.
package schedule

import (
	"fmt"
	"time"

	"ticket-service/pkg/apperror"

	"github.com/google/uuid"
)

// BreakDuration is the mandatory gap after every screening.
const BreakDuration = 10 * time.Minute

// Slot is the interval view of a screening.
type Slot struct {
	ID     uuid.UUID
	Start  time.Time
	Length time.Duration
}

func (s Slot) End() time.Time      { return s.Start.Add(s.Length) }
func (s Slot) BreakEnd() time.Time { return s.End().Add(BreakDuration) }

// Verdict is the outcome of a check.
type Verdict int

const (
	Accept Verdict = iota
	Extending
	BreakPeriod
	Invalid
)

func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accepted"
	case Extending:
		return "extending"
	case BreakPeriod:
		return "break_period"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Decision carries the verdict and the booked slot that caused a rejection.
// Conflict is nil for Accept and Invalid.
type Decision struct {
	Verdict  Verdict
	Conflict *Slot
}

// Err returns nil on Accept and the matching typed error otherwise.
func (d Decision) Err() error {
	switch d.Verdict {
	case Extending:
		return apperror.ErrExtending
	case BreakPeriod:
		return apperror.ErrBreakPeriod
	case Invalid:
		return apperror.ErrInvalidSlot
	default:
		return nil
	}
}

// Check evaluates candidate against every slot already booked in its room.
//
// A candidate that does not end after it starts is Invalid. Overlap or boundary coincidence with any slot rejects with Extending, even
// if an earlier slot only violated a break. Otherwise a break violation
// rejects with BreakPeriod. A booked slot sharing the candidate's non-nil ID
// is the candidate itself and is skipped. Touching intervals (one ends
// exactly where the other starts) fall inside the break and yield
// BreakPeriod, not Extending.
func Check(candidate Slot, booked []Slot) Decision {
	if !candidate.End().After(candidate.Start) {
		return Decision{Verdict: Invalid}
	}

	var breakConflict *Slot

	for i := range booked {
		existing := booked[i]
		if candidate.ID != uuid.Nil && existing.ID == candidate.ID {
			continue
		}

		if overlaps(candidate, existing) || coincides(candidate, existing) {
			return Decision{Verdict: Extending, Conflict: &existing}
		}

		if breakConflict == nil && (endsIntoBreak(candidate, existing) || startsInBreak(candidate, existing)) {
			breakConflict = &existing
		}
	}

	if breakConflict != nil {
		return Decision{Verdict: BreakPeriod, Conflict: breakConflict}
	}
	return Decision{Verdict: Accept}
}

// Validate checks a whole timetable pairwise and returns the first conflict.
func Validate(slots []Slot) error {
	for i := range slots {
		d := Check(slots[i], slots[i+1:])
		if d.Verdict == Invalid {
			return fmt.Errorf("slot starting %s: %w", slots[i].Start.Format(time.RFC3339), d.Err())
		}
		if d.Verdict != Accept {
			return fmt.Errorf("slot starting %s conflicts with slot starting %s: %w",
				slots[i].Start.Format(time.RFC3339), d.Conflict.Start.Format(time.RFC3339), d.Err())
		}
	}
	return nil
}

// overlaps: c starts or ends strictly inside e, or c strictly contains e.
func overlaps(c, e Slot) bool {
	return between(c.Start, e.Start, e.End()) ||
		between(c.End(), e.Start, e.End()) ||
		(e.Start.After(c.Start) && e.End().Before(c.End()))
}

func coincides(c, e Slot) bool {
	return c.Start.Equal(e.Start) || c.End().Equal(e.End())
}

// endsIntoBreak: c runs before e, but c's break still reaches e's start.
func endsIntoBreak(c, e Slot) bool {
	return !c.End().After(e.Start) && c.BreakEnd().After(e.Start)
}

// startsInBreak: c starts after e ended, before e's break elapsed.
func startsInBreak(c, e Slot) bool {
	return !c.Start.Before(e.End()) && c.Start.Before(e.BreakEnd())
}

func between(t, start, end time.Time) bool {
	return t.After(start) && t.Before(end)
}
