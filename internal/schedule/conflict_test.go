package schedule

import (
	"errors"
	"testing"
	"time"

	"ticket-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", "2023-11-26 "+hhmm, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func slot(hhmm string, minutes int) Slot {
	return Slot{ID: uuid.New(), Start: at(hhmm), Length: time.Duration(minutes) * time.Minute}
}

func TestCheckEmptyTimetableAccepts(t *testing.T) {
	d := Check(slot("20:00", 130), nil)
	assert.Equal(t, Accept, d.Verdict)
	assert.Nil(t, d.Conflict)
	assert.NoError(t, d.Err())
}

func TestCheckAgainstSingleScreening(t *testing.T) {
	// Existing: 20:00-22:10, break until 22:20.
	existing := []Slot{slot("20:00", 130)}

	tests := []struct {
		name    string
		start   string
		minutes int
		want    Verdict
	}{
		{"same start", "20:00", 90, Extending},
		{"same end", "21:10", 60, Extending},
		{"identical", "20:00", 130, Extending},
		{"starts inside", "21:00", 30, Extending},
		{"starts inside running past end", "22:05", 30, Extending},
		{"ends inside", "19:30", 40, Extending},
		{"contains existing", "19:50", 160, Extending},
		{"starts at end, zero gap", "22:10", 30, BreakPeriod},
		{"starts during break", "22:15", 30, BreakPeriod},
		{"starts when break ends", "22:20", 30, Accept},
		{"starts after break", "22:30", 30, Accept},
		{"ends at existing start, zero gap", "19:00", 60, BreakPeriod},
		{"break reaches existing start", "18:55", 60, BreakPeriod},
		{"break ends exactly at existing start", "18:50", 60, Accept},
		{"well before", "10:00", 60, Accept},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Check(slot(tt.start, tt.minutes), existing)
			assert.Equal(t, tt.want, d.Verdict)
			if tt.want != Accept {
				require.NotNil(t, d.Conflict)
				assert.True(t, d.Conflict.Start.Equal(at("20:00")))
			}
		})
	}
}

func TestCheckBreakScenario(t *testing.T) {
	// The screening occupies 20:00-22:10 including its break.
	existing := []Slot{slot("20:00", 120)}

	assert.Equal(t, BreakPeriod, Check(slot("22:05", 130), existing).Verdict)
	assert.Equal(t, Accept, Check(slot("22:11", 130), existing).Verdict)
}

func TestCheckExtendingWinsOverBreak(t *testing.T) {
	// Break conflict with the first slot, overlap with the second.
	booked := []Slot{slot("18:00", 60), slot("19:30", 60)}

	d := Check(slot("19:05", 60), booked)
	assert.Equal(t, Extending, d.Verdict)
	require.NotNil(t, d.Conflict)
	assert.True(t, d.Conflict.Start.Equal(at("19:30")))
	assert.True(t, errors.Is(d.Err(), apperror.ErrExtending))
}

func TestCheckBreakPeriodError(t *testing.T) {
	d := Check(slot("21:05", 30), []Slot{slot("20:00", 60)})
	assert.Equal(t, BreakPeriod, d.Verdict)
	assert.True(t, errors.Is(d.Err(), apperror.ErrBreakPeriod))
	assert.False(t, errors.Is(d.Err(), apperror.ErrExtending))
}

func TestCheckSkipsItself(t *testing.T) {
	s := slot("20:00", 130)
	assert.Equal(t, Accept, Check(s, []Slot{s}).Verdict)

	// A distinct screening at the same instant still collides.
	twin := s
	twin.ID = uuid.New()
	assert.Equal(t, Extending, Check(twin, []Slot{s}).Verdict)
}

func TestCheckNilIDIsNeverSkipped(t *testing.T) {
	s := Slot{Start: at("20:00"), Length: time.Hour}
	assert.Equal(t, Extending, Check(s, []Slot{s}).Verdict)
}

func TestCheckRejectsSlotThatDoesNotEndAfterStart(t *testing.T) {
	booked := []Slot{slot("20:00", 120)}

	// 200M minutes wraps time.Duration negative.
	minutes := 200_000_000
	huge := Slot{ID: uuid.New(), Start: at("18:00"), Length: time.Duration(minutes) * time.Minute}
	require.False(t, huge.End().After(huge.Start))

	for _, c := range []Slot{huge, slot("21:00", 0), slot("23:00", -30)} {
		d := Check(c, booked)
		assert.Equal(t, Invalid, d.Verdict)
		assert.Nil(t, d.Conflict)
		assert.True(t, errors.Is(d.Err(), apperror.ErrInvalidSlot))
		assert.True(t, errors.Is(d.Err(), apperror.ErrValidation))
	}

	// Also caught when it is already part of a timetable.
	assert.True(t, errors.Is(Validate([]Slot{huge, slot("21:00", 60)}), apperror.ErrInvalidSlot))
}

func TestValidate(t *testing.T) {
	ok := []Slot{slot("10:00", 90), slot("11:40", 60), slot("13:00", 120)}
	assert.NoError(t, Validate(ok))

	bad := []Slot{slot("10:00", 90), slot("13:00", 120), slot("11:35", 60)}
	err := Validate(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrBreakPeriod))
}

func TestAcceptedSequenceKeepsInvariant(t *testing.T) {
	var booked []Slot
	start := at("08:00")
	lengths := []int{95, 120, 45, 130, 60, 88, 150, 30}

	// Try a booking every 5 minutes across the day; keep only accepted ones.
	for i := 0; i < 12*16; i++ {
		c := Slot{
			ID:     uuid.New(),
			Start:  start.Add(time.Duration(i*5) * time.Minute),
			Length: time.Duration(lengths[i%len(lengths)]) * time.Minute,
		}
		if Check(c, booked).Verdict == Accept {
			booked = append(booked, c)
		}
	}

	require.NotEmpty(t, booked)
	require.NoError(t, Validate(booked))
	for i := range booked {
		for j := range booked {
			if i == j {
				continue
			}
			a, b := booked[i], booked[j]
			if a.Start.Before(b.Start) {
				assert.False(t, b.Start.Before(a.BreakEnd()), "gap between %s and %s", a.Start, b.Start)
			}
		}
	}
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "accepted", Accept.String())
	assert.Equal(t, "extending", Extending.String())
	assert.Equal(t, "break_period", BreakPeriod.String())
	assert.Equal(t, "invalid", Invalid.String())
}
