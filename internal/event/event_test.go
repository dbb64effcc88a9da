package event

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreeningEventJSON(t *testing.T) {
	ev := NewScreeningEvent(ScreeningBooked, "Sátántangó", "Kamra", "2023-11-26 20:00", "2023-11-26 22:10")

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "screening.booked", got["type"])
	assert.Equal(t, "Sátántangó", got["movie"])
	assert.Equal(t, "Kamra", got["room"])
	assert.Equal(t, "2023-11-26 20:00", got["starts_at"])
	assert.Equal(t, "2023-11-26 22:10", got["ends_at"])
	assert.NotEmpty(t, got["occurred_at"])
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), ScreeningEvent{Type: ScreeningCancelled}))
	assert.NoError(t, p.Close())
}
