package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingPayload struct {
	ProductID string  `json:"productId"`
	Rating    int     `json:"rating"`
	Average   float64 `json:"average"`
}

func TestNewEvent_PopulatesEnvelope(t *testing.T) {
	payload := ratingPayload{ProductID: "prod-1", Rating: 5, Average: 4.5}

	ev, err := NewEvent("catalog.rating.created", "prod-1", "rating", "catalog", payload)
	require.NoError(t, err)

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "catalog.rating.created", ev.EventType)
	assert.Equal(t, "prod-1", ev.AggregateID)
	assert.Equal(t, "rating", ev.AggregateType)
	assert.Equal(t, "catalog", ev.Source)
	assert.Equal(t, 1, ev.Version)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestEvent_RoundTrip(t *testing.T) {
	payload := ratingPayload{ProductID: "prod-2", Rating: 3, Average: 3.0}
	ev, err := NewEvent("catalog.rating.created", "prod-2", "rating", "catalog", payload)
	require.NoError(t, err)
	ev.WithCorrelationID("corr-1")

	raw, err := ev.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ev.EventID, decoded.EventID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)

	var got ratingPayload
	require.NoError(t, decoded.UnmarshalData(&got))
	assert.Equal(t, payload, got)
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("catalog.rating.created", "prod-3", "rating", "catalog", make(chan int))
	assert.Error(t, err)
}
