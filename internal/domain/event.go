package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Header keys set on every OutputEvent.
const (
	HeaderLocation    = "location"
	HeaderFetchID     = "fetch_id"
	HeaderProcessedAt = "processed_at"
)

// NewOutputEvent serializes normalized data into a sink message keyed by the
// resolved location name. Each call gets a fresh fetch ID.
func NewOutputEvent(data NormalizedWeatherData) (OutputEvent, error) {
	value, err := json.Marshal(data)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize weather data: %w", err)
	}
	return OutputEvent{
		Key:   []byte(data.Location.Name),
		Value: value,
		Headers: map[string]string{
			HeaderLocation:    data.Location.Name,
			HeaderFetchID:     uuid.NewString(),
			HeaderProcessedAt: clock.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
