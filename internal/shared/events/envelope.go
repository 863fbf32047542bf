package events

import (
	"encoding/json"
	"fmt"
	"time"

	contractsv1 "meridian/contracts/gen/events/v1"
)

// Envelope is the shared event shape used in Meridian.
// It aliases the canonical versioned contract so adapters never hand-roll
// divergent envelopes.
type Envelope = contractsv1.Envelope

// New builds a v1 envelope with the payload marshalled into Data. The
// partition key keeps all events for one entity on one partition.
func New(
	eventID string,
	eventType string,
	sourceService string,
	occurredAt time.Time,
	partitionKeyPath string,
	partitionKey string,
	payload any,
) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal event payload: %w", err)
	}
	return Envelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    sourceService,
		SchemaVersion:    1,
		PartitionKeyPath: partitionKeyPath,
		PartitionKey:     partitionKey,
		Data:             data,
	}, nil
}
