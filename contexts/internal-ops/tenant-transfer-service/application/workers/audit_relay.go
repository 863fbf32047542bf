package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "meridian/contexts/internal-ops/tenant-transfer-service/application"
	"meridian/contexts/internal-ops/tenant-transfer-service/ports"
)

// AuditRelay drains pending transfer outbox rows and publishes their
// envelopes on the event bus. Rows are written in the same transaction as
// the project update, so every committed transfer is eventually published.
type AuditRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

func (r AuditRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}
	topic := r.Topic
	if topic == "" {
		topic = "project.organization_reassigned"
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list pending failed",
			"event", "transfer_outbox_list_failed",
			"module", "internal-ops/tenant-transfer-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, message := range pending {
		var envelope ports.EventEnvelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			logger.Error("outbox payload decode failed",
				"event", "transfer_outbox_decode_failed",
				"module", "internal-ops/tenant-transfer-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return err
		}

		if err := r.Publisher.Publish(ctx, topic, envelope); err != nil {
			logger.Error("outbox publish failed",
				"event", "transfer_outbox_publish_failed",
				"module", "internal-ops/tenant-transfer-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"event_id", envelope.EventID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxSent(ctx, message.OutboxID, now); err != nil {
			logger.Error("outbox mark sent failed",
				"event", "transfer_outbox_mark_sent_failed",
				"module", "internal-ops/tenant-transfer-service",
				"layer", "worker",
				"outbox_id", message.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("transfer outbox relay cycle completed",
			"event", "transfer_outbox_relay_completed",
			"module", "internal-ops/tenant-transfer-service",
			"layer", "worker",
			"published", len(pending),
		)
	}
	return nil
}
