package audit

import (
	"context"
	"log"
	"time"

	"github.com/pannonhealth/lifeline/internal/shared/events"
	"github.com/pannonhealth/lifeline/internal/shared/metrics"
	"github.com/pannonhealth/lifeline/internal/shared/types"
)

// Subscriber projects every domain event into the audit store
type Subscriber struct {
	store Store
}

// NewSubscriber creates an audit subscriber over the given store
func NewSubscriber(store Store) *Subscriber {
	return &Subscriber{store: store}
}

// Start attaches the subscriber to the bus for all event types
func (s *Subscriber) Start(ctx context.Context, bus *events.Bus) error {
	return bus.Subscribe(ctx, "*", s.Handle)
}

// Handle records one event as an audit entry. Errors are returned to the
// bus, which logs and skips; auditing never blocks the producing request.
func (s *Subscriber) Handle(ctx context.Context, event events.Event) error {
	entry := Entry{
		ID:         types.NewID(),
		EventID:    event.ID,
		EventType:  event.Type,
		Source:     event.Source,
		ActorID:    event.ActorID,
		Data:       event.Data,
		OccurredAt: event.Timestamp,
		RecordedAt: time.Now().UTC(),
	}

	if err := s.store.Append(ctx, entry); err != nil {
		log.Printf("audit: failed to record %s: %v", event.Type, err)
		return err
	}

	metrics.RecordAuditEntry()
	return nil
}
