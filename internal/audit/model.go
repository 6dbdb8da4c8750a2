package audit

import (
	"time"

	"github.com/pannonhealth/lifeline/internal/shared/types"
)

// Entry is one immutable audit record derived from a domain event
type Entry struct {
	ID         types.ID  `json:"id"`
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Source     string    `json:"source"`
	ActorID    types.ID  `json:"actor_id,omitempty"`
	Data       any       `json:"data"`
	OccurredAt time.Time `json:"occurred_at"`
	RecordedAt time.Time `json:"recorded_at"`
}
