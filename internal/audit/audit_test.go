package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pannonhealth/lifeline/internal/shared/events"
	"github.com/pannonhealth/lifeline/internal/shared/types"
)

// memoryStore is an in-memory Store for tests
type memoryStore struct {
	entries []Entry
	fail    bool
}

func (s *memoryStore) Append(ctx context.Context, entry Entry) error {
	if s.fail {
		return errors.New("store down")
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *memoryStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if s.fail {
		return nil, errors.New("store down")
	}
	if limit > len(s.entries) {
		limit = len(s.entries)
	}
	// newest first
	out := make([]Entry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func TestSubscriberRecordsEvent(t *testing.T) {
	store := &memoryStore{}
	subscriber := NewSubscriber(store)

	event := events.NewEvent("triage.completed", "triage", map[string]any{"risk_level": "high"})
	event = event.WithActor(types.NewID())

	if err := subscriber.Handle(context.Background(), event); err != nil {
		t.Fatalf("Handle returned %v", err)
	}

	if len(store.entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(store.entries))
	}
	entry := store.entries[0]
	if entry.EventID != event.ID || entry.EventType != "triage.completed" || entry.Source != "triage" {
		t.Errorf("entry = %+v, want event fields copied", entry)
	}
	if entry.ActorID != event.ActorID {
		t.Errorf("actor = %s, want %s", entry.ActorID, event.ActorID)
	}
	if entry.ID.IsZero() || entry.RecordedAt.IsZero() {
		t.Error("entry must get its own ID and recorded timestamp")
	}
}

func TestSubscriberPropagatesStoreError(t *testing.T) {
	subscriber := NewSubscriber(&memoryStore{fail: true})

	err := subscriber.Handle(context.Background(), events.NewEvent("x", "y", nil))
	if err == nil {
		t.Error("expected store error to propagate")
	}
}

func seedStore(n int) *memoryStore {
	store := &memoryStore{}
	for i := 0; i < n; i++ {
		store.entries = append(store.entries, Entry{
			ID:         types.NewID(),
			EventType:  "triage.completed",
			Source:     "triage",
			RecordedAt: time.Now().UTC(),
		})
	}
	return store
}

func TestListDefaultLimit(t *testing.T) {
	handler := NewHandler(seedStore(60))

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Entries []Entry `json:"entries"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Entries) != defaultListLimit {
		t.Errorf("got %d entries, want default %d", len(resp.Entries), defaultListLimit)
	}
}

func TestListLimitHandling(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCount  int
	}{
		{"explicit limit", "?limit=5", http.StatusOK, 5},
		{"zero clamps to one", "?limit=0", http.StatusOK, 1},
		{"negative clamps to one", "?limit=-3", http.StatusOK, 1},
		{"huge clamps to max", "?limit=99999", http.StatusOK, 10},
		{"garbage rejected", "?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(seedStore(10))

			req := httptest.NewRequest(http.MethodGet, "/entries"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler.List(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp struct {
				Entries []Entry `json:"entries"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if len(resp.Entries) != tt.wantCount {
				t.Errorf("got %d entries, want %d", len(resp.Entries), tt.wantCount)
			}
		})
	}
}

func TestListEmptyStore(t *testing.T) {
	handler := NewHandler(&memoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Entries []Entry `json:"entries"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Entries == nil || len(resp.Entries) != 0 {
		t.Errorf("entries = %v, want empty array", resp.Entries)
	}
}

func TestListStoreErrorReturns500(t *testing.T) {
	handler := NewHandler(&memoryStore{fail: true})

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
