// Package mood produces short supportive summaries of how the user reports
// feeling. It never diagnoses; without a configured model it answers with a
// fixed acknowledgement.
package mood

import (
	"context"
	"time"

	"github.com/pannonhealth/lifeline/internal/ai"
	"github.com/pannonhealth/lifeline/internal/shared/metrics"
)

const systemPrompt = "Summarize how the user feels emotionally and physically in a supportive way. Do not diagnose."

// fallbackSummary is returned whenever the model path is unavailable
const fallbackSummary = "Thanks for sharing. I hear you, and we can take this step by step."

// Service summarizes free-text mood check-ins
type Service struct {
	client  *ai.Client
	timeout time.Duration
}

// NewService creates a mood summary service. A nil client is valid and
// routes every request to the canned acknowledgement.
func NewService(client *ai.Client, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Service{client: client, timeout: timeout}
}

// Summarize returns a supportive summary of the text. Callers must validate
// that text is non-blank before invoking; Summarize never returns an error.
func (s *Service) Summarize(ctx context.Context, text string) string {
	if s.client == nil {
		metrics.RecordMoodSummary("fallback")
		return fallbackSummary
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	summary, err := s.client.Complete(callCtx, ai.ChatRequest{
		System:      systemPrompt,
		User:        text,
		Temperature: 0.3,
	})
	if err != nil {
		metrics.RecordMoodSummary("fallback")
		return fallbackSummary
	}

	metrics.RecordMoodSummary("ai")
	return summary
}
