package triage

import (
	"context"
	"strings"
	"time"

	"github.com/pannonhealth/lifeline/internal/ai"
	"github.com/pannonhealth/lifeline/internal/shared/metrics"
)

const systemPrompt = `You are a medical triage assistant.
Based on symptoms:
1) Classify riskLevel as low | moderate | high
2) Decide shouldSeeDoctor as boolean
3) Recommend one medical specialty
4) Return a short safe summary
Return ONLY valid JSON with exactly this shape:
{
  "risk": { "riskLevel": "low|moderate|high", "shouldSeeDoctor": true|false },
  "recommendedSpecialty": "string",
  "summary": "string"
}`

// Service runs the triage pipeline: one model attempt with field-by-field
// repair, deterministic classifiers otherwise. Triage never returns an
// error; the result is always complete and internally consistent.
type Service struct {
	client  *ai.Client
	timeout time.Duration
}

// NewService creates a triage service. A nil client is valid and routes
// every request to the deterministic path.
func NewService(client *ai.Client, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Service{client: client, timeout: timeout}
}

// Triage analyzes free-text symptoms. Callers must validate that text is
// non-blank before invoking.
func (s *Service) Triage(ctx context.Context, text string) Result {
	if s.client == nil {
		metrics.RecordTriageFallback("unconfigured")
		result := fallbackTriage(text)
		metrics.RecordTriage(string(result.Risk.RiskLevel), "fallback")
		return result
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Complete(callCtx, ai.ChatRequest{
		System:      systemPrompt,
		User:        text,
		Temperature: 0.2,
		MaxTokens:   220,
		JSONObject:  true,
	})
	if err != nil {
		metrics.RecordTriageFallback("call_failed")
		result := fallbackTriage(text)
		metrics.RecordTriage(string(result.Risk.RiskLevel), "fallback")
		return result
	}

	parsed, ok := ai.ExtractObject(raw)
	if !ok {
		metrics.RecordTriageFallback("unparsable")
		result := fallbackTriage(text)
		metrics.RecordTriage(string(result.Risk.RiskLevel), "fallback")
		return result
	}

	result := repairResult(parsed, text)
	metrics.RecordTriage(string(result.Risk.RiskLevel), "ai")
	return result
}

// repairResult validates the untrusted model payload field by field,
// recomputing anything absent or malformed with the deterministic
// classifiers. Each field is defaulted independently.
func repairResult(parsed map[string]any, text string) Result {
	riskObj, _ := parsed["risk"].(map[string]any)

	riskLevel := RiskLevel("")
	if raw, ok := riskObj["riskLevel"].(string); ok {
		if level, valid := ParseRiskLevel(raw); valid {
			riskLevel = level
		}
	}
	if riskLevel == "" {
		riskLevel = ClassifyRisk(text)
	}

	shouldSeeDoctor := riskLevel != RiskLow
	if b, ok := riskObj["shouldSeeDoctor"].(bool); ok {
		shouldSeeDoctor = b
	}

	specialty := ""
	if raw, ok := parsed["recommendedSpecialty"].(string); ok {
		specialty = strings.TrimSpace(raw)
	}
	if specialty == "" {
		specialty = ClassifySpecialty(text)
	}

	summary := ""
	if raw, ok := parsed["summary"].(string); ok {
		summary = strings.TrimSpace(raw)
	}
	if summary == "" {
		summary = fallbackSummary(riskLevel)
	}

	return Result{
		Summary: summary,
		Risk: RiskAssessment{
			RiskLevel:       riskLevel,
			ShouldSeeDoctor: shouldSeeDoctor,
		},
		RecommendedSpecialty: specialty,
	}
}
