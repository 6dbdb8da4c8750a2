package triage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pannonhealth/lifeline/internal/ai"
	"github.com/pannonhealth/lifeline/internal/shared/config"
)

// newTestClient points an AI client at a stub completion server
func newTestClient(t *testing.T, content string, status int) *ai.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") == "" {
			t.Error("missing api-key header")
		}
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
	}))
	t.Cleanup(server.Close)

	client := ai.NewClient(config.AIConfig{
		Endpoint:   server.URL,
		APIKey:     "test-key",
		Deployment: "gpt-test",
		APIVersion: "2024-02-01",
		Timeout:    5 * time.Second,
	})
	if client == nil {
		t.Fatal("expected configured client")
	}
	return client
}

func TestTriageNilClientUsesFallback(t *testing.T) {
	svc := NewService(nil, time.Second)

	result := svc.Triage(context.Background(), "sudden chest pain")

	if result.Risk.RiskLevel != RiskHigh {
		t.Errorf("risk = %s, want high", result.Risk.RiskLevel)
	}
	if !result.Risk.ShouldSeeDoctor {
		t.Error("high risk must set shouldSeeDoctor")
	}
	if result.RecommendedSpecialty != "Cardiology" {
		t.Errorf("specialty = %s, want Cardiology", result.RecommendedSpecialty)
	}
}

func TestTriageAcceptsValidModelOutput(t *testing.T) {
	content := `{"risk":{"riskLevel":"moderate","shouldSeeDoctor":true},"recommendedSpecialty":"Dermatology","summary":"See a dermatologist about the rash."}`
	svc := NewService(newTestClient(t, content, http.StatusOK), time.Second)

	result := svc.Triage(context.Background(), "itchy rash")

	if result.Risk.RiskLevel != RiskModerate {
		t.Errorf("risk = %s, want moderate", result.Risk.RiskLevel)
	}
	if result.RecommendedSpecialty != "Dermatology" {
		t.Errorf("specialty = %s, want the model's value", result.RecommendedSpecialty)
	}
	if result.Summary != "See a dermatologist about the rash." {
		t.Errorf("summary = %q, want the model's value", result.Summary)
	}
}

func TestTriageRepairsPartialModelOutput(t *testing.T) {
	// invalid risk level and blank specialty get recomputed, the valid
	// summary survives
	content := `{"risk":{"riskLevel":"critical"},"recommendedSpecialty":"","summary":"Custom summary."}`
	svc := NewService(newTestClient(t, content, http.StatusOK), time.Second)

	result := svc.Triage(context.Background(), "sudden chest pain")

	if result.Risk.RiskLevel != RiskHigh {
		t.Errorf("risk = %s, want classifier value high", result.Risk.RiskLevel)
	}
	if !result.Risk.ShouldSeeDoctor {
		t.Error("missing shouldSeeDoctor must default from risk level")
	}
	if result.RecommendedSpecialty != "Cardiology" {
		t.Errorf("specialty = %s, want classifier value", result.RecommendedSpecialty)
	}
	if result.Summary != "Custom summary." {
		t.Errorf("summary = %q, want the model's value kept", result.Summary)
	}
}

func TestTriageExtractsEmbeddedJSON(t *testing.T) {
	content := "Here you go: {\"risk\":{\"riskLevel\":\"low\",\"shouldSeeDoctor\":false},\"recommendedSpecialty\":\"General Medicine\",\"summary\":\"All fine.\"} hope that helps"
	svc := NewService(newTestClient(t, content, http.StatusOK), time.Second)

	result := svc.Triage(context.Background(), "feeling okay")

	if result.Risk.RiskLevel != RiskLow || result.Summary != "All fine." {
		t.Errorf("got %+v, want embedded object honored", result)
	}
}

func TestTriageMalformedOutputFallsBack(t *testing.T) {
	svc := NewService(newTestClient(t, "sorry, I cannot do that", http.StatusOK), time.Second)

	result := svc.Triage(context.Background(), "recurring migraine")

	if result.Risk.RiskLevel != RiskModerate {
		t.Errorf("risk = %s, want fallback moderate", result.Risk.RiskLevel)
	}
	if result.RecommendedSpecialty != "Neurology" {
		t.Errorf("specialty = %s, want fallback Neurology", result.RecommendedSpecialty)
	}
}

func TestTriageServerErrorFallsBack(t *testing.T) {
	svc := NewService(newTestClient(t, "ignored", http.StatusInternalServerError), time.Second)

	result := svc.Triage(context.Background(), "sudden chest pain")

	if result.Risk.RiskLevel != RiskHigh {
		t.Errorf("risk = %s, want fallback high", result.Risk.RiskLevel)
	}
}

func TestRepairResultModelOverridesDoctorFlag(t *testing.T) {
	// a moderate level with an explicit false flag is kept as-is
	parsed := map[string]any{
		"risk":    map[string]any{"riskLevel": "moderate", "shouldSeeDoctor": false},
		"summary": "s",
	}

	result := repairResult(parsed, "fever")

	if result.Risk.ShouldSeeDoctor {
		t.Error("explicit false from the model must be preserved")
	}
}

func TestRepairResultMissingRiskObject(t *testing.T) {
	result := repairResult(map[string]any{}, "sudden chest pain")

	if result.Risk.RiskLevel != RiskHigh || !result.Risk.ShouldSeeDoctor {
		t.Errorf("got %+v, want everything recomputed", result.Risk)
	}
	if result.Summary == "" || result.RecommendedSpecialty == "" {
		t.Error("repaired result must be complete")
	}
}
