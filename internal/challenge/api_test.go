package challenge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pannonhealth/lifeline/internal/shared/auth"
	"github.com/pannonhealth/lifeline/internal/shared/types"
)

func TestGenerateRequiresUser(t *testing.T) {
	handler := NewHandler(NewGenerator(nil, time.Second), nil)

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGenerateReturnsPlan(t *testing.T) {
	handler := NewHandler(NewGenerator(nil, time.Second), nil)

	body := `{"onboarding":{"workType":"desk job","weeklyExercise":"almost never"}}`
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	req = req.WithContext(auth.WithUser(req.Context(), &auth.User{ID: types.NewID()}))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Challenges []Challenge `json:"challenges"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	checkPlanInvariants(t, resp.Challenges)
	if resp.Challenges[0].Title != "Week 1: Walk briskly for 20 minutes" {
		t.Errorf("first task = %q, want the sedentary branch", resp.Challenges[0].Title)
	}
}

func TestGenerateToleratesMalformedBody(t *testing.T) {
	handler := NewHandler(NewGenerator(nil, time.Second), nil)

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("not json"))
	req = req.WithContext(auth.WithUser(req.Context(), &auth.User{ID: types.NewID()}))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with the default plan", rec.Code)
	}

	var resp struct {
		Challenges []Challenge `json:"challenges"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	checkPlanInvariants(t, resp.Challenges)
}
