package triage

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pannonhealth/lifeline/internal/referral"
	"github.com/pannonhealth/lifeline/internal/shared/errors"
	"github.com/pannonhealth/lifeline/internal/shared/events"
)

// Handler provides HTTP handlers for the triage module
type Handler struct {
	svc     *Service
	matcher *referral.Matcher
	bus     *events.Bus
}

// NewHandler creates a new triage handler. The matcher and bus may be nil
// when their collaborators are unavailable; triage still works without them.
func NewHandler(svc *Service, matcher *referral.Matcher, bus *events.Bus) *Handler {
	return &Handler{svc: svc, matcher: matcher, bus: bus}
}

// Routes registers the triage routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Analyze)

	return r
}

type analyzeRequest struct {
	Text      string `json:"text"`
	HasReport any    `json:"hasReport"`
}

type analyzeResponse struct {
	Summary              string                 `json:"summary"`
	Risk                 RiskAssessment         `json:"risk"`
	RecommendedSpecialty string                 `json:"recommendedSpecialty"`
	DoctorRecommendation *referral.DoctorRecord `json:"doctorRecommendation"`
}

// Analyze runs triage over free-text symptoms and, when a referral is
// warranted and not suppressed, attaches the best doctor match.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, errors.BadRequest("text is required"))
		return
	}

	result := h.svc.Triage(r.Context(), text)

	// A caller-supplied report suppresses the referral entirely, even at
	// high risk.
	var recommendation *referral.DoctorRecord
	if result.Risk.ShouldSeeDoctor && !parseHasReport(req.HasReport) && h.matcher != nil {
		recommendation = h.matcher.FindMatch(r.Context(), result.RecommendedSpecialty)
	}

	h.publish(r.Context(), result, recommendation)

	writeJSON(w, http.StatusOK, analyzeResponse{
		Summary:              result.Summary,
		Risk:                 result.Risk,
		RecommendedSpecialty: result.RecommendedSpecialty,
		DoctorRecommendation: recommendation,
	})
}

func (h *Handler) publish(ctx context.Context, result Result, recommendation *referral.DoctorRecord) {
	if h.bus == nil {
		return
	}

	event := events.NewEvent("triage.completed", "triage", map[string]any{
		"risk_level":            result.Risk.RiskLevel,
		"should_see_doctor":     result.Risk.ShouldSeeDoctor,
		"recommended_specialty": result.RecommendedSpecialty,
	})
	if err := h.bus.Publish(ctx, event); err != nil {
		log.Printf("triage: failed to publish event: %v", err)
	}

	if recommendation != nil {
		event := events.NewEvent("referral.recommended", "triage", map[string]any{
			"doctor_id": recommendation.ID,
			"specialty": recommendation.Specialty,
		})
		if err := h.bus.Publish(ctx, event); err != nil {
			log.Printf("triage: failed to publish referral event: %v", err)
		}
	}
}

// parseHasReport accepts the loose truthy encodings clients send
func parseHasReport(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "true" || value == "1"
	case float64:
		return value == 1
	}
	return false
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*errors.AppError); ok {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
