package challenge

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pannonhealth/lifeline/internal/shared/auth"
	"github.com/pannonhealth/lifeline/internal/shared/errors"
	"github.com/pannonhealth/lifeline/internal/shared/events"
)

// Handler provides HTTP handlers for challenge plan generation
type Handler struct {
	generator *Generator
	bus       *events.Bus
}

// NewHandler creates a new challenge handler. The bus may be nil.
func NewHandler(generator *Generator, bus *events.Bus) *Handler {
	return &Handler{generator: generator, bus: bus}
}

// Routes registers the challenge routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/generate", h.Generate)

	return r
}

type generateRequest struct {
	Onboarding OnboardingAnswers `json:"onboarding"`
}

// Generate builds a personalized challenge plan from onboarding answers.
// Missing or partial answers are fine; the plan degrades gracefully.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		writeError(w, errors.Unauthorized("authentication required"))
		return
	}

	// Tolerant decode: an empty or malformed body still yields a plan from
	// the default branch of the decision tree.
	var req generateRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	plan := h.generator.Plan(r.Context(), req.Onboarding)

	if h.bus != nil {
		event := events.NewEvent("challenge.generated", "challenge", map[string]any{
			"count": len(plan),
		}).WithActor(user.ID)
		if err := h.bus.Publish(r.Context(), event); err != nil {
			log.Printf("challenge: failed to publish event: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"challenges": plan})
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
