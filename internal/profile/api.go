package profile

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pannonhealth/lifeline/internal/challenge"
	"github.com/pannonhealth/lifeline/internal/shared/auth"
	"github.com/pannonhealth/lifeline/internal/shared/errors"
	"github.com/pannonhealth/lifeline/internal/shared/events"
)

const (
	attrGoals       = "goals"
	attrOnboarding  = "onboarding"
	attrChatHistory = "chat_history"
)

// Handler provides HTTP handlers for profile attributes
type Handler struct {
	store Store
	bus   *events.Bus
}

// NewHandler creates a new profile handler. The bus may be nil.
func NewHandler(store Store, bus *events.Bus) *Handler {
	return &Handler{store: store, bus: bus}
}

// Routes registers the profile routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/goals", h.GetGoals)
	r.Post("/goals", h.SaveGoals)
	r.Get("/onboarding", h.GetOnboarding)
	r.Post("/onboarding", h.SaveOnboarding)
	r.Get("/chat-history", h.GetChatHistory)
	r.Post("/chat-history", h.SaveChatHistory)

	return r
}

// GetGoals returns the caller's saved goals, or an empty list
func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		writeError(w, errors.Unauthorized("authentication required"))
		return
	}

	goals := []Goal{}
	raw, found, err := h.store.Get(r.Context(), attrGoals, user.ID)
	if err != nil {
		writeError(w, errors.Wrap(err, "failed to load goals"))
		return
	}
	if found {
		if err := json.Unmarshal([]byte(raw), &goals); err != nil {
			// a corrupt stored value reads as empty rather than failing
			log.Printf("profile: corrupt goals for %s: %v", user.ID, err)
			goals = []Goal{}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// SaveGoals replaces the caller's goals with the sanitized submission
func (h *Handler) SaveGoals(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		writeError(w, errors.Unauthorized("authentication required"))
		return
	}

	var req struct {
		Goals []Goal `json:"goals"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	goals := SanitizeGoals(req.Goals)
	if err := h.save(r, attrGoals, user, goals, "profile.goals_saved"); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"goals": goals})
}

// GetOnboarding returns the caller's saved onboarding answers
func (h *Handler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		writeError(w, errors.Unauthorized("authentication required"))
		return
	}

	answers := challenge.OnboardingAnswers{}
	raw, found, err := h.store.Get(r.Context(), attrOnboarding, user.ID)
	if err != nil {
		writeError(w, errors.Wrap(err, "failed to load onboarding answers"))
		return
	}
	if found {
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			log.Printf("profile: corrupt onboarding for %s: %v", user.ID, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"onboarding": answers, "completed": found})
}

// SaveOnboarding stores the caller's onboarding answers, latest wins
func (h *Handler) SaveOnboarding(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		writeError(w, errors.Unauthorized("authentication required"))
		return
	}

	var req struct {
		Onboarding challenge.OnboardingAnswers `json:"onboarding"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	if err := h.save(r, attrOnboarding, user, req.Onboarding, "profile.onboarding_saved"); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"onboarding": req.Onboarding})
}

// GetChatHistory returns the caller's stored conversation
func (h *Handler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		writeError(w, errors.Unauthorized("authentication required"))
		return
	}

	messages := []ChatMessage{}
	raw, found, err := h.store.Get(r.Context(), attrChatHistory, user.ID)
	if err != nil {
		writeError(w, errors.Wrap(err, "failed to load chat history"))
		return
	}
	if found {
		if err := json.Unmarshal([]byte(raw), &messages); err != nil {
			log.Printf("profile: corrupt chat history for %s: %v", user.ID, err)
			messages = []ChatMessage{}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// SaveChatHistory replaces the caller's stored conversation
func (h *Handler) SaveChatHistory(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		writeError(w, errors.Unauthorized("authentication required"))
		return
	}

	var req struct {
		Messages []ChatMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	messages := SanitizeChatHistory(req.Messages)
	if err := h.save(r, attrChatHistory, user, messages, "profile.chat_saved"); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// save marshals and upserts one attribute value, then publishes the event
func (h *Handler) save(r *http.Request, attribute string, user *auth.User, value any, eventType string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to encode "+attribute)
	}

	if err := h.store.Upsert(r.Context(), attribute, user.ID, string(encoded)); err != nil {
		return errors.Wrap(err, "failed to save "+attribute)
	}

	if h.bus != nil {
		event := events.NewEvent(eventType, "profile", map[string]any{
			"attribute": attribute,
		}).WithActor(user.ID)
		if err := h.bus.Publish(r.Context(), event); err != nil {
			log.Printf("profile: failed to publish event: %v", err)
		}
	}
	return nil
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
