package mood

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pannonhealth/lifeline/internal/shared/errors"
)

// Handler provides HTTP handlers for mood summaries
type Handler struct {
	svc *Service
}

// NewHandler creates a new mood handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the mood routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/summary", h.Summarize)

	return r
}

type summarizeRequest struct {
	Text string `json:"text"`
}

// Summarize returns a supportive summary of a free-text mood check-in
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, errors.BadRequest("text is required"))
		return
	}

	summary := h.svc.Summarize(r.Context(), text)

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
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
