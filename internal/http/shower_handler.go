package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/example/shower-timer/internal/application"
)

type showerService interface {
	RecordShower(ctx context.Context, params application.RecordShowerParams) (application.Shower, error)
	GetShower(ctx context.Context, id int64) (application.Shower, error)
	ListShowers(ctx context.Context) ([]application.Shower, error)
	ListShowersForUser(ctx context.Context, userID int64) ([]application.Shower, error)
}

// ShowerHandler serves the shower session endpoints.
type ShowerHandler struct {
	service   showerService
	now       func() time.Time
	responder responder
	logger    *slog.Logger
}

// NewShowerHandler creates a shower handler backed by the given service.
func NewShowerHandler(service showerService, now func() time.Time, logger *slog.Logger) *ShowerHandler {
	if now == nil {
		now = time.Now
	}
	logger = defaultLogger(logger)
	return &ShowerHandler{
		service:   service,
		now:       now,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type recordShowerRequest struct {
	UserID          *int64 `json:"user_id"`
	DurationSeconds *int   `json:"duration_seconds"`
}

type showerResponse struct {
	ID               int64  `json:"id"`
	UserID           *int64 `json:"user_id"`
	StartedAt        string `json:"started_at"`
	EndedAt          string `json:"ended_at"`
	DurationSeconds  int    `json:"duration_seconds"`
	OvershootSeconds int    `json:"overshoot_seconds"`
}

func newShowerResponse(shower application.Shower) showerResponse {
	return showerResponse{
		ID:               shower.ID,
		UserID:           shower.UserID,
		StartedAt:        shower.StartedAt.Format(time.RFC3339Nano),
		EndedAt:          shower.EndedAt.Format(time.RFC3339Nano),
		DurationSeconds:  shower.DurationSeconds,
		OvershootSeconds: shower.OvershootSeconds,
	}
}

func newShowerListResponse(showers []application.Shower) []showerResponse {
	out := make([]showerResponse, 0, len(showers))
	for _, shower := range showers {
		out = append(out, newShowerResponse(shower))
	}
	return out
}

// Record stores a completed shower session. The session window is anchored
// at the time the request is received: it starts now and ends
// duration_seconds later.
func (h *ShowerHandler) Record(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "shower", "record")

	var req recordShowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	fieldErrors := make(map[string]string)
	if req.UserID == nil {
		fieldErrors["user_id"] = "user_id is required"
	}
	if req.DurationSeconds == nil {
		fieldErrors["duration_seconds"] = "duration_seconds is required"
	}
	if len(fieldErrors) > 0 {
		h.responder.handleServiceError(ctx, w, &application.ValidationError{FieldErrors: fieldErrors})
		return
	}

	started := h.now().UTC()
	ended := started.Add(time.Duration(*req.DurationSeconds) * time.Second)

	shower, err := h.service.RecordShower(ctx, application.RecordShowerParams{
		UserID:          req.UserID,
		StartedAt:       started,
		EndedAt:         ended,
		DurationSeconds: *req.DurationSeconds,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "shower recorded", "shower_id", shower.ID, "duration_seconds", shower.DurationSeconds)
	h.responder.writeJSON(ctx, w, http.StatusCreated, newShowerResponse(shower))
}

// List returns every recorded shower.
func (h *ShowerHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	showers, err := h.service.ListShowers(ctx)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, newShowerListResponse(showers))
}

// GetByID returns the shower whose identifier was resolved from the path.
func (h *ShowerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, ok := ShowerIDFromContext(ctx)
	if !ok {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidShowerID)
		return
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidShowerID)
		return
	}

	shower, err := h.service.GetShower(ctx, id)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, newShowerResponse(shower))
}

// ListForUser returns the showers attributed to the user resolved from the
// path, oldest first. An unknown user yields an empty list.
func (h *ShowerHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, ok := UserIDFromContext(ctx)
	if !ok {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidUserID)
		return
	}

	showers, err := h.service.ListShowersForUser(ctx, userID)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, newShowerListResponse(showers))
}
