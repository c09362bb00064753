package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/shower-timer/internal/application"
)

type deviceService interface {
	SendUserToDevice(ctx context.Context, username string) (application.User, error)
}

// DeviceHandler serves the device notification endpoint.
type DeviceHandler struct {
	service   deviceService
	responder responder
	logger    *slog.Logger
}

// NewDeviceHandler creates a device handler backed by the given service.
func NewDeviceHandler(service deviceService, logger *slog.Logger) *DeviceHandler {
	logger = defaultLogger(logger)
	return &DeviceHandler{
		service:   service,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type notifyDeviceRequest struct {
	Username string `json:"username"`
}

type notifyDeviceResponse struct {
	Status string       `json:"status"`
	User   userResponse `json:"user"`
}

// Notify resolves the named user and relays their name to the physical
// timer through the device bridge.
func (h *DeviceHandler) Notify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "device", "notify")

	var req notifyDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	user, err := h.service.SendUserToDevice(ctx, req.Username)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "user forwarded to device", "user_id", user.ID)
	h.responder.writeJSON(ctx, w, http.StatusOK, notifyDeviceResponse{
		Status: "sent",
		User:   newUserResponse(user),
	})
}
