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

type userService interface {
	CreateUser(ctx context.Context, input application.UserInput) (application.User, error)
	GetUser(ctx context.Context, id int64) (application.User, error)
	GetUserByName(ctx context.Context, name string) (application.User, error)
	ListUsers(ctx context.Context) ([]application.User, error)
	AddTime(ctx context.Context, id int64, seconds int) error
}

// UserHandler serves the user collection endpoints.
type UserHandler struct {
	service   userService
	responder responder
	logger    *slog.Logger
}

// NewUserHandler creates a user handler backed by the given service.
func NewUserHandler(service userService, logger *slog.Logger) *UserHandler {
	logger = defaultLogger(logger)
	return &UserHandler{
		service:   service,
		responder: newResponder(logger),
		logger:    logger,
	}
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type addTimeRequest struct {
	Seconds int `json:"seconds"`
}

type userResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	TotalSeconds int    `json:"total_seconds"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func newUserResponse(user application.User) userResponse {
	return userResponse{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		TotalSeconds: user.TotalSeconds,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func newUserListResponse(users []application.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, newUserResponse(user))
	}
	return out
}

// Create registers a new user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "user", "create")

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	user, err := h.service.CreateUser(ctx, application.UserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "user created", "user_id", user.ID)
	h.responder.writeJSON(ctx, w, http.StatusCreated, newUserResponse(user))
}

// List returns every registered user.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.service.ListUsers(ctx)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, newUserListResponse(users))
}

// GetByID returns the user whose identifier was resolved from the path.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.userIDFromRequest(ctx, w)
	if !ok {
		return
	}

	user, err := h.service.GetUser(ctx, id)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, newUserResponse(user))
}

// GetByName returns the user matching the username resolved from the path.
func (h *UserHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, ok := UsernameFromContext(ctx)
	if !ok || name == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	user, err := h.service.GetUserByName(ctx, name)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, newUserResponse(user))
}

// AddTime applies a manual adjustment to a user's accumulated total. The
// operation succeeds with no effect when the user does not exist.
func (h *UserHandler) AddTime(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := handlerLogger(ctx, h.logger, "user", "add_time")

	id, ok := h.userIDFromRequest(ctx, w)
	if !ok {
		return
	}

	var req addTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if err := h.service.AddTime(ctx, id, req.Seconds); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "time adjustment applied", "user_id", id, "seconds", req.Seconds)
	h.responder.writeJSON(ctx, w, http.StatusNoContent, nil)
}

func (h *UserHandler) userIDFromRequest(ctx context.Context, w http.ResponseWriter) (int64, bool) {
	raw, ok := UserIDFromContext(ctx)
	if !ok {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidUserID)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidUserID)
		return 0, false
	}

	return id, true
}
