package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/beginnergain/server/internal/logger"
	"github.com/beginnergain/server/internal/model"
)

// UserService defines business operations for user accounts.
type UserService interface {
	Create(ctx context.Context, params model.CreateUserParams) (model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, string, error)
}

// User handles HTTP endpoints for user accounts.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AccessToken string    `json:"accessToken"`
}

// Register creates a new user account.
func (h *User) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "email, password and name are required")
		return
	}

	user, err := h.userService.Create(r.Context(), model.CreateUserParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.logger.Error("User handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("User handler: registration completed",
		"email", req.Email,
		"user_id", user.ID)

	writeJSON(w, http.StatusCreated, user.Public())
}

// Login verifies credentials and returns the user projection with an access token.
func (h *User) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, accessToken, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("User handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("User handler: login completed",
		"email", req.Email,
		"user_id", user.ID)

	writeJSON(w, http.StatusOK, loginResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		AccessToken: accessToken,
	})
}

// GetByID returns the public projection of a user.
func (h *User) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.Error("User handler: get user failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}
