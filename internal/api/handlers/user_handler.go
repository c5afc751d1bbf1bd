package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/lexilearn-be/internal/auth"
	"github.com/isdelr/lexilearn-be/internal/models"
	"github.com/isdelr/lexilearn-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for accounts and profiles.
type UserHandler struct {
	service services.UserServiceProvider
	codec   *auth.TokenCodec
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, codec *auth.TokenCodec) *UserHandler {
	return &UserHandler{service: service, codec: codec}
}

// CredentialsPayload defines the structure for register and login requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := decodeBody(r, &payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Username and password required")
		return
	}

	id, err := h.service.Register(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if !errors.Is(err, services.ErrConflict) && !errors.Is(err, services.ErrInvalidInput) {
			log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		}
		respondError(w, err, "")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
		"user_id": id,
	})
}

// Login handles credential verification and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := decodeBody(r, &payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, ok := h.service.VerifyCredentials(r.Context(), payload.Username, payload.Password)
	if !ok {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.codec.Issue(id)
	if err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("Failed to issue token")
		respondMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetProfile returns the caller's profile without credentials.
func (h *UserHandler) GetProfile(identityID string, w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context(), identityID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", identityID).Msg("Profile lookup failed")
		respondError(w, err, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile applies a partial preferences update.
func (h *UserHandler) UpdateProfile(identityID string, w http.ResponseWriter, r *http.Request) {
	var patch models.PreferencesPatch
	if err := decodeBody(r, &patch); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.UpdatePreferences(r.Context(), identityID, patch); err != nil {
		log.Warn().Err(err).Str("user_id", identityID).Msg("Profile update failed")
		respondError(w, err, "User not found")
		return
	}
	respondMessage(w, http.StatusOK, "Profile updated successfully")
}
