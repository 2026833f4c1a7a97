package handlers

import (
	"encoding/json"
	"net/http"

	"taskmanager/logging"
	"taskmanager/models"
	"taskmanager/services"
)

// LoginHandler serves token issuance: login and refresh.
type LoginHandler struct {
	UserService *services.UserService
	JWTService  *services.JWTService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access  string              `json:"access"`
	Refresh string              `json:"refresh"`
	User    models.UserResponse `json:"user"`
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request data"})
		return
	}

	user, err := h.UserService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	access, refresh, err := h.JWTService.GenerateTokenPair(*user)
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: USER_LOGIN, Description: User %s logged in", user.Username)
	writeJSON(w, http.StatusOK, loginResponse{
		Access:  access,
		Refresh: refresh,
		User:    models.NewUserResponse(*user),
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (h *LoginHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request data"})
		return
	}

	access, err := h.JWTService.Refresh(req.Refresh)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}
