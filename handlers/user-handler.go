package handlers

import (
	"encoding/json"
	"net/http"

	"taskmanager/apperrors"
	"taskmanager/logging"
	"taskmanager/models"
	"taskmanager/services"
	"taskmanager/utils"
)

// UserHandler serves registration, profile and password change.
type UserHandler struct {
	UserService *services.UserService
	Captcha     *utils.CaptchaVerifier
}

type registerRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Password     string `json:"password"`
	Password2    string `json:"password2"`
	CaptchaToken string `json:"captcha_token"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request data"})
		return
	}

	if h.Captcha != nil {
		ok, err := h.Captcha.Verify(r.Context(), req.CaptchaToken)
		if err != nil {
			writeError(w, err)
			return
		}
		if !ok {
			writeError(w, apperrors.NewValidation("captcha_token", "Invalid captcha."))
			return
		}
	}

	user, err := h.UserService.Register(r.Context(), services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: User %s registered", user.Username)
	writeJSON(w, http.StatusCreated, models.NewUserResponse(*user))
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewUserResponse(*user))
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid request data"})
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), identity.UserID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: PASSWORD_CHANGED, Description: User %s changed password", identity.Username)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
