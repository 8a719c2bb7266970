package http

import (
	"net/http"

	useruc "example.com/catalog-dashboard/internal/usecase/user"
)

func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())

	u, err := a.userSvc.Get(r.Context(), user.UserID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	theme, err := a.sessions.Theme(r.Context(), sessionID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	viewMode, err := a.sessions.ViewMode(r.Context(), sessionID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":      mapUser(u),
		"theme":     theme,
		"view_mode": viewMode,
	})
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())

	var req updateProfileRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	u, err := a.userSvc.UpdateProfile(r.Context(), useruc.UpdateProfileInput{
		ID:       user.UserID,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    mapUser(u),
		"message": "Perfil atualizado com sucesso!",
	})
}

func (a *API) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())

	if err := a.userSvc.DeleteAccount(r.Context(), user.UserID); err != nil {
		handleDomainError(w, err)
		return
	}

	// The account is gone; so is its session state.
	if err := a.sessions.Flush(r.Context(), sessionID(r.Context())); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Sua conta foi excluída permanentemente.",
	})
}
