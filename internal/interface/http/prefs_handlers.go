package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	prefsuc "example.com/catalog-dashboard/internal/usecase/prefs"
)

func (a *API) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	var userID *int64
	if user := getAuthUser(r.Context()); user != nil {
		userID = &user.UserID
	}

	theme, err := a.prefsSvc.ToggleTheme(r.Context(), sessionID(r.Context()), userID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

func (a *API) handleSetViewMode(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")

	if err := a.prefsSvc.SetViewMode(r.Context(), sessionID(r.Context()), mode); err != nil {
		if errors.Is(err, prefsuc.ErrInvalidViewMode) {
			respondError(w, http.StatusUnprocessableEntity, err)
			return
		}
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"view_mode": mode})
}
