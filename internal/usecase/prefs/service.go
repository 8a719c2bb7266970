package prefs

import (
	"context"
	"errors"

	domprofile "example.com/catalog-dashboard/internal/domain/profile"
	domsession "example.com/catalog-dashboard/internal/domain/session"
)

var ErrInvalidViewMode = errors.New("invalid view mode")

const (
	ViewModeGrid  = "grid"
	ViewModeTable = "table"
)

type Service struct {
	sessions domsession.Store
	profiles domprofile.Repository
}

func NewService(sessions domsession.Store, profiles domprofile.Repository) *Service {
	return &Service{sessions: sessions, profiles: profiles}
}

// ToggleTheme flips the session theme and, for signed-in users,
// writes the choice back to their profile so the next login restores
// it.
func (s *Service) ToggleTheme(ctx context.Context, sid string, userID *int64) (string, error) {
	current, err := s.sessions.Theme(ctx, sid)
	if err != nil {
		return "", err
	}
	if current == "" {
		current = domprofile.ThemeLight
	}

	next := domprofile.ThemeDark
	if current == domprofile.ThemeDark {
		next = domprofile.ThemeLight
	}

	if err := s.sessions.SetTheme(ctx, sid, next); err != nil {
		return "", err
	}

	if userID != nil {
		prof, err := s.profiles.GetByUserID(ctx, *userID)
		if errors.Is(err, domprofile.ErrProfileNotFound) {
			prof, err = s.profiles.Create(ctx, domprofile.Default(*userID))
		}
		if err != nil {
			return "", err
		}
		prof.Theme = next
		if _, err := s.profiles.Update(ctx, prof); err != nil {
			return "", err
		}
	}

	return next, nil
}

func (s *Service) SetViewMode(ctx context.Context, sid, mode string) error {
	if mode != ViewModeGrid && mode != ViewModeTable {
		return ErrInvalidViewMode
	}
	return s.sessions.SetViewMode(ctx, sid, mode)
}
