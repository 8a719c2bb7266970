package auth

import (
	"context"
	"errors"
	"strings"

	domprofile "example.com/catalog-dashboard/internal/domain/profile"
	domsession "example.com/catalog-dashboard/internal/domain/session"
	domuser "example.com/catalog-dashboard/internal/domain/user"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type Claims struct {
	UserID   int64
	Email    string
	Username string
}

type TokenService interface {
	GenerateToken(u *domuser.User) (string, error)
	ParseToken(token string) (*Claims, error)
}

type Service struct {
	users    domuser.Repository
	profiles domprofile.Repository
	sessions domsession.Store
	hasher   PasswordHasher
	tokens   TokenService
}

func NewService(
	users domuser.Repository,
	profiles domprofile.Repository,
	sessions domsession.Store,
	hasher PasswordHasher,
	tokens TokenService,
) *Service {
	return &Service{
		users:    users,
		profiles: profiles,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*domuser.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, &domuser.User{
		Username:     in.Username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	// New identities get a default profile right away.
	if _, err := s.ensureProfile(ctx, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

type LoginInput struct {
	SessionID string
	Email     string
	Password  string
}

type LoginResult struct {
	Token string
	User  *domuser.User
	Theme string
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, domuser.ErrInvalidCredential
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domuser.ErrUnauthorized
	}
	if err := s.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		return nil, domuser.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(u)
	if err != nil {
		return nil, err
	}

	// Login hooks: identities that predate profiles get one now, and
	// the stored theme preference is copied into the session.
	prof, err := s.ensureProfile(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SetTheme(ctx, in.SessionID, prof.Theme); err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: u, Theme: prof.Theme}, nil
}

// Logout clears the session but carries the theme over, so a visitor
// keeps the look they had while signed in.
func (s *Service) Logout(ctx context.Context, sid string) error {
	theme, err := s.sessions.Theme(ctx, sid)
	if err != nil {
		return err
	}
	if err := s.sessions.Flush(ctx, sid); err != nil {
		return err
	}
	if theme == "" {
		return nil
	}
	return s.sessions.SetTheme(ctx, sid, theme)
}

func (s *Service) ensureProfile(ctx context.Context, userID int64) (*domprofile.Profile, error) {
	prof, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, domprofile.ErrProfileNotFound) {
		return s.profiles.Create(ctx, domprofile.Default(userID))
	}
	if err != nil {
		return nil, err
	}
	return prof, nil
}
