package user

import (
	"context"
	"strings"

	dom "example.com/catalog-dashboard/internal/domain/user"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*dom.User, error) {
	return s.repo.GetByID(ctx, id)
}

type UpdateProfileInput struct {
	ID       int64
	Username string
	Email    string
}

func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*dom.User, error) {
	u, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	u.Username = in.Username
	u.Email = strings.TrimSpace(strings.ToLower(in.Email))

	return s.repo.Update(ctx, u)
}

// DeleteAccount removes the user and everything they own.
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
