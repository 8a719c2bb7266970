package profile

import "context"

type Repository interface {
	Create(ctx context.Context, p *Profile) (*Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*Profile, error)
	Update(ctx context.Context, p *Profile) (*Profile, error)
}
