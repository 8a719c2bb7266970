package mysql

import (
	"context"
	"database/sql"
	"errors"

	domprofile "example.com/catalog-dashboard/internal/domain/profile"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domprofile.Profile) (*domprofile.Profile, error) {
	if _, err := r.db.ExecContext(ctx, `
        INSERT INTO profiles (user_id, theme) VALUES (?, ?)
    `, p.UserID, p.Theme); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domprofile.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT user_id, theme FROM profiles WHERE user_id = ?
    `, userID)

	var p domprofile.Profile
	if err := row.Scan(&p.UserID, &p.Theme); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domprofile.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domprofile.Profile) (*domprofile.Profile, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE profiles SET theme = ? WHERE user_id = ?
    `, p.Theme, p.UserID)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domprofile.ErrProfileNotFound
	}
	return p, nil
}
