package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	domuser "example.com/catalog-dashboard/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash)
         VALUES (?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, domuser.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	id, _ := res.LastInsertId()
	u.ID = id
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, username, email, password_hash
        FROM users WHERE id = ?
    `, id)

	var u domuser.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, username, email, password_hash
        FROM users WHERE email = ?
    `, email)

	var u domuser.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE users SET username = ?, email = ?, password_hash = ?
        WHERE id = ?
    `, u.Username, u.Email, u.PasswordHash, u.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, domuser.ErrEmailAlreadyUsed
		}
		return nil, err
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domuser.ErrUserNotFound
	}

	return u, nil
}

// Delete removes the user and everything hanging off them in one
// transaction: category links of their products, the products, the
// profile, and finally the account.
func (r *UserRepository) Delete(ctx context.Context, id int64) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
        DELETE FROM product_categories
        WHERE product_id IN (SELECT id FROM products WHERE user_id = ?)
    `, id); err != nil {
		retErr = err
		return retErr
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM products WHERE user_id = ?`, id); err != nil {
		retErr = err
		return retErr
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, id); err != nil {
		retErr = err
		return retErr
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		retErr = err
		return retErr
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		retErr = domuser.ErrUserNotFound
		return retErr
	}

	return tx.Commit()
}
