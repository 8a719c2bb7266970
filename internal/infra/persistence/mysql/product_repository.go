package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	domproduct "example.com/catalog-dashboard/internal/domain/product"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	now := time.Now()
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO products (user_id, name, description, price, stock, is_public, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, ownerArg(p.OwnerID), p.Name, p.Description, p.Price, p.Stock, p.IsPublic, now, now)
	if err != nil {
		return nil, err
	}
	p.ID, _ = res.LastInsertId()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	now := time.Now()
	res, err := r.db.ExecContext(ctx, `
        UPDATE products SET name = ?, description = ?, price = ?, stock = ?, is_public = ?, updated_at = ?
        WHERE id = ?
    `, p.Name, p.Description, p.Price, p.Stock, p.IsPublic, now, p.ID)
	if err != nil {
		return nil, err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	p.UpdatedAt = now
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, name, description, price, stock, is_public, created_at, updated_at
        FROM products WHERE id = ?
    `, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}

	ids, err := r.categoryIDs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.CategoryIDs = ids
	return p, nil
}

// List applies the scope first, then every predicate in order, and
// returns the matches newest first.
func (r *ProductRepository) List(ctx context.Context, scope domproduct.Scope, preds []domproduct.Predicate) ([]*domproduct.Product, error) {
	query := `
        SELECT id, user_id, name, description, price, stock, is_public, created_at, updated_at
        FROM products
    `
	var clauses []string
	var args []any

	if scope.OwnerID != nil {
		clauses = append(clauses, "user_id = ?")
		args = append(args, *scope.OwnerID)
	}
	if scope.PublicOnly {
		clauses = append(clauses, "is_public = 1")
	}

	for _, pred := range preds {
		clause, predArgs, err := buildPredicate(pred)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, predArgs...)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domproduct.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) ReplaceCategories(ctx context.Context, productID int64, categoryIDs []int64) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM product_categories WHERE product_id = ?`, productID); err != nil {
		retErr = err
		return retErr
	}
	for _, cid := range categoryIDs {
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO product_categories (product_id, category_id) VALUES (?, ?)
        `, productID, cid); err != nil {
			retErr = err
			return retErr
		}
	}

	return tx.Commit()
}

func (r *ProductRepository) categoryIDs(ctx context.Context, productID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT category_id FROM product_categories WHERE product_id = ? ORDER BY category_id
    `, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func buildPredicate(pred domproduct.Predicate) (string, []any, error) {
	switch p := pred.(type) {
	case domproduct.TextContains:
		var sub []string
		var args []any
		for _, f := range p.Fields {
			col, err := columnFor(f)
			if err != nil {
				return "", nil, err
			}
			sub = append(sub, col+" LIKE ?")
			args = append(args, "%"+p.Value+"%")
		}
		return "(" + strings.Join(sub, " OR ") + ")", args, nil
	case domproduct.Equals:
		col, err := columnFor(p.Field)
		if err != nil {
			return "", nil, err
		}
		return col + " = ?", []any{p.Value}, nil
	case domproduct.Range:
		col, err := columnFor(p.Field)
		if err != nil {
			return "", nil, err
		}
		if p.Min != "" {
			return col + " >= ?", []any{p.Min}, nil
		}
		return col + " <= ?", []any{p.Max}, nil
	default:
		return "", nil, fmt.Errorf("unsupported predicate %T", pred)
	}
}

func columnFor(f domproduct.Field) (string, error) {
	switch f {
	case domproduct.FieldName:
		return "name", nil
	case domproduct.FieldDescription:
		return "description", nil
	case domproduct.FieldVisibility:
		return "is_public", nil
	case domproduct.FieldPrice:
		return "price", nil
	case domproduct.FieldStock:
		return "stock", nil
	default:
		return "", fmt.Errorf("unknown field %q", f)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domproduct.Product, error) {
	var p domproduct.Product
	var owner sql.NullInt64
	if err := row.Scan(&p.ID, &owner, &p.Name, &p.Description, &p.Price, &p.Stock, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if owner.Valid {
		id := owner.Int64
		p.OwnerID = &id
	}
	return &p, nil
}

func ownerArg(ownerID *int64) any {
	if ownerID == nil {
		return nil
	}
	return *ownerID
}
