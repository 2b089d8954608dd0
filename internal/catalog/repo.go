package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateSKU   = errors.New("sku already exists")
	ErrDuplicateBrand = errors.New("brand name already exists")
	ErrBrandInUse     = errors.New("brand is referenced by products")
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, brand_id, sku, name, price_cents, stock, created_at, updated_at
		FROM products ORDER BY sku`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.BrandID, &p.SKU, &p.Name, &p.PriceCents, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetProduct(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, brand_id, sku, name, price_cents, stock, created_at, updated_at
		FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.BrandID, &p.SKU, &p.Name, &p.PriceCents, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) CreateProduct(ctx context.Context, p Product) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products (brand_id, sku, name, price_cents, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.BrandID, p.SKU, p.Name, p.PriceCents, p.Stock,
	).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrDuplicateSKU
	}
	return id, err
}

func (r *Repo) UpdateProduct(ctx context.Context, p Product) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET brand_id = $2, sku = $3, name = $4, price_cents = $5, stock = $6, updated_at = now()
		WHERE id = $1`,
		p.ID, p.BrandID, p.SKU, p.Name, p.PriceCents, p.Stock)
	if isUniqueViolation(err) {
		return ErrDuplicateSKU
	}
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteProduct(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ListBrands(ctx context.Context) ([]Brand, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, created_at FROM brands ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Brand, 0)
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) GetBrand(ctx context.Context, id int64) (Brand, error) {
	var b Brand
	err := r.DB.QueryRow(ctx, `SELECT id, name, created_at FROM brands WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Brand{}, ErrNotFound
	}
	return b, err
}

func (r *Repo) CreateBrand(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.DB.QueryRow(ctx, `INSERT INTO brands (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrDuplicateBrand
	}
	return id, err
}

func (r *Repo) UpdateBrand(ctx context.Context, b Brand) error {
	ct, err := r.DB.Exec(ctx, `UPDATE brands SET name = $2 WHERE id = $1`, b.ID, b.Name)
	if isUniqueViolation(err) {
		return ErrDuplicateBrand
	}
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) DeleteBrand(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if isFKViolation(err) {
		return ErrBrandInUse
	}
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
