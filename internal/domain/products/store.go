package products

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSlug   = errors.New("product slug already exists")
	ErrInvalidCategory = errors.New("invalid category reference")
)

// Store is the data access abstraction for the products domain.
type Store interface {
	CreateProduct(ctx context.Context, p *Product) (*Product, error)
	GetProductByID(ctx context.Context, id int64) (*ProductWithCategories, error)
	UpdateProduct(ctx context.Context, p *Product) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, categorySlug string, limit, offset int) ([]*Product, int, error)
	ReplaceProductCategories(ctx context.Context, productID int64, categoryIDs []int64) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Printf("warning: rollback failed: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return fmt.Errorf("tx fn: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

const productColumns = `id, name, slug, description, price_cents, platform, region, cover_image,
	is_active, created_at, updated_at`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.PriceCents, &p.Platform,
		&p.Region, &p.CoverImage, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *Repository) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO products (name, slug, description, price_cents, platform, region, cover_image, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns + `;
	`

	created := &Product{}
	row := r.db.QueryRow(ctx, query,
		p.Name, p.Slug, p.Description, p.PriceCents, p.Platform, p.Region, p.CoverImage, p.IsActive)
	if err := scanProduct(row, created); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func (r *Repository) GetProductByID(ctx context.Context, id int64) (*ProductWithCategories, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`

	out := &ProductWithCategories{}
	if err := scanProduct(r.db.QueryRow(ctx, query, id), &out.Product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT category_id FROM product_categories WHERE product_id = $1 ORDER BY category_id;`, id)
	if err != nil {
		return nil, fmt.Errorf("get product categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var categoryID int64
		if err := rows.Scan(&categoryID); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		out.CategoryIDs = append(out.CategoryIDs, categoryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, p *Product) (*Product, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}

	query := `
		UPDATE products
		SET
			name = COALESCE(NULLIF($1, ''), name),
			slug = COALESCE(NULLIF($2, ''), slug),
			description = COALESCE($3, description),
			price_cents = COALESCE($4, price_cents),
			platform = COALESCE($5, platform),
			region = COALESCE($6, region),
			cover_image = COALESCE($7, cover_image),
			is_active = COALESCE($8, is_active),
			updated_at = now()
		WHERE id = $9
		RETURNING ` + productColumns + `;
	`

	updated := &Product{}
	row := r.db.QueryRow(ctx, query,
		p.Name, p.Slug, p.Description, p.PriceCents, p.Platform, p.Region,
		p.CoverImage, p.IsActive, p.ID)
	if err := scanProduct(row, updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ListProducts returns a page of products and the true total. A non-empty
// categorySlug restricts the page to that category's subtree.
func (r *Repository) ListProducts(ctx context.Context, categorySlug string, limit, offset int) ([]*Product, int, error) {
	if limit <= 0 || limit > 30 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	catCTE := `
		WITH RECURSIVE cat_subtree AS (
			SELECT id FROM categories WHERE ($1 = '' OR slug = $1)
			UNION ALL
			SELECT c.id
			FROM categories c
			INNER JOIN cat_subtree cs ON c.parent_id = cs.id
		)
	`

	dataSQL := catCTE + `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.is_active = true
		  AND ($1 = '' OR p.id IN (
			SELECT pc.product_id FROM product_categories pc
			WHERE pc.category_id IN (SELECT id FROM cat_subtree)
		  ))
		ORDER BY p.id DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := r.db.Query(ctx, dataSQL, categorySlug, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*Product, 0, limit)
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	countSQL := catCTE + `
		SELECT COUNT(*)
		FROM products p
		WHERE p.is_active = true
		  AND ($1 = '' OR p.id IN (
			SELECT pc.product_id FROM product_categories pc
			WHERE pc.category_id IN (SELECT id FROM cat_subtree)
		  ));
	`
	var total int
	if err := r.db.QueryRow(ctx, countSQL, categorySlug).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	return list, total, nil
}

// ReplaceProductCategories swaps a product's category associations for the
// given set. Inserts use ON CONFLICT DO NOTHING so a repeated id in the
// input cannot violate the (product, category) uniqueness.
func (r *Repository) ReplaceProductCategories(ctx context.Context, productID int64, categoryIDs []int64) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM product_categories WHERE product_id = $1;`, productID); err != nil {
			return fmt.Errorf("clear product categories: %w", err)
		}
		for _, categoryID := range categoryIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO product_categories (product_id, category_id)
				 VALUES ($1, $2) ON CONFLICT DO NOTHING;`,
				productID, categoryID)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23503" {
					return fmt.Errorf("category %d: %w", categoryID, ErrInvalidCategory)
				}
				return fmt.Errorf("insert product category: %w", err)
			}
		}
		return nil
	})
}

func validateProduct(p *Product) error {
	if p == nil {
		return fmt.Errorf("product cannot be nil")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name cannot be empty")
	}
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("product slug cannot be empty")
	}
	return nil
}
