package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryHasChildren = errors.New("category has sub-categories")
	ErrDuplicateSlug       = errors.New("slug already exists")
	ErrInvalidParent       = errors.New("invalid parent category")
	ErrMenuItemNotFound    = errors.New("main menu item not found")
)

// Store is the data access abstraction for the catalog domain.
// Implemented by Repository (which uses pgxpool.Pool).
type Store interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error

	// Categories
	CreateCategory(ctx context.Context, c *Category) (*Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
	UpdateCategory(ctx context.Context, id int64, in UpdateCategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*Category, error)
	ListCategoryTreeRows(ctx context.Context) ([]*Category, error)
	DirectProductCounts(ctx context.Context) (map[int64]int, error)
	ReorderCategories(ctx context.Context, orderedIDs []int64) error

	// Main menu
	GetMenuItemByCategory(ctx context.Context, categoryID int64) (*MainMenuItem, error)
	GetMenuItemBySlug(ctx context.Context, slug string) (*MainMenuItem, error)
	InsertMenuItem(ctx context.Context, m *MainMenuItem) (*MainMenuItem, error)
	UpdateMenuItemFromCategory(ctx context.Context, id int64, name, slug, description string) error
	DeactivateMenuItemByCategory(ctx context.Context, categoryID int64) error
	SetMenuPopularProducts(ctx context.Context, categoryID int64, ids OrderedIDList) error
	UpdateMenuItemCurated(ctx context.Context, id int64, in UpdateMenuItemInput) (*MainMenuItem, error)
	UpdateCategoryMenuPresentation(ctx context.Context, categoryID int64, image NullableString, displayType *string) error
	ListActiveRootMenuItems(ctx context.Context) ([]*MainMenuItem, error)

	// Popular products
	ReplacePopularProducts(ctx context.Context, categoryID int64, ids []int64) error
	GetPopularProducts(ctx context.Context, categoryID int64) ([]PopularProduct, error)
	SearchCandidateProducts(ctx context.Context, term string) ([]CandidateProduct, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// ------------------------------------
// Transaction helper
// ------------------------------------
func (r *Repository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
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

const categoryColumns = `id, name, slug, parent_id, icon, banner, description, sub_description, link,
	order_position, status, show_in_main_menu, category_image, main_menu_display_type,
	main_menu_description, created_at, updated_at`

func scanCategory(row pgx.Row, c *Category) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.Icon, &c.Banner, &c.Description,
		&c.SubDescription, &c.Link, &c.OrderPosition, &c.Status, &c.ShowInMainMenu,
		&c.CategoryImage, &c.MainMenuDisplayType, &c.MainMenuDescription,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

// ------------------------------------
// Categories
// ------------------------------------
func (r *Repository) CreateCategory(ctx context.Context, c *Category) (*Category, error) {
	if err := validateCategory(c); err != nil {
		return nil, err
	}

	// Validate parent exists if provided. Only already-persisted categories
	// can become parents, which is what keeps the tree acyclic.
	if c.ParentID != nil {
		if _, err := r.GetCategoryByID(ctx, *c.ParentID); err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				return nil, ErrInvalidParent
			}
			return nil, err
		}
	}

	if c.MainMenuDisplayType == "" {
		c.MainMenuDisplayType = DefaultDisplayType
	}

	query := `
		INSERT INTO categories (name, slug, parent_id, icon, banner, description, sub_description,
			link, order_position, status, show_in_main_menu, category_image,
			main_menu_display_type, main_menu_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + categoryColumns + `;
	`

	created := &Category{}
	row := r.db.QueryRow(ctx, query,
		c.Name, c.Slug, c.ParentID, c.Icon, c.Banner, c.Description, c.SubDescription,
		c.Link, c.OrderPosition, c.Status, c.ShowInMainMenu, c.CategoryImage,
		c.MainMenuDisplayType, c.MainMenuDescription,
	)
	if err := scanCategory(row, created); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	return created, nil
}

func (r *Repository) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1;`

	c := &Category{}
	if err := scanCategory(r.db.QueryRow(ctx, query, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by id: %w", err)
	}

	return c, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, id int64, in UpdateCategoryInput) (*Category, error) {
	// Check if category exists
	if _, err := r.GetCategoryByID(ctx, id); err != nil {
		return nil, err
	}

	if in.ParentID.Set && in.ParentID.Value != nil {
		if *in.ParentID.Value == id {
			return nil, ErrInvalidParent
		}
		if _, err := r.GetCategoryByID(ctx, *in.ParentID.Value); err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				return nil, ErrInvalidParent
			}
			return nil, err
		}
	}

	set := []string{"updated_at = now()"}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Slug != nil {
		add("slug", *in.Slug)
	}
	if in.ParentID.Set {
		add("parent_id", in.ParentID.Value)
	}
	if in.Icon.Set {
		add("icon", in.Icon.Value)
	}
	if in.Banner.Set {
		add("banner", in.Banner.Value)
	}
	if in.Description.Set {
		add("description", in.Description.Value)
	}
	if in.SubDescription.Set {
		add("sub_description", in.SubDescription.Value)
	}
	if in.Link.Set {
		add("link", in.Link.Value)
	}
	if in.OrderPosition != nil {
		add("order_position", *in.OrderPosition)
	}
	if in.Status != nil {
		add("status", *in.Status)
	}
	if in.ShowInMainMenu != nil {
		add("show_in_main_menu", *in.ShowInMainMenu)
	}
	if in.CategoryImage.Set {
		add("category_image", in.CategoryImage.Value)
	}
	if in.MainMenuDisplayType != nil {
		add("main_menu_display_type", *in.MainMenuDisplayType)
	}
	if in.MainMenuDescription.Set {
		add("main_menu_description", in.MainMenuDescription.Value)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE categories SET %s WHERE id = $%d RETURNING %s;`,
		strings.Join(set, ", "), len(args), categoryColumns)

	updated := &Category{}
	if err := scanCategory(r.db.QueryRow(ctx, query, args...), updated); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	return updated, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	hasChildren, err := r.hasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return ErrCategoryHasChildren
	}

	result, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// ListCategories returns every category ordered by (order_position, name),
// the flat listing order.
func (r *Repository) ListCategories(ctx context.Context) ([]*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY order_position, name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

// ListCategoryTreeRows returns all categories reachable from the roots,
// ordered by (level, order_position, name). Rows whose parent reference
// points at a missing category are not reachable and therefore excluded,
// matching the orphan-dropping behavior of the tree read path.
func (r *Repository) ListCategoryTreeRows(ctx context.Context) ([]*Category, error) {
	query := `
		WITH RECURSIVE category_tree AS (
			SELECT ` + categoryColumns + `, 0 AS level
			FROM categories
			WHERE parent_id IS NULL
			UNION ALL
			SELECT c.id, c.name, c.slug, c.parent_id, c.icon, c.banner, c.description,
				c.sub_description, c.link, c.order_position, c.status, c.show_in_main_menu,
				c.category_image, c.main_menu_display_type, c.main_menu_description,
				c.created_at, c.updated_at, ct.level + 1
			FROM categories c
			INNER JOIN category_tree ct ON c.parent_id = ct.id
		)
		SELECT ` + categoryColumns + ` FROM category_tree
		ORDER BY level, order_position, name;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list category tree rows: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

func collectCategories(rows pgx.Rows) ([]*Category, error) {
	var list []*Category
	for rows.Next() {
		var c Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return list, nil
}

// DirectProductCounts returns the number of direct product associations per
// category. Categories without associations are absent from the map.
func (r *Repository) DirectProductCounts(ctx context.Context) (map[int64]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category_id, COUNT(*) FROM product_categories GROUP BY category_id;`)
	if err != nil {
		return nil, fmt.Errorf("direct product counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan product count: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return counts, nil
}

// ReorderCategories sets order_position for the given category IDs in the
// provided order. Runs in a single tx so a failure rolls everything back.
func (r *Repository) ReorderCategories(ctx context.Context, orderedIDs []int64) error {
	if len(orderedIDs) == 0 {
		return fmt.Errorf("no category IDs provided for reordering")
	}
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		return applyCategoryOrder(ctx, tx, orderedIDs)
	})
}

// applyCategoryOrder writes order_position = index for each id inside the
// given tx. The first failure aborts, which rolls back every position already
// written, so the ordering lands whole or not at all.
func applyCategoryOrder(ctx context.Context, tx pgx.Tx, orderedIDs []int64) error {
	for idx, id := range orderedIDs {
		result, err := tx.Exec(ctx,
			`UPDATE categories SET order_position = $1, updated_at = now() WHERE id = $2;`,
			idx, id)
		if err != nil {
			return fmt.Errorf("update order_position: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("reorder category %d: %w", id, ErrCategoryNotFound)
		}
	}
	return nil
}

func (r *Repository) hasChildren(ctx context.Context, parentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE parent_id = $1)`,
		parentID).Scan(&exists)
	return exists, err
}

func validateCategory(c *Category) error {
	if c == nil {
		return fmt.Errorf("category cannot be nil")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	if strings.TrimSpace(c.Slug) == "" {
		return fmt.Errorf("category slug cannot be empty")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ------------------------------------
// Main menu
// ------------------------------------

const menuColumns = `id, name, slug, category_id, parent_id, display_order, is_active,
	show_product_count, category_image, description, main_menu_display_type,
	banner_images, popular_product_ids, created_at, updated_at`

func scanMenuItem(row pgx.Row, m *MainMenuItem) error {
	var bannerData []byte
	var popularData []byte

	if err := row.Scan(
		&m.ID, &m.Name, &m.Slug, &m.CategoryID, &m.ParentID, &m.DisplayOrder,
		&m.IsActive, &m.ShowProductCount, &m.CategoryImage, &m.Description,
		&m.MainMenuDisplayType, &bannerData, &popularData, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return err
	}

	if len(bannerData) > 0 {
		if err := json.Unmarshal(bannerData, &m.BannerImages); err != nil {
			return fmt.Errorf("unmarshal banner_images: %w", err)
		}
	}
	if len(popularData) > 0 {
		if err := json.Unmarshal(popularData, &m.PopularProductIDs); err != nil {
			return fmt.Errorf("unmarshal popular_product_ids: %w", err)
		}
	}
	return nil
}

func (r *Repository) GetMenuItemByCategory(ctx context.Context, categoryID int64) (*MainMenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM main_menu_items WHERE category_id = $1;`

	m := &MainMenuItem{}
	if err := scanMenuItem(r.db.QueryRow(ctx, query, categoryID), m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu item by category: %w", err)
	}
	return m, nil
}

func (r *Repository) GetMenuItemBySlug(ctx context.Context, slug string) (*MainMenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM main_menu_items WHERE slug = $1;`

	m := &MainMenuItem{}
	if err := scanMenuItem(r.db.QueryRow(ctx, query, slug), m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("get menu item by slug: %w", err)
	}
	return m, nil
}

func (r *Repository) InsertMenuItem(ctx context.Context, m *MainMenuItem) (*MainMenuItem, error) {
	bannerJSON, err := json.Marshal(m.BannerImages)
	if err != nil {
		return nil, fmt.Errorf("marshal banner_images: %w", err)
	}
	popularJSON, err := marshalIDList(m.PopularProductIDs)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO main_menu_items (name, slug, category_id, parent_id, display_order,
			is_active, show_product_count, category_image, description,
			main_menu_display_type, banner_images, popular_product_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + menuColumns + `;
	`

	created := &MainMenuItem{}
	row := r.db.QueryRow(ctx, query,
		m.Name, m.Slug, m.CategoryID, m.ParentID, m.DisplayOrder,
		m.IsActive, m.ShowProductCount, m.CategoryImage, m.Description,
		m.MainMenuDisplayType, bannerJSON, popularJSON,
	)
	if err := scanMenuItem(row, created); err != nil {
		return nil, fmt.Errorf("insert menu item: %w", err)
	}
	return created, nil
}

// UpdateMenuItemFromCategory refreshes the fields a menu item mirrors from
// its category and reactivates it. Curated fields (banner images, popular
// product ids, category image, display order) are deliberately not touched.
func (r *Repository) UpdateMenuItemFromCategory(ctx context.Context, id int64, name, slug, description string) error {
	query := `
		UPDATE main_menu_items
		SET name = $1, slug = $2, description = $3, is_active = true, updated_at = now()
		WHERE id = $4;
	`
	if _, err := r.db.Exec(ctx, query, name, slug, description, id); err != nil {
		return fmt.Errorf("update menu item from category: %w", err)
	}
	return nil
}

func (r *Repository) DeactivateMenuItemByCategory(ctx context.Context, categoryID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE main_menu_items SET is_active = false, updated_at = now() WHERE category_id = $1;`,
		categoryID)
	if err != nil {
		return fmt.Errorf("deactivate menu item: %w", err)
	}
	return nil
}

func (r *Repository) SetMenuPopularProducts(ctx context.Context, categoryID int64, ids OrderedIDList) error {
	popularJSON, err := marshalIDList(ids)
	if err != nil {
		return err
	}
	result, err := r.db.Exec(ctx,
		`UPDATE main_menu_items SET popular_product_ids = $1, updated_at = now() WHERE category_id = $2;`,
		popularJSON, categoryID)
	if err != nil {
		return fmt.Errorf("set menu popular products: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *Repository) UpdateMenuItemCurated(ctx context.Context, id int64, in UpdateMenuItemInput) (*MainMenuItem, error) {
	set := []string{"updated_at = now()"}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.CategoryImage.Set {
		add("category_image", in.CategoryImage.Value)
	}
	if in.Description.Set {
		add("description", in.Description.Value)
	}
	if in.MainMenuDisplayType != nil {
		add("main_menu_display_type", *in.MainMenuDisplayType)
	}
	if in.BannerImages != nil {
		bannerJSON, err := json.Marshal(*in.BannerImages)
		if err != nil {
			return nil, fmt.Errorf("marshal banner_images: %w", err)
		}
		add("banner_images", bannerJSON)
	}
	if in.ShowProductCount != nil {
		add("show_product_count", *in.ShowProductCount)
	}
	if in.DisplayOrder != nil {
		add("display_order", *in.DisplayOrder)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE main_menu_items SET %s WHERE id = $%d RETURNING %s;`,
		strings.Join(set, ", "), len(args), menuColumns)

	updated := &MainMenuItem{}
	if err := scanMenuItem(r.db.QueryRow(ctx, query, args...), updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	return updated, nil
}

// UpdateCategoryMenuPresentation mirrors menu-item presentation edits back
// into the linked category row.
func (r *Repository) UpdateCategoryMenuPresentation(ctx context.Context, categoryID int64, image NullableString, displayType *string) error {
	set := []string{"updated_at = now()"}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if image.Set {
		add("category_image", image.Value)
	}
	if displayType != nil {
		add("main_menu_display_type", *displayType)
	}
	if len(args) == 0 {
		return nil
	}

	args = append(args, categoryID)
	query := fmt.Sprintf(`UPDATE categories SET %s WHERE id = $%d;`,
		strings.Join(set, ", "), len(args))

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update category menu presentation: %w", err)
	}
	return nil
}

func (r *Repository) ListActiveRootMenuItems(ctx context.Context) ([]*MainMenuItem, error) {
	query := `
		SELECT ` + menuColumns + ` FROM main_menu_items
		WHERE is_active = true AND parent_id IS NULL
		ORDER BY display_order, name;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list root menu items: %w", err)
	}
	defer rows.Close()

	var items []*MainMenuItem
	for rows.Next() {
		var m MainMenuItem
		if err := scanMenuItem(rows, &m); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

// marshalIDList serializes an ordered id list for a jsonb column. A nil or
// empty list is stored as SQL NULL.
func marshalIDList(ids OrderedIDList) (interface{}, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("marshal popular_product_ids: %w", err)
	}
	return data, nil
}

// ------------------------------------
// Popular products
// ------------------------------------

// ReplacePopularProducts swaps the curated set for a category wholesale:
// delete everything, reinsert in input order with a 1-based display_order.
// Runs in a single tx so the ordering is exact or nothing changes.
func (r *Repository) ReplacePopularProducts(ctx context.Context, categoryID int64, ids []int64) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM category_popular_products WHERE category_id = $1;`, categoryID); err != nil {
			return fmt.Errorf("clear popular products: %w", err)
		}
		for idx, productID := range ids {
			if _, err := tx.Exec(ctx,
				`INSERT INTO category_popular_products (category_id, product_id, display_order)
				 VALUES ($1, $2, $3);`,
				categoryID, productID, idx+1); err != nil {
				return fmt.Errorf("insert popular product %d: %w", productID, err)
			}
		}
		return nil
	})
}

func (r *Repository) GetPopularProducts(ctx context.Context, categoryID int64) ([]PopularProduct, error) {
	query := `
		SELECT p.id, p.name, p.slug, p.cover_image, p.price_cents, cpp.display_order
		FROM category_popular_products cpp
		INNER JOIN products p ON p.id = cpp.product_id
		WHERE cpp.category_id = $1
		ORDER BY cpp.display_order ASC;
	`

	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("get popular products: %w", err)
	}
	defer rows.Close()

	var list []PopularProduct
	for rows.Next() {
		var p PopularProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Slug, &p.CoverImage, &p.PriceCents, &p.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan popular product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return list, nil
}

// SearchCandidateProducts is the picker feed for the admin curation UI: a
// bounded page ordered by id, optionally filtered by a case-insensitive
// substring match on the product name. Not a search engine.
func (r *Repository) SearchCandidateProducts(ctx context.Context, term string) ([]CandidateProduct, error) {
	const limit = 30

	var (
		rows pgx.Rows
		err  error
	)
	if strings.TrimSpace(term) == "" {
		rows, err = r.db.Query(ctx,
			`SELECT id, name, slug, cover_image FROM products ORDER BY id LIMIT $1;`, limit)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, name, slug, cover_image FROM products
			 WHERE name ILIKE '%' || $1 || '%' ORDER BY id LIMIT $2;`,
			strings.TrimSpace(term), limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search candidate products: %w", err)
	}
	defer rows.Close()

	var list []CandidateProduct
	for rows.Next() {
		var p CandidateProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.CoverImage); err != nil {
			return nil, fmt.Errorf("scan candidate product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return list, nil
}
