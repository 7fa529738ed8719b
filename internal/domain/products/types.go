package products

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Platform    *string   `json:"platform,omitempty"`
	Region      *string   `json:"region,omitempty"`
	CoverImage  *string   `json:"cover_image,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductWithCategories is the admin detail shape: the product plus the ids
// of every category it is associated with.
type ProductWithCategories struct {
	Product
	CategoryIDs []int64 `json:"category_ids"`
}
