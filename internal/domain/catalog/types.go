package catalog

import (
	"bytes"
	"encoding/json"
	"time"
)

// BannerSlots is the number of curated banner positions a main-menu item carries.
const BannerSlots = 4

// DefaultDisplayType is the display type a menu entry starts with.
const DefaultDisplayType = "products"

type Category struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Slug                string    `json:"slug"`
	ParentID            *int64    `json:"parent_id,omitempty"`
	Icon                *string   `json:"icon,omitempty"`
	Banner              *string   `json:"banner,omitempty"`
	Description         *string   `json:"description,omitempty"`
	SubDescription      *string   `json:"sub_description,omitempty"`
	Link                *string   `json:"link,omitempty"`
	OrderPosition       int       `json:"order_position"`
	Status              bool      `json:"status"`
	ShowInMainMenu      bool      `json:"show_in_main_menu"`
	CategoryImage       *string   `json:"category_image,omitempty"`
	MainMenuDisplayType string    `json:"main_menu_display_type"`
	MainMenuDescription *string   `json:"main_menu_description,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CategoryNode is a category annotated with its recursive product count and
// attached children, as served by the hierarchical listing.
type CategoryNode struct {
	Category
	ProductCount int             `json:"product_count"`
	Children     []*CategoryNode `json:"children,omitempty"`
}

// BannerImages is a fixed-slot array of image URLs. Empty string means the
// slot is unfilled. JSON input shorter or longer than BannerSlots is padded
// or truncated so the stored shape is always exactly four slots.
type BannerImages [BannerSlots]string

func EmptyBannerImages() BannerImages {
	return BannerImages{}
}

func (b *BannerImages) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*b = BannerImages{}
		return nil
	}
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out BannerImages
	for i := 0; i < BannerSlots && i < len(raw); i++ {
		out[i] = raw[i]
	}
	*b = out
	return nil
}

// OrderedIDList is an ordered list of product identifiers. A nil list is
// stored as SQL NULL.
type OrderedIDList []int64

type MainMenuItem struct {
	ID                  int64         `json:"id"`
	Name                string        `json:"name"`
	Slug                string        `json:"slug"`
	CategoryID          *int64        `json:"category_id,omitempty"`
	ParentID            *int64        `json:"parent_id,omitempty"`
	DisplayOrder        int           `json:"display_order"`
	IsActive            bool          `json:"is_active"`
	ShowProductCount    bool          `json:"show_product_count"`
	CategoryImage       *string       `json:"category_image,omitempty"`
	Description         *string       `json:"description,omitempty"`
	MainMenuDisplayType string        `json:"main_menu_display_type"`
	BannerImages        BannerImages  `json:"banner_images"`
	PopularProductIDs   OrderedIDList `json:"popular_product_ids"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// MenuEntry is the navigation projection: an active root menu item joined
// with its linked category, recursive product count and the subcategories
// flagged for the main menu.
type MenuEntry struct {
	MainMenuItem
	ProductCount int          `json:"product_count"`
	Children     []*MenuChild `json:"children,omitempty"`
}

type MenuChild struct {
	CategoryID   int64  `json:"category_id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}

// PopularProduct is a curated product joined with its position in the
// category's hand-picked list.
type PopularProduct struct {
	ProductID    int64   `json:"product_id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	CoverImage   *string `json:"cover_image,omitempty"`
	PriceCents   int64   `json:"price_cents"`
	DisplayOrder int     `json:"display_order"`
}

// CandidateProduct is a row in the admin curation picker feed.
type CandidateProduct struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	CoverImage *string `json:"cover_image,omitempty"`
}

// NullableString distinguishes "field absent from the payload" from
// "field explicitly set to null". Absent means leave unchanged.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// NullableInt64 is the integer counterpart of NullableString, used for
// parent references that may be explicitly cleared.
type NullableInt64 struct {
	Set   bool
	Value *int64
}

func (n *NullableInt64) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// UpdateCategoryInput carries a partial category update. Plain pointers are
// COALESCE-style (nil leaves the column unchanged); Nullable fields can also
// be set to null explicitly. PopularProducts replaces the curated set when
// the key is present, even as an empty list.
type UpdateCategoryInput struct {
	Name                *string        `json:"name"`
	Slug                *string        `json:"slug"`
	ParentID            NullableInt64  `json:"parent_id"`
	Icon                NullableString `json:"icon"`
	Banner              NullableString `json:"banner"`
	Description         NullableString `json:"description"`
	SubDescription      NullableString `json:"sub_description"`
	Link                NullableString `json:"link"`
	OrderPosition       *int           `json:"order_position"`
	Status              *bool          `json:"status"`
	ShowInMainMenu      *bool          `json:"show_in_main_menu"`
	CategoryImage       NullableString `json:"category_image"`
	MainMenuDisplayType *string        `json:"main_menu_display_type"`
	MainMenuDescription NullableString `json:"main_menu_description"`
	PopularProducts     *[]int64       `json:"popular_products"`
}

// UpdateMenuItemInput edits the menu-only curated fields of a main-menu item.
type UpdateMenuItemInput struct {
	CategoryImage       NullableString `json:"category_image"`
	Description         NullableString `json:"description"`
	MainMenuDisplayType *string        `json:"main_menu_display_type"`
	BannerImages        *BannerImages  `json:"banner_images"`
	ShowProductCount    *bool          `json:"show_product_count"`
	DisplayOrder        *int           `json:"display_order"`
}
