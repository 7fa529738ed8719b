package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Projector keeps a category's main-menu item in lockstep with the category
// row without destroying menu-only curated content. Every operation here is
// best-effort: failures are logged and swallowed so a projection problem can
// never fail the category write that triggered it. The two tables can drift
// if a sync silently fails; there is no retry queue.
type Projector struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewProjector(store Store, logger *zap.SugaredLogger) *Projector {
	return &Projector{store: store, logger: logger}
}

// SyncMainMenu reconciles the menu item for a category after its
// show_in_main_menu flag (or name/slug) changed. Idempotent: callers invoke
// it whenever the flag is present in an update, changed or not.
func (p *Projector) SyncMainMenu(ctx context.Context, c *Category) {
	if err := p.syncMainMenu(ctx, c); err != nil {
		p.logger.Errorw("main menu sync failed",
			"category_id", c.ID, "slug", c.Slug, "error", err)
	}
}

func (p *Projector) syncMainMenu(ctx context.Context, c *Category) error {
	existing, err := p.store.GetMenuItemByCategory(ctx, c.ID)
	if err != nil {
		return err
	}

	if !c.ShowInMainMenu {
		if existing == nil {
			return nil
		}
		return p.store.DeactivateMenuItemByCategory(ctx, c.ID)
	}

	description := menuDescription(c)

	if existing == nil {
		item := &MainMenuItem{
			Name:                c.Name,
			Slug:                c.Slug,
			CategoryID:          &c.ID,
			DisplayOrder:        1,
			IsActive:            true,
			ShowProductCount:    true,
			Description:         &description,
			MainMenuDisplayType: DefaultDisplayType,
			BannerImages:        EmptyBannerImages(),
		}
		_, err := p.store.InsertMenuItem(ctx, item)
		return err
	}

	return p.store.UpdateMenuItemFromCategory(ctx, existing.ID, c.Name, c.Slug, description)
}

// SyncPopularProducts projects the curated product-id list into the
// category's menu item, if one exists. Called after every popular-products
// replace so the two read paths stay consistent.
func (p *Projector) SyncPopularProducts(ctx context.Context, categoryID int64, ids []int64) {
	err := p.store.SetMenuPopularProducts(ctx, categoryID, OrderedIDList(ids))
	if err == nil || errors.Is(err, ErrMenuItemNotFound) {
		// no menu item for this category is a normal state, not a failure
		return
	}
	p.logger.Errorw("popular products menu sync failed",
		"category_id", categoryID, "error", err)
}

func menuDescription(c *Category) string {
	if c.MainMenuDescription != nil && *c.MainMenuDescription != "" {
		return *c.MainMenuDescription
	}
	return fmt.Sprintf("Browse %s products", c.Name)
}
