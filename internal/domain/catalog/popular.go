package catalog

import "context"

// Curator owns the hand-picked "popular products" list per category: one
// ordered set, stored once, projected into the menu item's
// popular_product_ids after every write.
type Curator struct {
	store     Store
	projector *Projector
}

func NewCurator(store Store, projector *Projector) *Curator {
	return &Curator{store: store, projector: projector}
}

// SetPopularProducts replaces the curated set with the given ordered list.
// An empty list is valid and clears the set. The menu projection afterwards
// is best-effort; its failure does not fail this write.
func (c *Curator) SetPopularProducts(ctx context.Context, categoryID int64, productIDs []int64) error {
	if err := c.store.ReplacePopularProducts(ctx, categoryID, productIDs); err != nil {
		return err
	}
	c.projector.SyncPopularProducts(ctx, categoryID, productIDs)
	return nil
}

func (c *Curator) GetPopularProducts(ctx context.Context, categoryID int64) ([]PopularProduct, error) {
	return c.store.GetPopularProducts(ctx, categoryID)
}

func (c *Curator) SearchCandidateProducts(ctx context.Context, term string) ([]CandidateProduct, error) {
	return c.store.SearchCandidateProducts(ctx, term)
}
