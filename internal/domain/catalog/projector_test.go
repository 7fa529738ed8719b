package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore records menu writes and stubs reads. Unstubbed methods return
// zero values.
type fakeStore struct {
	menuItemByCategory    *MainMenuItem
	menuItemByCategoryErr error

	inserted        []*MainMenuItem
	fromCategory    []string // "name|slug|description" per call
	deactivatedFor  []int64
	menuPopularFor  []int64
	menuPopularIDs  []OrderedIDList
	menuPopularErr  error
	replacedFor     []int64
	replacedIDs     [][]int64
	replaceErr      error
	insertErr       error
	updateFromCatID []int64
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error { return fn(nil) }

func (f *fakeStore) CreateCategory(ctx context.Context, c *Category) (*Category, error) {
	return c, nil
}
func (f *fakeStore) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	return nil, ErrCategoryNotFound
}
func (f *fakeStore) UpdateCategory(ctx context.Context, id int64, in UpdateCategoryInput) (*Category, error) {
	return nil, ErrCategoryNotFound
}
func (f *fakeStore) DeleteCategory(ctx context.Context, id int64) error    { return nil }
func (f *fakeStore) ListCategories(ctx context.Context) ([]*Category, error) { return nil, nil }
func (f *fakeStore) ListCategoryTreeRows(ctx context.Context) ([]*Category, error) {
	return nil, nil
}
func (f *fakeStore) DirectProductCounts(ctx context.Context) (map[int64]int, error) {
	return nil, nil
}
func (f *fakeStore) ReorderCategories(ctx context.Context, orderedIDs []int64) error { return nil }

func (f *fakeStore) GetMenuItemByCategory(ctx context.Context, categoryID int64) (*MainMenuItem, error) {
	return f.menuItemByCategory, f.menuItemByCategoryErr
}
func (f *fakeStore) GetMenuItemBySlug(ctx context.Context, slug string) (*MainMenuItem, error) {
	return nil, ErrMenuItemNotFound
}
func (f *fakeStore) InsertMenuItem(ctx context.Context, m *MainMenuItem) (*MainMenuItem, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, m)
	return m, nil
}
func (f *fakeStore) UpdateMenuItemFromCategory(ctx context.Context, id int64, name, slug, description string) error {
	f.updateFromCatID = append(f.updateFromCatID, id)
	f.fromCategory = append(f.fromCategory, name+"|"+slug+"|"+description)
	return nil
}
func (f *fakeStore) DeactivateMenuItemByCategory(ctx context.Context, categoryID int64) error {
	f.deactivatedFor = append(f.deactivatedFor, categoryID)
	return nil
}
func (f *fakeStore) SetMenuPopularProducts(ctx context.Context, categoryID int64, ids OrderedIDList) error {
	if f.menuPopularErr != nil {
		return f.menuPopularErr
	}
	f.menuPopularFor = append(f.menuPopularFor, categoryID)
	f.menuPopularIDs = append(f.menuPopularIDs, ids)
	return nil
}
func (f *fakeStore) UpdateMenuItemCurated(ctx context.Context, id int64, in UpdateMenuItemInput) (*MainMenuItem, error) {
	return nil, ErrMenuItemNotFound
}
func (f *fakeStore) UpdateCategoryMenuPresentation(ctx context.Context, categoryID int64, image NullableString, displayType *string) error {
	return nil
}
func (f *fakeStore) ListActiveRootMenuItems(ctx context.Context) ([]*MainMenuItem, error) {
	return nil, nil
}

func (f *fakeStore) ReplacePopularProducts(ctx context.Context, categoryID int64, ids []int64) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedFor = append(f.replacedFor, categoryID)
	f.replacedIDs = append(f.replacedIDs, ids)
	return nil
}
func (f *fakeStore) GetPopularProducts(ctx context.Context, categoryID int64) ([]PopularProduct, error) {
	return nil, nil
}
func (f *fakeStore) SearchCandidateProducts(ctx context.Context, term string) ([]CandidateProduct, error) {
	return nil, nil
}

func newTestProjector(store Store) *Projector {
	return NewProjector(store, zap.NewNop().Sugar())
}

func TestSyncMainMenuCreatesItemOnFirstEnable(t *testing.T) {
	store := &fakeStore{}
	p := newTestProjector(store)

	c := &Category{ID: 7, Name: "PC Games", Slug: "pc-games", ShowInMainMenu: true}
	p.SyncMainMenu(context.Background(), c)

	require.Len(t, store.inserted, 1)
	item := store.inserted[0]
	assert.Equal(t, "PC Games", item.Name)
	assert.Equal(t, "pc-games", item.Slug)
	require.NotNil(t, item.CategoryID)
	assert.Equal(t, int64(7), *item.CategoryID)
	assert.Equal(t, 1, item.DisplayOrder)
	assert.True(t, item.IsActive)
	assert.True(t, item.ShowProductCount)
	assert.Equal(t, DefaultDisplayType, item.MainMenuDisplayType)
	assert.Equal(t, EmptyBannerImages(), item.BannerImages)
	require.NotNil(t, item.Description)
	assert.Equal(t, "Browse PC Games products", *item.Description)
}

func TestSyncMainMenuUsesCategoryMenuDescription(t *testing.T) {
	store := &fakeStore{}
	p := newTestProjector(store)

	desc := "All things PC gaming"
	c := &Category{ID: 7, Name: "PC Games", Slug: "pc-games",
		ShowInMainMenu: true, MainMenuDescription: &desc}
	p.SyncMainMenu(context.Background(), c)

	require.Len(t, store.inserted, 1)
	require.NotNil(t, store.inserted[0].Description)
	assert.Equal(t, desc, *store.inserted[0].Description)
}

func TestSyncMainMenuUpdatesExistingItem(t *testing.T) {
	catID := int64(7)
	store := &fakeStore{
		menuItemByCategory: &MainMenuItem{ID: 31, CategoryID: &catID, Slug: "pc-games"},
	}
	p := newTestProjector(store)

	c := &Category{ID: 7, Name: "PC & Mac Games", Slug: "pc-mac-games", ShowInMainMenu: true}
	p.SyncMainMenu(context.Background(), c)

	// no second item, only a rename of the existing one
	assert.Empty(t, store.inserted)
	require.Len(t, store.fromCategory, 1)
	assert.Equal(t, []int64{31}, store.updateFromCatID)
	assert.Equal(t, "PC & Mac Games|pc-mac-games|Browse PC & Mac Games products",
		store.fromCategory[0])
}

func TestSyncMainMenuDisableDeactivates(t *testing.T) {
	catID := int64(7)
	store := &fakeStore{
		menuItemByCategory: &MainMenuItem{ID: 31, CategoryID: &catID},
	}
	p := newTestProjector(store)

	c := &Category{ID: 7, Name: "PC Games", Slug: "pc-games", ShowInMainMenu: false}
	p.SyncMainMenu(context.Background(), c)

	assert.Equal(t, []int64{7}, store.deactivatedFor)
	assert.Empty(t, store.inserted)
}

func TestSyncMainMenuDisableWithoutItemIsNoop(t *testing.T) {
	store := &fakeStore{}
	p := newTestProjector(store)

	c := &Category{ID: 7, Name: "PC Games", Slug: "pc-games", ShowInMainMenu: false}
	p.SyncMainMenu(context.Background(), c)

	assert.Empty(t, store.deactivatedFor)
	assert.Empty(t, store.inserted)
}

func TestSyncMainMenuSwallowsStoreErrors(t *testing.T) {
	store := &fakeStore{menuItemByCategoryErr: errors.New("connection refused")}
	p := newTestProjector(store)

	c := &Category{ID: 7, Name: "PC Games", Slug: "pc-games", ShowInMainMenu: true}

	assert.NotPanics(t, func() {
		p.SyncMainMenu(context.Background(), c)
	})
	assert.Empty(t, store.inserted)
}

func TestSyncPopularProductsProjectsList(t *testing.T) {
	store := &fakeStore{}
	p := newTestProjector(store)

	p.SyncPopularProducts(context.Background(), 7, []int64{3, 8})

	assert.Equal(t, []int64{7}, store.menuPopularFor)
	require.Len(t, store.menuPopularIDs, 1)
	assert.Equal(t, OrderedIDList{3, 8}, store.menuPopularIDs[0])
}

func TestSyncPopularProductsNoMenuItemIsNormal(t *testing.T) {
	store := &fakeStore{menuPopularErr: ErrMenuItemNotFound}
	p := newTestProjector(store)

	assert.NotPanics(t, func() {
		p.SyncPopularProducts(context.Background(), 7, []int64{3})
	})
}

func TestSyncPopularProductsSwallowsErrors(t *testing.T) {
	store := &fakeStore{menuPopularErr: errors.New("connection refused")}
	p := newTestProjector(store)

	assert.NotPanics(t, func() {
		p.SyncPopularProducts(context.Background(), 7, []int64{3})
	})
}
