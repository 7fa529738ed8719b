package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"playmart/internal/domain/catalog"
	"playmart/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubCatalogStore satisfies catalog.Store through the embedded interface;
// tests override only what the handler under test touches.
type stubCatalogStore struct {
	catalog.Store

	deleteErr error
	deleted   []int64

	updated *catalog.Category

	menuItem        *catalog.MainMenuItem
	menuRefreshed   []int64
	menuRefreshArgs []string
}

func (s *stubCatalogStore) DeleteCategory(ctx context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCatalogStore) UpdateCategory(ctx context.Context, id int64, in catalog.UpdateCategoryInput) (*catalog.Category, error) {
	if s.updated == nil {
		return nil, catalog.ErrCategoryNotFound
	}
	return s.updated, nil
}

func (s *stubCatalogStore) GetMenuItemByCategory(ctx context.Context, categoryID int64) (*catalog.MainMenuItem, error) {
	return s.menuItem, nil
}

func (s *stubCatalogStore) UpdateMenuItemFromCategory(ctx context.Context, id int64, name, slug, description string) error {
	s.menuRefreshed = append(s.menuRefreshed, id)
	s.menuRefreshArgs = append(s.menuRefreshArgs, name+"|"+slug)
	return nil
}

func newTestApp(cs catalog.Store) *application {
	logger := zap.NewNop().Sugar()
	projector := catalog.NewProjector(cs, logger)
	return &application{
		logger:    logger,
		store:     store.Storage{Catalog: cs},
		projector: projector,
		curator:   catalog.NewCurator(cs, projector),
	}
}

func categoryRouter(app *application) http.Handler {
	r := chi.NewRouter()
	r.Route("/v1/admin/categories/{categoryID}", func(r chi.Router) {
		r.Put("/", app.updateCategoryHandler)
		r.Delete("/", app.deleteCategoryHandler)
	})
	return r
}

func TestDeleteCategoryWithChildrenAnswersBadRequest(t *testing.T) {
	cs := &stubCatalogStore{deleteErr: catalog.ErrCategoryHasChildren}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/categories/7", nil)

	categoryRouter(newTestApp(cs)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "sub-categories")
	assert.Empty(t, cs.deleted)
}

func TestDeleteCategoryUnknownAnswersNotFound(t *testing.T) {
	cs := &stubCatalogStore{deleteErr: catalog.ErrCategoryNotFound}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/categories/7", nil)

	categoryRouter(newTestApp(cs)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteCategorySucceeds(t *testing.T) {
	cs := &stubCatalogStore{}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/categories/7", nil)

	categoryRouter(newTestApp(cs)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, []int64{7}, cs.deleted)
}

// Renaming a category must flow into its menu item even when the payload
// never mentions show_in_main_menu.
func TestUpdateCategoryNameChangeRefreshesMenuItem(t *testing.T) {
	catID := int64(7)
	cs := &stubCatalogStore{
		updated: &catalog.Category{
			ID: 7, Name: "PC & Mac Games", Slug: "pc-mac-games", ShowInMainMenu: true,
		},
		menuItem: &catalog.MainMenuItem{ID: 31, CategoryID: &catID, Slug: "pc-games"},
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/categories/7",
		bytes.NewBufferString(`{"name": "PC & Mac Games", "slug": "pc-mac-games"}`))

	categoryRouter(newTestApp(cs)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, cs.menuRefreshed, 1)
	assert.Equal(t, []int64{31}, cs.menuRefreshed)
	assert.Equal(t, "PC & Mac Games|pc-mac-games", cs.menuRefreshArgs[0])
}

// Updates that touch neither the flag nor the mirrored fields leave the menu
// alone.
func TestUpdateCategoryUnrelatedFieldSkipsMenuSync(t *testing.T) {
	catID := int64(7)
	cs := &stubCatalogStore{
		updated: &catalog.Category{
			ID: 7, Name: "PC Games", Slug: "pc-games", ShowInMainMenu: true,
		},
		menuItem: &catalog.MainMenuItem{ID: 31, CategoryID: &catID, Slug: "pc-games"},
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/categories/7",
		bytes.NewBufferString(`{"order_position": 4}`))

	categoryRouter(newTestApp(cs)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, cs.menuRefreshed)
}
