package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"playmart/internal/domain/catalog"

	"github.com/go-chi/chi/v5"
)

// mainMenuHandler godoc
//
//	@Summary		Main navigation menu
//	@Description	Active root menu items joined with their categories, recursive product
//	@Description	counts and the subcategories flagged for the main menu.
//	@Tags			navigation
//	@Produce		json
//	@Success		200	{array}	catalog.MenuEntry
//	@Router			/main-menu [get]
func (app *application) mainMenuHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	items, err := app.store.Catalog.ListActiveRootMenuItems(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	roots, err := app.buildCategoryTree(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	entries := make([]*catalog.MenuEntry, 0, len(items))
	for _, item := range items {
		entry := &catalog.MenuEntry{MainMenuItem: *item}

		if item.CategoryID != nil {
			if node := catalog.FindNode(roots, *item.CategoryID); node != nil {
				entry.ProductCount = node.ProductCount
				for _, child := range node.Children {
					if !child.ShowInMainMenu {
						continue
					}
					entry.Children = append(entry.Children, &catalog.MenuChild{
						CategoryID:   child.ID,
						Name:         child.Name,
						Slug:         child.Slug,
						ProductCount: child.ProductCount,
					})
				}
			}
		}

		entries = append(entries, entry)
	}

	app.jsonResponse(w, http.StatusOK, entries)
}

// updateMenuItemHandler godoc
//
//	@Summary		Edit menu-only curated fields of a main-menu item
//	@Description	Keyed by slug. Presentation edits (category image, display type) are
//	@Description	also mirrored into the linked category row.
//	@Tags			admin,navigation
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	catalog.MainMenuItem
//	@Security		ApiKeyAuth
//	@Router			/admin/main-menu-items/{slug} [put]
func (app *application) updateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var input catalog.UpdateMenuItemInput
	if err := readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	item, err := app.store.Catalog.GetMenuItemBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, catalog.ErrMenuItemNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	updated, err := app.store.Catalog.UpdateMenuItemCurated(ctx, item.ID, input)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Longstanding behavior: presentation edits flow back into the category.
	if updated.CategoryID != nil {
		err := app.store.Catalog.UpdateCategoryMenuPresentation(
			ctx, *updated.CategoryID, input.CategoryImage, input.MainMenuDisplayType)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	app.jsonResponse(w, http.StatusOK, updated)
}
