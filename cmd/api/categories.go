package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"playmart/internal/domain/catalog"

	"github.com/go-chi/chi/v5"
)

type CreateCategoryPayload struct {
	Name                string   `json:"name" validate:"required,max=120"`
	Slug                string   `json:"slug" validate:"required,slug"`
	ParentID            *int64   `json:"parent_id"`
	Icon                *string  `json:"icon"`
	Banner              *string  `json:"banner"`
	Description         *string  `json:"description"`
	SubDescription      *string  `json:"sub_description"`
	Link                *string  `json:"link"`
	OrderPosition       int      `json:"order_position"`
	Status              *bool    `json:"status"`
	ShowInMainMenu      bool     `json:"show_in_main_menu"`
	CategoryImage       *string  `json:"category_image"`
	MainMenuDisplayType string   `json:"main_menu_display_type"`
	MainMenuDescription *string  `json:"main_menu_description"`
	PopularProducts     *[]int64 `json:"popular_products"`
}

// createCategoryHandler godoc
//
//	@Summary		Create a category
//	@Tags			admin,categories
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	catalog.Category
//	@Security		ApiKeyAuth
//	@Router			/admin/categories [post]
func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateCategoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	status := true
	if payload.Status != nil {
		status = *payload.Status
	}

	category := &catalog.Category{
		Name:                payload.Name,
		Slug:                payload.Slug,
		ParentID:            payload.ParentID,
		Icon:                payload.Icon,
		Banner:              payload.Banner,
		Description:         payload.Description,
		SubDescription:      payload.SubDescription,
		Link:                payload.Link,
		OrderPosition:       payload.OrderPosition,
		Status:              status,
		ShowInMainMenu:      payload.ShowInMainMenu,
		CategoryImage:       payload.CategoryImage,
		MainMenuDisplayType: payload.MainMenuDisplayType,
		MainMenuDescription: payload.MainMenuDescription,
	}

	created, err := app.store.Catalog.CreateCategory(ctx, category)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrDuplicateSlug):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, catalog.ErrInvalidParent):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// Curation and menu projection are best-effort follow-ups: the category
	// write already succeeded and is reported as such either way.
	if payload.PopularProducts != nil {
		if err := app.curator.SetPopularProducts(ctx, created.ID, *payload.PopularProducts); err != nil {
			app.logger.Errorw("popular products write failed after category create",
				"category_id", created.ID, "error", err)
		}
	}
	if created.ShowInMainMenu {
		app.projector.SyncMainMenu(ctx, created)
	}

	app.jsonResponse(w, http.StatusCreated, created)
}

// updateCategoryHandler godoc
//
//	@Summary		Update a category
//	@Tags			admin,categories
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	catalog.Category
//	@Security		ApiKeyAuth
//	@Router			/admin/categories/{categoryID} [put]
func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "categoryID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input catalog.UpdateCategoryInput
	if err := readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updated, err := app.store.Catalog.UpdateCategory(ctx, id, input)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrCategoryNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, catalog.ErrDuplicateSlug):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, catalog.ErrInvalidParent):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// A present popular_products key replaces the curated set, even when empty.
	if input.PopularProducts != nil {
		if err := app.curator.SetPopularProducts(ctx, updated.ID, *input.PopularProducts); err != nil {
			app.logger.Errorw("popular products write failed after category update",
				"category_id", updated.ID, "error", err)
		}
	}
	// Menu sync runs whenever the flag is present, changed or not, and
	// whenever the mirrored name/slug fields are edited.
	if input.ShowInMainMenu != nil || input.Name != nil || input.Slug != nil {
		app.projector.SyncMainMenu(ctx, updated)
	}

	app.jsonResponse(w, http.StatusOK, updated)
}

// deleteCategoryHandler godoc
//
//	@Summary		Delete a category
//	@Description	Rejected while the category still has sub-categories.
//	@Tags			admin,categories
//	@Produce		json
//	@Success		204
//	@Security		ApiKeyAuth
//	@Router			/admin/categories/{categoryID} [delete]
func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "categoryID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.store.Catalog.DeleteCategory(ctx, id); err != nil {
		switch {
		case errors.Is(err, catalog.ErrCategoryHasChildren):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, catalog.ErrCategoryNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listCategoriesHandler godoc
//
//	@Summary		List categories
//	@Description	Hierarchical tree with recursive product counts by default.
//	@Description	parent_id restricts the listing to direct children; hierarchical=false returns a flat list.
//	@Tags			categories
//	@Produce		json
//	@Param			hierarchical	query	bool	false	"nested tree (default true)"
//	@Param			parent_id		query	int		false	"only direct children of this category"
//	@Success		200	{array}	catalog.CategoryNode
//	@Router			/categories [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := r.URL.Query()

	if parentStr := q.Get("parent_id"); parentStr != "" {
		parentID, err := strconv.ParseInt(parentStr, 10, 64)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("invalid parent_id: %s", parentStr))
			return
		}
		roots, err := app.buildCategoryTree(ctx)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		children := catalog.DirectChildren(roots, &parentID)
		app.jsonResponse(w, http.StatusOK, children)
		return
	}

	hierarchical := true
	if hStr := q.Get("hierarchical"); hStr != "" {
		if parsed, err := strconv.ParseBool(hStr); err == nil {
			hierarchical = parsed
		}
	}

	if !hierarchical {
		list, err := app.store.Catalog.ListCategories(ctx)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		app.jsonResponse(w, http.StatusOK, list)
		return
	}

	roots, err := app.buildCategoryTree(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, roots)
}

type ReorderCategoriesPayload struct {
	IDs []int64 `json:"ids" validate:"required,min=1"`
}

// reorderCategoriesHandler godoc
//
//	@Summary		Reorder categories
//	@Description	Sets order_position to the index of each id in the payload. Atomic.
//	@Tags			admin,categories
//	@Accept			json
//	@Produce		json
//	@Success		200
//	@Security		ApiKeyAuth
//	@Router			/admin/categories/reorder [put]
func (app *application) reorderCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	var payload ReorderCategoriesPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.store.Catalog.ReorderCategories(ctx, payload.IDs); err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]string{"status": "reordered"})
}

// buildCategoryTree assembles the full tree with recursive product counts.
// Counts are recomputed on every call; nothing is cached.
func (app *application) buildCategoryTree(ctx context.Context) ([]*catalog.CategoryNode, error) {
	rows, err := app.store.Catalog.ListCategoryTreeRows(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := app.store.Catalog.DirectProductCounts(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.BuildTree(rows, counts), nil
}

func parseID(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %s", param, idStr)
	}
	return id, nil
}
