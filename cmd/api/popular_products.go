package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"playmart/internal/domain/catalog"
)

// getPopularProductsHandler godoc
//
//	@Summary		Curated popular products for a category
//	@Description	Returns the ordered curated set plus a bounded candidate feed for the admin picker.
//	@Tags			admin,categories
//	@Produce		json
//	@Param			search	query	string	false	"case-insensitive substring match on product name"
//	@Success		200	{object}	map[string]any
//	@Security		ApiKeyAuth
//	@Router			/admin/categories/{categoryID}/popular-products [get]
func (app *application) getPopularProductsHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseID(r, "categoryID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := app.store.Catalog.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	selected, err := app.curator.GetPopularProducts(ctx, categoryID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	candidates, err := app.curator.SearchCandidateProducts(ctx, r.URL.Query().Get("search"))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"selected":   selected,
		"candidates": candidates,
	})
}

type SetPopularProductsPayload struct {
	ProductIDs []int64 `json:"product_ids" validate:"required"`
}

// setPopularProductsHandler godoc
//
//	@Summary		Replace the curated popular products of a category
//	@Description	Full replace in payload order. An empty list clears the set.
//	@Tags			admin,categories
//	@Accept			json
//	@Produce		json
//	@Success		200	{array}	catalog.PopularProduct
//	@Security		ApiKeyAuth
//	@Router			/admin/categories/{categoryID}/popular-products [post]
func (app *application) setPopularProductsHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := parseID(r, "categoryID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload SetPopularProductsPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := app.store.Catalog.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.curator.SetPopularProducts(ctx, categoryID, payload.ProductIDs); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	selected, err := app.curator.GetPopularProducts(ctx, categoryID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, selected)
}
