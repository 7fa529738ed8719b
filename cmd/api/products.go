package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"playmart/internal/domain/products"
	"playmart/internal/params"
)

type CreateProductPayload struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Slug        string  `json:"slug" validate:"required,slug"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"price_cents" validate:"gte=0"`
	Platform    *string `json:"platform"`
	Region      *string `json:"region"`
	CoverImage  *string `json:"cover_image"`
	IsActive    *bool   `json:"is_active"`
	CategoryIDs []int64 `json:"category_ids"`
}

// createProductHandler godoc
//
//	@Summary		Create a product
//	@Tags			admin,products
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	products.Product
//	@Security		ApiKeyAuth
//	@Router			/admin/products [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateProductPayload
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

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	product := &products.Product{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
		PriceCents:  payload.PriceCents,
		Platform:    payload.Platform,
		Region:      payload.Region,
		CoverImage:  payload.CoverImage,
		IsActive:    isActive,
	}

	created, err := app.store.Products.CreateProduct(ctx, product)
	if err != nil {
		if errors.Is(err, products.ErrDuplicateSlug) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if len(payload.CategoryIDs) > 0 {
		err := app.store.Products.ReplaceProductCategories(ctx, created.ID, payload.CategoryIDs)
		if err != nil {
			if errors.Is(err, products.ErrInvalidCategory) {
				app.badRequestResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
			return
		}
	}

	app.jsonResponse(w, http.StatusCreated, created)
}

type UpdateProductPayload struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug" validate:"omitempty,slug"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents" validate:"omitempty,gte=0"`
	Platform    *string `json:"platform"`
	Region      *string `json:"region"`
	CoverImage  *string `json:"cover_image"`
	IsActive    *bool   `json:"is_active"`
}

// updateProductHandler godoc
//
//	@Summary		Update a product
//	@Tags			admin,products
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	products.Product
//	@Security		ApiKeyAuth
//	@Router			/admin/products/{productID} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateProductPayload
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

	existing, err := app.store.Products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, products.ErrProductNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	product := existing.Product
	product.Name = payload.Name
	product.Slug = payload.Slug
	if payload.Description != nil {
		product.Description = payload.Description
	}
	if payload.PriceCents != nil {
		product.PriceCents = *payload.PriceCents
	}
	if payload.Platform != nil {
		product.Platform = payload.Platform
	}
	if payload.Region != nil {
		product.Region = payload.Region
	}
	if payload.CoverImage != nil {
		product.CoverImage = payload.CoverImage
	}
	if payload.IsActive != nil {
		product.IsActive = *payload.IsActive
	}

	updated, err := app.store.Products.UpdateProduct(ctx, &product)
	if err != nil {
		switch {
		case errors.Is(err, products.ErrProductNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, products.ErrDuplicateSlug):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.jsonResponse(w, http.StatusOK, updated)
}

// deleteProductHandler godoc
//
//	@Summary		Delete a product
//	@Tags			admin,products
//	@Produce		json
//	@Success		204
//	@Security		ApiKeyAuth
//	@Router			/admin/products/{productID} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := app.store.Products.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, products.ErrProductNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type AssignCategoriesPayload struct {
	CategoryIDs []int64 `json:"category_ids" validate:"required"`
}

// assignProductCategoriesHandler godoc
//
//	@Summary		Replace the categories a product belongs to
//	@Tags			admin,products
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	products.ProductWithCategories
//	@Security		ApiKeyAuth
//	@Router			/admin/products/{productID}/categories [put]
func (app *application) assignProductCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload AssignCategoriesPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := app.store.Products.GetProductByID(ctx, id); err != nil {
		if errors.Is(err, products.ErrProductNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Products.ReplaceProductCategories(ctx, id, payload.CategoryIDs); err != nil {
		if errors.Is(err, products.ErrInvalidCategory) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	updated, err := app.store.Products.GetProductByID(ctx, id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, updated)
}

// listProductsHandler godoc
//
//	@Summary		List storefront products
//	@Description	Optionally restricted to a category subtree by slug.
//	@Tags			products
//	@Produce		json
//	@Param			category	query	string	false	"category slug"
//	@Success		200	{object}	map[string]any
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	p := params.ParsePagination(r.URL.Query())
	categorySlug := r.URL.Query().Get("category")

	list, total, err := app.store.Products.ListProducts(ctx, categorySlug, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"products":   list,
		"pagination": p,
	})
}
