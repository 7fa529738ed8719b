package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugValidation(t *testing.T) {
	type payload struct {
		Slug string `validate:"required,slug"`
	}

	valid := []string{"pc-games", "gift-cards", "rpg", "a", "steam-keys-2024"}
	for _, slug := range valid {
		assert.NoError(t, Validate.Struct(payload{Slug: slug}), slug)
	}

	invalid := []string{"", "PC-Games", "pc games", "pc_games", "pc/games", "héros"}
	for _, slug := range invalid {
		assert.Error(t, Validate.Struct(payload{Slug: slug}), slug)
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	body := bytes.NewBufferString(`{"name": "PC Games", "surprise": true}`)
	r := httptest.NewRequest(http.MethodPost, "/", body)
	w := httptest.NewRecorder()

	var p payload
	assert.Error(t, readJSON(w, r, &p))
}

func TestReadJSONDecodes(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	body := bytes.NewBufferString(`{"name": "PC Games"}`)
	r := httptest.NewRequest(http.MethodPost, "/", body)
	w := httptest.NewRecorder()

	var p payload
	require.NoError(t, readJSON(w, r, &p))
	assert.Equal(t, "PC Games", p.Name)
}
