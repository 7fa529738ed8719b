package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBannerImagesUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  BannerImages
	}{
		{"exact", `["a","b","c","d"]`, BannerImages{"a", "b", "c", "d"}},
		{"short padded", `["a"]`, BannerImages{"a", "", "", ""}},
		{"long truncated", `["a","b","c","d","e","f"]`, BannerImages{"a", "b", "c", "d"}},
		{"empty", `[]`, BannerImages{}},
		{"null", `null`, BannerImages{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got BannerImages
			require.NoError(t, json.Unmarshal([]byte(tc.input), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBannerImagesUnmarshalRejectsNonArray(t *testing.T) {
	var got BannerImages
	assert.Error(t, json.Unmarshal([]byte(`"not-an-array"`), &got))
}

func TestNullableStringStates(t *testing.T) {
	type payload struct {
		Icon NullableString `json:"icon"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Icon.Set)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"icon": null}`), &null))
	assert.True(t, null.Icon.Set)
	assert.Nil(t, null.Icon.Value)

	var set payload
	require.NoError(t, json.Unmarshal([]byte(`{"icon": "flame"}`), &set))
	assert.True(t, set.Icon.Set)
	require.NotNil(t, set.Icon.Value)
	assert.Equal(t, "flame", *set.Icon.Value)
}

func TestNullableInt64States(t *testing.T) {
	type payload struct {
		ParentID NullableInt64 `json:"parent_id"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.ParentID.Set)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"parent_id": null}`), &null))
	assert.True(t, null.ParentID.Set)
	assert.Nil(t, null.ParentID.Value)

	var set payload
	require.NoError(t, json.Unmarshal([]byte(`{"parent_id": 42}`), &set))
	assert.True(t, set.ParentID.Set)
	require.NotNil(t, set.ParentID.Value)
	assert.Equal(t, int64(42), *set.ParentID.Value)
}

// An empty curated list serializes as an explicit null, the same shape the
// store writes for it, never as an absent key.
func TestMenuItemEmptyPopularListRendersNull(t *testing.T) {
	data, err := json.Marshal(MainMenuItem{Slug: "pc-games"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"popular_product_ids":null`)

	filled, err := json.Marshal(MainMenuItem{Slug: "pc-games", PopularProductIDs: OrderedIDList{3, 8}})
	require.NoError(t, err)
	assert.Contains(t, string(filled), `"popular_product_ids":[3,8]`)
}

func TestUpdateCategoryInputPopularProductsPresence(t *testing.T) {
	var omitted UpdateCategoryInput
	require.NoError(t, json.Unmarshal([]byte(`{"name": "PC Games"}`), &omitted))
	assert.Nil(t, omitted.PopularProducts)

	var empty UpdateCategoryInput
	require.NoError(t, json.Unmarshal([]byte(`{"popular_products": []}`), &empty))
	require.NotNil(t, empty.PopularProducts)
	assert.Empty(t, *empty.PopularProducts)

	var filled UpdateCategoryInput
	require.NoError(t, json.Unmarshal([]byte(`{"popular_products": [3, 8]}`), &filled))
	require.NotNil(t, filled.PopularProducts)
	assert.Equal(t, []int64{3, 8}, *filled.PopularProducts)
}
