package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt64(v int64) *int64 { return &v }

func testRows() []*Category {
	// ordered by (level, order_position, name), as the query returns them
	return []*Category{
		{ID: 1, Name: "PC Games", Slug: "pc-games"},
		{ID: 5, Name: "Gift Cards", Slug: "gift-cards"},
		{ID: 2, Name: "Strategy", Slug: "strategy", ParentID: ptrInt64(1)},
		{ID: 3, Name: "RPG", Slug: "rpg", ParentID: ptrInt64(1)},
		{ID: 4, Name: "Grand Strategy", Slug: "grand-strategy", ParentID: ptrInt64(2)},
	}
}

func TestBuildTreeNesting(t *testing.T) {
	roots := BuildTree(testRows(), nil)

	require.Len(t, roots, 2)
	assert.Equal(t, "PC Games", roots[0].Name)
	assert.Equal(t, "Gift Cards", roots[1].Name)

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "Strategy", roots[0].Children[0].Name)
	assert.Equal(t, "RPG", roots[0].Children[1].Name)

	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "Grand Strategy", roots[0].Children[0].Children[0].Name)

	assert.Empty(t, roots[1].Children)
}

func TestBuildTreeRecursiveCounts(t *testing.T) {
	counts := map[int64]int{
		1: 3, // PC Games directly
		2: 2, // Strategy
		4: 7, // Grand Strategy
		5: 1, // Gift Cards
	}

	roots := BuildTree(testRows(), counts)

	pcGames := FindNode(roots, 1)
	require.NotNil(t, pcGames)
	assert.Equal(t, 3+2+7, pcGames.ProductCount)

	strategy := FindNode(roots, 2)
	require.NotNil(t, strategy)
	assert.Equal(t, 2+7, strategy.ProductCount)

	rpg := FindNode(roots, 3)
	require.NotNil(t, rpg)
	assert.Equal(t, 0, rpg.ProductCount)

	giftCards := FindNode(roots, 5)
	require.NotNil(t, giftCards)
	assert.Equal(t, 1, giftCards.ProductCount)
}

func TestBuildTreeDropsOrphans(t *testing.T) {
	rows := []*Category{
		{ID: 1, Name: "PC Games", Slug: "pc-games"},
		{ID: 9, Name: "Lost", Slug: "lost", ParentID: ptrInt64(404)},
	}

	roots := BuildTree(rows, map[int64]int{9: 5})

	require.Len(t, roots, 1)
	assert.Nil(t, FindNode(roots, 9))
	// the orphan's products do not leak into anyone's count
	assert.Equal(t, 0, roots[0].ProductCount)
}

func TestBuildTreeSelfParentRow(t *testing.T) {
	rows := []*Category{
		{ID: 1, Name: "PC Games", Slug: "pc-games"},
		{ID: 2, Name: "Broken", Slug: "broken", ParentID: ptrInt64(2)},
	}

	roots := BuildTree(rows, nil)

	require.Len(t, roots, 1)
	assert.Equal(t, int64(1), roots[0].ID)
}

func TestBuildTreePreservesInputOrder(t *testing.T) {
	rows := []*Category{
		{ID: 1, Name: "A", Slug: "a"},
		{ID: 2, Name: "B", Slug: "b"},
		{ID: 3, Name: "C", Slug: "c"},
	}

	roots := BuildTree(rows, nil)

	require.Len(t, roots, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{roots[0].ID, roots[1].ID, roots[2].ID})
}

func TestBuildTreeEmptyInput(t *testing.T) {
	assert.Empty(t, BuildTree(nil, nil))
	assert.Empty(t, BuildTree([]*Category{}, map[int64]int{1: 3}))
}

func TestDirectChildren(t *testing.T) {
	roots := BuildTree(testRows(), map[int64]int{2: 2, 4: 7})

	children := DirectChildren(roots, ptrInt64(1))
	require.Len(t, children, 2)
	assert.Equal(t, "Strategy", children[0].Name)
	// flattened: counts kept, nesting stripped
	assert.Equal(t, 9, children[0].ProductCount)
	assert.Empty(t, children[0].Children)

	topLevel := DirectChildren(roots, nil)
	require.Len(t, topLevel, 2)
	assert.Empty(t, topLevel[0].Children)

	assert.Nil(t, DirectChildren(roots, ptrInt64(404)))

	leaf := DirectChildren(roots, ptrInt64(3))
	assert.Empty(t, leaf)
}
