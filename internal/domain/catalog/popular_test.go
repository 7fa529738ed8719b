package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCurator(store Store) *Curator {
	return NewCurator(store, newTestProjector(store))
}

func TestSetPopularProductsReplacesAndProjects(t *testing.T) {
	store := &fakeStore{}
	c := newTestCurator(store)

	err := c.SetPopularProducts(context.Background(), 7, []int64{5, 3, 8})
	require.NoError(t, err)

	require.Len(t, store.replacedIDs, 1)
	assert.Equal(t, []int64{5, 3, 8}, store.replacedIDs[0])
	assert.Equal(t, []int64{7}, store.replacedFor)

	// the same ordered list lands in the menu projection
	require.Len(t, store.menuPopularIDs, 1)
	assert.Equal(t, OrderedIDList{5, 3, 8}, store.menuPopularIDs[0])
}

func TestSetPopularProductsEmptyListClears(t *testing.T) {
	store := &fakeStore{}
	c := newTestCurator(store)

	err := c.SetPopularProducts(context.Background(), 7, []int64{})
	require.NoError(t, err)

	require.Len(t, store.replacedIDs, 1)
	assert.Empty(t, store.replacedIDs[0])
}

func TestSetPopularProductsStoreFailureStopsProjection(t *testing.T) {
	store := &fakeStore{replaceErr: errors.New("deadlock detected")}
	c := newTestCurator(store)

	err := c.SetPopularProducts(context.Background(), 7, []int64{3})
	require.Error(t, err)
	assert.Empty(t, store.menuPopularFor)
}

func TestSetPopularProductsProjectionFailureIsSwallowed(t *testing.T) {
	store := &fakeStore{menuPopularErr: errors.New("connection refused")}
	c := newTestCurator(store)

	err := c.SetPopularProducts(context.Background(), 7, []int64{3})
	assert.NoError(t, err)
	require.Len(t, store.replacedIDs, 1)
}
