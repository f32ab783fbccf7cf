package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentranbao-ct/storefront-core/internal/config"
	"github.com/nguyentranbao-ct/storefront-core/internal/models"
)

func TestParseMergeStrategy(t *testing.T) {
	s, err := ParseMergeStrategy("")
	require.NoError(t, err)
	assert.Equal(t, MergeDiscardLocal, s)

	s, err = ParseMergeStrategy("union-by-product")
	require.NoError(t, err)
	assert.Equal(t, MergeUnionByProduct, s)

	s, err = ParseMergeStrategy("prefer-server")
	require.NoError(t, err)
	assert.Equal(t, MergePreferServer, s)

	_, err = ParseMergeStrategy("keep-both")
	require.Error(t, err)
}

func TestNewStoreRejectsUnknownStrategy(t *testing.T) {
	_, err := NewStore(&config.CartConfig{MergeStrategy: "bogus"}, &fakeAPI{}, &fakeSession{})
	require.Error(t, err)
}

func TestUnionMergeSumsCommonProductsAndPushesNew(t *testing.T) {
	store, api, sess := newTestStore(t, "union-by-product", false)
	ctx := context.Background()

	require.NoError(t, store.AddLine(ctx, product("a", 10), 3))
	require.NoError(t, store.AddLine(ctx, product("b", 5), 2))

	api.server = []models.CartLine{
		{ID: "7", Product: product("a", 10), Quantity: 4},
	}

	sess.setAuthenticated(true)

	// Product "a" exists on both sides: quantities summed via update.
	// Product "b" is new to the server: pushed as an add.
	assert.Equal(t, []models.ID{"7"}, api.updateCalls)
	assert.Equal(t, []models.ID{"b"}, api.addCalls)

	lines := store.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 7, lines[0].Quantity)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestUnionMergeClampsSummedQuantity(t *testing.T) {
	store, api, sess := newTestStore(t, "union-by-product", false)
	ctx := context.Background()

	require.NoError(t, store.AddLine(ctx, product("a", 10), 8))
	api.server = []models.CartLine{
		{ID: "7", Product: product("a", 10), Quantity: 9},
	}

	sess.setAuthenticated(true)

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, MaxLineQuantity, lines[0].Quantity)
}

func TestUnionMergeSkipsUpdateWhenAlreadyAtCap(t *testing.T) {
	store, api, sess := newTestStore(t, "union-by-product", false)
	ctx := context.Background()

	require.NoError(t, store.AddLine(ctx, product("a", 10), 5))
	api.server = []models.CartLine{
		{ID: "7", Product: product("a", 10), Quantity: MaxLineQuantity},
	}

	sess.setAuthenticated(true)

	assert.Empty(t, api.updateCalls, "no update when the clamped sum equals the server quantity")
}

func TestPreferServerMergePushesOnlyMissingProducts(t *testing.T) {
	store, api, sess := newTestStore(t, "prefer-server", false)
	ctx := context.Background()

	require.NoError(t, store.AddLine(ctx, product("a", 10), 3))
	require.NoError(t, store.AddLine(ctx, product("b", 5), 2))

	api.server = []models.CartLine{
		{ID: "7", Product: product("a", 10), Quantity: 1},
	}

	sess.setAuthenticated(true)

	assert.Empty(t, api.updateCalls, "server quantity wins for common products")
	assert.Equal(t, []models.ID{"b"}, api.addCalls)

	lines := store.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestMergeDropsGuestLinesWhenServerFetchFails(t *testing.T) {
	store, api, sess := newTestStore(t, "union-by-product", false)
	ctx := context.Background()

	require.NoError(t, store.AddLine(ctx, product("a", 10), 3))
	api.getErr = assert.AnError

	sess.setAuthenticated(true)

	assert.Empty(t, api.addCalls)
	assert.Empty(t, store.Lines())
}

func TestMergeWithEmptyGuestCartJustLoads(t *testing.T) {
	_, api, sess := newTestStore(t, "union-by-product", false)

	api.server = []models.CartLine{
		{ID: "7", Product: product("a", 10), Quantity: 1},
	}
	sess.setAuthenticated(true)

	assert.Empty(t, api.addCalls)
	assert.Equal(t, 1, api.getCalls, "empty guest cart needs only the wholesale load")
}
