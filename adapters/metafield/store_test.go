package metafield

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-transform/core/types"
	"cart-transform/internal/errors"
)

const (
	bundleNamespace = "$app:bundles"
	bundleKey       = "function-configuration"
)

const validCatalog = `{"bundles":[{"displayText":"Save 20%","offer":20,"selectedProducts":[{"variants":[{"id":"V1","quantity":1,"originalPrice":50}]}]}]}`

func TestSetGet(t *testing.T) {
	store := NewStore()
	store.Set("product-1", bundleNamespace, bundleKey, validCatalog)

	value, ok := store.Get("product-1", bundleNamespace, bundleKey)
	require.True(t, ok)
	assert.Equal(t, validCatalog, value)

	_, ok = store.Get("product-2", bundleNamespace, bundleKey)
	assert.False(t, ok)

	_, ok = store.Get("product-1", "other", bundleKey)
	assert.False(t, ok)

	// Last write wins.
	store.Set("product-1", bundleNamespace, bundleKey, `{"bundles":[]}`)
	value, _ = store.Get("product-1", bundleNamespace, bundleKey)
	assert.Equal(t, `{"bundles":[]}`, value)
}

func TestLookup(t *testing.T) {
	store := NewStore()
	store.Set("product-1", bundleNamespace, bundleKey, validCatalog)

	result, ok := store.Lookup("product-1", bundleNamespace, bundleKey, "bundles.0.displayText")
	require.True(t, ok)
	assert.Equal(t, "Save 20%", result.String())

	count, ok := store.Lookup("product-1", bundleNamespace, bundleKey, "bundles.#")
	require.True(t, ok)
	assert.Equal(t, int64(1), count.Int())

	_, ok = store.Lookup("product-1", bundleNamespace, bundleKey, "bundles.0.missing")
	assert.False(t, ok)

	_, ok = store.Lookup("absent", bundleNamespace, bundleKey, "bundles")
	assert.False(t, ok)
}

func TestHydrateCart(t *testing.T) {
	store := NewStore()
	store.Set("product-1", bundleNamespace, bundleKey, validCatalog)

	inline := []byte(`{"bundles":[]}`)
	cart := types.Cart{Lines: []types.CartLine{
		{
			ID: "L1",
			Merchandise: types.Merchandise{
				Kind:    types.MerchandiseProductVariant,
				ID:      "M1",
				Product: &types.ProductRef{ID: "product-1"},
			},
		},
		{
			ID: "L2",
			Merchandise: types.Merchandise{
				Kind:    types.MerchandiseProductVariant,
				ID:      "M2",
				Product: &types.ProductRef{ID: "product-1", BundleData: inline},
			},
		},
		{
			ID:          "L3",
			Merchandise: types.Merchandise{Kind: types.MerchandiseCustomProduct, ID: "M3"},
		},
		{
			ID: "L4",
			Merchandise: types.Merchandise{
				Kind:    types.MerchandiseProductVariant,
				ID:      "M4",
				Product: &types.ProductRef{ID: "unknown-product"},
			},
		},
	}}

	store.HydrateCart(&cart, bundleNamespace, bundleKey)

	assert.JSONEq(t, validCatalog, string(cart.Lines[0].Merchandise.Product.BundleData))
	// Inline data is never overwritten.
	assert.Equal(t, string(inline), string(cart.Lines[1].Merchandise.Product.BundleData))
	assert.Nil(t, cart.Lines[2].Merchandise.Product)
	assert.Empty(t, cart.Lines[3].Merchandise.Product.BundleData)
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, `[
		{"ownerId":"product-1","namespace":"$app:bundles","key":"function-configuration","value":`+quoted(validCatalog)+`},
		{"ownerId":"transform-1","namespace":"$app:addons","key":"transforms","value":"[]"}
	]`)

	store, err := LoadSeed(path, bundleNamespace, bundleKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"product-1", "transform-1"}, store.Owners())

	value, ok := store.Get("product-1", bundleNamespace, bundleKey)
	require.True(t, ok)
	assert.JSONEq(t, validCatalog, value)
}

func TestLoadSeedRejectsBadDocuments(t *testing.T) {
	t.Run("malformed seed file", func(t *testing.T) {
		path := writeSeed(t, `{"not":"a list"}`)
		_, err := LoadSeed(path, bundleNamespace, bundleKey)
		assert.True(t, errors.IsType(err, errors.TypeDecode))
	})

	t.Run("entry missing owner", func(t *testing.T) {
		path := writeSeed(t, `[{"namespace":"ns","key":"k","value":"{}"}]`)
		_, err := LoadSeed(path, bundleNamespace, bundleKey)
		assert.True(t, errors.IsType(err, errors.TypeValidation))
	})

	t.Run("invalid bundle catalog", func(t *testing.T) {
		// Offer outside 0-100 fails admin validation at load time.
		bad := `{"bundles":[{"displayText":"d","offer":150,"selectedProducts":[{"variants":[{"id":"V1"}]}]}]}`
		path := writeSeed(t, `[{"ownerId":"p","namespace":"$app:bundles","key":"function-configuration","value":`+quoted(bad)+`}]`)
		_, err := LoadSeed(path, bundleNamespace, bundleKey)
		assert.True(t, errors.IsType(err, errors.TypeValidation))
	})

	t.Run("malformed bundle catalog", func(t *testing.T) {
		path := writeSeed(t, `[{"ownerId":"p","namespace":"$app:bundles","key":"function-configuration","value":"{"}]`)
		_, err := LoadSeed(path, bundleNamespace, bundleKey)
		assert.True(t, errors.IsType(err, errors.TypeDecode))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeed(filepath.Join(t.TempDir(), "absent.json"), bundleNamespace, bundleKey)
		assert.True(t, errors.IsType(err, errors.TypeConfig))
	})
}

func quoted(s string) string {
	return strconv.Quote(s)
}
