// Package types - Bundle catalog types
// A bundle catalog is authored by the admin UI and attached to a product as
// a namespaced JSON metafield. The engine only ever decodes it.
package types

import "github.com/shopspring/decimal"

// BundleVariant is one unit-purchasable SKU inside a bundle's product.
type BundleVariant struct {
	// ID is the opaque variant identifier
	ID string `json:"id" validate:"required"`

	// Quantity is how many units the bundle contributes. Zero is
	// normalized to 1 at expansion time, never rejected here.
	Quantity int `json:"quantity" validate:"gte=0"`

	// OriginalPrice is the variant's own catalog price. The expander
	// deliberately does NOT price from this field; it is carried for the
	// storefront comparison-price display.
	OriginalPrice decimal.Decimal `json:"originalPrice"`
}

// BundleProduct is a product included in a bundle.
type BundleProduct struct {
	// Variants are the purchasable SKUs this product contributes,
	// in catalog order
	Variants []BundleVariant `json:"variants" validate:"min=1,dive"`

	// Title is the product's display title
	Title string `json:"title"`

	// FeaturedImage is the product image URL
	FeaturedImage string `json:"featuredImage" validate:"omitempty,url"`

	// Offer is a per-product discount percentage (0-100)
	Offer decimal.Decimal `json:"offer"`

	// Quantity is how many of this product the bundle contains
	Quantity int `json:"quantity" validate:"gte=0"`
}

// BundleDefinition is one purchasable bundle configuration. A product may
// carry several (e.g. "Buy 2 save 10%" next to "Buy 3 save 15%").
type BundleDefinition struct {
	// Name is the admin-facing bundle name
	Name string `json:"name,omitempty"`

	// DisplayText is the shopper-facing label; it becomes the title of
	// the expanded line
	DisplayText string `json:"displayText" validate:"required,max=100"`

	// Offer is the default discount percentage (0-100). Zero or missing
	// falls back to the engine default at expansion time.
	Offer decimal.Decimal `json:"offer"`

	// SelectedProducts are the bundle's constituent products, in the
	// order they were picked in the admin UI
	SelectedProducts []BundleProduct `json:"selectedProducts" validate:"min=1,dive"`

	// ShowComparisonPrice toggles the storefront strikethrough price
	ShowComparisonPrice bool `json:"showComparisonPrice,omitempty"`

	// DirectToCheckout skips the cart page when the bundle is bought
	DirectToCheckout bool `json:"directToCheckout,omitempty"`
}

// BundleCatalog is the decoded metafield document attached to a product.
type BundleCatalog struct {
	// Bundles are the catalog entries, addressable by position
	Bundles []BundleDefinition `json:"bundles" validate:"dive"`
}

// Len returns the number of bundle definitions in the catalog.
func (c *BundleCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Bundles)
}
