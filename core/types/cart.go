// Package types - Cart snapshot types
// These mirror the shapes the hosting checkout pipeline delivers per
// invocation. All values are request-scoped and read-only.
package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MerchandiseKind discriminates the merchandise union on a cart line.
type MerchandiseKind string

const (
	// MerchandiseProductVariant is purchasable variant merchandise. Only
	// this kind carries a product back-reference.
	MerchandiseProductVariant MerchandiseKind = "ProductVariant"

	// MerchandiseCustomProduct is ad-hoc merchandise with no owning product.
	MerchandiseCustomProduct MerchandiseKind = "CustomProduct"
)

// Merchandise is the purchasable item referenced by a cart line.
// Check Kind before touching Product; it is nil for any kind other
// than MerchandiseProductVariant.
type Merchandise struct {
	// Kind is the union discriminant
	Kind MerchandiseKind `json:"kind"`

	// ID is the opaque variant identifier
	ID string `json:"id"`

	// Product is the owning product back-reference (ProductVariant only)
	Product *ProductRef `json:"product,omitempty"`
}

// IsProductVariant reports whether this merchandise is a product variant
// with its product reference populated.
func (m Merchandise) IsProductVariant() bool {
	return m.Kind == MerchandiseProductVariant && m.Product != nil
}

// ProductRef is the slice of an owning product a function invocation can see.
type ProductRef struct {
	// ID is the opaque product identifier
	ID string `json:"id,omitempty"`

	// BundleData is the raw serialized bundle catalog attached to the
	// product, or nil when the product carries none. Decoded by
	// core/catalog; never written by the engine.
	BundleData json.RawMessage `json:"bundleData,omitempty"`
}

// Attribute is a single cart-line attribute as captured at add-to-cart time.
// Presence of the attribute and presence of its value are distinct states.
type Attribute struct {
	// Value is the attribute value; may be empty even when the attribute
	// itself is present
	Value string `json:"value,omitempty"`
}

// MoneyAmount is a decimal amount in the cart's currency.
type MoneyAmount struct {
	// Amount is the decimal value
	Amount decimal.Decimal `json:"amount"`
}

// LineCost is the platform-computed cost of a cart line.
type LineCost struct {
	// AmountPerQuantity is the per-unit cost of the line
	AmountPerQuantity MoneyAmount `json:"amountPerQuantity"`
}

// CartLine is one entry of the cart snapshot.
type CartLine struct {
	// ID uniquely identifies the line within the cart
	ID string `json:"id"`

	// Quantity is how many units of the merchandise the line holds
	Quantity int `json:"quantity"`

	// Merchandise references the purchasable item
	Merchandise Merchandise `json:"merchandise"`

	// BundleIndex selects a bundle definition within the product's
	// catalog. Nil when the attribute was never set on the line.
	BundleIndex *Attribute `json:"bundleIndex,omitempty"`

	// Cost is the per-unit cost as priced by the platform
	Cost LineCost `json:"cost"`
}

// Cart is the immutable cart snapshot for one invocation.
type Cart struct {
	// Lines are the cart lines in cart order
	Lines []CartLine `json:"lines"`
}
