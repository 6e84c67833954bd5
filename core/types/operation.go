// Package types - Function output contract
// The output shape is what the hosting checkout pipeline consumes verbatim;
// field names and nesting are part of the wire contract.
package types

// FixedPricePerUnit is a fixed per-unit price override, serialized as a
// decimal string with two places.
type FixedPricePerUnit struct {
	// Amount is the price, e.g. "10.00"
	Amount string `json:"amount"`
}

// PriceAdjustment wraps the fixed-price override the pipeline expects.
type PriceAdjustment struct {
	FixedPricePerUnit FixedPricePerUnit `json:"fixedPricePerUnit"`
}

// ItemPrice is the price block of an expanded cart item.
type ItemPrice struct {
	Adjustment PriceAdjustment `json:"adjustment"`
}

// ExpandedCartItem is one resulting line item of an expansion.
type ExpandedCartItem struct {
	// MerchandiseID is the variant the item resolves to
	MerchandiseID string `json:"merchandiseId"`

	// Quantity is the unit count, always >= 1
	Quantity int `json:"quantity"`

	// Price is the fixed per-unit price override
	Price ItemPrice `json:"price"`
}

// ExpandOperation instructs the pipeline to replace one cart line with the
// expanded items.
type ExpandOperation struct {
	// CartLineID is the line being replaced
	CartLineID string `json:"cartLineId"`

	// Title replaces the line's display title
	Title string `json:"title"`

	// ExpandedCartItems are the replacement items, in emission order
	ExpandedCartItems []ExpandedCartItem `json:"expandedCartItems"`
}

// HideOperation instructs the pipeline to hide a payment method.
type HideOperation struct {
	// PaymentMethodID is the method to hide
	PaymentMethodID string `json:"paymentMethodId"`
}

// Operation is the tagged union of pipeline instructions. Exactly one
// member is non-nil.
type Operation struct {
	Expand *ExpandOperation `json:"expand,omitempty"`
	Hide   *HideOperation   `json:"hide,omitempty"`
}

// FunctionResult is the batch result of one invocation. Operations keep the
// relative order of the cart lines that produced them.
type FunctionResult struct {
	Operations []Operation `json:"operations"`
}

// NoChanges returns the canonical empty-operations result. Downstream
// consumers rely on a stable "nothing to do" shape rather than null.
func NoChanges() *FunctionResult {
	return &FunctionResult{Operations: []Operation{}}
}

// IsNoChange reports whether the result carries no operations.
func (r *FunctionResult) IsNoChange() bool {
	return r == nil || len(r.Operations) == 0
}
