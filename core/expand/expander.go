// Package expand implements the bundle expansion transform: cart lines
// whose product carries a bundle catalog are replaced by the selected
// bundle's constituent variants, priced from the triggering line's own
// per-unit cost.
//
// One invocation consumes one immutable cart snapshot and produces one
// result. The engine holds no state across invocations.
package expand

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cart-transform/core/catalog"
	"cart-transform/core/types"
	"cart-transform/internal/errors"
	"cart-transform/internal/logging"
)

var oneHundred = decimal.NewFromInt(100)

// Input is the invocation snapshot for the percentage-discount transform.
type Input struct {
	// Cart is the cart snapshot, lines in cart order
	Cart types.Cart `json:"cart"`

	// PresentmentCurrencyRate converts base-currency amounts into the
	// currency shown to the shopper. Always positive.
	PresentmentCurrencyRate decimal.Decimal `json:"presentmentCurrencyRate"`
}

// Engine expands bundle-carrying cart lines into their constituent items.
type Engine struct {
	// DefaultOfferPercent is the discount applied when a bundle's offer
	// is zero or missing. Zero is a legitimate-looking but
	// business-invalid offer value, so the fallback keys off it too.
	DefaultOfferPercent decimal.Decimal
}

// NewEngine creates an engine with the standard 10% fallback offer.
func NewEngine() *Engine {
	return &Engine{DefaultOfferPercent: decimal.NewFromInt(10)}
}

// NewEngineWithDefaultOffer creates an engine with a configured fallback offer.
func NewEngineWithDefaultOffer(percent int) *Engine {
	if percent <= 0 {
		return NewEngine()
	}
	return &Engine{DefaultOfferPercent: decimal.NewFromInt(int64(percent))}
}

// Run decides, independently per cart line, whether to emit an expansion
// operation. Operations keep the relative order of their originating lines.
//
// The first hard error (malformed catalog, empty bundle list) aborts the
// whole invocation; the host pipeline then leaves the cart unchanged.
// Selection misses and empty expansions never surface as errors.
func (e *Engine) Run(input *Input) (*types.FunctionResult, error) {
	if input == nil {
		return nil, errors.Input("nil input")
	}
	if input.PresentmentCurrencyRate.Sign() <= 0 {
		return nil, errors.Input("presentment currency rate must be positive")
	}

	operations := []types.Operation{}
	for _, line := range input.Cart.Lines {
		op, err := e.ExpandLine(line, input.PresentmentCurrencyRate)
		if err != nil {
			logging.Error("bundle expansion failed",
				zap.String("cart_line_id", line.ID),
				zap.Error(err))
			return nil, err
		}
		if op != nil {
			operations = append(operations, types.Operation{Expand: op})
		}
	}

	if len(operations) == 0 {
		return types.NoChanges(), nil
	}
	return &types.FunctionResult{Operations: operations}, nil
}

// ExpandLine builds the expansion operation for a single cart line, or nil
// when the line does not qualify.
//
// A line qualifies only when its merchandise is a product variant, the
// owning product carries a bundle catalog, and the bundle-index attribute
// is present on the line (its value may still be empty, which selects the
// first catalog entry).
func (e *Engine) ExpandLine(line types.CartLine, rate decimal.Decimal) (*types.ExpandOperation, error) {
	if !line.Merchandise.IsProductVariant() {
		return nil, nil
	}
	if len(line.Merchandise.Product.BundleData) == 0 || line.BundleIndex == nil {
		return nil, nil
	}

	cat, err := catalog.Decode(line.Merchandise.Product.BundleData)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}

	selected, err := catalog.Select(cat, line.BundleIndex.Value)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		// Index out of range: leave the line alone.
		return nil, nil
	}

	items := e.expandItems(selected, line.Cost.AmountPerQuantity.Amount, rate)
	if len(items) == 0 {
		return nil, nil
	}

	return &types.ExpandOperation{
		CartLineID:        line.ID,
		Title:             selected.DisplayText,
		ExpandedCartItems: items,
	}, nil
}

// expandItems flattens the bundle's products into one item per constituent
// variant, preserving product order then variant order.
//
// Every item is priced from the triggering line's per-unit cost, not from
// the variant's own originalPrice:
//
//	unitPrice = round((offer / 100) * lineUnitCost * presentmentRate, 2)
//
// half-up to match currency minor-unit conventions.
func (e *Engine) expandItems(def *types.BundleDefinition, lineUnitCost, rate decimal.Decimal) []types.ExpandedCartItem {
	offer := def.Offer
	if offer.IsZero() {
		offer = e.DefaultOfferPercent
	}

	unitPrice := offer.Div(oneHundred).Mul(lineUnitCost).Mul(rate).Round(2)
	amount := unitPrice.StringFixed(2)

	var items []types.ExpandedCartItem
	for _, product := range def.SelectedProducts {
		for _, variant := range product.Variants {
			quantity := variant.Quantity
			if quantity == 0 {
				quantity = 1
			}
			items = append(items, types.ExpandedCartItem{
				MerchandiseID: variant.ID,
				Quantity:      quantity,
				Price: types.ItemPrice{
					Adjustment: types.PriceAdjustment{
						FixedPricePerUnit: types.FixedPricePerUnit{Amount: amount},
					},
				},
			})
		}
	}
	return items
}
