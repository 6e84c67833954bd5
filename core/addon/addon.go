// Package addon implements the fixed-price add-on transform: a flat rule
// list pairs a target variant with an add-on variant at a fixed price, and
// the first matching cart line is expanded into the original item plus the
// add-on.
//
// At most one operation is produced per invocation, no matter how many
// lines or rules match. That first-match-only behavior is a documented
// limitation of the contract, not an implementation shortcut.
package addon

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"cart-transform/core/types"
	"cart-transform/internal/errors"
)

// Rule pairs a target variant with its add-on.
type Rule struct {
	// TargetVariantID is the merchandise that triggers the expansion
	TargetVariantID string `json:"targetVariantId" validate:"required"`

	// AddOnVariantID is the merchandise added alongside the target
	AddOnVariantID string `json:"addOnVariantId" validate:"required"`

	// AddOnPrice is the fixed per-unit price of the add-on
	AddOnPrice decimal.Decimal `json:"addOnPrice"`

	// BundleTitle replaces the expanded line's title
	BundleTitle string `json:"bundleTitle" validate:"required"`
}

// RuleDocument is the metafield document holding the rule list. The admin
// UI double-encodes the rules: the document's transforms field is itself a
// JSON-encoded array.
type RuleDocument struct {
	Transforms string `json:"transforms,omitempty"`
}

// RuleMetafield is the configuration metafield as delivered by the host.
type RuleMetafield struct {
	JSONValue RuleDocument `json:"jsonValue"`
}

// CartTransform is the configuration owner for this transform. It is
// distinct from any cart line.
type CartTransform struct {
	Metafield *RuleMetafield `json:"metafield,omitempty"`
}

// Input is the invocation snapshot for the add-on transform.
type Input struct {
	// Cart is the cart snapshot, lines in cart order
	Cart types.Cart `json:"cart"`

	// CartTransform carries the serialized rule list
	CartTransform *CartTransform `json:"cartTransform,omitempty"`
}

// DecodeRules parses the double-encoded rule list. An absent value means
// no rules; malformed JSON is a hard decode failure.
func DecodeRules(raw string) ([]Rule, error) {
	if raw == "" {
		return []Rule{}, nil
	}
	var rules []Rule
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return nil, errors.Decode("malformed add-on rule list", err)
	}
	return rules, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRules checks a rule list against the admin authoring rules.
// Like catalog validation this guards the write path; Run stays tolerant.
func ValidateRules(rules []Rule) error {
	for i, rule := range rules {
		if err := validate.Struct(rule); err != nil {
			return errors.Validation("invalid add-on rule", err).
				WithContext("rule_index", i)
		}
		if rule.AddOnPrice.IsNegative() {
			return errors.Validation("add-on price must not be negative", nil).
				WithContext("rule_index", i)
		}
	}
	return nil
}

// Run finds the first cart line matching any rule's target variant and the
// first rule matching that line, and emits a single two-item expansion:
// the original merchandise at its existing per-unit cost, and the add-on
// at the rule's fixed price, both at the line's quantity.
func Run(input *Input) (*types.FunctionResult, error) {
	if input == nil {
		return nil, errors.Input("nil input")
	}

	rules, err := DecodeRules(ruleValue(input))
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return types.NoChanges(), nil
	}

	line := firstMatchingLine(input.Cart.Lines, rules)
	if line == nil {
		return types.NoChanges(), nil
	}
	rule := firstMatchingRule(rules, line.Merchandise.ID)

	lineAmount := line.Cost.AmountPerQuantity.Amount.StringFixed(2)
	addOnAmount := rule.AddOnPrice.StringFixed(2)

	op := types.ExpandOperation{
		CartLineID: line.ID,
		Title:      rule.BundleTitle,
		ExpandedCartItems: []types.ExpandedCartItem{
			{
				MerchandiseID: line.Merchandise.ID,
				Quantity:      line.Quantity,
				Price: types.ItemPrice{
					Adjustment: types.PriceAdjustment{
						FixedPricePerUnit: types.FixedPricePerUnit{Amount: lineAmount},
					},
				},
			},
			{
				MerchandiseID: rule.AddOnVariantID,
				Quantity:      line.Quantity,
				Price: types.ItemPrice{
					Adjustment: types.PriceAdjustment{
						FixedPricePerUnit: types.FixedPricePerUnit{Amount: addOnAmount},
					},
				},
			},
		},
	}

	return &types.FunctionResult{Operations: []types.Operation{{Expand: &op}}}, nil
}

func ruleValue(input *Input) string {
	if input.CartTransform == nil || input.CartTransform.Metafield == nil {
		return ""
	}
	return input.CartTransform.Metafield.JSONValue.Transforms
}

func firstMatchingLine(lines []types.CartLine, rules []Rule) *types.CartLine {
	for i := range lines {
		line := &lines[i]
		if line.Merchandise.Kind != types.MerchandiseProductVariant {
			continue
		}
		for _, rule := range rules {
			if line.Merchandise.ID == rule.TargetVariantID {
				return line
			}
		}
	}
	return nil
}

func firstMatchingRule(rules []Rule, merchandiseID string) *Rule {
	for i := range rules {
		if rules[i].TargetVariantID == merchandiseID {
			return &rules[i]
		}
	}
	return nil
}
