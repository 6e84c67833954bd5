package addon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-transform/core/types"
	"cart-transform/internal/errors"
)

func inputWithRules(transforms string, lines ...types.CartLine) *Input {
	return &Input{
		Cart: types.Cart{Lines: lines},
		CartTransform: &CartTransform{
			Metafield: &RuleMetafield{JSONValue: RuleDocument{Transforms: transforms}},
		},
	}
}

func variantLine(id, merchandiseID string, quantity int, cost string) types.CartLine {
	return types.CartLine{
		ID:       id,
		Quantity: quantity,
		Merchandise: types.Merchandise{
			Kind: types.MerchandiseProductVariant,
			ID:   merchandiseID,
		},
		Cost: types.LineCost{
			AmountPerQuantity: types.MoneyAmount{Amount: decimal.RequireFromString(cost)},
		},
	}
}

const comboRules = `[{"targetVariantId":"A","addOnVariantId":"B","addOnPrice":"15.00","bundleTitle":"Combo"}]`

func TestRunComboScenario(t *testing.T) {
	input := inputWithRules(comboRules,
		variantLine("L1", "A", 2, "5.00"),
		variantLine("L2", "C", 1, "9.00"))

	result, err := Run(input)
	require.NoError(t, err)
	require.Len(t, result.Operations, 1)

	op := result.Operations[0].Expand
	require.NotNil(t, op)
	assert.Equal(t, "L1", op.CartLineID)
	assert.Equal(t, "Combo", op.Title)
	require.Len(t, op.ExpandedCartItems, 2)

	original := op.ExpandedCartItems[0]
	assert.Equal(t, "A", original.MerchandiseID)
	assert.Equal(t, 2, original.Quantity)
	assert.Equal(t, "5.00", original.Price.Adjustment.FixedPricePerUnit.Amount)

	added := op.ExpandedCartItems[1]
	assert.Equal(t, "B", added.MerchandiseID)
	assert.Equal(t, 2, added.Quantity)
	assert.Equal(t, "15.00", added.Price.Adjustment.FixedPricePerUnit.Amount)
}

func TestRunFirstMatchOnly(t *testing.T) {
	// Two lines match and two rules match the first line; exactly one
	// operation comes out, from the first line and the first rule.
	rules := `[
		{"targetVariantId":"A","addOnVariantId":"B1","addOnPrice":"1.00","bundleTitle":"first"},
		{"targetVariantId":"A","addOnVariantId":"B2","addOnPrice":"2.00","bundleTitle":"second"},
		{"targetVariantId":"X","addOnVariantId":"Y","addOnPrice":"3.00","bundleTitle":"other"}
	]`
	input := inputWithRules(rules,
		variantLine("L1", "A", 1, "10.00"),
		variantLine("L2", "X", 1, "10.00"))

	result, err := Run(input)
	require.NoError(t, err)
	require.Len(t, result.Operations, 1)

	op := result.Operations[0].Expand
	assert.Equal(t, "L1", op.CartLineID)
	assert.Equal(t, "first", op.Title)
	assert.Equal(t, "B1", op.ExpandedCartItems[1].MerchandiseID)
}

func TestRunNoChanges(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{
			name:  "no configuration owner",
			input: &Input{Cart: types.Cart{Lines: []types.CartLine{variantLine("L1", "A", 1, "5.00")}}},
		},
		{
			name:  "empty rule list",
			input: inputWithRules("[]", variantLine("L1", "A", 1, "5.00")),
		},
		{
			name:  "no line matches",
			input: inputWithRules(comboRules, variantLine("L1", "Z", 1, "5.00")),
		},
		{
			name: "matching id on non-variant merchandise",
			input: inputWithRules(comboRules, types.CartLine{
				ID:          "L1",
				Quantity:    1,
				Merchandise: types.Merchandise{Kind: types.MerchandiseCustomProduct, ID: "A"},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Run(tt.input)
			require.NoError(t, err)
			assert.True(t, result.IsNoChange())
			assert.NotNil(t, result.Operations)
		})
	}
}

func TestDecodeRules(t *testing.T) {
	rules, err := DecodeRules("")
	require.NoError(t, err)
	assert.Empty(t, rules)

	rules, err = DecodeRules(comboRules)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "A", rules[0].TargetVariantID)
	assert.Equal(t, "B", rules[0].AddOnVariantID)
	assert.True(t, rules[0].AddOnPrice.Equal(decimal.RequireFromString("15.00")))

	_, err = DecodeRules(`{"not":"a list"}`)
	assert.True(t, errors.IsType(err, errors.TypeDecode))
}

func TestValidateRules(t *testing.T) {
	valid, err := DecodeRules(comboRules)
	require.NoError(t, err)
	assert.NoError(t, ValidateRules(valid))

	missing := []Rule{{TargetVariantID: "A"}}
	err = ValidateRules(missing)
	assert.True(t, errors.IsType(err, errors.TypeValidation))

	negative := []Rule{{
		TargetVariantID: "A",
		AddOnVariantID:  "B",
		AddOnPrice:      decimal.RequireFromString("-1"),
		BundleTitle:     "Combo",
	}}
	err = ValidateRules(negative)
	assert.True(t, errors.IsType(err, errors.TypeValidation))
}
