package catalog

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"cart-transform/core/types"
	"cart-transform/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var oneHundred = decimal.NewFromInt(100)

// ValidateCatalog checks a decoded catalog against the admin authoring
// rules. The engine read path never calls this: a catalog that fails these
// checks may still expand (defaults cover zero offers and quantities).
// Admin tooling and seed loading reject it up front instead.
func ValidateCatalog(cat *types.BundleCatalog) error {
	if cat == nil {
		return errors.Validation("no catalog to validate", nil)
	}

	for i := range cat.Bundles {
		def := &cat.Bundles[i]
		if err := validate.Struct(def); err != nil {
			return errors.Validation("invalid bundle definition", err).
				WithContext("bundle_index", i)
		}
		if err := validateOffer(def.Offer); err != nil {
			return err.WithContext("bundle_index", i)
		}
		for j := range def.SelectedProducts {
			if err := validateOffer(def.SelectedProducts[j].Offer); err != nil {
				return err.WithContext("bundle_index", i).
					WithContext("product_index", j)
			}
		}
	}
	return nil
}

// validateOffer enforces the 0-100 percentage range. decimal values are
// outside validator tag coverage, so the range check is explicit.
func validateOffer(offer decimal.Decimal) *errors.Error {
	if offer.IsNegative() || offer.GreaterThan(oneHundred) {
		return errors.Validation("offer percentage out of range", nil).
			WithContext("offer", offer.String())
	}
	return nil
}
