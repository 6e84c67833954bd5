package catalog

import (
	"strconv"

	"cart-transform/core/types"
	"cart-transform/internal/errors"
)

// Select resolves which bundle definition applies to a cart line, from the
// line's bundle-index attribute value.
//
// An empty bundle list is an invalid composition and fails hard; callers
// must surface it rather than skip the line. An index that does not resolve
// to a catalog position (out of range, negative, or not an integer) is a
// soft miss: (nil, nil), meaning "do not expand this line".
func Select(cat *types.BundleCatalog, indexValue string) (*types.BundleDefinition, error) {
	if cat.Len() == 0 {
		return nil, errors.Composition("invalid bundle composition")
	}

	// Absent value selects the first catalog entry.
	index := 0
	if indexValue != "" {
		parsed, err := strconv.Atoi(indexValue)
		if err != nil {
			return nil, nil
		}
		index = parsed
	}

	if index < 0 || index >= cat.Len() {
		return nil, nil
	}
	return &cat.Bundles[index], nil
}
