// Package catalog decodes and addresses bundle catalogs attached to
// products. Decoding is a pure parse; the engine never mutates or writes a
// catalog.
package catalog

import (
	"bytes"
	"encoding/json"

	"cart-transform/core/types"
	"cart-transform/internal/errors"
)

// Decode parses the raw serialized catalog attached to a product.
//
// A nil or empty raw value means the product carries no catalog and yields
// (nil, nil). Malformed JSON, or JSON that is not the expected document
// shape, is a hard decode failure; it must never be coerced to an empty
// catalog.
func Decode(raw json.RawMessage) (*types.BundleCatalog, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	// Unknown fields are tolerated: admin documents carry display-only
	// fields this engine does not model. A shape mismatch is fatal.
	var catalog types.BundleCatalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, errors.Decode("malformed bundle catalog", err)
	}

	if catalog.Bundles == nil {
		catalog.Bundles = []types.BundleDefinition{}
	}
	return &catalog, nil
}
