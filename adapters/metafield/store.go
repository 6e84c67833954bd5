// Package metafield provides an in-memory namespaced key/value JSON
// document store standing in for the platform's metafield persistence.
//
// The admin surface writes these documents; the engine only ever reads
// them. The store exists so the function host can resolve a product's
// bundle catalog when a cart snapshot arrives without it inlined.
package metafield

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/tidwall/gjson"

	"cart-transform/core/catalog"
	"cart-transform/core/types"
	"cart-transform/internal/errors"
)

// Store holds metafield documents keyed by owner, namespace, and key.
type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]string // ownerID -> namespace"/"key -> value
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string]map[string]string)}
}

func docKey(namespace, key string) string {
	return namespace + "/" + key
}

// Set writes a document for an owner. Last write wins, matching the
// platform's metafieldsSet semantics.
func (s *Store) Set(ownerID, namespace, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs[ownerID] == nil {
		s.docs[ownerID] = make(map[string]string)
	}
	s.docs[ownerID][docKey(namespace, key)] = value
}

// Get returns the raw document for an owner, if present.
func (s *Store) Get(ownerID, namespace, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.docs[ownerID][docKey(namespace, key)]
	return value, ok
}

// Lookup evaluates a gjson path against a stored document. The second
// return is false when the document is absent or the path matches nothing.
func (s *Store) Lookup(ownerID, namespace, key, path string) (gjson.Result, bool) {
	value, ok := s.Get(ownerID, namespace, key)
	if !ok {
		return gjson.Result{}, false
	}
	result := gjson.Get(value, path)
	return result, result.Exists()
}

// Owners returns all owner IDs in sorted order.
func (s *Store) Owners() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owners := make([]string, 0, len(s.docs))
	for owner := range s.docs {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}

// HydrateCart fills in missing bundle catalog data on product-variant cart
// lines from the stored documents under the given namespace and key. Lines
// that already carry inline catalog data are left untouched.
func (s *Store) HydrateCart(cart *types.Cart, namespace, key string) {
	for i := range cart.Lines {
		line := &cart.Lines[i]
		if !line.Merchandise.IsProductVariant() {
			continue
		}
		product := line.Merchandise.Product
		if len(product.BundleData) > 0 || product.ID == "" {
			continue
		}
		if value, ok := s.Get(product.ID, namespace, key); ok {
			product.BundleData = json.RawMessage(value)
		}
	}
}

// SeedEntry is one record of a seed file.
type SeedEntry struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// LoadSeed builds a store from a JSON seed file (an array of SeedEntry).
// Documents under the bundle namespace and key must decode and validate as
// bundle catalogs; a bad catalog fails the whole load so a broken admin
// document cannot silently reach the engine.
func LoadSeed(path, bundleNamespace, bundleKey string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("failed to read metafield seed file", err)
	}

	var entries []SeedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Decode("malformed metafield seed file", err)
	}

	store := NewStore()
	for i, entry := range entries {
		if entry.OwnerID == "" || entry.Namespace == "" || entry.Key == "" {
			return nil, errors.Validation("seed entry missing owner, namespace, or key", nil).
				WithContext("entry_index", i)
		}

		if entry.Namespace == bundleNamespace && entry.Key == bundleKey {
			cat, err := catalog.Decode(json.RawMessage(entry.Value))
			if err != nil {
				return nil, err
			}
			if cat != nil {
				if err := catalog.ValidateCatalog(cat); err != nil {
					return nil, err
				}
			}
		}

		store.Set(entry.OwnerID, entry.Namespace, entry.Key, entry.Value)
	}
	return store, nil
}
