package catalog

import (
	"fmt"
	"testing"

	"cart-transform/core/types"
	"cart-transform/internal/errors"
)

func catalogOf(n int) *types.BundleCatalog {
	cat := &types.BundleCatalog{Bundles: []types.BundleDefinition{}}
	for i := 0; i < n; i++ {
		cat.Bundles = append(cat.Bundles, types.BundleDefinition{
			DisplayText: fmt.Sprintf("bundle-%d", i),
		})
	}
	return cat
}

// TestSelectEmptyCatalog tests that an empty bundle list always fails hard
func TestSelectEmptyCatalog(t *testing.T) {
	for _, indexValue := range []string{"", "0", "1", "-1", "abc"} {
		t.Run("index "+indexValue, func(t *testing.T) {
			def, err := Select(catalogOf(0), indexValue)
			if def != nil {
				t.Errorf("expected no selection, got %+v", def)
			}
			if !errors.IsType(err, errors.TypeComposition) {
				t.Errorf("expected COMPOSITION_ERROR, got %v", err)
			}
		})
	}
}

// TestSelect tests index resolution against a populated catalog
func TestSelect(t *testing.T) {
	tests := []struct {
		name       string
		bundles    int
		indexValue string
		wantLabel  string
		wantMiss   bool
	}{
		{
			name:       "absent value selects first entry",
			bundles:    3,
			indexValue: "",
			wantLabel:  "bundle-0",
		},
		{
			name:       "explicit zero selects first entry",
			bundles:    3,
			indexValue: "0",
			wantLabel:  "bundle-0",
		},
		{
			name:       "index within range selects that entry",
			bundles:    3,
			indexValue: "2",
			wantLabel:  "bundle-2",
		},
		{
			name:       "index at count is a soft miss",
			bundles:    3,
			indexValue: "3",
			wantMiss:   true,
		},
		{
			name:       "index far out of range is a soft miss",
			bundles:    1,
			indexValue: "5",
			wantMiss:   true,
		},
		{
			name:       "negative index is a soft miss",
			bundles:    3,
			indexValue: "-1",
			wantMiss:   true,
		},
		{
			name:       "non-integer index is a soft miss",
			bundles:    3,
			indexValue: "two",
			wantMiss:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Select(catalogOf(tt.bundles), tt.indexValue)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantMiss {
				if def != nil {
					t.Errorf("expected no selection, got %+v", def)
				}
				return
			}
			if def == nil {
				t.Fatal("expected a selection, got nil")
			}
			if def.DisplayText != tt.wantLabel {
				t.Errorf("expected %q, got %q", tt.wantLabel, def.DisplayText)
			}
		})
	}
}
