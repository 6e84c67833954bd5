// Package cmd - validate command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cart-transform/core/addon"
	"cart-transform/core/catalog"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <catalog|rules> <file>",
	Short: "Validate a bundle catalog or add-on rule list",
	Long: `Validate configuration documents before they are written to the
platform. The engine itself stays tolerant at read time; this command
enforces the admin authoring rules up front.

Examples:
  cart-transform validate catalog bundles.json
  cart-transform validate rules transforms.json`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	kind, path := args[0], args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	switch kind {
	case "catalog":
		cat, err := catalog.Decode(data)
		if err != nil {
			return err
		}
		if cat == nil {
			return fmt.Errorf("no catalog document in %s", path)
		}
		if err := catalog.ValidateCatalog(cat); err != nil {
			return err
		}
		fmt.Printf("OK: %d bundle definition(s)\n", cat.Len())
		return nil

	case "rules":
		rules, err := addon.DecodeRules(string(data))
		if err != nil {
			return err
		}
		if err := addon.ValidateRules(rules); err != nil {
			return err
		}
		fmt.Printf("OK: %d add-on rule(s)\n", len(rules))
		return nil

	default:
		return fmt.Errorf("unknown document kind: %s", kind)
	}
}
