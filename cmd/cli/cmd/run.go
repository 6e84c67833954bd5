// Package cmd - run command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cart-transform/adapters/metafield"
	"cart-transform/core/addon"
	"cart-transform/core/expand"
	"cart-transform/core/payment"
	"cart-transform/core/types"
	"cart-transform/internal/config"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <function> <input.json>",
	Short: "Run a checkout function against an input snapshot",
	Long: `Run one function invocation locally and print the resulting
operations as JSON.

Functions:
  cart-expand              percentage-discount bundle expansion
  add-on                   fixed-price add-on expansion
  payment-customization    hide payment method by country

Examples:
  cart-transform run cart-expand input.json
  cart-transform run add-on --pretty input.json`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

var pretty bool

func init() {
	runCmd.Flags().BoolVar(&pretty, "pretty", false, "indent the result JSON")
}

func runRun(cmd *cobra.Command, args []string) error {
	function, inputPath := args[0], args[1]

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	result, err := invoke(function, raw)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func invoke(function string, raw []byte) (*types.FunctionResult, error) {
	cfg := config.Get()

	switch function {
	case "cart-expand":
		var input expand.Input
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, fmt.Errorf("failed to decode input: %w", err)
		}
		if cfg.Metafields.SeedFile != "" {
			store, err := metafield.LoadSeed(cfg.Metafields.SeedFile,
				cfg.Metafields.BundleNamespace, cfg.Metafields.BundleKey)
			if err != nil {
				return nil, err
			}
			store.HydrateCart(&input.Cart,
				cfg.Metafields.BundleNamespace, cfg.Metafields.BundleKey)
		}
		return expand.NewEngineWithDefaultOffer(cfg.Engine.DefaultOfferPercent).Run(&input)

	case "add-on":
		var input addon.Input
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, fmt.Errorf("failed to decode input: %w", err)
		}
		return addon.Run(&input)

	case "payment-customization":
		var input payment.Input
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, fmt.Errorf("failed to decode input: %w", err)
		}
		return payment.Run(&input)

	default:
		return nil, fmt.Errorf("unknown function: %s", function)
	}
}
