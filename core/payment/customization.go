// Package payment implements the payment-method customization: hide one
// payment method, matched by configured name, whenever the cart's localized
// country differs from the configured country code.
package payment

import (
	"encoding/json"
	"strings"

	"cart-transform/core/types"
	"cart-transform/internal/errors"
)

// Config is the customization's metafield document.
type Config struct {
	// CountryCode is the country the configured method is reserved for
	CountryCode string `json:"countryCode"`

	// PaymentMethod is the method name to match, exactly or by substring
	PaymentMethod string `json:"paymentMethod"`
}

// Metafield is the serialized configuration as delivered by the host.
type Metafield struct {
	Value string `json:"value,omitempty"`
}

// PaymentCustomization is the configuration owner for this customization.
type PaymentCustomization struct {
	Metafield *Metafield `json:"metafield,omitempty"`
}

// Country is the cart's localized country.
type Country struct {
	IsoCode string `json:"isoCode"`
}

// Localization is the cart's localization context.
type Localization struct {
	Country Country `json:"country"`
}

// Method is one payment method offered at checkout.
type Method struct {
	// ID is the opaque payment method identifier
	ID string `json:"id"`

	// Name is the shopper-facing method name
	Name string `json:"name"`
}

// Input is the invocation snapshot for the payment customization.
type Input struct {
	PaymentCustomization *PaymentCustomization `json:"paymentCustomization,omitempty"`
	Localization         Localization          `json:"localization"`
	PaymentMethods       []Method              `json:"paymentMethods"`
}

// DecodeConfig parses the configuration metafield. An absent value yields
// the zero config (which never hides anything); malformed JSON fails hard.
func DecodeConfig(raw string) (Config, error) {
	var cfg Config
	if raw == "" {
		return cfg, nil
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return Config{}, errors.Decode("malformed payment customization config", err)
	}
	return cfg, nil
}

// Run hides the first payment method whose name equals or contains the
// configured name, but only when the cart's localized country differs from
// the configured country code. An empty configured name never matches; a
// substring match against "" would hide an arbitrary method.
func Run(input *Input) (*types.FunctionResult, error) {
	if input == nil {
		return nil, errors.Input("nil input")
	}

	cfg, err := DecodeConfig(configValue(input))
	if err != nil {
		return nil, err
	}
	if cfg.PaymentMethod == "" {
		return types.NoChanges(), nil
	}
	if cfg.CountryCode == input.Localization.Country.IsoCode {
		return types.NoChanges(), nil
	}

	for _, method := range input.PaymentMethods {
		if method.Name == cfg.PaymentMethod || strings.Contains(method.Name, cfg.PaymentMethod) {
			return &types.FunctionResult{Operations: []types.Operation{
				{Hide: &types.HideOperation{PaymentMethodID: method.ID}},
			}}, nil
		}
	}
	return types.NoChanges(), nil
}

func configValue(input *Input) string {
	if input.PaymentCustomization == nil || input.PaymentCustomization.Metafield == nil {
		return ""
	}
	return input.PaymentCustomization.Metafield.Value
}
