// Package api - request/response contracts
package api

import "cart-transform/core/types"

// RunResponse is the envelope of a function invocation.
type RunResponse struct {
	// Result is the function's batch result
	Result *types.FunctionResult `json:"result"`

	// Metadata describes the invocation itself
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes one invocation.
type ResponseMetadata struct {
	// RequestID uniquely identifies the invocation
	RequestID string `json:"request_id"`

	// InputHash is a deterministic hash of the raw input; identical
	// inputs always hash identically, which makes idempotence checkable
	// from the outside
	InputHash string `json:"input_hash"`

	// EngineVersion is the running engine version
	EngineVersion string `json:"engine_version"`

	// DurationMs is the invocation wall time
	DurationMs int64 `json:"duration_ms"`
}

// ErrorBody is the error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
