package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when lesson generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate lesson text")

	// ErrEmptyResponse is returned when the model produced no usable text
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
