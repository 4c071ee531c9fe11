// Package generation defines the boundary between the application core and
// external AI/LLM services. Implementations return the model's raw text
// response; extraction, validation, and repair of that text belong to the
// content pipeline, which never trusts this surface.
package generation

import (
	"context"

	"github.com/simverse/simverse-api/internal/domain"
)

// Generator produces raw lesson text for a topic and difficulty level.
//
// A nil Generator (or any error from it) means "no raw text available"; the
// caller substitutes fallback content and does not retry.
type Generator interface {
	// GenerateLessonText asks the external service for a lesson package
	// covering the topic at the given level. The returned string is the
	// unprocessed model output, which may embed the JSON payload in prose
	// or fencing.
	GenerateLessonText(ctx context.Context, topic domain.Topic, level domain.Level) (string, error)
}
