package content

import (
	"context"
	"encoding/json"

	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/ingestion"
	"github.com/simverse/simverse-api/internal/platform/logger"
)

// Source records where the final content package came from.
type Source string

// Content sources.
const (
	SourceExternal Source = "external"
	SourceFallback Source = "fallback"
)

// ProduceValidatedContent turns raw external generator output into content
// guaranteed to satisfy every storage and display invariant.
//
// With no raw text (generator unavailable or unconfigured) the fallback
// package is returned directly. Otherwise the text goes through ingestion
// and schema validation; any failure there substitutes the fallback
// wholesale, and the surviving package is normalized either way. The
// pipeline never fails: there is always something valid to serve.
func ProduceValidatedContent(ctx context.Context, raw string, topic domain.Topic, level domain.Level) (*domain.GeneratedContent, Source) {
	log := logger.FromContext(ctx)
	fallback := GenerateFallback(topic, level)

	if raw == "" {
		return fallback, SourceFallback
	}

	obj, err := ingestion.Extract(raw)
	if err != nil {
		log.WarnContext(ctx, "content ingestion failed, substituting fallback",
			"topic_id", topic.ID, "error", err)
		return fallback, SourceFallback
	}

	var external domain.GeneratedContent
	if err := json.Unmarshal(obj, &external); err != nil {
		log.WarnContext(ctx, "content decoding failed, substituting fallback",
			"topic_id", topic.ID, "error", err)
		return fallback, SourceFallback
	}

	if err := Validate(&external); err != nil {
		log.WarnContext(ctx, "content validation failed, substituting fallback",
			"topic_id", topic.ID, "error", err)
		return fallback, SourceFallback
	}

	return Normalize(&external, fallback), SourceExternal
}
