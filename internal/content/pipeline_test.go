package content_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse-api/internal/content"
	"github.com/simverse/simverse-api/internal/domain"
)

func TestProduceValidatedContentEmptyRawServesFallback(t *testing.T) {
	topic := domain.Topic{Title: "Magnetism", Description: "Fields and forces."}

	pkg, source := content.ProduceValidatedContent(context.Background(), "", topic, domain.LevelBeginner)

	assert.Equal(t, content.SourceFallback, source)
	require.NoError(t, content.Validate(pkg))

	expected := content.GenerateFallback(topic, domain.LevelBeginner)
	expectedJSON, err := json.Marshal(expected)
	require.NoError(t, err)
	actualJSON, err := json.Marshal(pkg)
	require.NoError(t, err)
	assert.JSONEq(t, string(expectedJSON), string(actualJSON))
}

func TestProduceValidatedContentGarbageServesFallback(t *testing.T) {
	topic := domain.Topic{Title: "Magnetism"}

	pkg, source := content.ProduceValidatedContent(context.Background(),
		"I'm sorry, I cannot produce that lesson.", topic, domain.LevelBeginner)

	assert.Equal(t, content.SourceFallback, source)
	require.NoError(t, content.Validate(pkg))
}

func TestProduceValidatedContentInvalidSchemaServesFallback(t *testing.T) {
	topic := domain.Topic{Title: "Magnetism"}
	raw := `{"description": "", "narration": [], "steps": [], "levels": []}`

	pkg, source := content.ProduceValidatedContent(context.Background(), raw, topic, domain.LevelBeginner)

	assert.Equal(t, content.SourceFallback, source)
	require.NoError(t, content.Validate(pkg))
}

func TestProduceValidatedContentAcceptsValidExternal(t *testing.T) {
	topic := domain.Topic{Title: "Magnetism"}
	external := validContent()
	rawBytes, err := json.Marshal(external)
	require.NoError(t, err)
	raw := "Here you go!\n```json\n" + string(rawBytes) + "\n```"

	pkg, source := content.ProduceValidatedContent(context.Background(), raw, topic, domain.LevelBeginner)

	assert.Equal(t, content.SourceExternal, source)
	require.NoError(t, content.Validate(pkg))

	// The external package survived, normalized: its beginner level is kept
	// and the missing levels come from the fallback.
	assert.Equal(t, "A tour of basic shapes.", pkg.Description)
	require.Len(t, pkg.Levels, 3)
	assert.Equal(t, "How many shapes?", pkg.Levels[0].Problems[0].Question)
}
