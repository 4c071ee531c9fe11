package ingestion_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simverse/simverse-api/internal/ingestion"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{
			name:     "bare object",
			raw:      `{"description":"orbits"}`,
			expected: `{"description":"orbits"}`,
		},
		{
			name:     "object with surrounding whitespace",
			raw:      "\n  {\"a\": 1}  \n",
			expected: `{"a": 1}`,
		},
		{
			name:     "fenced json block",
			raw:      "Here is the lesson:\n```json\n{\"description\":\"waves\"}\n```\nEnjoy!",
			expected: `{"description":"waves"}`,
		},
		{
			name:     "uppercase fence tag",
			raw:      "```JSON\n{\"x\":2}\n```",
			expected: `{"x":2}`,
		},
		{
			name:     "fence without language tag",
			raw:      "```\n{\"x\":3}\n```",
			expected: `{"x":3}`,
		},
		{
			name:     "object embedded in prose",
			raw:      "Sure! The content is {\"steps\": []} as requested.",
			expected: `{"steps": []}`,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "no braces at all",
			raw:     "I could not generate the lesson, sorry.",
			wantErr: true,
		},
		{
			name:    "braces around invalid json",
			raw:     "result: {not json at all}",
			wantErr: true,
		},
		{
			name:    "top-level array is rejected",
			raw:     `[1, 2, 3]`,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			obj, err := ingestion.Extract(tc.raw)

			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ingestion.ErrBadFormat))

				var formatErr *ingestion.FormatError
				assert.True(t, errors.As(err, &formatErr))
				assert.NotEmpty(t, formatErr.Reason)
				return
			}

			require.NoError(t, err)
			assert.JSONEq(t, tc.expected, string(obj))
		})
	}
}

func TestExtractReturnsParseableJSON(t *testing.T) {
	raw := "Prefix text {\"description\": \"gravity\", \"steps\": [{\"objects\": []}]} suffix"

	obj, err := ingestion.Extract(raw)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(obj, &decoded))
	assert.Contains(t, decoded, "description")
	assert.Contains(t, decoded, "steps")
}
