// Package ingestion extracts a single JSON object from raw text produced by
// an external content generator. Model output is an inherently unreliable
// input surface: the object may be wrapped in a fenced code block, embedded
// in explanatory prose, or missing entirely. Extraction must never crash the
// caller; every failure mode is reported as a FormatError.
package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrBadFormat is the sentinel all extraction failures match.
var ErrBadFormat = errors.New("no parseable object in content")

// FormatError reports why no structured object could be extracted from the
// raw text. It matches ErrBadFormat via errors.Is.
type FormatError struct {
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("content format error: %s", e.Reason)
}

// Is matches FormatError against the ErrBadFormat sentinel.
func (e *FormatError) Is(target error) bool {
	return target == ErrBadFormat
}

// Extract locates and parses exactly one JSON object in raw text.
//
// Strategy, in order:
//  1. Parse the trimmed text directly.
//  2. If that fails, look for a fenced block (case-insensitive ```json or
//     plain ```) and take its interior, else keep the whole text.
//  3. Within the candidate, parse from the first '{' to the last '}'.
//
// Whether the direct parse succeeds is an explicit boolean decision, not an
// exception-driven branch: a failed parse simply selects the fallback path.
func Extract(raw string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &FormatError{Reason: "empty input"}
	}

	if obj, ok := parseObject(trimmed); ok {
		return obj, nil
	}

	candidate := fencedInterior(trimmed)

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &FormatError{Reason: "no matching braces found"}
	}

	if obj, ok := parseObject(candidate[start : end+1]); ok {
		return obj, nil
	}

	return nil, &FormatError{Reason: "candidate text is not a valid object"}
}

// parseObject reports whether text parses as a single JSON object (not an
// array or scalar) and returns it verbatim if so.
func parseObject(text string) (json.RawMessage, bool) {
	if !strings.HasPrefix(strings.TrimSpace(text), "{") {
		return nil, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(strings.TrimSpace(text)), true
}

// fencedInterior returns the interior of the first fenced block, or the
// input unchanged when no complete fence is present. The delimiter search is
// case-insensitive so "```JSON" is treated like "```json".
func fencedInterior(text string) string {
	lower := strings.ToLower(text)

	open := strings.Index(lower, "```")
	if open == -1 {
		return text
	}

	// Skip past the opening delimiter and any language tag on its line.
	rest := text[open+3:]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine == "" || strings.EqualFold(firstLine, "json") {
			rest = rest[nl+1:]
		}
	}

	if close := strings.Index(rest, "```"); close != -1 {
		return rest[:close]
	}
	return rest
}
