// Package redact scrubs sensitive fragments from strings before they reach
// logs or API error responses: connection strings, credentials, API keys,
// signed tokens, file paths, and email addresses.
package redact

import "regexp"

// Redaction placeholders
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	PathPlaceholder       = "[REDACTED_PATH]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; earlier rules win when patterns overlap, so the
// credential patterns come before the broader path and host ones.
var rules = []rule{
	// user:password@ in connection URLs
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|redis|amqp)://[^@\s]+@`), CredentialPlaceholder},

	// password=... / pwd: ... parameters
	{regexp.MustCompile(`(?i)(password|passwd|pwd)(['"=:\s]+)[^'"&\s]{3,}`), CredentialPlaceholder},

	// api_key=..., secret: ..., auth tokens in key=value form
	{regexp.MustCompile(`(?i)(api[_-]?key|secret|token|auth)(['"=:\s]+)[A-Za-z0-9_\-.~+/]{8,}`), KeyPlaceholder},

	// three-part base64url JWTs
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), TokenPlaceholder},

	// absolute unix paths with at least two segments
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},

	// email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},
}

// String returns input with every sensitive fragment replaced by its
// placeholder.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts an error's message. Returns "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
