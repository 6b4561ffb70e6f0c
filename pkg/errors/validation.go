package errors

import (
	"strings"
	"unicode"
)

// MaxSourceBytes caps the source text accepted by the builders. The
// scanner itself is bounded by line count, but the CLI and API reject
// oversized inputs early with a clear message.
const MaxSourceBytes = 1 << 20

// ValidateSource validates a source-text snippet before graph building.
// The scanner never fails on any input, so this only guards against
// inputs that are clearly not text or unreasonably large. Empty source
// is accepted and builds the minimal entry-to-exit graph.
func ValidateSource(source string) error {
	if len(source) > MaxSourceBytes {
		return New(ErrCodeInvalidSource, "source text too large (max %d bytes)", MaxSourceBytes)
	}
	if strings.ContainsRune(source, '\x00') {
		return New(ErrCodeInvalidSource, "source text contains null bytes")
	}
	return nil
}

// ValidateFormat validates an output format name.
func ValidateFormat(format string) error {
	switch format {
	case "dot", "svg", "png", "json":
		return nil
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be dot, svg, png, or json)", format)
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}

// ValidateGraphID validates a stored-graph identifier for safety.
// IDs are generated as UUIDs, so anything outside hex digits and dashes
// is rejected before it can reach a storage backend.
func ValidateGraphID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "graph id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "graph id too long")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "graph id contains control characters")
		}
		if r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return New(ErrCodeInvalidInput, "graph id contains invalid character %q", r)
		}
	}
	return nil
}
