package errors

import (
	"strings"
	"unicode"
)

// ValidateDepth checks a derivation depth bound.
// Depth must be non-negative; limit > 0 additionally caps it (used by the HTTP API).
func ValidateDepth(depth, limit int) error {
	if depth < 0 {
		return New(ErrCodeInvalidDepth, "depth must be non-negative, got %d", depth)
	}
	if limit > 0 && depth > limit {
		return New(ErrCodeInvalidDepth, "depth %d exceeds the allowed maximum of %d", depth, limit)
	}
	return nil
}

// ValidateSymbol validates a nonterminal key taken from a grammar document.
// Nonterminals are single bytes, so the key must be exactly one byte long.
func ValidateSymbol(key string) error {
	if key == "" {
		return New(ErrCodeInvalidGrammar, "nonterminal cannot be empty")
	}
	if len(key) != 1 {
		return New(ErrCodeInvalidGrammar, "nonterminal %q must be a single byte", key)
	}
	return nil
}

// ValidatePath validates a grammar file path given on the command line or in an API request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateRelativePath is ValidatePath plus the traversal rules applied to
// paths received over the network: relative only, no "..", no backslashes.
func ValidateRelativePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	return nil
}
