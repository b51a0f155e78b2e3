package errors

import (
	"strings"
	"unicode"
)

// Length limits for user-supplied strings. Names are display strings, IDs
// end up in file names and cache keys, paths come from the CLI.
const (
	maxNameLen   = 256
	maxDocIDLen  = 128
	maxNodeIDLen = 256
	maxPathLen   = 500
)

// hasControl reports whether s contains a control character or null byte.
func hasControl(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return r == '\x00' || unicode.IsControl(r)
	})
}

// checkID enforces the rules shared by document and node identifiers:
// non-empty, bounded length, printable, and free of path separators. what
// names the field in error messages, code tags the returned error.
func checkID(code Code, what, id string, limit int) error {
	switch {
	case id == "":
		return New(code, "%s cannot be empty", what)
	case len(id) > limit:
		return New(code, "%s too long (max %d characters)", what, limit)
	case hasControl(id):
		return New(code, "%s contains control characters", what)
	case strings.ContainsAny(id, `/\`):
		return New(code, "%s cannot contain path separators", what)
	}
	return nil
}

// ValidateDocumentName checks a display name supplied at an API or CLI
// boundary. Documents are stored under their ID rather than their name, so
// a single slash is fine; traversal sequences, backslashes, and unprintable
// bytes are not.
func ValidateDocumentName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidDocument, "document name cannot be empty")
	case len(name) > maxNameLen:
		return New(ErrCodeInvalidDocument, "document name too long (max %d characters)", maxNameLen)
	case hasControl(name):
		return New(ErrCodeInvalidDocument, "document name contains control characters")
	}
	for _, seq := range []string{"..", "//", `\`} {
		if strings.Contains(name, seq) {
			return New(ErrCodeInvalidDocument, "document name contains invalid sequence %q", seq)
		}
	}
	return nil
}

// ValidateDocumentID checks a document identifier. IDs become file names in
// the file-backed store and prefixes in scoped cache keys, so traversal
// sequences are rejected on top of the shared identifier rules.
func ValidateDocumentID(id string) error {
	if err := checkID(ErrCodeInvalidDocument, "document id", id, maxDocIDLen); err != nil {
		return err
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidDocument, "document id cannot contain traversal sequences")
	}
	return nil
}

// ValidateNodeID checks a node identifier supplied at an API or CLI
// boundary. Node IDs are map keys and the stems of synthetic gap IDs, so
// they must be printable and free of separators.
func ValidateNodeID(id string) error {
	return checkID(ErrCodeInvalidNode, "node id", id, maxNodeIDLen)
}

// ValidatePath checks a file path supplied at a CLI boundary. Absolute and
// relative paths are both fine; the check only rejects unprintable bytes
// and unreasonable length.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidInput, "path cannot be empty")
	case len(path) > maxPathLen:
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLen)
	case hasControl(path):
		return New(ErrCodeInvalidInput, "path contains control characters")
	}
	return nil
}
