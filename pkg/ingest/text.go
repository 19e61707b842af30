// Package ingest validates and normalizes extracted document text before it
// enters the drafting pipeline. Format parsing (PDF, DOCX extraction) happens
// upstream; this package only accepts the resulting plain text.
package ingest

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrTooLarge indicates the document text exceeds the configured limit.
	ErrTooLarge = errors.New("document text too large")

	// ErrNotText indicates the input is not valid plain text.
	ErrNotText = errors.New("document is not plain text")
)

// Normalize validates source text and normalizes it for prompting: strips a
// UTF-8 BOM, converts CRLF and bare CR line endings to LF, and trims
// trailing whitespace. Binary-looking input (NUL bytes, invalid UTF-8) is
// rejected rather than silently mangled.
func Normalize(text string, maxBytes int) (string, error) {
	if maxBytes > 0 && len(text) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, len(text), maxBytes)
	}

	text = strings.TrimPrefix(text, "\uFEFF")

	if !utf8.ValidString(text) || strings.ContainsRune(text, '\x00') {
		return "", ErrNotText
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return strings.TrimRight(text, " \t\n"), nil
}
