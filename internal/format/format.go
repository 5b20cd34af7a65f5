// Package format renders Kimai API payloads as tool response text,
// either as indented JSON or as compact markdown summaries.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

const (
	// CharacterLimit caps the length of any tool response. Longer text
	// is cut short and a truncation marker appended.
	CharacterLimit = 25000

	// markerReserve leaves room for the truncation marker itself.
	markerReserve = 50
)

// Truncate enforces CharacterLimit, counting characters rather than
// bytes so multi-byte text is never split mid-rune.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= CharacterLimit {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:CharacterLimit-markerReserve])
	return fmt.Sprintf("%s\n\n... [Output truncated at %d characters]", cut, CharacterLimit)
}

// JSON re-indents a raw API payload for display. The bytes are
// re-indented rather than re-marshaled, so key order and fields the
// server does not model all survive. Invalid input comes back as-is.
func JSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
