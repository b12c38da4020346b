package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/covergen/internal/article"
)

// marshalMetadata converts a record to JSON TEXT for storage.
// HTML escaping is disabled so titles are stored as written.
func marshalMetadata(m article.Metadata) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalMetadata parses stored JSON TEXT.
func unmarshalMetadata(data string) (article.Metadata, error) {
	var m article.Metadata
	if data == "" || data == "{}" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return article.Metadata{}, fmt.Errorf("unmarshal metadata: %w", err)
	}
	return m, nil
}
