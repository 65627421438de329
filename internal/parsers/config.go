package parsers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang-statement-analyzer/internal/models"
)

// ParseConfig holds configuration for statement file parsing
type ParseConfig struct {
	Delimiter     rune `json:"delimiter"`
	SkipBlankRows bool `json:"skip_blank_rows"`
}

// DefaultParseConfig returns a configuration matching the standard
// semicolon-delimited export format
func DefaultParseConfig() *ParseConfig {
	return &ParseConfig{
		Delimiter:     ';',
		SkipBlankRows: true,
	}
}

// Validate checks if the parse configuration is valid
func (pc *ParseConfig) Validate() error {
	if pc.Delimiter == 0 {
		return fmt.Errorf("delimiter cannot be empty")
	}
	return nil
}

// ColumnMappingEntry pairs a canonical field name with the column label it
// currently carries in a specific file's header
type ColumnMappingEntry struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// ColumnMapping is an ordered list of field-to-label entries. Order matters:
// when two entries share the same label, the earlier entry wins. A slice is
// used instead of a map so that this order survives JSON round-trips.
type ColumnMapping []ColumnMappingEntry

// Validate checks that every mapped field is a recognized statement field
func (cm ColumnMapping) Validate() error {
	if len(cm) == 0 {
		return fmt.Errorf("column mapping cannot be empty")
	}

	for _, entry := range cm {
		if !models.IsRecognizedField(entry.Field) {
			return fmt.Errorf("unrecognized statement field '%s' in column mapping", entry.Field)
		}
	}

	return nil
}

// FieldFor returns the canonical field name mapped to the given header cell.
// The cell and mapping labels are compared in trimmed form; entries with
// empty labels are skipped. The first matching entry wins.
func (cm ColumnMapping) FieldFor(headerCell string) (string, bool) {
	trimmed := strings.TrimSpace(headerCell)

	for _, entry := range cm {
		label := strings.TrimSpace(entry.Label)
		if label == "" {
			continue
		}
		if label == trimmed {
			return entry.Field, true
		}
	}

	return "", false
}

// UnmarshalJSON decodes a JSON object into the mapping, preserving the
// document order of its keys
func (cm *ColumnMapping) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode column mapping: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("column mapping must be a JSON object, got %v", tok)
	}

	var entries ColumnMapping
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode column mapping key: %w", err)
		}
		field, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("invalid column mapping key: %v", keyTok)
		}

		var label string
		if err := dec.Decode(&label); err != nil {
			return fmt.Errorf("invalid column mapping value for field '%s': %w", field, err)
		}

		entries = append(entries, ColumnMappingEntry{Field: field, Label: label})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to decode column mapping: %w", err)
	}

	*cm = entries
	return nil
}

// MarshalJSON encodes the mapping as a JSON object in entry order
func (cm ColumnMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, entry := range cm {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Field)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
