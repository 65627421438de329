package parsers

import (
	"fmt"
	"strings"

	"golang-statement-analyzer/pkg/logger"
)

// HeaderRemapper rewrites a statement file's header line so that columns
// carrying bank-specific labels are renamed to the canonical field names.
//
// The rewrite is destructive and in place: the file is read whole, the header
// is replaced, and the file is re-serialized with CRLF separators regardless
// of its original line-separator style. There is no backup and the
// read-modify-write is not atomic, so concurrent writers of the same file can
// lose updates. That is an accepted limitation of the single-user upload flow
// this operation serves.
type HeaderRemapper struct {
	config *ParseConfig
	logger logger.Logger
}

// NewHeaderRemapper creates a new HeaderRemapper with the given configuration
func NewHeaderRemapper(config *ParseConfig) *HeaderRemapper {
	if config == nil {
		config = DefaultParseConfig()
	}

	return &HeaderRemapper{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("header_remapper"),
	}
}

// RemapHeaders rewrites the header line of the file at path according to the
// mapping. Header cells whose trimmed form equals a mapping entry's trimmed
// label are replaced by that entry's field name; the first matching entry
// wins when labels collide; unmatched cells are kept unchanged. Data rows are
// preserved byte for byte apart from the CRLF normalization. Read and write
// failures propagate to the caller.
func (hr *HeaderRemapper) RemapHeaders(path string, mapping ColumnMapping) error {
	if err := mapping.Validate(); err != nil {
		return fmt.Errorf("invalid column mapping: %w", err)
	}

	text, err := ReadStatementFile(path)
	if err != nil {
		return err
	}

	lines := SplitLines(text)
	headers := hr.splitHeader(lines[0])

	hr.logger.WithFields(logger.Fields{
		"file_path": path,
		"headers":   headers,
	}).Debug("Remapping statement headers")

	updated := make([]string, len(headers))
	for i, header := range headers {
		if field, ok := mapping.FieldFor(header); ok {
			updated[i] = field
		} else {
			updated[i] = header
		}
	}

	lines[0] = strings.Join(updated, string(hr.config.Delimiter))

	hr.logger.WithFields(logger.Fields{
		"file_path": path,
		"headers":   updated,
	}).Debug("Writing remapped headers")

	return WriteStatementFile(path, strings.Join(lines, "\r\n"))
}

// splitHeader splits the header line on the delimiter and trims each cell
func (hr *HeaderRemapper) splitHeader(line string) []string {
	cells := strings.Split(line, string(hr.config.Delimiter))
	headers := make([]string, len(cells))
	for i, cell := range cells {
		headers[i] = strings.TrimSpace(cell)
	}
	return headers
}
