// Package parsers implements the lexical and mapping layers of statement
// ingestion: splitting raw semicolon-delimited text into rows, coercing rows
// into typed BankStatement records, and rewriting file headers to the
// canonical field names.
//
// The row layer is purely lexical. It knows nothing about dates or amounts;
// it only splits, trims, and zips header names with cell values. All
// interpretation happens in the record mapper.
package parsers

import (
	"strings"

	"golang-statement-analyzer/pkg/logger"
)

// RowMap holds the raw cell values of one data row keyed by header name.
// Headers beyond a short row's length are absent from the map, not present
// with an empty value.
type RowMap map[string]string

// RowParser splits raw statement text into a header list and a sequence of
// field-value maps
type RowParser struct {
	config *ParseConfig
	logger logger.Logger
}

// NewRowParser creates a new RowParser with the given configuration
func NewRowParser(config *ParseConfig) *RowParser {
	if config == nil {
		config = DefaultParseConfig()
	}

	return &RowParser{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("row_parser"),
	}
}

// SplitLines splits raw file text into lines, tolerating both LF and CRLF
// separators
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Parse splits raw file text into trimmed header names and one RowMap per
// non-blank data row, preserving input row order. Blank and whitespace-only
// rows are skipped; short rows produce partial maps.
func (rp *RowParser) Parse(text string) ([]string, []RowMap) {
	lines := SplitLines(text)

	headers := rp.parseHeaderLine(lines[0])

	var rows []RowMap
	for i, line := range lines[1:] {
		row := rp.parseRow(line, headers)
		if row == nil {
			if rp.config.SkipBlankRows {
				rp.logger.WithField("line_number", i+2).Debug("Skipping blank row")
			}
			continue
		}
		rows = append(rows, row)
	}

	return headers, rows
}

// parseHeaderLine splits the header line on the delimiter and trims each cell
func (rp *RowParser) parseHeaderLine(line string) []string {
	cells := strings.Split(line, string(rp.config.Delimiter))
	headers := make([]string, len(cells))
	for i, cell := range cells {
		headers[i] = strings.TrimSpace(cell)
	}
	return headers
}

// parseRow zips trimmed header names with positional trimmed cell values.
// Returns nil for blank rows.
func (rp *RowParser) parseRow(line string, headers []string) RowMap {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	cells := strings.Split(line, string(rp.config.Delimiter))
	row := make(RowMap)

	for i, header := range headers {
		if i >= len(cells) {
			break
		}
		row[header] = strings.TrimSpace(cells[i])
	}

	return row
}
