package parsers

import (
	"fmt"

	"golang-statement-analyzer/internal/models"
	"golang-statement-analyzer/pkg/logger"
)

// StatementParser composes the row parser and the record mapper to go from a
// statement file path to a collection of typed BankStatement records
type StatementParser struct {
	rowParser *RowParser
	logger    logger.Logger
}

// NewStatementParser creates a new StatementParser with the given
// configuration
func NewStatementParser(config *ParseConfig) (*StatementParser, error) {
	if config == nil {
		config = DefaultParseConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parse configuration: %w", err)
	}

	return &StatementParser{
		rowParser: NewRowParser(config),
		logger:    logger.GetGlobalLogger().WithComponent("statement_parser"),
	}, nil
}

// ParseStats holds statistics about one parse operation
type ParseStats struct {
	TotalLines    int `json:"total_lines"`
	HeaderCount   int `json:"header_count"`
	RecordsParsed int `json:"records_parsed"`
	RowsSkipped   int `json:"rows_skipped"`
}

// String returns a human-readable summary of parsing statistics
func (ps *ParseStats) String() string {
	return fmt.Sprintf("Parsed %d lines (%d headers), %d records, %d blank rows skipped",
		ps.TotalLines, ps.HeaderCount, ps.RecordsParsed, ps.RowsSkipped)
}

// ParseStatements reads a statement file and maps every non-blank data row
// to a BankStatement. Malformed cell values degrade to unset fields; only
// file-level read failures abort the parse.
func (sp *StatementParser) ParseStatements(path string) ([]*models.BankStatement, *ParseStats, error) {
	text, err := ReadStatementFile(path)
	if err != nil {
		sp.logger.WithError(err).WithField("file_path", path).Error("Failed to read statement file")
		return nil, nil, err
	}

	headers, rows := sp.rowParser.Parse(text)

	statements := make([]*models.BankStatement, 0, len(rows))
	for _, row := range rows {
		statements = append(statements, MapRowToStatement(row))
	}

	stats := &ParseStats{
		TotalLines:    len(SplitLines(text)),
		HeaderCount:   len(headers),
		RecordsParsed: len(statements),
	}
	stats.RowsSkipped = stats.TotalLines - 1 - stats.RecordsParsed

	sp.logger.WithFields(logger.Fields{
		"file_path": path,
		"records":   stats.RecordsParsed,
		"headers":   stats.HeaderCount,
	}).Debug("Parsed statement file")

	return statements, stats, nil
}

// MapRowToStatement coerces one raw field-value map into a BankStatement.
// Each recognized field is validated and converted independently; malformed
// or empty values leave the field unset rather than failing the row.
// Unrecognized field names are ignored.
func MapRowToStatement(row RowMap) *models.BankStatement {
	statement := &models.BankStatement{}

	for _, field := range models.RecognizedFields() {
		value, ok := row[field]
		if !ok || value == "" {
			continue
		}

		switch field {
		case models.FieldDate:
			if parsed, err := models.ParseStatementDate(value); err == nil {
				statement.Date = &parsed
			}
		case models.FieldDateExecuted:
			if parsed, err := models.ParseStatementDate(value); err == nil {
				statement.DateExecuted = &parsed
			}
		case models.FieldAmount:
			if parsed, err := models.ParseStatementAmount(value); err == nil {
				statement.Amount = &parsed
			}
		case models.FieldTransactionType:
			statement.TransactionType = value
		case models.FieldText:
			statement.Text = value
		case models.FieldCurrency:
			statement.Currency = value
		case models.FieldBankNumberOwner:
			statement.BankNumberOwner = value
		case models.FieldCategory:
			statement.Category = value
		}
	}

	return statement
}
