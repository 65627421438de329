// Package reporter renders analysis query results for the CLI.
//
// Supported output formats:
//   - Console: human-readable tabular output for terminal display
//   - JSON: structured payloads matching the HTTP surface
//   - CSV: delimited output for spreadsheet applications
//
// A result carrying the "no data" marker renders as an explicit message in
// every format, never as an empty success body.
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"golang-statement-analyzer/internal/models"
)

// NoDataMessage is the user-facing translation of the "no data" sentinel
const NoDataMessage = "Required fields missing in CSV for this calculation."

// OutputFormat represents the supported report output formats
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// ReportConfig holds configuration options for report generation
type ReportConfig struct {
	Format       OutputFormat `json:"format"`
	CSVDelimiter rune         `json:"csv_delimiter"`
	CSVHeaders   bool         `json:"csv_headers"`
}

// DefaultReportConfig returns a default report configuration
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:       FormatConsole,
		CSVDelimiter: ',',
		CSVHeaders:   true,
	}
}

// Validate validates the report configuration
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	return nil
}

// QueryResult holds the outcome of one analysis query in renderable form.
// Exactly one of the payload fields is populated, or NoData is set.
type QueryResult struct {
	Query          string                               `json:"query"`
	NoData         bool                                 `json:"-"`
	ExecutionTypes []models.ExecutionTypeWithAmounts    `json:"execution_types,omitempty"`
	TopCategories  []models.TopSpendingCategoryForMonth `json:"top_categories,omitempty"`
	WeekdayTotals  []models.AmountPerWeekday            `json:"weekday_totals,omitempty"`
	HighestDay     *models.AmountPerWeekday             `json:"highest_day,omitempty"`
}

// NoDataResult builds a result carrying the "no data" marker for a query
func NoDataResult(query string) *QueryResult {
	return &QueryResult{Query: query, NoData: true}
}

// ExecutionTypesResult builds a result for the execution-type totals query
func ExecutionTypesResult(totals []models.ExecutionTypeWithAmounts) *QueryResult {
	return &QueryResult{Query: "execution-types", ExecutionTypes: totals}
}

// TopCategoriesResult builds a result for the top spending categories query
func TopCategoriesResult(categories []models.TopSpendingCategoryForMonth) *QueryResult {
	return &QueryResult{Query: "top-categories", TopCategories: categories}
}

// WeekdayTotalsResult builds a result for the per-weekday totals query
func WeekdayTotalsResult(totals []models.AmountPerWeekday) *QueryResult {
	return &QueryResult{Query: "weekday-totals", WeekdayTotals: totals}
}

// HighestDayResult builds a result for the highest spending day query
func HighestDayResult(day *models.AmountPerWeekday) *QueryResult {
	return &QueryResult{Query: "highest-day", HighestDay: day}
}

// ReportGenerator renders query results in the configured format
type ReportGenerator struct {
	config *ReportConfig
}

// NewReportGenerator creates a new report generator with the specified
// configuration
func NewReportGenerator(config *ReportConfig) (*ReportGenerator, error) {
	if config == nil {
		config = DefaultReportConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}

	return &ReportGenerator{config: config}, nil
}

// GenerateReport renders the result and writes it to the provided writer
func (rg *ReportGenerator) GenerateReport(result *QueryResult, writer io.Writer) error {
	if result == nil {
		return fmt.Errorf("query result cannot be nil")
	}

	switch rg.config.Format {
	case FormatConsole:
		return rg.generateConsoleReport(result, writer)
	case FormatJSON:
		return rg.generateJSONReport(result, writer)
	case FormatCSV:
		return rg.generateCSVReport(result, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", rg.config.Format)
	}
}

func (rg *ReportGenerator) generateConsoleReport(result *QueryResult, writer io.Writer) error {
	if result.NoData {
		fmt.Fprintf(writer, "%s\n", NoDataMessage)
		return nil
	}

	switch {
	case result.ExecutionTypes != nil:
		fmt.Fprintf(writer, "=== TOTALS PER TRANSACTION TYPE ===\n")
		fmt.Fprintf(writer, "%-30s %15s\n", "Transaction Type", "Total Amount")
		for _, entry := range result.ExecutionTypes {
			fmt.Fprintf(writer, "%-30s %15s\n", entry.TransactionType, entry.TotalAmount.String())
		}
	case result.TopCategories != nil:
		fmt.Fprintf(writer, "=== TOP SPENDING CATEGORIES ===\n")
		fmt.Fprintf(writer, "%-4s %-30s %15s\n", "#", "Category", "Total Spent")
		for i, entry := range result.TopCategories {
			fmt.Fprintf(writer, "%-4d %-30s %15s\n", i+1, entry.Category, entry.TotalAmount.String())
		}
	case result.WeekdayTotals != nil:
		fmt.Fprintf(writer, "=== TOTALS PER WEEKDAY ===\n")
		fmt.Fprintf(writer, "%-12s %15s\n", "Weekday", "Total Amount")
		for _, entry := range result.WeekdayTotals {
			fmt.Fprintf(writer, "%-12s %15s\n", entry.Weekday, entry.TotalAmount.String())
		}
	case result.HighestDay != nil:
		fmt.Fprintf(writer, "=== HIGHEST SPENDING DAY ===\n")
		fmt.Fprintf(writer, "%-12s %15s\n", "Weekday", "Total Amount")
		fmt.Fprintf(writer, "%-12s %15s\n", result.HighestDay.Weekday, result.HighestDay.TotalAmount.String())
	default:
		fmt.Fprintf(writer, "No results.\n")
	}

	return nil
}

func (rg *ReportGenerator) generateJSONReport(result *QueryResult, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	if result.NoData {
		return encoder.Encode(map[string]string{"message": NoDataMessage})
	}

	// Encode the bare payload to mirror the HTTP response shapes
	switch {
	case result.ExecutionTypes != nil:
		return encoder.Encode(result.ExecutionTypes)
	case result.TopCategories != nil:
		return encoder.Encode(result.TopCategories)
	case result.WeekdayTotals != nil:
		return encoder.Encode(result.WeekdayTotals)
	case result.HighestDay != nil:
		return encoder.Encode(result.HighestDay)
	default:
		return encoder.Encode([]interface{}{})
	}
}

func (rg *ReportGenerator) generateCSVReport(result *QueryResult, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = rg.config.CSVDelimiter
	defer csvWriter.Flush()

	if result.NoData {
		if err := csvWriter.Write([]string{"message"}); err != nil {
			return err
		}
		return csvWriter.Write([]string{NoDataMessage})
	}

	var headers []string
	var rows [][]string

	switch {
	case result.ExecutionTypes != nil:
		headers = []string{"transaction_type", "total_amount"}
		for _, entry := range result.ExecutionTypes {
			rows = append(rows, []string{entry.TransactionType, entry.TotalAmount.String()})
		}
	case result.TopCategories != nil:
		headers = []string{"category", "total_amount"}
		for _, entry := range result.TopCategories {
			rows = append(rows, []string{entry.Category, entry.TotalAmount.String()})
		}
	case result.WeekdayTotals != nil:
		headers = []string{"weekday", "total_amount"}
		for _, entry := range result.WeekdayTotals {
			rows = append(rows, []string{entry.Weekday, entry.TotalAmount.String()})
		}
	case result.HighestDay != nil:
		headers = []string{"weekday", "total_amount"}
		rows = append(rows, []string{result.HighestDay.Weekday, result.HighestDay.TotalAmount.String()})
	}

	if rg.config.CSVHeaders && headers != nil {
		if err := csvWriter.Write(headers); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}

	for _, row := range rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
