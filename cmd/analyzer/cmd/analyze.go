package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang-statement-analyzer/cmd/analyzer/config"
	"golang-statement-analyzer/internal/analyzer"
	"golang-statement-analyzer/internal/reporter"
	"golang-statement-analyzer/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the analyze command
var (
	statementFile string
	queryName     string
	topCount      int
	queryMonth    int
	queryYear     int
	outputFormat  string
	outputFile    string
	delimiter     string
)

// Supported query names
const (
	queryExecutionTypes = "execution-types"
	queryTopCategories  = "top-categories"
	queryWeekdayTotals  = "weekday-totals"
	queryHighestDay     = "highest-day"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a spending query over a bank statement file",
	Long: `Analyze parses a semicolon-delimited bank statement CSV and answers one
of the supported spending queries over its records.

Supported queries:
  execution-types   signed amount totals per transaction type
  top-categories    top spending categories for a month, by absolute spend
  weekday-totals    signed amount totals per weekday
  highest-day       the weekday with the highest total

Examples:
  # Totals per transaction type
  analyzer analyze --file statement.csv --query execution-types

  # Top 3 spending categories for May 2023, as JSON
  analyzer analyze --file statement.csv --query top-categories \
    --top 3 --month 5 --year 2023 --output-format json

  # Weekday totals written to a CSV file
  analyzer analyze --file statement.csv --query weekday-totals \
    --output-format csv --output-file weekdays.csv`,

	PreRunE: validateAnalyzeFlags,
	RunE:    runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	now := time.Now()

	// Required flags
	analyzeCmd.Flags().StringVarP(&statementFile, "file", "s", "", "path to bank statement CSV file (required)")
	analyzeCmd.Flags().StringVarP(&queryName, "query", "q", "", "query to run: execution-types, top-categories, weekday-totals, highest-day (required)")

	// Query parameter flags
	analyzeCmd.Flags().IntVarP(&topCount, "top", "t", 3, "number of categories to return (top-categories)")
	analyzeCmd.Flags().IntVarP(&queryMonth, "month", "m", int(now.Month()), "month to analyze, 1-12 (top-categories)")
	analyzeCmd.Flags().IntVarP(&queryYear, "year", "y", now.Year(), "year to analyze (top-categories)")

	// Parsing flags
	analyzeCmd.Flags().StringVar(&delimiter, "delimiter", ";", "CSV cell delimiter")

	// Output flags
	analyzeCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv")
	analyzeCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	// Mark required flags
	analyzeCmd.MarkFlagRequired("file")
	analyzeCmd.MarkFlagRequired("query")

	// Bind flags to viper
	viper.BindPFlag("file", analyzeCmd.Flags().Lookup("file"))
	viper.BindPFlag("query", analyzeCmd.Flags().Lookup("query"))
	viper.BindPFlag("top", analyzeCmd.Flags().Lookup("top"))
	viper.BindPFlag("month", analyzeCmd.Flags().Lookup("month"))
	viper.BindPFlag("year", analyzeCmd.Flags().Lookup("year"))
	viper.BindPFlag("delimiter", analyzeCmd.Flags().Lookup("delimiter"))
	viper.BindPFlag("output-format", analyzeCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", analyzeCmd.Flags().Lookup("output-file"))
}

func validateAnalyzeFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	statementFile = viper.GetString("file")
	queryName = viper.GetString("query")
	topCount = viper.GetInt("top")
	queryMonth = viper.GetInt("month")
	queryYear = viper.GetInt("year")
	delimiter = viper.GetString("delimiter")
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")

	// Validate required flags
	if statementFile == "" {
		return fmt.Errorf("file is required")
	}
	if queryName == "" {
		return fmt.Errorf("query is required")
	}

	// Validate file existence
	if err := validateFileExists(statementFile, "statement file"); err != nil {
		return err
	}

	// Validate query name
	validQueries := map[string]bool{
		queryExecutionTypes: true,
		queryTopCategories:  true,
		queryWeekdayTotals:  true,
		queryHighestDay:     true,
	}
	if !validQueries[queryName] {
		return fmt.Errorf("invalid query '%s'. Valid queries: %s, %s, %s, %s",
			queryName, queryExecutionTypes, queryTopCategories, queryWeekdayTotals, queryHighestDay)
	}

	// Validate query parameters
	if queryName == queryTopCategories {
		if queryMonth < 1 || queryMonth > 12 {
			return fmt.Errorf("month must be between 1 and 12")
		}
		if topCount < 0 {
			return fmt.Errorf("top cannot be negative")
		}
	}

	// Validate delimiter
	if len([]rune(delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character")
	}

	// Validate output format
	validFormats := map[string]bool{"console": true, "json": true, "csv": true}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json, csv", outputFormat)
	}

	// Validate output file directory exists if specified
	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	// Check if file is readable
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Statement file: %s\n", statementFile)
		fmt.Fprintf(os.Stderr, "Query: %s\n", queryName)
		fmt.Fprintf(os.Stderr, "Output format: %s\n", outputFormat)
		if outputFile != "" {
			fmt.Fprintf(os.Stderr, "Output file: %s\n", outputFile)
		}
	}

	parseConfig, err := config.CreateParseConfig(delimiter)
	if err != nil {
		return fmt.Errorf("failed to create parse config: %w", err)
	}

	svc, err := service.NewAnalysisService(parseConfig)
	if err != nil {
		return fmt.Errorf("failed to create analysis service: %w", err)
	}

	result, err := executeQuery(svc)
	if err != nil {
		// The no-data sentinel is an answer, not a failure: render it as
		// the message and exit zero.
		if errors.Is(err, analyzer.ErrNoData) {
			result = reporter.NoDataResult(queryName)
		} else {
			return err
		}
	}

	reportConfig := config.CreateReportConfig(outputFormat)
	reportGenerator, err := reporter.NewReportGenerator(reportConfig)
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	// Determine output destination
	var output *os.File
	if outputFile != "" {
		output, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer output.Close()
	} else {
		output = os.Stdout
	}

	if err := reportGenerator.GenerateReport(result, output); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return nil
}

// executeQuery dispatches the selected query against the analysis service
func executeQuery(svc *service.AnalysisService) (*reporter.QueryResult, error) {
	switch queryName {
	case queryExecutionTypes:
		totals, err := svc.ExecutionTypesWithAmounts(statementFile)
		if err != nil {
			return nil, err
		}
		return reporter.ExecutionTypesResult(totals), nil

	case queryTopCategories:
		categories, err := svc.TopSpendingCategoriesForMonth(statementFile, topCount, time.Month(queryMonth), queryYear)
		if err != nil {
			return nil, err
		}
		return reporter.TopCategoriesResult(categories), nil

	case queryWeekdayTotals:
		totals, err := svc.MostAmountSpentPerWeekday(statementFile)
		if err != nil {
			return nil, err
		}
		return reporter.WeekdayTotalsResult(totals), nil

	case queryHighestDay:
		day, err := svc.HighestSpendingDay(statementFile)
		if err != nil {
			return nil, err
		}
		return reporter.HighestDayResult(day), nil

	default:
		return nil, fmt.Errorf("unknown query: %s", queryName)
	}
}
