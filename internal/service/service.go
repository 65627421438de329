// Package service composes the parsing and analysis layers into the
// path-to-answer facade the transport surfaces call.
package service

import (
	"fmt"
	"time"

	"golang-statement-analyzer/internal/analyzer"
	"golang-statement-analyzer/internal/models"
	"golang-statement-analyzer/internal/parsers"
	"golang-statement-analyzer/pkg/logger"
)

// AnalysisService answers the spending queries for a statement file. Every
// query re-reads and re-parses the file and analyzes a fresh snapshot, so
// the service holds no cross-call state and concurrent calls are safe
// without locking.
type AnalysisService struct {
	parser   *parsers.StatementParser
	remapper *parsers.HeaderRemapper
	logger   logger.Logger
}

// NewAnalysisService creates a new AnalysisService with the given parse
// configuration
func NewAnalysisService(parseConfig *parsers.ParseConfig) (*AnalysisService, error) {
	if parseConfig == nil {
		parseConfig = parsers.DefaultParseConfig()
	}

	parser, err := parsers.NewStatementParser(parseConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create statement parser: %w", err)
	}

	return &AnalysisService{
		parser:   parser,
		remapper: parsers.NewHeaderRemapper(parseConfig),
		logger:   logger.GetGlobalLogger().WithComponent("analysis_service"),
	}, nil
}

// RemapHeaders rewrites the header line of the file at path to the canonical
// field names according to the mapping. Destructive; see
// parsers.HeaderRemapper.
func (s *AnalysisService) RemapHeaders(path string, mapping parsers.ColumnMapping) error {
	s.logger.WithField("file_path", path).Info("Remapping statement headers")
	return s.remapper.RemapHeaders(path, mapping)
}

// ExecutionTypesWithAmounts computes the signed total per transaction type
// for the file at path
func (s *AnalysisService) ExecutionTypesWithAmounts(path string) ([]models.ExecutionTypeWithAmounts, error) {
	a, err := s.loadAnalyzer(path)
	if err != nil {
		return nil, err
	}
	return a.ExecutionTypesWithAmounts()
}

// TopSpendingCategoriesForMonth computes the top spending categories for the
// given month and year for the file at path
func (s *AnalysisService) TopSpendingCategoriesForMonth(path string, top int, month time.Month, year int) ([]models.TopSpendingCategoryForMonth, error) {
	a, err := s.loadAnalyzer(path)
	if err != nil {
		return nil, err
	}
	return a.TopSpendingCategoriesForMonth(top, month, year)
}

// MostAmountSpentPerWeekday computes the signed total per weekday for the
// file at path. An input with no qualifying records yields an empty list;
// the error is non-nil only for file or parse failures.
func (s *AnalysisService) MostAmountSpentPerWeekday(path string) ([]models.AmountPerWeekday, error) {
	a, err := s.loadAnalyzer(path)
	if err != nil {
		return nil, err
	}
	return a.MostAmountSpentPerWeekday(), nil
}

// HighestSpendingDay returns the weekday with the highest total for the file
// at path
func (s *AnalysisService) HighestSpendingDay(path string) (*models.AmountPerWeekday, error) {
	a, err := s.loadAnalyzer(path)
	if err != nil {
		return nil, err
	}
	return a.HighestSpendingDay()
}

// loadAnalyzer reads and parses the file and constructs a fresh analyzer
// over the resulting snapshot
func (s *AnalysisService) loadAnalyzer(path string) (*analyzer.Analyzer, error) {
	statements, stats, err := s.parser.ParseStatements(path)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logger.Fields{
		"file_path": path,
		"records":   stats.RecordsParsed,
	}).Debug("Loaded statement snapshot")

	return analyzer.New(statements), nil
}
