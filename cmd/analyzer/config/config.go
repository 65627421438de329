package config

import (
	"fmt"
	"strings"

	"golang-statement-analyzer/internal/models"
	"golang-statement-analyzer/internal/parsers"
	"golang-statement-analyzer/internal/reporter"
)

// CreateParseConfig creates a parse configuration for the given delimiter
// string
func CreateParseConfig(delimiter string) (*parsers.ParseConfig, error) {
	runes := []rune(delimiter)
	if len(runes) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}

	config := parsers.DefaultParseConfig()
	config.Delimiter = runes[0]

	return config, nil
}

// CreateReportConfig creates a report configuration for the specified output
// format
func CreateReportConfig(format string) *reporter.ReportConfig {
	config := reporter.DefaultReportConfig()

	switch format {
	case "console":
		config.Format = reporter.FormatConsole
	case "json":
		config.Format = reporter.FormatJSON
	case "csv":
		config.Format = reporter.FormatCSV
		config.CSVHeaders = true
		config.CSVDelimiter = ','
	}

	return config
}

// MappingProfile represents a pre-configured column mapping for a known bank
// export format
type MappingProfile struct {
	Name        string
	Description string
	Mapping     parsers.ColumnMapping
}

// GetCommonMappingProfiles returns column mappings for common bank CSV
// export formats
func GetCommonMappingProfiles() []MappingProfile {
	return []MappingProfile{
		{
			Name:        "dutch",
			Description: "Dutch bank exports (Datum/Omschrijving/Bedrag style headers)",
			Mapping: parsers.ColumnMapping{
				{Field: models.FieldDate, Label: "Datum"},
				{Field: models.FieldDateExecuted, Label: "Rentedatum"},
				{Field: models.FieldText, Label: "Omschrijving"},
				{Field: models.FieldAmount, Label: "Bedrag"},
				{Field: models.FieldCurrency, Label: "Munt"},
				{Field: models.FieldTransactionType, Label: "Mutatiesoort"},
				{Field: models.FieldBankNumberOwner, Label: "Tegenrekening"},
			},
		},
		{
			Name:        "german",
			Description: "German bank exports (Buchungstag/Verwendungszweck/Betrag style headers)",
			Mapping: parsers.ColumnMapping{
				{Field: models.FieldDate, Label: "Buchungstag"},
				{Field: models.FieldDateExecuted, Label: "Valutadatum"},
				{Field: models.FieldText, Label: "Verwendungszweck"},
				{Field: models.FieldAmount, Label: "Betrag"},
				{Field: models.FieldCurrency, Label: "Waehrung"},
				{Field: models.FieldTransactionType, Label: "Buchungstext"},
				{Field: models.FieldBankNumberOwner, Label: "Kontonummer"},
			},
		},
		{
			Name:        "generic",
			Description: "English headers with spaces and mixed casing",
			Mapping: parsers.ColumnMapping{
				{Field: models.FieldDate, Label: "Date"},
				{Field: models.FieldDateExecuted, Label: "Value Date"},
				{Field: models.FieldText, Label: "Description"},
				{Field: models.FieldAmount, Label: "Amount"},
				{Field: models.FieldCurrency, Label: "Currency"},
				{Field: models.FieldTransactionType, Label: "Type"},
				{Field: models.FieldCategory, Label: "Category"},
			},
		},
	}
}

// GetMappingProfile returns a column mapping by profile name
func GetMappingProfile(profileName string) (parsers.ColumnMapping, error) {
	for _, profile := range GetCommonMappingProfiles() {
		if strings.EqualFold(profile.Name, profileName) {
			return profile.Mapping, nil
		}
	}

	names := make([]string, 0)
	for _, profile := range GetCommonMappingProfiles() {
		names = append(names, profile.Name)
	}

	return nil, fmt.Errorf("unknown mapping profile '%s'. Valid profiles: %s",
		profileName, strings.Join(names, ", "))
}
