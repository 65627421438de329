package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"golang-statement-analyzer/cmd/analyzer/config"
	"golang-statement-analyzer/internal/parsers"
	"golang-statement-analyzer/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the remap-headers command
var (
	remapFile      string
	mappingJSON    string
	mappingFile    string
	mappingProfile string
	remapDelimiter string
)

// remapCmd represents the remap-headers command
var remapCmd = &cobra.Command{
	Use:   "remap-headers",
	Short: "Rewrite a statement file's column headers to canonical field names",
	Long: `Remap-headers rewrites the header line of a bank statement CSV in place,
replacing bank-specific column labels with the canonical field names the
analyze command understands.

The mapping is a JSON object from field name to the label the file currently
uses; entries are applied in document order and the first matching entry
wins. The file is rewritten with CRLF line endings.

Examples:
  # Inline mapping
  analyzer remap-headers --file statement.csv \
    --mapping '{"date":"Datum","text":"Omschrijving","amount":"Bedrag"}'

  # Mapping from a file
  analyzer remap-headers --file statement.csv --mapping-file mapping.json

  # Built-in mapping profile
  analyzer remap-headers --file statement.csv --profile dutch`,

	PreRunE: validateRemapFlags,
	RunE:    runRemap,
}

func init() {
	rootCmd.AddCommand(remapCmd)

	remapCmd.Flags().StringVarP(&remapFile, "file", "s", "", "path to bank statement CSV file (required)")
	remapCmd.Flags().StringVar(&mappingJSON, "mapping", "", "column mapping as a JSON object")
	remapCmd.Flags().StringVar(&mappingFile, "mapping-file", "", "path to a JSON file holding the column mapping")
	remapCmd.Flags().StringVar(&mappingProfile, "profile", "", "built-in mapping profile name")
	remapCmd.Flags().StringVar(&remapDelimiter, "delimiter", ";", "CSV cell delimiter")

	remapCmd.MarkFlagRequired("file")

	viper.BindPFlag("remap-file", remapCmd.Flags().Lookup("file"))
	viper.BindPFlag("mapping", remapCmd.Flags().Lookup("mapping"))
	viper.BindPFlag("mapping-file", remapCmd.Flags().Lookup("mapping-file"))
	viper.BindPFlag("profile", remapCmd.Flags().Lookup("profile"))
}

func validateRemapFlags(cmd *cobra.Command, args []string) error {
	if remapFile == "" {
		return fmt.Errorf("file is required")
	}
	if err := validateFileExists(remapFile, "statement file"); err != nil {
		return err
	}

	sources := 0
	for _, v := range []string{mappingJSON, mappingFile, mappingProfile} {
		if v != "" {
			sources++
		}
	}
	if sources == 0 {
		return fmt.Errorf("one of --mapping, --mapping-file, or --profile is required")
	}
	if sources > 1 {
		return fmt.Errorf("only one of --mapping, --mapping-file, or --profile may be given")
	}

	if len([]rune(remapDelimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character")
	}

	return nil
}

func runRemap(cmd *cobra.Command, args []string) error {
	mapping, err := resolveMapping()
	if err != nil {
		return err
	}

	parseConfig, err := config.CreateParseConfig(remapDelimiter)
	if err != nil {
		return fmt.Errorf("failed to create parse config: %w", err)
	}

	svc, err := service.NewAnalysisService(parseConfig)
	if err != nil {
		return fmt.Errorf("failed to create analysis service: %w", err)
	}

	if err := svc.RemapHeaders(remapFile, mapping); err != nil {
		return err
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Remapped headers in %s (%d mapping entries)\n", remapFile, len(mapping))
	}

	return nil
}

// resolveMapping builds the column mapping from whichever source flag was
// given
func resolveMapping() (parsers.ColumnMapping, error) {
	switch {
	case mappingProfile != "":
		return config.GetMappingProfile(mappingProfile)

	case mappingFile != "":
		data, err := os.ReadFile(mappingFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read mapping file: %w", err)
		}
		var mapping parsers.ColumnMapping
		if err := json.Unmarshal(data, &mapping); err != nil {
			return nil, fmt.Errorf("invalid mapping file: %w", err)
		}
		return mapping, nil

	default:
		var mapping parsers.ColumnMapping
		if err := json.Unmarshal([]byte(mappingJSON), &mapping); err != nil {
			return nil, fmt.Errorf("invalid mapping JSON: %w", err)
		}
		return mapping, nil
	}
}
