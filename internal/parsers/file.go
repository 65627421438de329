package parsers

import (
	"os"

	"golang-statement-analyzer/pkg/errors"
)

// ReadStatementFile loads a whole statement file into memory. Read failures
// are surfaced as typed file errors and never swallowed.
func ReadStatementFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return "", errors.FileError(errors.CodeFilePermission, path, err)
		}
		return "", errors.FileError(errors.CodeDirectoryError, path, err)
	}
	return string(data), nil
}

// WriteStatementFile rewrites a statement file in place. Write failures are
// surfaced as typed file errors.
func WriteStatementFile(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		if os.IsPermission(err) {
			return errors.FileError(errors.CodeFilePermission, path, err)
		}
		return errors.FileError(errors.CodeFileWrite, path, err)
	}
	return nil
}
