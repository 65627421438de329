package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestAnalyzerError_Error(t *testing.T) {
	err := New(CategoryFile, CodeFileNotFound, "file not found: test.csv")
	if err.Error() != "file not found: test.csv" {
		t.Errorf("Unexpected message: %q", err.Error())
	}

	err = err.WithSuggestion("check the path")
	if !strings.Contains(err.Error(), "suggestion: check the path") {
		t.Errorf("Expected suggestion in message, got %q", err.Error())
	}
}

func TestAnalyzerError_Unwrap(t *testing.T) {
	cause := stderrors.New("underlying failure")
	err := Wrap(cause, CategoryParse, CodeInvalidFormat, "bad format")

	if !stderrors.Is(err, cause) {
		t.Error("Expected errors.Is to reach the cause through Unwrap")
	}
}

func TestAnalyzerError_GetExitCode(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     int
	}{
		{CategoryFile, 2},
		{CategoryParse, 3},
		{CategoryValidation, 3},
		{CategoryConfiguration, 4},
		{CategoryAnalysis, 5},
		{CategoryInternal, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			err := New(tt.category, CodeUnexpectedError, "test")
			if got := err.GetExitCode(); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFileError(t *testing.T) {
	err := FileError(CodeFileNotFound, "/tmp/missing.csv", nil)

	if err.Category != CategoryFile || err.Code != CodeFileNotFound {
		t.Errorf("Unexpected category/code: %s/%s", err.Category, err.Code)
	}
	if err.Context["file_path"] != "/tmp/missing.csv" {
		t.Errorf("Expected file_path context, got %v", err.Context)
	}
	if err.Suggestion == "" {
		t.Error("Expected a suggestion")
	}
}

func TestAnalysisError_InsufficientData(t *testing.T) {
	sentinel := stderrors.New("required fields missing")
	err := AnalysisError(CodeInsufficientData, "execution type totals", sentinel)

	if !stderrors.Is(err, sentinel) {
		t.Error("Expected the sentinel to survive wrapping")
	}
	if !strings.Contains(err.Message, "insufficient data") {
		t.Errorf("Unexpected message: %q", err.Message)
	}
}

func TestAsAnalyzerError(t *testing.T) {
	inner := FileError(CodeFilePermission, "statement.csv", nil)
	wrapped := Wrap(inner, CategoryInternal, CodeUnexpectedError, "outer")

	got, ok := AsAnalyzerError(wrapped)
	if !ok {
		t.Fatal("Expected an AnalyzerError")
	}
	if got.Code != CodeUnexpectedError {
		t.Errorf("Expected the outermost error, got %s", got.Code)
	}

	if _, ok := AsAnalyzerError(stderrors.New("plain")); ok {
		t.Error("Expected plain errors to not match")
	}
}

func TestWrapIfNeeded(t *testing.T) {
	original := FileError(CodeFileNotFound, "a.csv", nil)
	if got := WrapIfNeeded(original, CategoryInternal, CodeUnexpectedError, "x"); got != original {
		t.Error("Expected an existing AnalyzerError to pass through unchanged")
	}

	plain := stderrors.New("plain")
	wrapped := WrapIfNeeded(plain, CategoryInternal, CodeUnexpectedError, "wrapped")
	if wrapped.Code != CodeUnexpectedError || wrapped.Cause != plain {
		t.Errorf("Expected plain error to be wrapped, got %+v", wrapped)
	}

	if WrapIfNeeded(nil, CategoryInternal, CodeUnexpectedError, "x") != nil {
		t.Error("Expected nil for nil input")
	}
}

func TestErrorSummary(t *testing.T) {
	errs := []*AnalyzerError{
		FileError(CodeFileNotFound, "a.csv", nil),
		FileError(CodeFilePermission, "b.csv", nil),
		AnalysisError(CodeInsufficientData, "totals", nil),
	}

	summary := NewErrorSummary(errs)

	if summary.Total != 3 {
		t.Errorf("Expected total 3, got %d", summary.Total)
	}
	if summary.ByCategory[CategoryFile] != 2 {
		t.Errorf("Expected 2 file errors, got %d", summary.ByCategory[CategoryFile])
	}
	if !summary.HasCategory(CategoryAnalysis) {
		t.Error("Expected analysis category to be present")
	}
	if summary.HasCategory(CategoryParse) {
		t.Error("Expected parse category to be absent")
	}
	if !strings.Contains(summary.Error(), "3 errors occurred") {
		t.Errorf("Unexpected summary message: %q", summary.Error())
	}
}
