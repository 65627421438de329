package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRecognizedFields(t *testing.T) {
	fields := RecognizedFields()

	if len(fields) != 8 {
		t.Fatalf("Expected 8 recognized fields, got %d", len(fields))
	}
	if fields[0] != FieldDate || fields[4] != FieldAmount {
		t.Errorf("Unexpected field order: %v", fields)
	}

	for _, field := range fields {
		if !IsRecognizedField(field) {
			t.Errorf("Expected %q to be recognized", field)
		}
	}

	if IsRecognizedField("saldo") {
		t.Error("Expected 'saldo' to be unrecognized")
	}
	if IsRecognizedField("Date") {
		t.Error("Expected field matching to be case-sensitive")
	}
}

func TestParseStatementDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantError bool
	}{
		{"ISO date", "2023-05-01", "2023-05-01", false},
		{"ISO datetime", "2023-05-01T10:30:00", "2023-05-01", false},
		{"RFC3339", "2023-05-01T10:30:00Z", "2023-05-01", false},
		{"slash date", "2023/05/01", "2023-05-01", false},
		{"US date", "05/01/2023", "2023-05-01", false},
		{"long month name", "May 1, 2023", "2023-05-01", false},
		{"padded input", "  2023-05-01  ", "2023-05-01", false},
		{"garbage", "not a date", "", true},
		{"empty", "", "", true},
		{"number", "42", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatementDate(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("Expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.input, err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.Format("2006-01-02"))
			}
		})
	}
}

func TestParseStatementAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantError bool
	}{
		{"negative decimal", "-10.50", "-10.5", false},
		{"positive decimal", "1500.00", "1500", false},
		{"integer", "42", "42", false},
		{"zero", "0", "0", false},
		{"padded input", "  -3.25  ", "-3.25", false},
		{"currency symbol", "€10.00", "", true},
		{"comma decimal separator", "10,50", "", true},
		{"garbage", "N/A", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatementAmount(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("Expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got.String())
			}
		})
	}
}

func TestBankStatement_IsSpend(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   bool
	}{
		{"negative amount", "-10.50", true},
		{"positive amount", "10.50", false},
		{"zero amount", "0", false},
		{"unset amount", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &BankStatement{}
			if tt.amount != "" {
				d := decimal.RequireFromString(tt.amount)
				s.Amount = &d
			}
			if got := s.IsSpend(); got != tt.want {
				t.Errorf("IsSpend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBankStatement_AbsoluteAmount(t *testing.T) {
	d := decimal.RequireFromString("-10.50")
	s := &BankStatement{Amount: &d}

	if s.AbsoluteAmount().String() != "10.5" {
		t.Errorf("Expected 10.5, got %s", s.AbsoluteAmount())
	}

	empty := &BankStatement{}
	if !empty.AbsoluteAmount().IsZero() {
		t.Errorf("Expected zero for unset amount, got %s", empty.AbsoluteAmount())
	}
}

func TestBankStatement_Weekday(t *testing.T) {
	// 2023-05-01 was a Monday
	date := time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)
	s := &BankStatement{Date: &date}

	if s.Weekday() != "Monday" {
		t.Errorf("Expected Monday, got %q", s.Weekday())
	}

	empty := &BankStatement{}
	if empty.Weekday() != "" {
		t.Errorf("Expected empty weekday for unset date, got %q", empty.Weekday())
	}
}

func TestBankStatement_MarshalJSON(t *testing.T) {
	date := time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("-10.50")

	s := &BankStatement{
		Date:     &date,
		Amount:   &amount,
		Category: "groceries",
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, `"date":"2023-05-01"`) {
		t.Errorf("Expected date in YYYY-MM-DD form, got %s", text)
	}
	if strings.Contains(text, "transaction_type") || strings.Contains(text, "currency") {
		t.Errorf("Expected unset fields to be omitted, got %s", text)
	}
}
