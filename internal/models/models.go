package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical field names recognized in statement files. Header cells must
// match these exactly (case-sensitive) to be mapped onto a BankStatement.
const (
	FieldDate            = "date"
	FieldDateExecuted    = "date_executed"
	FieldTransactionType = "transaction_type"
	FieldText            = "text"
	FieldAmount          = "amount"
	FieldCurrency        = "currency"
	FieldBankNumberOwner = "bank_number_owner"
	FieldCategory        = "category"
)

// RecognizedFields returns the canonical field names in their declaration order
func RecognizedFields() []string {
	return []string{
		FieldDate,
		FieldDateExecuted,
		FieldTransactionType,
		FieldText,
		FieldAmount,
		FieldCurrency,
		FieldBankNumberOwner,
		FieldCategory,
	}
}

// IsRecognizedField reports whether name is one of the canonical field names
func IsRecognizedField(name string) bool {
	switch name {
	case FieldDate, FieldDateExecuted, FieldTransactionType, FieldText,
		FieldAmount, FieldCurrency, FieldBankNumberOwner, FieldCategory:
		return true
	default:
		return false
	}
}

// BankStatement represents one normalized statement record. Every field is
// independently optional: nil pointers and empty strings mean "unknown",
// never zero. Records are built once by the record mapper and not mutated
// afterwards.
type BankStatement struct {
	Date            *time.Time       `json:"date,omitempty"`
	DateExecuted    *time.Time       `json:"date_executed,omitempty"`
	TransactionType string           `json:"transaction_type,omitempty"`
	Text            string           `json:"text,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Currency        string           `json:"currency,omitempty"`
	BankNumberOwner string           `json:"bank_number_owner,omitempty"`
	Category        string           `json:"category,omitempty"`
}

// HasDate reports whether the statement date is set
func (bs *BankStatement) HasDate() bool {
	return bs.Date != nil
}

// HasAmount reports whether the amount is set
func (bs *BankStatement) HasAmount() bool {
	return bs.Amount != nil
}

// HasTransactionType reports whether the transaction type is set
func (bs *BankStatement) HasTransactionType() bool {
	return bs.TransactionType != ""
}

// HasCategory reports whether the category is set
func (bs *BankStatement) HasCategory() bool {
	return bs.Category != ""
}

// IsSpend reports whether the statement carries a strictly negative amount.
// A zero amount is neither spend nor income and reports false.
func (bs *BankStatement) IsSpend() bool {
	return bs.Amount != nil && bs.Amount.IsNegative()
}

// AbsoluteAmount returns the magnitude of the amount, or zero when unset
func (bs *BankStatement) AbsoluteAmount() decimal.Decimal {
	if bs.Amount == nil {
		return decimal.Zero
	}
	return bs.Amount.Abs()
}

// Weekday returns the full English weekday name of the statement date
func (bs *BankStatement) Weekday() string {
	if bs.Date == nil {
		return ""
	}
	return bs.Date.Weekday().String()
}

// String returns a string representation of the BankStatement
func (bs *BankStatement) String() string {
	var parts []string
	if bs.Date != nil {
		parts = append(parts, fmt.Sprintf("Date: %s", bs.Date.Format("2006-01-02")))
	}
	if bs.TransactionType != "" {
		parts = append(parts, fmt.Sprintf("Type: %s", bs.TransactionType))
	}
	if bs.Amount != nil {
		parts = append(parts, fmt.Sprintf("Amount: %s", bs.Amount.String()))
	}
	if bs.Category != "" {
		parts = append(parts, fmt.Sprintf("Category: %s", bs.Category))
	}
	return fmt.Sprintf("BankStatement{%s}", strings.Join(parts, ", "))
}

// MarshalJSON renders set fields only, with dates in YYYY-MM-DD form
func (bs *BankStatement) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{})
	if bs.Date != nil {
		out[FieldDate] = bs.Date.Format("2006-01-02")
	}
	if bs.DateExecuted != nil {
		out[FieldDateExecuted] = bs.DateExecuted.Format("2006-01-02")
	}
	if bs.TransactionType != "" {
		out[FieldTransactionType] = bs.TransactionType
	}
	if bs.Text != "" {
		out[FieldText] = bs.Text
	}
	if bs.Amount != nil {
		out[FieldAmount] = bs.Amount
	}
	if bs.Currency != "" {
		out[FieldCurrency] = bs.Currency
	}
	if bs.BankNumberOwner != "" {
		out[FieldBankNumberOwner] = bs.BankNumberOwner
	}
	if bs.Category != "" {
		out[FieldCategory] = bs.Category
	}
	return json.Marshal(out)
}

// AmountPerWeekday holds the signed total accumulated for one weekday
type AmountPerWeekday struct {
	Weekday     string          `json:"weekday"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// ExecutionTypeWithAmounts holds the signed total accumulated for one
// transaction type
type ExecutionTypeWithAmounts struct {
	TransactionType string          `json:"transaction_type"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

// TopSpendingCategoryForMonth holds the absolute spend magnitude accumulated
// for one category within the queried month
type TopSpendingCategoryForMonth struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// statementDateFormats lists the locale-independent layouts accepted for
// statement dates, tried in order.
var statementDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseStatementDate attempts to parse a calendar date from a statement cell
// using the accepted layouts
func ParseStatementDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date string cannot be empty")
	}

	var lastErr error
	for _, format := range statementDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date '%s': %w", s, lastErr)
}

// ParseStatementAmount parses a signed decimal amount from a statement cell
func ParseStatementAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount string cannot be empty")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal format '%s': %w", s, err)
	}

	return d, nil
}
