package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DefaultCategory is the sentinel used when a category is absent or blank.
const DefaultCategory = "Other"

type (
	TransactionType string

	// Transaction is a single dated money movement. Amount is always a
	// non-negative magnitude; direction comes solely from Type.
	Transaction struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Amount      float64         `json:"amount"`
		Type        TransactionType `json:"type"`
		Notes       string          `json:"notes"`
	}

	// Budget is a per-category spending ceiling applied identically to
	// every calendar month.
	Budget struct {
		ID           string  `json:"id"`
		Category     string  `json:"category"`
		MonthlyLimit float64 `json:"monthly_limit"`
	}
)

// NewID returns a fresh opaque entity id.
func NewID() string {
	return uuid.NewString()
}

// NormalizeCategory maps blank categories to the sentinel category.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return category
}

// ParseTransactionType maps free text to a transaction type. Unknown or
// missing values default to Expense.
func ParseTransactionType(text string) TransactionType {
	if strings.ToLower(strings.TrimSpace(text)) == string(Income) {
		return Income
	}
	return Expense
}

// SignedAmount applies the transaction's direction to its magnitude:
// positive for income, negative for expense.
func (t Transaction) SignedAmount() float64 {
	if t.Type == Income {
		return t.Amount
	}
	return -t.Amount
}

// UnmarshalJSON decodes a transaction from its plain-object form, applying
// the same normalization as construction: a missing id gets a fresh one,
// blank category becomes the sentinel, the amount is coerced to its absolute
// value and the type defaults to expense.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string          `json:"id"`
		Date        json.RawMessage `json:"date"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Amount      json.RawMessage `json:"amount"`
		Type        string          `json:"type"`
		Notes       string          `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var date Date
	if len(raw.Date) > 0 {
		if err := date.UnmarshalJSON(raw.Date); err != nil {
			return err
		}
	}
	amount, err := coerceNumber("amount", raw.Amount)
	if err != nil {
		return err
	}

	t.ID = raw.ID
	if t.ID == "" {
		t.ID = NewID()
	}
	t.Date = date
	t.Description = raw.Description
	t.Category = NormalizeCategory(raw.Category)
	t.Amount = math.Abs(amount)
	t.Type = ParseTransactionType(raw.Type)
	t.Notes = raw.Notes
	return nil
}

// UnmarshalJSON decodes a budget from its plain-object form. The legacy
// "limit" key is accepted when "monthly_limit" is absent.
func (b *Budget) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string          `json:"id"`
		Category     string          `json:"category"`
		MonthlyLimit json.RawMessage `json:"monthly_limit"`
		Limit        json.RawMessage `json:"limit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rawLimit := raw.MonthlyLimit
	if len(rawLimit) == 0 {
		rawLimit = raw.Limit
	}
	limit, err := coerceNumber("monthly_limit", rawLimit)
	if err != nil {
		return err
	}

	b.ID = raw.ID
	if b.ID == "" {
		b.ID = NewID()
	}
	b.Category = NormalizeCategory(raw.Category)
	b.MonthlyLimit = math.Abs(limit)
	return nil
}

// coerceNumber accepts a JSON number or a numeric string; absence is zero.
func coerceNumber(field string, raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, perr := strconv.ParseFloat(strings.TrimSpace(s), 64); perr == nil {
			return parsed, nil
		}
	}
	return 0, &ValidationError{Field: field, Value: string(raw), Reason: "not a number"}
}

func (tt TransactionType) String() string {
	return string(tt)
}

// Label is a short human description of the transaction for logs and lists.
func (t Transaction) Label() string {
	return fmt.Sprintf("%s %s %s %.2f", t.Date.ISO(), t.Type, t.Category, t.Amount)
}
