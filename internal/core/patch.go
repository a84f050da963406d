package core

// TransactionPatch is a partial update of a transaction: only non-nil fields
// are applied, each going through the same normalization as construction.
type TransactionPatch struct {
	Date        *Date
	Description *string
	Category    *string
	Amount      *float64
	Type        *TransactionType
	Notes       *string
}

// BudgetPatch is a partial update of a budget.
type BudgetPatch struct {
	Category     *string
	MonthlyLimit *float64
}

// String returns a pointer to s, for building patches inline.
func String(s string) *string { return &s }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Type returns a pointer to tt.
func Type(tt TransactionType) *TransactionType { return &tt }
