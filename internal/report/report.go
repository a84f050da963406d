// Package report derives summaries from the store's collections. Every
// function is a pure read recomputed from scratch: pass it the current
// slices, get plain values back.
package report

import (
	"sort"
	"strings"

	"budgetbook/internal/core"
)

// AllMonths selects every transaction regardless of month.
const AllMonths = ""

// Summary is the income/expense/net view of a set of transactions.
// Expenses is a non-negative magnitude; Balance carries the sign.
type Summary struct {
	Incomes  float64
	Expenses float64
	Balance  float64
}

// MonthBalance is one point of the monthly trend series.
type MonthBalance struct {
	Month string // YYYY-MM key
	Net   float64
}

// BudgetRow is one line of a budget utilization report.
type BudgetRow struct {
	Budget    core.Budget
	Spent     float64
	Remaining float64 // negative when over budget
	Ratio     float64 // spent/limit capped at 1, 0 when the limit is 0
}

// TransactionsForMonth filters by YYYY-MM key; AllMonths means no filter.
func TransactionsForMonth(transactions []core.Transaction, month string) []core.Transaction {
	if month == AllMonths {
		return append([]core.Transaction(nil), transactions...)
	}
	var out []core.Transaction
	for _, t := range transactions {
		if t.Date.MonthKey() == month {
			out = append(out, t)
		}
	}
	return out
}

// MonthlySummary totals incomes, expenses and net balance for the month.
// The identity Balance == Incomes - Expenses holds up to float rounding.
func MonthlySummary(transactions []core.Transaction, month string) Summary {
	var s Summary
	for _, t := range TransactionsForMonth(transactions, month) {
		switch t.Type {
		case core.Income:
			s.Incomes += t.Amount
		case core.Expense:
			s.Expenses += t.Amount
		}
		s.Balance += t.SignedAmount()
	}
	return s
}

// CategoryTotals sums magnitudes per category for transactions of the given
// type in the given month.
func CategoryTotals(transactions []core.Transaction, month string, typ core.TransactionType) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range TransactionsForMonth(transactions, month) {
		if t.Type != typ {
			continue
		}
		totals[t.Category] += t.Amount
	}
	return totals
}

// MonthlyBalances returns the signed net per month, one entry per distinct
// month over the full transaction set, ascending by key.
func MonthlyBalances(transactions []core.Transaction) []MonthBalance {
	buckets := make(map[string]float64)
	for _, t := range transactions {
		buckets[t.Date.MonthKey()] += t.SignedAmount()
	}
	out := make([]MonthBalance, 0, len(buckets))
	for month, net := range buckets {
		out = append(out, MonthBalance{Month: month, Net: net})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// BudgetAnalysis builds one row per budget: what was spent against it in the
// month, what remains, and the consumed ratio. Category matching is exact;
// only the sort order is case-insensitive.
func BudgetAnalysis(transactions []core.Transaction, budgets []core.Budget, month string) []BudgetRow {
	totals := CategoryTotals(transactions, month, core.Expense)
	rows := make([]BudgetRow, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, newBudgetRow(b, totals[b.Category]))
	}
	sortBudgetRows(rows)
	return rows
}

// BudgetUsage is BudgetAnalysis plus a synthesized zero-limit row for every
// category with expense activity but no budget, so unbudgeted spend stays
// visible.
func BudgetUsage(transactions []core.Transaction, budgets []core.Budget, month string) []BudgetRow {
	totals := CategoryTotals(transactions, month, core.Expense)
	budgeted := make(map[string]bool, len(budgets))

	rows := make([]BudgetRow, 0, len(budgets))
	for _, b := range budgets {
		budgeted[b.Category] = true
		rows = append(rows, newBudgetRow(b, totals[b.Category]))
	}
	for category, spent := range totals {
		if budgeted[category] {
			continue
		}
		rows = append(rows, newBudgetRow(core.Budget{Category: category}, spent))
	}
	sortBudgetRows(rows)
	return rows
}

func newBudgetRow(b core.Budget, spent float64) BudgetRow {
	ratio := 0.0
	if b.MonthlyLimit > 0 {
		ratio = spent / b.MonthlyLimit
		if ratio > 1 {
			ratio = 1
		}
	}
	return BudgetRow{
		Budget:    b,
		Spent:     spent,
		Remaining: b.MonthlyLimit - spent,
		Ratio:     ratio,
	}
}

func sortBudgetRows(rows []BudgetRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Budget.Category) < strings.ToLower(rows[j].Budget.Category)
	})
}
