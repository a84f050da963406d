package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"budgetbook/internal/core"
	"budgetbook/internal/log"
	"budgetbook/internal/report"
	"budgetbook/internal/store"
	"budgetbook/internal/transfer"
)

// runSelfTest exercises the data layer against a scratch store so automated
// checks can run without touching real data.
func runSelfTest(logger *log.Logger) error {
	s := store.New(nil, logger)

	s.AddTransaction(core.NewDate(2024, 12, 1), "Salary", "Income", 3200, core.Income, "")
	s.AddTransaction(core.NewDate(2024, 12, 5), "Rent", "Housing", 900, core.Expense, "")
	s.AddTransaction(core.NewDate(2024, 12, 12), "Groceries", "Food", 220.5, core.Expense, "")
	s.AddBudget("Housing", 950)
	s.AddBudget("Food", 350)

	summary := report.MonthlySummary(s.Transactions(), "2024-12")
	if !approx(summary.Incomes, 3200) || !approx(summary.Expenses, 1120.5) || !approx(summary.Balance, 2079.5) {
		return fmt.Errorf("unexpected summary: %+v", summary)
	}

	analysis := report.BudgetAnalysis(s.Transactions(), s.Budgets(), "2024-12")
	if len(analysis) != 2 {
		return fmt.Errorf("expected 2 budget rows, got %d", len(analysis))
	}
	housingSeen := false
	for _, row := range analysis {
		if approx(row.Spent, 900) {
			housingSeen = true
		}
	}
	if !housingSeen {
		return fmt.Errorf("housing spend not found in analysis")
	}

	tmp, err := os.MkdirTemp("", "budgetbook-selftest")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	snapshot := filepath.Join(tmp, "snapshot.json")
	if err := transfer.ExportJSON(s, snapshot); err != nil {
		return err
	}
	clone := store.New(nil, logger)
	if err := transfer.ImportJSON(clone, snapshot); err != nil {
		return err
	}
	if len(clone.Transactions()) != 3 || len(clone.Budgets()) != 2 {
		return fmt.Errorf("round trip lost entities: %d transactions, %d budgets",
			len(clone.Transactions()), len(clone.Budgets()))
	}

	return nil
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
