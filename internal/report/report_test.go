package report

import (
	"math"
	"testing"

	"budgetbook/internal/core"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func trx(iso, category string, amount float64, typ core.TransactionType) core.Transaction {
	d, err := core.ParseDate(iso)
	if err != nil {
		panic(err)
	}
	return core.Transaction{
		ID:       core.NewID(),
		Date:     d,
		Category: category,
		Amount:   amount,
		Type:     typ,
	}
}

func decemberFixture() []core.Transaction {
	return []core.Transaction{
		trx("2024-12-01", "Income", 3200, core.Income),
		trx("2024-12-05", "Housing", 900, core.Expense),
		trx("2024-12-12", "Food", 220.5, core.Expense),
	}
}

func TestMonthlySummaryScenario(t *testing.T) {
	s := MonthlySummary(decemberFixture(), "2024-12")
	if !approx(s.Incomes, 3200) {
		t.Fatalf("incomes = %v", s.Incomes)
	}
	if !approx(s.Expenses, 1120.5) {
		t.Fatalf("expenses = %v", s.Expenses)
	}
	if !approx(s.Balance, 2079.5) {
		t.Fatalf("balance = %v", s.Balance)
	}
}

func TestBalanceIdentity(t *testing.T) {
	txs := append(decemberFixture(),
		trx("2025-01-03", "Food", 55.25, core.Expense),
		trx("2025-01-10", "Income", 100, core.Income),
	)
	for _, month := range []string{AllMonths, "2024-12", "2025-01", "1999-01"} {
		s := MonthlySummary(txs, month)
		if !approx(s.Balance, s.Incomes-s.Expenses) {
			t.Fatalf("month %q: balance %v != incomes %v - expenses %v",
				month, s.Balance, s.Incomes, s.Expenses)
		}
	}
}

func TestTransactionsForMonth(t *testing.T) {
	txs := append(decemberFixture(), trx("2025-01-03", "Food", 10, core.Expense))

	if got := TransactionsForMonth(txs, AllMonths); len(got) != 4 {
		t.Fatalf("all months: %d", len(got))
	}
	if got := TransactionsForMonth(txs, "2024-12"); len(got) != 3 {
		t.Fatalf("2024-12: %d", len(got))
	}
	if got := TransactionsForMonth(txs, "2030-01"); len(got) != 0 {
		t.Fatalf("empty month: %d", len(got))
	}
}

func TestCategoryTotals(t *testing.T) {
	totals := CategoryTotals(decemberFixture(), "2024-12", core.Expense)
	if len(totals) != 2 {
		t.Fatalf("got %d categories", len(totals))
	}
	if !approx(totals["Housing"], 900) || !approx(totals["Food"], 220.5) {
		t.Fatalf("totals = %v", totals)
	}

	incomes := CategoryTotals(decemberFixture(), "2024-12", core.Income)
	if !approx(incomes["Income"], 3200) {
		t.Fatalf("income totals = %v", incomes)
	}
}

func TestMonthlyBalancesTwoMonths(t *testing.T) {
	txs := []core.Transaction{
		trx("2025-01-10", "Income", 100, core.Income),
		trx("2024-12-05", "Housing", 900, core.Expense),
		trx("2024-12-01", "Income", 3200, core.Income),
	}
	got := MonthlyBalances(txs)
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	if got[0].Month != "2024-12" || got[1].Month != "2025-01" {
		t.Fatalf("order = %s, %s", got[0].Month, got[1].Month)
	}
	if !approx(got[0].Net, 2300) || !approx(got[1].Net, 100) {
		t.Fatalf("nets = %v, %v", got[0].Net, got[1].Net)
	}
}

func TestBudgetAnalysisScenario(t *testing.T) {
	budgets := []core.Budget{
		{ID: core.NewID(), Category: "Housing", MonthlyLimit: 950},
		{ID: core.NewID(), Category: "Food", MonthlyLimit: 350},
	}
	rows := BudgetAnalysis(decemberFixture(), budgets, "2024-12")
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Sorted by category: Food then Housing.
	if rows[0].Budget.Category != "Food" || rows[1].Budget.Category != "Housing" {
		t.Fatalf("sort order: %s, %s", rows[0].Budget.Category, rows[1].Budget.Category)
	}
	housing := rows[1]
	if !approx(housing.Spent, 900) || !approx(housing.Remaining, 50) {
		t.Fatalf("housing row = %+v", housing)
	}
	if math.Abs(housing.Ratio-900.0/950.0) > 1e-6 {
		t.Fatalf("housing ratio = %v", housing.Ratio)
	}
}

func TestBudgetAnalysisOverrun(t *testing.T) {
	budgets := []core.Budget{{ID: core.NewID(), Category: "Food", MonthlyLimit: 100}}
	rows := BudgetAnalysis(decemberFixture(), budgets, "2024-12")
	row := rows[0]
	if row.Ratio != 1 {
		t.Fatalf("ratio must cap at 1, got %v", row.Ratio)
	}
	if !approx(row.Remaining, -120.5) {
		t.Fatalf("remaining = %v, want -120.5", row.Remaining)
	}
}

func TestBudgetAnalysisZeroLimit(t *testing.T) {
	budgets := []core.Budget{{ID: core.NewID(), Category: "Food", MonthlyLimit: 0}}
	rows := BudgetAnalysis(decemberFixture(), budgets, "2024-12")
	if rows[0].Ratio != 0 {
		t.Fatalf("zero-limit ratio = %v, want 0", rows[0].Ratio)
	}
}

func TestBudgetAnalysisOrphanBudget(t *testing.T) {
	budgets := []core.Budget{{ID: core.NewID(), Category: "Travel", MonthlyLimit: 500}}
	rows := BudgetAnalysis(decemberFixture(), budgets, "2024-12")
	row := rows[0]
	if !approx(row.Spent, 0) || !approx(row.Remaining, 500) || row.Ratio != 0 {
		t.Fatalf("orphan budget row = %+v", row)
	}
}

func TestBudgetUsageSynthesizesUnbudgetedRows(t *testing.T) {
	budgets := []core.Budget{{ID: core.NewID(), Category: "Housing", MonthlyLimit: 950}}
	rows := BudgetUsage(decemberFixture(), budgets, "2024-12")
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	food := rows[0] // Food sorts before Housing
	if food.Budget.Category != "Food" || food.Budget.MonthlyLimit != 0 {
		t.Fatalf("pseudo row = %+v", food)
	}
	if !approx(food.Remaining, -220.5) {
		t.Fatalf("pseudo row remaining = %v, want negated spend", food.Remaining)
	}
}

func TestRatioAlwaysInRange(t *testing.T) {
	budgets := []core.Budget{
		{ID: core.NewID(), Category: "Housing", MonthlyLimit: 10},
		{ID: core.NewID(), Category: "Food", MonthlyLimit: 0},
		{ID: core.NewID(), Category: "Travel", MonthlyLimit: 10000},
	}
	for _, row := range BudgetUsage(decemberFixture(), budgets, AllMonths) {
		if row.Ratio < 0 || row.Ratio > 1 {
			t.Fatalf("ratio out of range: %+v", row)
		}
	}
}
