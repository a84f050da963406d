package transfer

import (
	"path/filepath"
	"testing"

	"budgetbook/internal/core"
	"budgetbook/internal/store"
)

func seededStore() *store.Store {
	s := store.New(nil, nil)
	s.AddTransaction(core.NewDate(2024, 12, 1), "Salaire", "Revenus", 3200, core.Income, "")
	s.AddTransaction(core.NewDate(2024, 12, 12), "Courses", "Alimentation", 220.5, core.Expense, "")
	s.AddBudget("Alimentation", 350)
	return s
}

func TestJSONRoundTripPreservesEveryField(t *testing.T) {
	s := seededStore()
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ExportJSON(s, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	clone := store.New(nil, nil)
	if err := ImportJSON(clone, path); err != nil {
		t.Fatalf("import: %v", err)
	}

	origT, gotT := s.Transactions(), clone.Transactions()
	if len(gotT) != len(origT) {
		t.Fatalf("transactions = %d, want %d", len(gotT), len(origT))
	}
	for i := range origT {
		if gotT[i] != origT[i] {
			t.Fatalf("transaction %d mismatch (non-ASCII fields must survive):\n got %+v\nwant %+v",
				i, gotT[i], origT[i])
		}
	}

	origB, gotB := s.Budgets(), clone.Budgets()
	if len(gotB) != len(origB) {
		t.Fatalf("budgets = %d, want %d", len(gotB), len(origB))
	}
	for i := range origB {
		if gotB[i] != origB[i] {
			t.Fatalf("budget %d mismatch:\n got %+v\nwant %+v", i, gotB[i], origB[i])
		}
	}
}

func TestImportJSONAppendsWithoutDedup(t *testing.T) {
	s := seededStore()
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ExportJSON(s, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	// Importing our own export doubles every entity; ids are not deduplicated.
	if err := ImportJSON(s, path); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(s.Transactions()) != 4 {
		t.Fatalf("transactions = %d, want 4", len(s.Transactions()))
	}
	if len(s.Budgets()) != 2 {
		t.Fatalf("budgets = %d, want 2", len(s.Budgets()))
	}
}

func TestRestoreJSONReplaces(t *testing.T) {
	s := seededStore()
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ExportJSON(s, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	other := store.New(nil, nil)
	other.AddTransaction(core.NewDate(2020, 1, 1), "Old", "Misc", 1, core.Expense, "")
	if err := RestoreJSON(other, path); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(other.Transactions()) != 2 || len(other.Budgets()) != 1 {
		t.Fatalf("restore should replace wholesale: %d transactions, %d budgets",
			len(other.Transactions()), len(other.Budgets()))
	}
}

func TestImportJSONMalformed(t *testing.T) {
	path := writeFile(t, "broken.json", "{not json")
	s := store.New(nil, nil)
	err := ImportJSON(s, path)
	if err == nil {
		t.Fatal("expected error for malformed document")
	}
}
