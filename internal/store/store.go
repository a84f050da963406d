// Package store owns the in-memory transaction and budget collections,
// their ordering invariants and their persistence. There is exactly one
// logical writer; nothing here is safe for concurrent mutation.
package store

import (
	"context"
	"math"
	"sort"
	"strings"

	"budgetbook/internal/core"
	"budgetbook/internal/log"
	"budgetbook/internal/storage"
)

// Store holds both collections for the life of the process. Transactions
// stay sorted by (date, description); budgets by category, case-insensitive.
// Nothing is persisted until Save is called explicitly.
type Store struct {
	repo         storage.Repository
	logger       *log.Logger
	transactions []core.Transaction
	budgets      []core.Budget
}

// New creates a store backed by repo. A nil repo gives a purely in-memory
// store whose Load and Save are no-ops.
func New(repo storage.Repository, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.ParseLevel("info"))
	}
	return &Store{
		repo:   repo,
		logger: logger.WithComponent("store"),
	}
}

// AddTransaction creates a transaction with a fresh id, normalizes its
// fields, inserts it and restores sort order.
func (s *Store) AddTransaction(date core.Date, description, category string, amount float64, typ core.TransactionType, notes string) core.Transaction {
	trx := core.Transaction{
		ID:          core.NewID(),
		Date:        date,
		Description: description,
		Category:    core.NormalizeCategory(category),
		Amount:      math.Abs(amount),
		Type:        normalizeType(typ),
		Notes:       notes,
	}
	s.transactions = append(s.transactions, trx)
	s.sortTransactions()
	s.logger.Debug("transaction added", log.FieldID, trx.ID, log.FieldCategory, trx.Category)
	return trx
}

// UpdateTransaction applies only the supplied patch fields to the
// transaction, re-validating each through the same normalization as
// construction. The id itself is immutable.
func (s *Store) UpdateTransaction(id string, patch core.TransactionPatch) error {
	i := s.findTransaction(id)
	if i < 0 {
		return &core.NotFoundError{Kind: "transaction", ID: id}
	}
	trx := &s.transactions[i]
	if patch.Date != nil {
		trx.Date = *patch.Date
	}
	if patch.Description != nil {
		trx.Description = *patch.Description
	}
	if patch.Category != nil {
		trx.Category = core.NormalizeCategory(*patch.Category)
	}
	if patch.Amount != nil {
		trx.Amount = math.Abs(*patch.Amount)
	}
	if patch.Type != nil {
		trx.Type = normalizeType(*patch.Type)
	}
	if patch.Notes != nil {
		trx.Notes = *patch.Notes
	}
	s.sortTransactions()
	return nil
}

// DeleteTransaction removes the matching transaction. Deleting an unknown
// id is a no-op, so deletion is idempotent.
func (s *Store) DeleteTransaction(id string) {
	i := s.findTransaction(id)
	if i < 0 {
		return
	}
	s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
}

// GetTransaction returns a copy of the matching transaction, or nil.
func (s *Store) GetTransaction(id string) *core.Transaction {
	i := s.findTransaction(id)
	if i < 0 {
		return nil
	}
	trx := s.transactions[i]
	return &trx
}

// AddBudget creates a budget with a fresh id and restores sort order.
func (s *Store) AddBudget(category string, monthlyLimit float64) core.Budget {
	budget := core.Budget{
		ID:           core.NewID(),
		Category:     core.NormalizeCategory(category),
		MonthlyLimit: math.Abs(monthlyLimit),
	}
	s.budgets = append(s.budgets, budget)
	s.sortBudgets()
	s.logger.Debug("budget added", log.FieldID, budget.ID, log.FieldCategory, budget.Category)
	return budget
}

// UpdateBudget applies only the supplied patch fields to the budget.
func (s *Store) UpdateBudget(id string, patch core.BudgetPatch) error {
	i := s.findBudget(id)
	if i < 0 {
		return &core.NotFoundError{Kind: "budget", ID: id}
	}
	budget := &s.budgets[i]
	if patch.Category != nil {
		budget.Category = core.NormalizeCategory(*patch.Category)
	}
	if patch.MonthlyLimit != nil {
		budget.MonthlyLimit = math.Abs(*patch.MonthlyLimit)
	}
	s.sortBudgets()
	return nil
}

// DeleteBudget removes the matching budget; unknown ids are a no-op.
func (s *Store) DeleteBudget(id string) {
	i := s.findBudget(id)
	if i < 0 {
		return
	}
	s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
}

// GetBudget returns a copy of the matching budget, or nil.
func (s *Store) GetBudget(id string) *core.Budget {
	i := s.findBudget(id)
	if i < 0 {
		return nil
	}
	budget := s.budgets[i]
	return &budget
}

// Transactions returns a copy of the transaction collection in sort order.
func (s *Store) Transactions() []core.Transaction {
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Budgets returns a copy of the budget collection in sort order.
func (s *Store) Budgets() []core.Budget {
	out := make([]core.Budget, len(s.budgets))
	copy(out, s.budgets)
	return out
}

// Load replaces both collections from the backing document. A document that
// does not exist yet leaves the collections untouched.
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		s.logger.Debug("no backing document yet, starting empty")
		return nil
	}
	s.Replace(*snap)
	s.logger.Debug("state loaded",
		"transactions", len(s.transactions), "budgets", len(s.budgets))
	return nil
}

// Save writes both collections to the backing document, overwriting it.
func (s *Store) Save(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, s.Snapshot()); err != nil {
		return err
	}
	s.logger.Debug("state saved",
		"transactions", len(s.transactions), "budgets", len(s.budgets))
	return nil
}

// Snapshot returns a copy of both collections in persisted form.
func (s *Store) Snapshot() storage.Snapshot {
	return storage.Snapshot{
		Transactions: s.Transactions(),
		Budgets:      s.Budgets(),
	}
}

// Append merges a snapshot into the current collections and re-sorts.
// Duplicate ids are kept as-is; JSON import does not deduplicate.
func (s *Store) Append(snap storage.Snapshot) {
	s.transactions = append(s.transactions, snap.Transactions...)
	s.budgets = append(s.budgets, snap.Budgets...)
	s.sortTransactions()
	s.sortBudgets()
}

// Replace swaps both collections wholesale and re-sorts.
func (s *Store) Replace(snap storage.Snapshot) {
	s.transactions = append([]core.Transaction(nil), snap.Transactions...)
	s.budgets = append([]core.Budget(nil), snap.Budgets...)
	s.sortTransactions()
	s.sortBudgets()
}

func (s *Store) findTransaction(id string) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findBudget(id string) int {
	for i, b := range s.budgets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) sortTransactions() {
	sort.SliceStable(s.transactions, func(i, j int) bool {
		a, b := s.transactions[i], s.transactions[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.Before(b.Date.Time)
		}
		return a.Description < b.Description
	})
}

func (s *Store) sortBudgets() {
	sort.SliceStable(s.budgets, func(i, j int) bool {
		return strings.ToLower(s.budgets[i].Category) < strings.ToLower(s.budgets[j].Category)
	})
}

func normalizeType(typ core.TransactionType) core.TransactionType {
	if typ == core.Income {
		return core.Income
	}
	return core.Expense
}
