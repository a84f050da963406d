package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"budgetbook/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps the same wholesale load/save contract as the JSON
// document, backed by two tables. Save rewrites both tables inside one
// transaction.
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, path: dbPath}, nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (*Snapshot, error) {
	snap := Snapshot{}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, category, amount, type, notes
		 FROM transactions ORDER BY date, description`)
	if err != nil {
		return nil, &core.PersistenceError{Op: "load", Path: r.path, Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var t core.Transaction
		var date, typ string
		if err := rows.Scan(&t.ID, &date, &t.Description, &t.Category, &t.Amount, &typ, &t.Notes); err != nil {
			return nil, &core.PersistenceError{Op: "load", Path: r.path, Err: err}
		}
		parsed, err := core.ParseDate(date)
		if err != nil {
			return nil, &core.PersistenceError{Op: "load", Path: r.path, Err: err}
		}
		t.Date = parsed
		t.Type = core.ParseTransactionType(typ)
		t.Category = core.NormalizeCategory(t.Category)
		snap.Transactions = append(snap.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.PersistenceError{Op: "load", Path: r.path, Err: err}
	}

	brows, err := r.db.QueryContext(ctx,
		`SELECT id, category, monthly_limit FROM budgets ORDER BY category`)
	if err != nil {
		return nil, &core.PersistenceError{Op: "load", Path: r.path, Err: err}
	}
	defer brows.Close()
	for brows.Next() {
		var b core.Budget
		if err := brows.Scan(&b.ID, &b.Category, &b.MonthlyLimit); err != nil {
			return nil, &core.PersistenceError{Op: "load", Path: r.path, Err: err}
		}
		b.Category = core.NormalizeCategory(b.Category)
		snap.Budgets = append(snap.Budgets, b)
	}
	if err := brows.Err(); err != nil {
		return nil, &core.PersistenceError{Op: "load", Path: r.path, Err: err}
	}

	return &snap, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, snap Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &core.PersistenceError{Op: "save", Path: r.path, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return &core.PersistenceError{Op: "save", Path: r.path, Err: err}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
		return &core.PersistenceError{Op: "save", Path: r.path, Err: err}
	}

	for _, t := range snap.Transactions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, date, description, category, amount, type, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Date.ISO(), t.Description, t.Category, t.Amount, t.Type.String(), t.Notes)
		if err != nil {
			return &core.PersistenceError{Op: "save", Path: r.path, Err: err}
		}
	}
	for _, b := range snap.Budgets {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (id, category, monthly_limit) VALUES (?, ?, ?)`,
			b.ID, b.Category, b.MonthlyLimit)
		if err != nil {
			return &core.PersistenceError{Op: "save", Path: r.path, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &core.PersistenceError{Op: "save", Path: r.path, Err: err}
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
