// Package transfer moves store contents through CSV and JSON files. CSV
// import recovers locally: bad rows are skipped with a diagnostic and the
// rest of the file is still processed.
package transfer

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"budgetbook/internal/core"
	"budgetbook/internal/log"
	"budgetbook/internal/store"
)

// PlaceholderDescription labels imported rows with no description.
const PlaceholderDescription = "(no description)"

var exportHeader = []string{"Date", "Description", "Category", "Amount", "Type", "Notes"}

// Header spellings accepted on import, lowercased. English plus the legacy
// French export names.
var headerAliases = map[string]string{
	"date":        "date",
	"description": "description",
	"category":    "category",
	"catégorie":   "category",
	"categorie":   "category",
	"amount":      "amount",
	"montant":     "amount",
	"type":        "type",
	"notes":       "notes",
}

// ImportCSV reads transactions from a CSV file into the store, one
// AddTransaction per accepted row so normalization and sorting hold. Rows
// with an unparseable date or amount are skipped with a warning. Returns the
// number of rows accepted.
func ImportCSV(s *store.Store, path string, logger *log.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &core.PersistenceError{Op: "import", Path: path, Err: err}
	}
	defer f.Close()

	if logger == nil {
		logger = log.New(log.ParseLevel("info"))
	}
	logger = logger.WithComponent("import")
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, &core.PersistenceError{Op: "import", Path: path, Err: err}
	}
	columns := mapColumns(header)

	added := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("skipping malformed csv row", "line", line, log.FieldError, err)
			continue
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		date, err := core.ParseDate(field("date"))
		if err != nil {
			logger.Warn("skipping row with bad date", "line", line, "value", field("date"))
			continue
		}
		amount, err := strconv.ParseFloat(field("amount"), 64)
		if err != nil {
			logger.Warn("skipping row with bad amount", "line", line, "value", field("amount"))
			continue
		}

		description := field("description")
		if description == "" {
			description = PlaceholderDescription
		}

		// Without a usable type column the sign of the raw amount decides.
		typ := strings.ToLower(field("type"))
		if typ != string(core.Income) && typ != string(core.Expense) {
			if amount >= 0 {
				typ = string(core.Income)
			} else {
				typ = string(core.Expense)
			}
		}

		s.AddTransaction(date, description, field("category"), math.Abs(amount),
			core.ParseTransactionType(typ), field("notes"))
		added++
	}

	logger.Info("csv import finished", log.FieldPath, path, log.FieldCount, added)
	return added, nil
}

// ExportCSV writes one row per transaction in store order. The amount column
// carries the signed value so the file reconciles against a running balance.
func ExportCSV(s *store.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &core.PersistenceError{Op: "export", Path: path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return &core.PersistenceError{Op: "export", Path: path, Err: err}
	}
	for _, t := range s.Transactions() {
		row := []string{
			t.Date.ISO(),
			t.Description,
			t.Category,
			strconv.FormatFloat(t.SignedAmount(), 'f', -1, 64),
			t.Type.String(),
			t.Notes,
		}
		if err := w.Write(row); err != nil {
			return &core.PersistenceError{Op: "export", Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &core.PersistenceError{Op: "export", Path: path, Err: err}
	}
	return nil
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := headerAliases[key]; ok {
			if _, taken := columns[canonical]; !taken {
				columns[canonical] = i
			}
		}
	}
	return columns
}
