package storage

import (
	"encoding/json"
	"io"
	"time"

	"budgetbook/internal/core"
)

// document is the wire shape of the persisted JSON store. The same shape is
// used by JSON export and import, so exports double as backups.
type document struct {
	Transactions []core.Transaction `json:"transactions"`
	Budgets      []core.Budget      `json:"budgets"`
	UpdatedAt    string             `json:"updated_at,omitempty"`
}

// WriteDocument encodes the snapshot in persisted-document form. A zero
// updatedAt omits the timestamp.
func WriteDocument(w io.Writer, snap Snapshot, updatedAt time.Time) error {
	doc := document{
		Transactions: snap.Transactions,
		Budgets:      snap.Budgets,
	}
	if doc.Transactions == nil {
		doc.Transactions = []core.Transaction{}
	}
	if doc.Budgets == nil {
		doc.Budgets = []core.Budget{}
	}
	if !updatedAt.IsZero() {
		doc.UpdatedAt = updatedAt.Format(time.RFC3339)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// ReadDocument decodes a persisted document. Unknown fields are ignored and
// missing collections come back empty; entity-level normalization happens in
// the entity decoders.
func ReadDocument(r io.Reader) (Snapshot, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Transactions: doc.Transactions, Budgets: doc.Budgets}, nil
}
