package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Transaction type values. Credits feed the revenue series, debits the
// expense series.
const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)

// Transaction is a single ledger entry used for time-bucketed aggregation.
// It is never folded into a Statement.
type Transaction struct {
	ID      int64   `json:"id,omitempty"`
	BatchID string  `json:"batch_id,omitempty"` // upload batch this row arrived in
	Date    string  `json:"date"`
	Amount  float64 `json:"amount"`
	Type    string  `json:"type"` // "credit" or "debit"
}

// UnmarshalJSON accepts amounts as JSON numbers or numeric strings.
// Anything unparsable coerces to 0 rather than failing the whole batch.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID      int64           `json:"id"`
		BatchID string          `json:"batch_id"`
		Date    string          `json:"date"`
		Amount  json.RawMessage `json:"amount"`
		Type    string          `json:"type"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.ID = aux.ID
	t.BatchID = aux.BatchID
	t.Date = aux.Date
	t.Type = strings.ToLower(strings.TrimSpace(aux.Type))
	t.Amount = coerceAmount(aux.Amount)
	return nil
}

func coerceAmount(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}
	return 0
}
