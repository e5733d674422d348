package services

import (
	"errors"

	"github.com/username/finboard/backend/src/models"
)

// IngestResult reports what an upload did: the batch it created, how many
// rows landed, and every normalization fallback that fired along the way.
type IngestResult struct {
	BatchID  string           `json:"batch_id"`
	Inserted int              `json:"inserted"`
	Warnings []models.Warning `json:"warnings,omitempty"`
}

// ErrUnrecognizedStatement is returned in strict mode when an uploaded record
// matches none of the known statement shapes.
var ErrUnrecognizedStatement = errors.New("statement shape not recognized")

// DashboardService is the core pipeline behind the dashboard endpoints:
// ingest raw records, normalize them, and serve chart bundles, reports and
// date lookups on top of the normalized collection.
type DashboardService interface {
	IngestStatements(raws []models.RawStatement) (*IngestResult, error)
	IngestTransactions(txs []models.Transaction) (*IngestResult, error)

	GetChartBundle(interval string) (models.ChartBundle, error)
	GetReport(targetDate, interval string) (string, error)
	GetNearestStatement(targetDate string) (*models.Statement, error)
	GetAvailableDates() ([]string, error)

	DeleteAllStatements() error
	DeleteAllTransactions() error
}
