package processors

import (
	"github.com/username/finboard/backend/src/models"
)

// StatementNormalizer converts raw balance-sheet records of unpredictable
// shape into canonical statements. It never fails: unrecognized input
// degrades to a default statement, and every fallback taken is reported as
// a warning.
type StatementNormalizer interface {
	Normalize(raw models.RawStatement) (models.Statement, []models.Warning)
	NormalizeAll(raws []models.RawStatement) ([]models.Statement, []models.Warning)
}
