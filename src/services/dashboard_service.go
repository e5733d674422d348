package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/finboard/backend/src/database"
	"github.com/username/finboard/backend/src/logger"
	"github.com/username/finboard/backend/src/models"
	"github.com/username/finboard/backend/src/processors"
)

const (
	// Long-lived cache for the normalized statement collection
	ckNormalizedStatements = "res_normalized_statements"

	// Short-lived, per-request aggregates
	ckChartBundle = "agg_chart_bundle_%s"
	ckReport      = "agg_report_%s_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type dashboardServiceImpl struct {
	normalizer  processors.StatementNormalizer
	reportCache *cache.Cache
	strict      bool
}

func NewDashboardService(normalizer processors.StatementNormalizer, reportCache *cache.Cache, strict bool) DashboardService {
	return &dashboardServiceImpl{
		normalizer:  normalizer,
		reportCache: reportCache,
		strict:      strict,
	}
}

func (s *dashboardServiceImpl) IngestStatements(raws []models.RawStatement) (*IngestResult, error) {
	overallStartTime := time.Now()
	batchID := uuid.NewString()
	logger.L.Info("IngestStatements START", "batchID", batchID, "count", len(raws))

	var warnings []models.Warning
	normalized := make([]models.Statement, 0, len(raws))
	for i, raw := range raws {
		stmt, warns := s.normalizer.Normalize(raw)
		if s.strict {
			for _, w := range warns {
				if w.Code == models.WarnUnrecognizedShape {
					return nil, fmt.Errorf("%w: record %d", ErrUnrecognizedStatement, i)
				}
			}
		}
		normalized = append(normalized, stmt)
		warnings = append(warnings, warns...)
	}

	dbTx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO balance_sheets (batch_id, date, raw_json) VALUES (?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, raw := range raws {
		rawJSON, err := json.Marshal(raw)
		if err != nil {
			logger.L.Warn("Skipping statement that failed to re-serialize", "batchID", batchID, "index", i, "error", err)
			continue
		}
		if _, err := stmt.Exec(batchID, normalized[i].Date, string(rawJSON)); err != nil {
			return nil, fmt.Errorf("error inserting statement (index %d): %w", i, err)
		}
		inserted++
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing statements: %w", err)
	}

	s.InvalidateCache()
	logger.L.Info("IngestStatements END", "batchID", batchID, "inserted", inserted, "duration", time.Since(overallStartTime))
	return &IngestResult{BatchID: batchID, Inserted: inserted, Warnings: warnings}, nil
}

func (s *dashboardServiceImpl) IngestTransactions(txs []models.Transaction) (*IngestResult, error) {
	batchID := uuid.NewString()
	logger.L.Info("IngestTransactions START", "batchID", batchID, "count", len(txs))

	dbTx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO transactions (batch_id, date, amount, type) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, tx := range txs {
		if _, err := stmt.Exec(batchID, tx.Date, tx.Amount, tx.Type); err != nil {
			return nil, fmt.Errorf("error inserting transaction (date %s): %w", tx.Date, err)
		}
		inserted++
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing transactions: %w", err)
	}

	s.InvalidateCache()
	logger.L.Info("IngestTransactions END", "batchID", batchID, "inserted", inserted)
	return &IngestResult{BatchID: batchID, Inserted: inserted}, nil
}

// InvalidateCache clears every cached aggregate, forcing a complete rebuild
// on the next request. Simple and always consistent.
func (s *dashboardServiceImpl) InvalidateCache() {
	s.reportCache.Flush()
	logger.L.Info("Invalidated dashboard caches")
}

// getNormalizedStatements is the central function populating the statement
// cache on a miss.
func (s *dashboardServiceImpl) getNormalizedStatements() ([]models.Statement, error) {
	if cached, found := s.reportCache.Get(ckNormalizedStatements); found {
		logger.L.Debug("Cache hit for normalized statements")
		return cached.([]models.Statement), nil
	}

	logger.L.Info("Cache miss for normalized statements, recalculating from DB")
	raws, err := fetchRawStatements()
	if err != nil {
		return nil, err
	}

	statements, warnings := s.normalizer.NormalizeAll(raws)
	for _, w := range warnings {
		logger.L.Warn("Normalization fallback", "code", w.Code, "field", w.Field, "detail", w.Detail)
	}

	s.reportCache.Set(ckNormalizedStatements, statements, cache.NoExpiration)
	logger.L.Info("Populated normalized statement cache from DB", "statementCount", len(statements))
	return statements, nil
}

func (s *dashboardServiceImpl) GetChartBundle(interval string) (models.ChartBundle, error) {
	cacheKey := fmt.Sprintf(ckChartBundle, interval)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for chart bundle", "interval", interval)
		return cached.(models.ChartBundle), nil
	}

	statements, err := s.getNormalizedStatements()
	if err != nil {
		return models.ChartBundle{}, err
	}
	transactions, err := fetchTransactions()
	if err != nil {
		return models.ChartBundle{}, err
	}

	bundle := processors.BuildChartBundle(statements, transactions, interval, time.Now())
	s.reportCache.Set(cacheKey, bundle, DefaultCacheExpiration)
	return bundle, nil
}

func (s *dashboardServiceImpl) GetReport(targetDate, interval string) (string, error) {
	cacheKey := fmt.Sprintf(ckReport, targetDate, interval)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(string), nil
	}

	stmt, err := s.GetNearestStatement(targetDate)
	if err != nil {
		return "", err
	}
	if stmt == nil {
		// No statements uploaded yet: report on the default statement so the
		// dashboard always has something to render.
		fallback := processors.DefaultStatement()
		stmt = &fallback
	}

	report := processors.BuildReport(*stmt, interval)
	s.reportCache.Set(cacheKey, report, DefaultCacheExpiration)
	return report, nil
}

func (s *dashboardServiceImpl) GetNearestStatement(targetDate string) (*models.Statement, error) {
	statements, err := s.getNormalizedStatements()
	if err != nil {
		return nil, err
	}
	return processors.FindNearestStatement(statements, targetDate), nil
}

func (s *dashboardServiceImpl) GetAvailableDates() ([]string, error) {
	statements, err := s.getNormalizedStatements()
	if err != nil {
		return nil, err
	}
	return processors.AvailableDates(statements), nil
}

func (s *dashboardServiceImpl) DeleteAllStatements() error {
	if _, err := database.DB.Exec(`DELETE FROM balance_sheets`); err != nil {
		return fmt.Errorf("error deleting balance sheets: %w", err)
	}
	s.InvalidateCache()
	return nil
}

func (s *dashboardServiceImpl) DeleteAllTransactions() error {
	if _, err := database.DB.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("error deleting transactions: %w", err)
	}
	s.InvalidateCache()
	return nil
}

func fetchRawStatements() ([]models.RawStatement, error) {
	logger.L.Debug("Fetching raw balance sheets from DB")
	rows, err := database.DB.Query(`SELECT raw_json FROM balance_sheets ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("error querying balance sheets: %w", err)
	}
	defer rows.Close()

	var raws []models.RawStatement
	for rows.Next() {
		var rawJSON string
		if err := rows.Scan(&rawJSON); err != nil {
			return nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}
		var raw models.RawStatement
		if err := json.Unmarshal([]byte(rawJSON), &raw); err != nil {
			logger.L.Warn("Skipping stored balance sheet with invalid JSON", "error", err)
			continue
		}
		raws = append(raws, raw)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over balance sheet rows: %w", err)
	}
	logger.L.Info("DB fetch complete.", "balanceSheetCount", len(raws))
	return raws, nil
}

func fetchTransactions() ([]models.Transaction, error) {
	logger.L.Debug("Fetching transactions from DB")
	rows, err := database.DB.Query(`SELECT id, batch_id, date, amount, type FROM transactions ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.BatchID, &tx.Date, &tx.Amount, &tx.Type); err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transaction rows: %w", err)
	}
	return transactions, nil
}
