package processors

import (
	"fmt"
	"time"

	"github.com/sourcegraph/conc/iter"
	"github.com/username/finboard/backend/src/models"
	"github.com/username/finboard/backend/src/utils"
)

// rawShape classifies a raw record into one of the known input variants.
type rawShape int

const (
	shapeCanonical rawShape = iota
	shapeReportJSON
	shapeBreakdown
	shapeUnknown
)

type statementNormalizerImpl struct{}

// NewStatementNormalizer creates a new instance of StatementNormalizer.
func NewStatementNormalizer() StatementNormalizer {
	return &statementNormalizerImpl{}
}

// Normalize converts one raw record into a canonical statement. Pure, never
// fails: an unrecognized shape yields the default demonstration statement
// plus an unrecognized_shape warning.
func (n *statementNormalizerImpl) Normalize(raw models.RawStatement) (models.Statement, []models.Warning) {
	switch classifyShape(raw) {
	case shapeCanonical:
		return decodeCanonical(raw)
	case shapeReportJSON:
		return decodeReportJSON(raw)
	case shapeBreakdown:
		return decodeBreakdown(raw)
	default:
		return DefaultStatement(), []models.Warning{{
			Code:   models.WarnUnrecognizedShape,
			Detail: "statement record matches no known shape, using default figures",
		}}
	}
}

// NormalizeAll normalizes a batch. Per-item normalization has no cross-item
// dependency, so items run on a parallel map; output order matches input
// order.
func (n *statementNormalizerImpl) NormalizeAll(raws []models.RawStatement) ([]models.Statement, []models.Warning) {
	type result struct {
		stmt  models.Statement
		warns []models.Warning
	}
	results := iter.Map(raws, func(raw *models.RawStatement) result {
		stmt, warns := n.Normalize(*raw)
		return result{stmt: stmt, warns: warns}
	})

	statements := make([]models.Statement, 0, len(results))
	var warnings []models.Warning
	for _, r := range results {
		statements = append(statements, r.stmt)
		warnings = append(warnings, r.warns...)
	}
	return statements, warnings
}

// classifyShape dispatches on the record's structure instead of coercing
// fields ad hoc: canonical beats report_json beats flat breakdowns.
func classifyShape(raw models.RawStatement) rawShape {
	if hasKey(raw, "total_asset") && hasKey(raw, "total_liability") && hasKey(raw, "total_equity") &&
		hasKey(raw, "asset_breakdown") && hasKey(raw, "liability_breakdown") && hasKey(raw, "equity_breakdown") {
		return shapeCanonical
	}
	if _, ok := raw["report_json"].(map[string]any); ok {
		return shapeReportJSON
	}
	if hasKey(raw, "asset_breakdown") || hasKey(raw, "liability_breakdown") || hasKey(raw, "equity_breakdown") {
		return shapeBreakdown
	}
	return shapeUnknown
}

func hasKey(raw models.RawStatement, key string) bool {
	_, ok := raw[key]
	return ok
}

func getString(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

// getFloat reads a numeric field, coercing numeric strings; anything
// unparsable counts as 0.
func getFloat(raw map[string]any, key string) float64 {
	if v, ok := utils.ToFloat(raw[key]); ok {
		return v
	}
	return 0
}

// mapBreakdown converts a decoded JSON array into breakdown items. A missing
// value defaults to 0 silently; a present but non-numeric one defaults to 0
// with a bad_amount warning. Always returns a non-nil slice.
func mapBreakdown(v any, field string, warnings []models.Warning) ([]models.BreakdownItem, []models.Warning) {
	items := []models.BreakdownItem{}
	list, ok := v.([]any)
	if !ok {
		return items, warnings
	}
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		value, ok := utils.ToFloat(m["value"])
		if !ok {
			if _, present := m["value"]; present {
				warnings = append(warnings, models.Warning{
					Code:   models.WarnBadAmount,
					Field:  field,
					Detail: fmt.Sprintf("non-numeric value for %q in %s, using 0", getString(m, "name"), field),
				})
			}
			value = 0
		}
		items = append(items, models.BreakdownItem{
			Name:  getString(m, "name"),
			Value: value,
		})
	}
	return items, warnings
}

func sumBreakdown(items []models.BreakdownItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Value
	}
	return sum
}

// decodeCanonical treats the record as already canonical, backfilling ratios
// when absent.
func decodeCanonical(raw models.RawStatement) (models.Statement, []models.Warning) {
	var warnings []models.Warning
	stmt := models.Statement{
		Date:           getString(raw, "date"),
		TotalAsset:     getFloat(raw, "total_asset"),
		TotalLiability: getFloat(raw, "total_liability"),
		TotalEquity:    getFloat(raw, "total_equity"),
		NetIncome:      getFloat(raw, "net_income"),
	}
	stmt.AssetBreakdown, warnings = mapBreakdown(raw["asset_breakdown"], "asset_breakdown", warnings)
	stmt.LiabilityBreakdown, warnings = mapBreakdown(raw["liability_breakdown"], "liability_breakdown", warnings)
	stmt.EquityBreakdown, warnings = mapBreakdown(raw["equity_breakdown"], "equity_breakdown", warnings)
	warnings = dateWarning(stmt.Date, warnings)

	if ratios, ok := raw["ratios"].(map[string]any); ok {
		stmt.Ratios = models.Ratios{
			CurrentRatio:      getFloat(ratios, "current_ratio"),
			DebtToEquityRatio: getFloat(ratios, "debt_to_equity_ratio"),
			ReturnOnEquity:    getFloat(ratios, "return_on_equity"),
			EquityMultiplier:  getFloat(ratios, "equity_multiplier"),
			DebtRatio:         getFloat(ratios, "debt_ratio"),
			NetProfitMargin:   getFloat(ratios, "net_profit_margin"),
		}
	} else {
		stmt.Ratios = ComputeRatios(Totals{
			Asset:     stmt.TotalAsset,
			Liability: stmt.TotalLiability,
			Equity:    stmt.TotalEquity,
			NetIncome: stmt.NetIncome,
		})
	}
	return stmt, warnings
}

// decodeReportJSON extracts the nested report_json document: the first
// element of each of assets/liabilities/equity is the group's totals node,
// its sub_items become the breakdown.
func decodeReportJSON(raw models.RawStatement) (models.Statement, []models.Warning) {
	report, _ := raw["report_json"].(map[string]any)
	var warnings []models.Warning

	assetGroup := firstGroup(report, "assets")
	liabilityGroup := firstGroup(report, "liabilities")
	equityGroup := firstGroup(report, "equity")

	stmt := models.Statement{
		Date: firstNonEmpty(getString(raw, "date"), getString(report, "date")),
	}
	stmt.AssetBreakdown, warnings = mapBreakdown(groupField(assetGroup, "sub_items"), "asset_breakdown", warnings)
	stmt.LiabilityBreakdown, warnings = mapBreakdown(groupField(liabilityGroup, "sub_items"), "liability_breakdown", warnings)
	stmt.EquityBreakdown, warnings = mapBreakdown(groupField(equityGroup, "sub_items"), "equity_breakdown", warnings)
	warnings = dateWarning(stmt.Date, warnings)

	stmt.TotalAsset, warnings = groupTotal(assetGroup, raw, report, "total_asset", warnings)
	stmt.TotalLiability, warnings = groupTotal(liabilityGroup, raw, report, "total_liability", warnings)
	stmt.TotalEquity, warnings = groupTotal(equityGroup, raw, report, "total_equity", warnings)

	// Net income comes from an equity sub-item literally named "Net Income",
	// falling back to a top-level field, falling back to 0.
	stmt.NetIncome = netIncomeFromEquity(stmt.EquityBreakdown)
	if stmt.NetIncome == 0 {
		if v, ok := utils.ToFloat(raw["net_income"]); ok {
			stmt.NetIncome = v
		} else if v, ok := utils.ToFloat(report["net_income"]); ok {
			stmt.NetIncome = v
		}
	}

	stmt.Ratios = carryOrComputeRatios(raw, stmt)
	return stmt, warnings
}

// decodeBreakdown handles flat records carrying only *_breakdown arrays:
// totals come from explicit total_* fields, falling back to the breakdown
// sum, falling back to 1.
func decodeBreakdown(raw models.RawStatement) (models.Statement, []models.Warning) {
	var warnings []models.Warning

	stmt := models.Statement{
		Date:      getString(raw, "date"),
		NetIncome: getFloat(raw, "net_income"),
	}
	stmt.AssetBreakdown, warnings = mapBreakdown(raw["asset_breakdown"], "asset_breakdown", warnings)
	stmt.LiabilityBreakdown, warnings = mapBreakdown(raw["liability_breakdown"], "liability_breakdown", warnings)
	stmt.EquityBreakdown, warnings = mapBreakdown(raw["equity_breakdown"], "equity_breakdown", warnings)
	warnings = dateWarning(stmt.Date, warnings)

	stmt.TotalAsset, warnings = totalOrSum(raw, "total_asset", stmt.AssetBreakdown, warnings)
	stmt.TotalLiability, warnings = totalOrSum(raw, "total_liability", stmt.LiabilityBreakdown, warnings)
	stmt.TotalEquity, warnings = totalOrSum(raw, "total_equity", stmt.EquityBreakdown, warnings)

	if stmt.NetIncome == 0 {
		stmt.NetIncome = netIncomeFromEquity(stmt.EquityBreakdown)
	}

	stmt.Ratios = carryOrComputeRatios(raw, stmt)
	return stmt, warnings
}

// firstGroup returns the first element of a report_json group array
// (the group's own totals node), or nil.
func firstGroup(report map[string]any, key string) map[string]any {
	list, ok := report[key].([]any)
	if !ok || len(list) == 0 {
		return nil
	}
	group, _ := list[0].(map[string]any)
	return group
}

func groupField(group map[string]any, key string) any {
	if group == nil {
		return nil
	}
	return group[key]
}

// groupTotal resolves a group total: the group node's own value, then the
// top-level total_* field (record first, then report_json), then 1 so the
// ratio denominators stay defined.
func groupTotal(group map[string]any, raw models.RawStatement, report map[string]any, field string, warnings []models.Warning) (float64, []models.Warning) {
	if group != nil {
		if v, ok := utils.ToFloat(group["value"]); ok && v != 0 {
			return v, warnings
		}
	}
	if v, ok := utils.ToFloat(raw[field]); ok && v != 0 {
		return v, warnings
	}
	if v, ok := utils.ToFloat(report[field]); ok && v != 0 {
		return v, warnings
	}
	warnings = append(warnings, models.Warning{
		Code:   models.WarnDefaultedTotal,
		Field:  field,
		Detail: fmt.Sprintf("%s missing from report_json, defaulting to 1", field),
	})
	return 1, warnings
}

// totalOrSum resolves a flat-shape total: explicit field, then breakdown sum,
// then 1.
func totalOrSum(raw models.RawStatement, field string, items []models.BreakdownItem, warnings []models.Warning) (float64, []models.Warning) {
	if v, ok := utils.ToFloat(raw[field]); ok && v != 0 {
		return v, warnings
	}
	if sum := sumBreakdown(items); sum != 0 {
		return sum, warnings
	}
	warnings = append(warnings, models.Warning{
		Code:   models.WarnDefaultedTotal,
		Field:  field,
		Detail: fmt.Sprintf("%s missing and breakdown empty, defaulting to 1", field),
	})
	return 1, warnings
}

// dateWarning flags records arriving without any usable date. Downstream
// filters drop such statements, so callers should know at ingest time.
func dateWarning(date string, warnings []models.Warning) []models.Warning {
	if date == "" {
		warnings = append(warnings, models.Warning{
			Code:   models.WarnMissingDate,
			Field:  "date",
			Detail: "statement record carries no date",
		})
	}
	return warnings
}

func netIncomeFromEquity(items []models.BreakdownItem) float64 {
	for _, item := range items {
		if item.Name == "Net Income" {
			return item.Value
		}
	}
	return 0
}

func carryOrComputeRatios(raw models.RawStatement, stmt models.Statement) models.Ratios {
	if ratios, ok := raw["ratios"].(map[string]any); ok {
		return models.Ratios{
			CurrentRatio:      getFloat(ratios, "current_ratio"),
			DebtToEquityRatio: getFloat(ratios, "debt_to_equity_ratio"),
			ReturnOnEquity:    getFloat(ratios, "return_on_equity"),
			EquityMultiplier:  getFloat(ratios, "equity_multiplier"),
			DebtRatio:         getFloat(ratios, "debt_ratio"),
			NetProfitMargin:   getFloat(ratios, "net_profit_margin"),
		}
	}
	return ComputeRatios(Totals{
		Asset:     stmt.TotalAsset,
		Liability: stmt.TotalLiability,
		Equity:    stmt.TotalEquity,
		NetIncome: stmt.NetIncome,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// DefaultStatement returns the fixed demonstration statement used when a
// record matches no known shape, so downstream consumers never see a nil
// statement.
func DefaultStatement() models.Statement {
	stmt := models.Statement{
		Date:           time.Now().Format(utils.DefaultDateFormat),
		TotalAsset:     150000,
		TotalLiability: 60000,
		TotalEquity:    90000,
		NetIncome:      15000,
		AssetBreakdown: []models.BreakdownItem{
			{Name: "Cash", Value: 50000},
			{Name: "Accounts Receivable", Value: 30000},
			{Name: "Inventory", Value: 40000},
			{Name: "Property and Equipment", Value: 30000},
		},
		LiabilityBreakdown: []models.BreakdownItem{
			{Name: "Accounts Payable", Value: 25000},
			{Name: "Short-Term Debt", Value: 15000},
			{Name: "Long-Term Debt", Value: 20000},
		},
		EquityBreakdown: []models.BreakdownItem{
			{Name: "Common Stock", Value: 60000},
			{Name: "Retained Earnings", Value: 15000},
			{Name: "Net Income", Value: 15000},
		},
	}
	stmt.Ratios = ComputeRatios(Totals{
		Asset:     stmt.TotalAsset,
		Liability: stmt.TotalLiability,
		Equity:    stmt.TotalEquity,
		NetIncome: stmt.NetIncome,
	})
	return stmt
}
