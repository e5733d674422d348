package models

import "encoding/json"

// RawStatement is a balance-sheet record as received from the storage/API
// layer. The shape is not guaranteed: it may already be canonical, carry a
// nested report_json document, or expose flat *_breakdown arrays. The
// normalizer classifies and converts it; nothing else should touch it.
type RawStatement map[string]any

// BreakdownItem is a single named line item (e.g. "Cash") inside an asset,
// liability or equity breakdown.
type BreakdownItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Ratios holds the six standard ratios derived from statement totals.
type Ratios struct {
	CurrentRatio      float64 `json:"current_ratio"`
	DebtToEquityRatio float64 `json:"debt_to_equity_ratio"`
	ReturnOnEquity    float64 `json:"return_on_equity"`
	EquityMultiplier  float64 `json:"equity_multiplier"`
	DebtRatio         float64 `json:"debt_ratio"`
	NetProfitMargin   float64 `json:"net_profit_margin"`
}

// Statement is the canonical balance-sheet record produced by the
// normalizer. Totals, breakdown slices and ratios are always populated;
// consumers never have to nil-check them.
type Statement struct {
	Date               string          `json:"date"`
	TotalAsset         float64         `json:"total_asset"`
	TotalLiability     float64         `json:"total_liability"`
	TotalEquity        float64         `json:"total_equity"`
	NetIncome          float64         `json:"net_income"`
	AssetBreakdown     []BreakdownItem `json:"asset_breakdown"`
	LiabilityBreakdown []BreakdownItem `json:"liability_breakdown"`
	EquityBreakdown    []BreakdownItem `json:"equity_breakdown"`
	Ratios             Ratios          `json:"ratios"`
}

// AsRaw round-trips a canonical statement back into the loose input
// representation. Normalizing the result is a no-op besides ratio backfill.
func (s Statement) AsRaw() RawStatement {
	data, err := json.Marshal(s)
	if err != nil {
		return RawStatement{}
	}
	var raw RawStatement
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawStatement{}
	}
	return raw
}

// WarningCode identifies which fallback path the normalizer or a filter took.
type WarningCode string

const (
	WarnUnrecognizedShape WarningCode = "unrecognized_shape"
	WarnMissingDate       WarningCode = "missing_date"
	WarnDefaultedTotal    WarningCode = "defaulted_total"
	WarnBadAmount         WarningCode = "bad_amount"
)

// Warning is a structured diagnostic emitted instead of an error when a
// decoding step degrades to a default. The pipeline always produces a
// renderable result; warnings tell callers (and tests) what was substituted.
type Warning struct {
	Code   WarningCode `json:"code"`
	Field  string      `json:"field,omitempty"`
	Detail string      `json:"detail,omitempty"`
}
