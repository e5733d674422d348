package processors

import (
	"github.com/username/finboard/backend/src/models"
)

// Totals carries the aggregate figures the ratio formulas derive from.
type Totals struct {
	Asset     float64
	Liability float64
	Equity    float64
	NetIncome float64
}

// safeDenominator substitutes 1 for a zero total so every ratio stays
// defined. This is a documented approximation, not an accounting convention:
// a zero-equity company gets a misleading ratio instead of NaN/Inf.
func safeDenominator(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// ComputeRatios derives the six standard solvency/profitability ratios from
// statement totals. Plain floating-point division, no rounding; formatting
// is a presentation concern.
func ComputeRatios(t Totals) models.Ratios {
	asset := safeDenominator(t.Asset)
	liability := safeDenominator(t.Liability)
	equity := safeDenominator(t.Equity)

	return models.Ratios{
		CurrentRatio:      t.Asset / liability,
		DebtToEquityRatio: t.Liability / equity,
		ReturnOnEquity:    t.NetIncome / equity,
		EquityMultiplier:  t.Asset / equity,
		DebtRatio:         t.Liability / asset,
		NetProfitMargin:   t.NetIncome / asset,
	}
}

// The interpretation ladders below are ordered; the first matching threshold
// wins. They feed the ratio table in the markdown report.

// InterpretCurrentRatio classifies liquidity.
func InterpretCurrentRatio(v float64) string {
	switch {
	case v < 1:
		return "Poor liquidity; current obligations exceed liquid resources."
	case v < 1.5:
		return "Acceptable liquidity, though the buffer over obligations is thin."
	case v < 3:
		return "Good liquidity with a comfortable buffer over current obligations."
	default:
		return "Excellent liquidity; assets may be underutilized."
	}
}

// InterpretDebtToEquity classifies leverage against shareholder capital.
func InterpretDebtToEquity(v float64) string {
	switch {
	case v < 0.3:
		return "Low leverage; a conservative capital structure."
	case v < 1:
		return "Moderate leverage at a sustainable level."
	case v < 2:
		return "High leverage; debt load carries meaningful risk."
	default:
		return "Very high leverage; debt dependence is a significant risk."
	}
}

// InterpretReturnOnEquity classifies profitability on shareholder capital.
func InterpretReturnOnEquity(v float64) string {
	switch {
	case v < 0.05:
		return "Poor return on shareholder capital."
	case v < 0.1:
		return "Acceptable return on shareholder capital."
	case v < 0.2:
		return "Good return on shareholder capital."
	default:
		return "Excellent return on shareholder capital."
	}
}

// InterpretDebtRatio classifies how much of the asset base debt finances.
func InterpretDebtRatio(v float64) string {
	switch {
	case v < 0.3:
		return "Low share of assets financed by debt."
	case v < 0.5:
		return "Moderate share of assets financed by debt."
	case v < 0.7:
		return "High share of assets financed by debt."
	default:
		return "Very high share of assets financed by debt."
	}
}

// InterpretEquityMultiplier classifies balance-sheet leverage.
func InterpretEquityMultiplier(v float64) string {
	switch {
	case v < 1.5:
		return "Low balance-sheet leverage."
	case v < 2.5:
		return "Moderate balance-sheet leverage."
	case v < 4:
		return "Elevated balance-sheet leverage."
	default:
		return "High balance-sheet leverage."
	}
}

// InterpretNetProfitMargin classifies profitability on the asset base.
func InterpretNetProfitMargin(v float64) string {
	switch {
	case v < 0.05:
		return "Thin margin relative to the asset base."
	case v < 0.1:
		return "Modest margin relative to the asset base."
	case v < 0.2:
		return "Healthy margin relative to the asset base."
	default:
		return "Strong margin relative to the asset base."
	}
}
