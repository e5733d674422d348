package processors

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/finboard/backend/src/models"
	"github.com/username/finboard/backend/src/utils"
)

// Narrative thresholds for the closing assessment. Tighter than the
// interpretation ladders on purpose: only clear signals get called out.
const (
	currentRatioConcernBelow   = 1.2
	currentRatioStrengthOver   = 2.0
	debtToEquityConcernOver    = 1.5
	debtToEquityStrengthUnder  = 0.5
	returnOnEquityConcernBelow = 0.08
	returnOnEquityStrengthOver = 0.15
)

// BuildReport renders one canonical statement into the fixed markdown
// template: interval-keyed title, totals block, ratio table with one
// interpretation per ratio, asset breakdown, and a closing narrative built
// from threshold checks. Always returns a non-empty document.
func BuildReport(stmt models.Statement, interval string) string {
	var b strings.Builder

	b.WriteString("# " + reportTitle(stmt, interval) + "\n\n")

	b.WriteString("## Balance Sheet Summary\n\n")
	fmt.Fprintf(&b, "- **Report Date:** %s\n", stmt.Date)
	fmt.Fprintf(&b, "- **Total Assets:** %s\n", utils.FormatCurrency(stmt.TotalAsset))
	fmt.Fprintf(&b, "- **Total Liabilities:** %s\n", utils.FormatCurrency(stmt.TotalLiability))
	fmt.Fprintf(&b, "- **Total Equity:** %s\n", utils.FormatCurrency(stmt.TotalEquity))
	fmt.Fprintf(&b, "- **Net Income:** %s\n\n", utils.FormatCurrency(stmt.NetIncome))

	b.WriteString("## Financial Ratios\n\n")
	b.WriteString("| Ratio | Value | Interpretation |\n")
	b.WriteString("|-------|-------|----------------|\n")
	r := stmt.Ratios
	fmt.Fprintf(&b, "| Current Ratio | %s | %s |\n", utils.FormatRatio(r.CurrentRatio), InterpretCurrentRatio(r.CurrentRatio))
	fmt.Fprintf(&b, "| Debt to Equity Ratio | %s | %s |\n", utils.FormatRatio(r.DebtToEquityRatio), InterpretDebtToEquity(r.DebtToEquityRatio))
	fmt.Fprintf(&b, "| Return on Equity | %s | %s |\n", utils.FormatRatio(r.ReturnOnEquity), InterpretReturnOnEquity(r.ReturnOnEquity))
	fmt.Fprintf(&b, "| Equity Multiplier | %s | %s |\n", utils.FormatRatio(r.EquityMultiplier), InterpretEquityMultiplier(r.EquityMultiplier))
	fmt.Fprintf(&b, "| Debt Ratio | %s | %s |\n", utils.FormatRatio(r.DebtRatio), InterpretDebtRatio(r.DebtRatio))
	fmt.Fprintf(&b, "| Net Profit Margin | %s | %s |\n\n", utils.FormatRatio(r.NetProfitMargin), InterpretNetProfitMargin(r.NetProfitMargin))

	b.WriteString("## Asset Breakdown\n\n")
	if len(stmt.AssetBreakdown) == 0 {
		b.WriteString("No asset line items reported.\n\n")
	} else {
		for _, item := range stmt.AssetBreakdown {
			fmt.Fprintf(&b, "- %s: %s\n", item.Name, utils.FormatCurrency(item.Value))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Overall Assessment\n\n")
	b.WriteString(assessmentNarrative(r) + "\n")

	return b.String()
}

// reportTitle keys the document title off the interval, using the statement
// date for quarter/year context.
func reportTitle(stmt models.Statement, interval string) string {
	ts, ok := utils.ParseDate(stmt.Date)
	if !ok {
		ts = time.Now()
	}

	switch interval {
	case IntervalQuarterToDate, IntervalLastQuarter:
		quarter := (int(ts.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d %d Financial Report", quarter, ts.Year())
	case IntervalYearToDate:
		return fmt.Sprintf("%d Year-to-Date Financial Report", ts.Year())
	case IntervalLastYear:
		return fmt.Sprintf("%d Annual Financial Report", ts.Year())
	case IntervalLast30Days:
		return fmt.Sprintf("%s Financial Report", utils.MonthLabel(ts))
	default:
		return fmt.Sprintf("Financial Report as of %s", stmt.Date)
	}
}

// assessmentNarrative assembles the closing paragraph from threshold checks,
// appending strength and concern phrases. A neutral fallback covers the case
// where nothing triggers.
func assessmentNarrative(r models.Ratios) string {
	var strengths, concerns []string

	if r.CurrentRatio > currentRatioStrengthOver {
		strengths = append(strengths, fmt.Sprintf("a current ratio of %s indicates strong short-term liquidity", utils.FormatRatio(r.CurrentRatio)))
	} else if r.CurrentRatio < currentRatioConcernBelow {
		concerns = append(concerns, fmt.Sprintf("a current ratio of %s leaves little room to cover short-term obligations", utils.FormatRatio(r.CurrentRatio)))
	}

	if r.DebtToEquityRatio < debtToEquityStrengthUnder {
		strengths = append(strengths, fmt.Sprintf("a debt-to-equity ratio of %s reflects a conservative capital structure", utils.FormatRatio(r.DebtToEquityRatio)))
	} else if r.DebtToEquityRatio > debtToEquityConcernOver {
		concerns = append(concerns, fmt.Sprintf("a debt-to-equity ratio of %s signals heavy reliance on debt financing", utils.FormatRatio(r.DebtToEquityRatio)))
	}

	if r.ReturnOnEquity > returnOnEquityStrengthOver {
		strengths = append(strengths, fmt.Sprintf("return on equity of %s shows efficient use of shareholder capital", utils.FormatRatio(r.ReturnOnEquity)))
	} else if r.ReturnOnEquity < returnOnEquityConcernBelow {
		concerns = append(concerns, fmt.Sprintf("return on equity of %s is below what shareholders should expect", utils.FormatRatio(r.ReturnOnEquity)))
	}

	if len(strengths) == 0 && len(concerns) == 0 {
		return "The company's financial position appears stable, with no notable strengths or concerns in the core ratios."
	}

	var parts []string
	if len(strengths) > 0 {
		parts = append(parts, "Strengths: "+strings.Join(strengths, "; ")+".")
	}
	if len(concerns) > 0 {
		parts = append(parts, "Concerns: "+strings.Join(concerns, "; ")+".")
	}
	return strings.Join(parts, " ")
}
