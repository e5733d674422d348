package processors

import (
	"sort"
	"time"

	"github.com/username/finboard/backend/src/models"
	"github.com/username/finboard/backend/src/utils"
)

// Ratio series keys as the frontend expects them.
const (
	RatioKeyCurrent          = "currentRatio"
	RatioKeyDebtToEquity     = "debtToEquityRatio"
	RatioKeyReturnOnEquity   = "returnOnEquity"
	RatioKeyEquityMultiplier = "equityMultiplier"
	RatioKeyDebt             = "debtRatio"
	RatioKeyNetProfitMargin  = "netProfitMargin"
)

// BuildChartBundle turns canonical statements and transactions into the full
// set of chart-ready series for one interval. Empty inputs produce series
// with empty labels/data, never nil datasets.
func BuildChartBundle(statements []models.Statement, transactions []models.Transaction, interval string, now time.Time) models.ChartBundle {
	inRange := SortStatementsByDate(FilterStatementsByInterval(statements, interval, now))

	labels := make([]string, 0, len(inRange))
	assets := make([]float64, 0, len(inRange))
	liabilities := make([]float64, 0, len(inRange))
	equity := make([]float64, 0, len(inRange))
	netIncome := make([]float64, 0, len(inRange))
	ratioData := map[string][]float64{
		RatioKeyCurrent:          make([]float64, 0, len(inRange)),
		RatioKeyDebtToEquity:     make([]float64, 0, len(inRange)),
		RatioKeyReturnOnEquity:   make([]float64, 0, len(inRange)),
		RatioKeyEquityMultiplier: make([]float64, 0, len(inRange)),
		RatioKeyDebt:             make([]float64, 0, len(inRange)),
		RatioKeyNetProfitMargin:  make([]float64, 0, len(inRange)),
	}

	for _, s := range inRange {
		label := s.Date
		if ts, ok := utils.ParseDate(s.Date); ok {
			label = utils.MonthLabel(ts)
		}
		labels = append(labels, label)
		assets = append(assets, s.TotalAsset)
		liabilities = append(liabilities, s.TotalLiability)
		equity = append(equity, s.TotalEquity)
		netIncome = append(netIncome, s.NetIncome)

		ratioData[RatioKeyCurrent] = append(ratioData[RatioKeyCurrent], s.Ratios.CurrentRatio)
		ratioData[RatioKeyDebtToEquity] = append(ratioData[RatioKeyDebtToEquity], s.Ratios.DebtToEquityRatio)
		ratioData[RatioKeyReturnOnEquity] = append(ratioData[RatioKeyReturnOnEquity], s.Ratios.ReturnOnEquity)
		ratioData[RatioKeyEquityMultiplier] = append(ratioData[RatioKeyEquityMultiplier], s.Ratios.EquityMultiplier)
		ratioData[RatioKeyDebt] = append(ratioData[RatioKeyDebt], s.Ratios.DebtRatio)
		ratioData[RatioKeyNetProfitMargin] = append(ratioData[RatioKeyNetProfitMargin], s.Ratios.NetProfitMargin)
	}

	ratioLabels := map[string]string{
		RatioKeyCurrent:          "Current Ratio",
		RatioKeyDebtToEquity:     "Debt to Equity Ratio",
		RatioKeyReturnOnEquity:   "Return on Equity",
		RatioKeyEquityMultiplier: "Equity Multiplier",
		RatioKeyDebt:             "Debt Ratio",
		RatioKeyNetProfitMargin:  "Net Profit Margin",
	}
	ratios := make(map[string]models.Series, len(ratioData))
	for key, data := range ratioData {
		ratios[key] = singleLineSeries(labels, ratioLabels[key], data)
	}

	revenue, expense, txProfit := buildTransactionSeries(transactions, interval, now)

	profit := txProfit
	if len(inRange) > 0 {
		// Balance sheets exist for the range: profit comes from their net
		// income instead of the transaction running sum.
		profit = singleLineSeries(labels, "Profit", netIncome)
	}

	return models.ChartBundle{
		MajorFinancials: models.Series{
			Labels: labels,
			Datasets: []models.Dataset{
				{Label: "Total Assets", Data: assets},
				{Label: "Total Liabilities", Data: liabilities},
				{Label: "Total Equity", Data: equity},
				{Label: "Net Income", Data: netIncome},
			},
		},
		Ratios:  ratios,
		Revenue: revenue,
		Expense: expense,
		Profit:  profit,
	}
}

// buildTransactionSeries groups transactions by calendar day: credits sum
// into revenue, debits into expense, and the fallback profit series is the
// running credit-minus-debit total per day. All series run ascending by date.
func buildTransactionSeries(transactions []models.Transaction, interval string, now time.Time) (revenue, expense, profit models.Series) {
	start := IntervalStartDate(interval, now)
	inRange := FilterTransactionsByRange(transactions, start, now)

	credits := make(map[string]float64)
	debits := make(map[string]float64)
	for _, tx := range inRange {
		ts, ok := utils.ParseDate(tx.Date)
		if !ok {
			continue
		}
		day := utils.DayKey(ts)
		switch tx.Type {
		case models.TransactionCredit:
			credits[day] += tx.Amount
		case models.TransactionDebit:
			debits[day] += tx.Amount
		}
	}

	revenue = dailySeries("Revenue", credits)
	expense = dailySeries("Expense", debits)

	// Running profit over the union of all active days.
	daySet := make(map[string]bool, len(credits)+len(debits))
	for day := range credits {
		daySet[day] = true
	}
	for day := range debits {
		daySet[day] = true
	}
	days := make([]string, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Strings(days)

	running := 0.0
	profitData := make([]float64, 0, len(days))
	for _, day := range days {
		running += credits[day] - debits[day]
		profitData = append(profitData, running)
	}
	profit = singleLineSeries(days, "Profit", profitData)
	return revenue, expense, profit
}

// dailySeries sorts a day->amount map into a single-line series. Day keys
// are ISO dates, so lexicographic order is chronological order.
func dailySeries(label string, buckets map[string]float64) models.Series {
	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	data := make([]float64, 0, len(days))
	for _, day := range days {
		data = append(data, buckets[day])
	}
	return singleLineSeries(days, label, data)
}

func singleLineSeries(labels []string, label string, data []float64) models.Series {
	return models.Series{
		Labels:   labels,
		Datasets: []models.Dataset{{Label: label, Data: data}},
	}
}
