package processors

import (
	"testing"
	"time"

	"github.com/username/finboard/backend/src/models"
)

func testStatement(date string, asset, liability, equity, netIncome float64) models.Statement {
	return models.Statement{
		Date:           date,
		TotalAsset:     asset,
		TotalLiability: liability,
		TotalEquity:    equity,
		NetIncome:      netIncome,
		Ratios: ComputeRatios(Totals{
			Asset:     asset,
			Liability: liability,
			Equity:    equity,
			NetIncome: netIncome,
		}),
	}
}

func TestBuildChartBundleEmptyInputs(t *testing.T) {
	bundle := BuildChartBundle(nil, nil, IntervalAllDates, time.Now())

	if len(bundle.MajorFinancials.Labels) != 0 {
		t.Errorf("labels = %v, want empty", bundle.MajorFinancials.Labels)
	}
	if len(bundle.MajorFinancials.Datasets) != 4 {
		t.Fatalf("got %d datasets, want 4", len(bundle.MajorFinancials.Datasets))
	}
	for _, ds := range bundle.MajorFinancials.Datasets {
		if ds.Data == nil || len(ds.Data) != 0 {
			t.Errorf("dataset %q data = %v, want empty non-nil", ds.Label, ds.Data)
		}
	}
	if len(bundle.Ratios) != 6 {
		t.Errorf("got %d ratio series, want 6", len(bundle.Ratios))
	}
	if len(bundle.Revenue.Labels) != 0 || len(bundle.Expense.Labels) != 0 || len(bundle.Profit.Labels) != 0 {
		t.Error("transaction series should be empty for empty input")
	}
}

func TestBuildChartBundleMajorFinancials(t *testing.T) {
	now := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
	statements := []models.Statement{
		testStatement("2023-09-30", 160000, 65000, 95000, 18000),
		testStatement("2023-03-31", 150000, 60000, 90000, 15000), // out of order on purpose
		testStatement("2023-06-30", 155000, 62000, 93000, 16000),
	}

	bundle := BuildChartBundle(statements, nil, IntervalYearToDate, now)

	wantLabels := []string{"Mar 2023", "Jun 2023", "Sep 2023"}
	if len(bundle.MajorFinancials.Labels) != 3 {
		t.Fatalf("labels = %v, want %v", bundle.MajorFinancials.Labels, wantLabels)
	}
	for i, want := range wantLabels {
		if bundle.MajorFinancials.Labels[i] != want {
			t.Errorf("labels[%d] = %q, want %q", i, bundle.MajorFinancials.Labels[i], want)
		}
	}

	assets := bundle.MajorFinancials.Datasets[0]
	if assets.Label != "Total Assets" {
		t.Errorf("datasets[0].Label = %q, want Total Assets", assets.Label)
	}
	if assets.Data[0] != 150000 || assets.Data[2] != 160000 {
		t.Errorf("asset data not sorted ascending by date: %v", assets.Data)
	}

	current := bundle.Ratios[RatioKeyCurrent]
	if len(current.Datasets) != 1 || current.Datasets[0].Data[0] != 2.5 {
		t.Errorf("current ratio series = %+v, want first point 2.5", current)
	}
	if len(current.Labels) != 3 {
		t.Errorf("ratio series labels = %v, want same labels as majorFinancials", current.Labels)
	}
}

func TestBuildChartBundleProfitFromStatements(t *testing.T) {
	now := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
	statements := []models.Statement{
		testStatement("2023-03-31", 150000, 60000, 90000, 15000),
		testStatement("2023-06-30", 155000, 62000, 93000, 16000),
	}
	txs := []models.Transaction{
		{Date: "2023-04-10", Amount: 500, Type: models.TransactionCredit},
	}

	bundle := BuildChartBundle(statements, txs, IntervalYearToDate, now)

	// Balance sheets exist for the range: profit tracks their net income.
	if len(bundle.Profit.Datasets) != 1 {
		t.Fatalf("profit datasets = %+v", bundle.Profit.Datasets)
	}
	data := bundle.Profit.Datasets[0].Data
	if len(data) != 2 || data[0] != 15000 || data[1] != 16000 {
		t.Errorf("profit data = %v, want [15000 16000]", data)
	}
}

func TestBuildChartBundleTransactionSeries(t *testing.T) {
	now := time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{Date: "2023-06-02", Amount: 300, Type: models.TransactionDebit},
		{Date: "2023-06-01", Amount: 1000, Type: models.TransactionCredit},
		{Date: "2023-06-01", Amount: 250, Type: models.TransactionCredit},
		{Date: "2023-06-03", Amount: 400, Type: models.TransactionCredit},
		{Date: "bad-date", Amount: 99, Type: models.TransactionCredit},
	}

	bundle := BuildChartBundle(nil, txs, IntervalLast30Days, now)

	// Revenue: per-day credit sums, ascending.
	revenue := bundle.Revenue
	if len(revenue.Labels) != 2 || revenue.Labels[0] != "2023-06-01" || revenue.Labels[1] != "2023-06-03" {
		t.Fatalf("revenue labels = %v", revenue.Labels)
	}
	if revenue.Datasets[0].Data[0] != 1250 || revenue.Datasets[0].Data[1] != 400 {
		t.Errorf("revenue data = %v, want [1250 400]", revenue.Datasets[0].Data)
	}

	expense := bundle.Expense
	if len(expense.Labels) != 1 || expense.Datasets[0].Data[0] != 300 {
		t.Errorf("expense series = %+v", expense)
	}

	// No balance sheets in range: profit is the running credit-minus-debit sum.
	profit := bundle.Profit
	wantDays := []string{"2023-06-01", "2023-06-02", "2023-06-03"}
	wantRunning := []float64{1250, 950, 1350}
	if len(profit.Labels) != 3 {
		t.Fatalf("profit labels = %v, want %v", profit.Labels, wantDays)
	}
	for i := range wantDays {
		if profit.Labels[i] != wantDays[i] {
			t.Errorf("profit labels[%d] = %q, want %q", i, profit.Labels[i], wantDays[i])
		}
		if profit.Datasets[0].Data[i] != wantRunning[i] {
			t.Errorf("profit data[%d] = %f, want %f", i, profit.Datasets[0].Data[i], wantRunning[i])
		}
	}
}

func TestBuildChartBundleAllDatesStillBoundsTransactions(t *testing.T) {
	now := time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		{Date: "2023-06-01", Amount: 100, Type: models.TransactionCredit},
		{Date: "2015-01-01", Amount: 100, Type: models.TransactionCredit}, // older than 5 years
	}

	bundle := BuildChartBundle(nil, txs, IntervalAllDates, now)
	if len(bundle.Revenue.Labels) != 1 {
		t.Errorf("revenue labels = %v, want the 5-year bound to drop the 2015 entry", bundle.Revenue.Labels)
	}
}
