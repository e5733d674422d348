package models

// Dataset is one labeled line within a chart series.
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// Series is a chart-ready, ordered sequence of points. Labels and every
// dataset's Data run in parallel. Colors and styling belong to the frontend.
type Series struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// ChartBundle is the full set of series the dashboard renders for one
// interval: the combined totals chart, one single-line series per ratio,
// and the three transaction-derived series.
type ChartBundle struct {
	MajorFinancials Series            `json:"majorFinancials"`
	Ratios          map[string]Series `json:"ratios"`
	Revenue         Series            `json:"revenue"`
	Expense         Series            `json:"expense"`
	Profit          Series            `json:"profit"`
}
