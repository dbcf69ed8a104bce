package bestseller

import (
	"bytes"
	"context"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const salesChartHeight = "240px"

// SalesChartHTML renders a bar chart of ordered quantities for report-mode widgets.
// Placeholder mode, an empty report, or a disabled option yield an empty string.
func (w *Widget) SalesChartHTML(ctx context.Context) (string, error) {
	cfg, err := w.Configuration()
	if err != nil {
		return "", err
	}
	if !cfg.ShowSalesChart() {
		return "", nil
	}
	rows, err := w.ReportRows(ctx)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	labels := make([]string, len(rows))
	data := make([]opts.BarData, len(rows))
	for i, row := range rows {
		label := row.ProductName
		if label == "" {
			label = row.ProductID
		}
		labels[i] = label
		data[i] = opts.BarData{Name: label, Value: row.QtyOrdered}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: cfg.Title(), Subtitle: cfg.Subtitle()}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "100%",
			Height: salesChartHeight,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("Qty ordered", data)
	return renderChart(bar)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
