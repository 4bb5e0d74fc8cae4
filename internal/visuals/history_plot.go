package visuals

import (
	"fmt"
	"io"

	"chartdesk/internal/chart"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const lineWidth = 2

// NewHistoryLine builds a rank-over-time line chart from a history matrix:
// one series per charted entry, aligned to the dense date axis. Weeks with
// no appearance break the line instead of plotting zero.
func NewHistoryLine(h *chart.History) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Chart history for %q", h.Query),
			Subtitle: "Weekly rank, 1 is the top position",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Type: "scroll"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Chart week"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Rank", Type: "value", Min: 1}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	line.SetXAxis(h.Dates)
	for j, col := range h.Columns {
		data := make([]opts.LineData, len(h.Dates))
		for i := range h.Dates {
			if rank := h.Ranks[i][j]; rank != 0 {
				data[i] = opts.LineData{Value: rank}
			} else {
				data[i] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries(col, data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
		)
	}

	return line
}

// RenderHistory writes the history chart as a self-contained HTML page.
func RenderHistory(w io.Writer, h *chart.History) error {
	return NewHistoryLine(h).Render(w)
}
