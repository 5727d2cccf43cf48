package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ngaillard/portfolio"
)

// ValueChartPNG renders the valuation series of an account as a PNG line
// chart with two series, market value and cost basis. Returns raw PNG bytes.
func ValueChartPNG(account string, points []portfolio.ValuationPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 valuation points, got %d", len(points))
	}

	xValues := make([]time.Time, len(points))
	valueY := make([]float64, len(points))
	basisY := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = p.On.Time()
		valueY[i] = p.TotalValue.Float64()
		basisY[i] = p.CostBasis.Float64()
	}

	valueSeries := chart.TimeSeries{
		Name: "Market Value",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: valueY,
	}
	basisSeries := chart.TimeSeries{
		Name: "Cost Basis",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: basisY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Value of %s", account),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		Series: []chart.Series{valueSeries, basisSeries},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
