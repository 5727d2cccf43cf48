package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
)

// ReviewMarkdown renders a performance review as markdown.
func ReviewMarkdown(r *Review) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Performance Review of %s", r.Account))
	doc.PlainText(fmt.Sprintf("From %s to %s", r.Range.From, r.Range.To))

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Header: []string{"", "Amount"},
		Rows: [][]string{
			{"Start Value", r.StartValue.String()},
			{"End Value", r.EndValue.String()},
			{"Net Cash Flow", r.NetCashFlow.SignedString()},
			{"Dividend Income", r.DividendIncome.String()},
			{"Realized Gain", r.RealizedGain.SignedString()},
			{"Unrealized Gain", r.UnrealizedGain.SignedString()},
		},
	})

	doc.H2("Returns")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"CAGR", percentCell(r.CAGR)},
			{"IRR (money weighted)", percentCell(r.IRR)},
			{"TWRR (time weighted)", percentCell(r.TWRR)},
			{"Dividend Yield", percentCell(r.DividendYield)},
		},
	})

	doc.H2("Risk")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Volatility", percentCell(r.Volatility)},
			{"Max Drawdown", percentCell(r.MaxDrawdown)},
			{"Sharpe Ratio", ratioCell(r.SharpeRatio)},
		},
	})

	return doc.String()
}

// percentCell formats an optional rate metric, n/a when absent.
func percentCell(m Metric) string {
	if !m.OK {
		return "n/a"
	}
	return m.Percent().SignedString()
}

// ratioCell formats an optional dimensionless metric.
func ratioCell(m Metric) string {
	if !m.OK {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", m.Value)
}
