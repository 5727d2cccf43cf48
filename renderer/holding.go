package renderer

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"
)

// HoldingMarkdown renders a holding report as markdown.
func HoldingMarkdown(h *Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Holdings of %s on %s", h.Account, h.Date))
	doc.PlainText(fmt.Sprintf("Total Value: %s (cash %s)", h.TotalValue, h.Cash))

	if len(h.Securities) > 0 {
		doc.H2("Securities")
		table := md.TableSet{
			Header: []string{"Symbol", "Quantity", "Avg Cost", "Price", "Market Value"},
		}
		for _, s := range h.Securities {
			price, value := "n/a", "n/a"
			if s.Priced {
				price, value = s.Price.String(), s.MarketValue.String()
			}
			table.Rows = append(table.Rows, []string{
				s.Symbol, s.Quantity.String(), s.AvgCost.String(), price, value,
			})
		}
		doc.Table(table)

		doc.PlainText(fmt.Sprintf("Cost Basis: %s", h.CostBasis))
		doc.PlainText(fmt.Sprintf("Unrealized Gain: %s", h.UnrealizedGain.SignedString()))
	}

	if len(h.MissingSymbols) > 0 {
		doc.PlainText(fmt.Sprintf("No price found for: %s. Their value is not included above.",
			strings.Join(h.MissingSymbols, ", ")))
	}

	return doc.String()
}
