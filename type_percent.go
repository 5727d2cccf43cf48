package portfolio

import "fmt"

// Percent represents a rate of return or ratio, where 0.045 means 4.5%.
type Percent float64

// String formats the percent with two decimals, like "4.50%".
func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)*100) }

// SignedString is like String with an explicit sign for positive values.
func (p Percent) SignedString() string {
	if p > 0 {
		return "+" + p.String()
	}
	return p.String()
}

// Float64 returns the rate as a plain fraction.
func (p Percent) Float64() float64 { return float64(p) }

// Equal compares two percents at a tolerance far below display precision.
func (p Percent) Equal(q Percent) bool {
	d := float64(p) - float64(q)
	return d < 1e-9 && d > -1e-9
}
