package portfolio

import "github.com/shopspring/decimal"

// Quantity represents an amount of a security, possibly fractional.
type Quantity struct{ value decimal.Decimal }

// Q builds a Quantity from any numeric value.
func Q[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	default:
		panic("unsupported numeric type")
	}
}

func (q Quantity) String() string                  { return q.value.String() }
func (q Quantity) Decimal() decimal.Decimal        { return q.value }
func (q Quantity) Float64() float64                { return q.value.InexactFloat64() }
func (q Quantity) Equal(r Quantity) bool           { return q.value.Equal(r.value) }
func (q Quantity) IsZero() bool                    { return q.value.IsZero() }
func (q Quantity) IsPositive() bool                { return q.value.IsPositive() }
func (q Quantity) IsNegative() bool                { return q.value.IsNegative() }
func (q Quantity) LessThan(r Quantity) bool        { return q.value.LessThan(r.value) }
func (q Quantity) GreaterThan(r Quantity) bool     { return q.value.GreaterThan(r.value) }
func (q Quantity) Add(r Quantity) Quantity         { return Quantity{value: q.value.Add(r.value)} }
func (q Quantity) Sub(r Quantity) Quantity         { return Quantity{value: q.value.Sub(r.value)} }
func (q Quantity) Neg() Quantity                   { return Quantity{value: q.value.Neg()} }
