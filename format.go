package chartwise

import "strconv"

// ValueFormatter produces the display text for a data label. The frame's
// chart values are supplied so formatters can adapt precision to the
// visible range.
type ValueFormatter interface {
	Format(value float64, vals ChartValues) string
}

// DecimalFormatter is the default ValueFormatter: plain decimal notation
// with a fixed number of fraction digits.
type DecimalFormatter struct {
	Digits int
}

func (d DecimalFormatter) Format(value float64, _ ChartValues) string {
	return strconv.FormatFloat(value, 'f', d.Digits, 64)
}
