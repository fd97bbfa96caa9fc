// Package entry provides the immutable data-point and series-collection
// types consumed by the chart renderers.
package entry

// Entry is one (x, y) data point. Entries are compared by value, and that
// value identity is what style overrides and marker lookups match against.
type Entry struct {
	X float64
	Y float64
}

// Pt is shorthand for constructing an Entry.
func Pt(x, y float64) Entry {
	return Entry{X: x, Y: y}
}
