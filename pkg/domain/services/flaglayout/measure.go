package flaglayout

import "github.com/mattn/go-runewidth"

// Measurer returns the rendered width of a chip label
type Measurer interface {
	Measure(label string) float64
}

// CellMeasurer measures labels in terminal cells, adding Padding cells on
// each side for the chip border.
type CellMeasurer struct {
	Padding int
}

// Measure returns the label's display width in cells
func (m CellMeasurer) Measure(label string) float64 {
	return float64(runewidth.StringWidth(label) + 2*m.Padding)
}

// MeasureChips measures each label with m
func MeasureChips(m Measurer, labels []string) []Chip {
	chips := make([]Chip, len(labels))
	for i, l := range labels {
		chips[i] = Chip{Label: l, Width: m.Measure(l)}
	}
	return chips
}

// MoreWidth returns a MoreWidthFunc that measures the "+N" caption with m
func MoreWidth(m Measurer) MoreWidthFunc {
	return func(count int) float64 {
		return m.Measure(MoreLabel(count))
	}
}
