// Package flaglayout decides how many flag chips fit in a row and summarizes
// the rest behind a "+N" chip.
package flaglayout

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrMismatchedChips is returned when labels and widths differ in length
var ErrMismatchedChips = errors.New("labels and widths must have the same length")

// Result is the outcome of one layout pass
type Result struct {
	VisibleCount int `json:"visible_count"`
	HiddenCount  int `json:"hidden_count"`
}

// MoreWidthFunc returns the width of the "+N" chip for count hidden chips
type MoreWidthFunc func(count int) float64

// Layout packs chips greedily in priority order. widths[i] is the measured
// width of chip i. A chip is accepted only if it fits together with the "+N"
// chip still needed for the chips after it. At least one chip is always
// visible. A non-positive availableWidth means layout has not settled yet and
// shows every chip.
func Layout(widths []float64, availableWidth, gap float64, moreWidthFor MoreWidthFunc) Result {
	total := len(widths)
	if total == 0 {
		return Result{}
	}
	if !(availableWidth > 0) {
		return Result{VisibleCount: total}
	}
	gap = sanitize(gap)

	visible := 0
	used := 0.0
	for i, w := range widths {
		w = sanitize(w)

		step := w
		if visible > 0 {
			step += gap
		}
		required := used + step
		if remaining := total - (i + 1); remaining > 0 {
			required += gap + moreWidth(moreWidthFor, remaining)
		}
		if required > availableWidth {
			break
		}
		visible++
		used += step
	}

	if visible == 0 {
		visible = 1
	}
	return Result{VisibleCount: visible, HiddenCount: total - visible}
}

func moreWidth(fn MoreWidthFunc, count int) float64 {
	if fn == nil {
		return 0
	}
	return sanitize(fn(count))
}

// sanitize maps unmeasurable widths to zero
func sanitize(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0
	}
	return w
}

// Chip is a measured label
type Chip struct {
	Label string  `json:"label"`
	Width float64 `json:"width"`
}

// Summary is a layout result with the chips split into visible and hidden
type Summary struct {
	Result
	Visible []Chip `json:"visible"`
	Hidden  []Chip `json:"hidden,omitempty"`
	// MoreLabel is the "+N" caption, empty when nothing is hidden
	MoreLabel string `json:"more_label,omitempty"`
	// Tooltip lists the hidden labels in their original order
	Tooltip string `json:"tooltip,omitempty"`
}

// LayoutChips runs Layout over chips and splits them
func LayoutChips(chips []Chip, availableWidth, gap float64, moreWidthFor MoreWidthFunc) Summary {
	widths := make([]float64, len(chips))
	for i, c := range chips {
		widths[i] = c.Width
	}
	res := Layout(widths, availableWidth, gap, moreWidthFor)

	s := Summary{
		Result:  res,
		Visible: append([]Chip(nil), chips[:res.VisibleCount]...),
	}
	if res.HiddenCount > 0 {
		s.Hidden = append([]Chip(nil), chips[res.VisibleCount:]...)
		s.MoreLabel = MoreLabel(res.HiddenCount)
		s.Tooltip = Tooltip(s.Hidden)
	}
	return s
}

// LayoutLabels pairs labels with their measured widths and lays them out
func LayoutLabels(labels []string, widths []float64, availableWidth, gap float64, moreWidthFor MoreWidthFunc) (Summary, error) {
	if len(labels) != len(widths) {
		return Summary{}, fmt.Errorf("%w: %d labels, %d widths", ErrMismatchedChips, len(labels), len(widths))
	}
	chips := make([]Chip, len(labels))
	for i := range labels {
		chips[i] = Chip{Label: labels[i], Width: widths[i]}
	}
	return LayoutChips(chips, availableWidth, gap, moreWidthFor), nil
}

// MoreLabel returns the caption of the overflow chip
func MoreLabel(hidden int) string {
	return fmt.Sprintf("+%d", hidden)
}

// Tooltip joins chip labels with ", "
func Tooltip(chips []Chip) string {
	labels := make([]string, len(chips))
	for i, c := range chips {
		labels[i] = c.Label
	}
	return strings.Join(labels, ", ")
}
