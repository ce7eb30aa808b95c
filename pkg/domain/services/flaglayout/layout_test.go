package flaglayout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedMore(w float64) MoreWidthFunc {
	return func(int) float64 { return w }
}

func TestLayout(t *testing.T) {
	testCases := []struct {
		name      string
		widths    []float64
		available float64
		gap       float64
		more      MoreWidthFunc
		expected  Result
	}{
		{"no chips", nil, 120, 8, fixedMore(30), Result{}},
		{"no chips without width", []float64{}, 0, 8, fixedMore(30), Result{}},
		{"reserve for overflow chip", []float64{50, 50, 50}, 120, 8, fixedMore(30), Result{VisibleCount: 1, HiddenCount: 2}},
		{"everything fits", []float64{50, 50, 50}, 166, 8, fixedMore(30), Result{VisibleCount: 3}},
		{"last chip needs no reserve", []float64{50, 50}, 108, 8, fixedMore(30), Result{VisibleCount: 2}},
		{"two fit with reserve", []float64{30, 30, 30, 30}, 106, 8, fixedMore(30), Result{VisibleCount: 2, HiddenCount: 2}},
		{"first chip too wide is still shown", []float64{500, 20}, 120, 8, fixedMore(30), Result{VisibleCount: 1, HiddenCount: 1}},
		{"zero width is unconstrained", []float64{50, 50, 50}, 0, 8, fixedMore(30), Result{VisibleCount: 3}},
		{"negative width is unconstrained", []float64{50, 50}, -10, 8, fixedMore(30), Result{VisibleCount: 2}},
		{"nil more width", []float64{50, 50, 50}, 116, 8, nil, Result{VisibleCount: 2, HiddenCount: 1}},
		{"unmeasured chip counts as zero", []float64{50, math.NaN(), 50}, 116, 8, fixedMore(30), Result{VisibleCount: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Layout(tc.widths, tc.available, tc.gap, tc.more))
		})
	}
}

func TestLayout_MoreWidthDependsOnCount(t *testing.T) {
	var asked []int
	more := func(n int) float64 {
		asked = append(asked, n)
		if n >= 10 {
			return 40
		}
		return 30
	}
	widths := make([]float64, 12)
	for i := range widths {
		widths[i] = 10
	}

	res := Layout(widths, 65, 2, more)
	assert.Equal(t, Result{VisibleCount: 2, HiddenCount: 10}, res)
	assert.Equal(t, []int{11, 10, 9}, asked)
}

func TestLayout_Idempotent(t *testing.T) {
	widths := []float64{40, 25, 60, 18}
	first := Layout(widths, 100, 4, fixedMore(20))
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Layout(widths, 100, 4, fixedMore(20)))
	}
}

func TestLayoutChips_Summary(t *testing.T) {
	chips := []Chip{{"Vegan", 50}, {"Halal", 50}, {"Frozen", 50}}

	s := LayoutChips(chips, 120, 8, fixedMore(30))
	assert.Equal(t, Result{VisibleCount: 1, HiddenCount: 2}, s.Result)
	assert.Equal(t, []Chip{{"Vegan", 50}}, s.Visible)
	assert.Equal(t, "+2", s.MoreLabel)
	assert.Equal(t, "Halal, Frozen", s.Tooltip)

	s = LayoutChips(chips, 500, 8, fixedMore(30))
	assert.Equal(t, 3, s.VisibleCount)
	assert.Empty(t, s.Hidden)
	assert.Empty(t, s.MoreLabel)
	assert.Empty(t, s.Tooltip)

	s = LayoutChips(nil, 100, 8, fixedMore(30))
	assert.Equal(t, Result{}, s.Result)
	assert.Empty(t, s.Visible)
}

func TestLayoutLabels(t *testing.T) {
	s, err := LayoutLabels([]string{"a", "b"}, []float64{10, 10}, 100, 1, fixedMore(3))
	require.NoError(t, err)
	assert.Equal(t, 2, s.VisibleCount)

	_, err = LayoutLabels([]string{"a"}, []float64{10, 10}, 100, 1, fixedMore(3))
	assert.ErrorIs(t, err, ErrMismatchedChips)
}

func TestCellMeasurer(t *testing.T) {
	m := CellMeasurer{Padding: 1}
	assert.Equal(t, 7.0, m.Measure("Vegan"))
	assert.Equal(t, 8.0, m.Measure("Халяль"))
	assert.Equal(t, 4.0, MoreWidth(m)(2))
	assert.Equal(t, 5.0, MoreWidth(m)(12))

	chips := MeasureChips(m, []string{"Vegan", "Eco"})
	assert.Equal(t, []Chip{{"Vegan", 7}, {"Eco", 5}}, chips)
}
