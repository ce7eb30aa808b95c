package tableview

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/domain/services/tablequery"
	"github.com/vsinha/backoffice/pkg/infrastructure/metrics"
	testhelpers "github.com/vsinha/backoffice/pkg/infrastructure/testing"
)

func newStockView(t *testing.T, pageSize int, opts ...Option) *StockView {
	t.Helper()
	columns, err := StockColumns(nil, testhelpers.ReferenceDay)
	require.NoError(t, err)
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	view, err := NewStockView(columns, pageSize, nil, opts...)
	require.NoError(t, err)
	return view
}

func names(lines []*entities.StockLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Name
	}
	return out
}

func ids(lines []*entities.StockLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.ID
	}
	return out
}

func TestNewViewStartsEmpty(t *testing.T) {
	view := newStockView(t, 10)

	result := view.Result()
	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 0, result.TotalCount)
}

func TestNewViewRejectsInvalidPageSize(t *testing.T) {
	columns, err := StockColumns(nil, testhelpers.ReferenceDay)
	require.NoError(t, err)

	_, err = NewStockView(columns, 0, nil)
	assert.ErrorIs(t, err, tablequery.ErrInvalidPageSize)
}

func TestViewPaging(t *testing.T) {
	view := newStockView(t, 10)
	require.NoError(t, view.SetItems(testhelpers.BuildStockLines(25), tablequery.ResetPage))

	result := view.Result()
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 25, result.TotalCount)
	assert.Len(t, result.Items, 10)

	require.NoError(t, view.SetPage(3))
	assert.Equal(t, []string{"item21", "item22", "item23", "item24", "item25"}, names(view.Result().Items))

	require.NoError(t, view.SetPage(9))
	assert.Equal(t, 3, view.Result().Page)
	assert.Equal(t, 3, view.State().Page)

	require.NoError(t, view.SetPage(-1))
	assert.Equal(t, 1, view.Result().Page)
}

func TestViewAppendJumpsToLastPage(t *testing.T) {
	view := newStockView(t, 10)
	lines := testhelpers.BuildStockLines(31)
	require.NoError(t, view.SetItems(lines[:30], tablequery.ResetPage))
	require.Equal(t, 1, view.Result().Page)

	require.NoError(t, view.Append(lines[30]))

	result := view.Result()
	assert.Equal(t, 4, result.Page)
	assert.Equal(t, 4, result.TotalPages)
	assert.Equal(t, []string{"item31"}, names(result.Items))
}

func TestViewAppendWithSearchKeepsPage(t *testing.T) {
	view := newStockView(t, 5)
	lines := testhelpers.BuildStockLines(21)
	require.NoError(t, view.SetItems(lines[:20], tablequery.ResetPage))
	require.NoError(t, view.SetSearch("item1"))
	// item1, item10..item19
	require.Equal(t, 11, view.Result().TotalCount)
	require.NoError(t, view.SetPage(2))

	require.NoError(t, view.Append(lines[20]))

	result := view.Result()
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 11, result.TotalCount)
	assert.Equal(t, 21, view.Len())
}

func TestViewAppendNothingKeepsPage(t *testing.T) {
	view := newStockView(t, 10)
	require.NoError(t, view.SetItems(testhelpers.BuildStockLines(25), tablequery.ResetPage))
	require.NoError(t, view.SetPage(2))

	require.NoError(t, view.Append())
	assert.Equal(t, 2, view.Result().Page)
}

func TestViewRemoveClampsPage(t *testing.T) {
	view := newStockView(t, 10)
	require.NoError(t, view.SetItems(testhelpers.BuildStockLines(21), tablequery.ResetPage))
	require.NoError(t, view.SetPage(3))
	require.Equal(t, []string{"item21"}, names(view.Result().Items))

	require.NoError(t, view.RemoveFunc(func(s *entities.StockLine) bool { return s.ID == "line-021" }))

	result := view.Result()
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 20, result.TotalCount)
}

func TestViewReplaceKeepsPage(t *testing.T) {
	view := newStockView(t, 10)
	lines := testhelpers.BuildStockLines(25)
	require.NoError(t, view.SetItems(lines, tablequery.ResetPage))
	require.NoError(t, view.SetPage(2))

	renamed := lines[14].Clone()
	renamed.Name = "renamed"
	replaced, err := view.ReplaceFunc(func(s *entities.StockLine) bool { return s.ID == renamed.ID }, renamed)
	require.NoError(t, err)
	assert.True(t, replaced)

	result := view.Result()
	assert.Equal(t, 2, result.Page)
	assert.Contains(t, names(result.Items), "renamed")

	replaced, err = view.ReplaceFunc(func(s *entities.StockLine) bool { return s.ID == "missing" }, renamed)
	require.NoError(t, err)
	assert.False(t, replaced)
}

func TestViewSearchResetsPage(t *testing.T) {
	view := newStockView(t, 10)
	require.NoError(t, view.SetItems(testhelpers.BuildStockLines(25), tablequery.ResetPage))
	require.NoError(t, view.SetPage(3))

	require.NoError(t, view.SetSearch("item2"))

	result := view.Result()
	assert.Equal(t, 1, result.Page)
	// item2, item20..item25
	assert.Equal(t, 7, result.TotalCount)
	assert.Equal(t, "item2", view.State().SearchText)
}

func TestViewToggleSort(t *testing.T) {
	view := newStockView(t, 3)
	require.NoError(t, view.SetItems(testhelpers.BuildStockLines(12), tablequery.ResetPage))
	require.NoError(t, view.SetPage(2))

	require.NoError(t, view.ToggleSort("name"))
	assert.Equal(t, 1, view.Result().Page)
	assert.Equal(t, []string{"item1", "item2", "item3"}, names(view.Result().Items))

	require.NoError(t, view.ToggleSort("name"))
	assert.Equal(t, tablequery.Descending, view.State().Sort.Direction)
	assert.Equal(t, []string{"item12", "item11", "item10"}, names(view.Result().Items))

	require.NoError(t, view.SetSort(nil))
	assert.Nil(t, view.State().Sort)
	assert.Equal(t, []string{"item1", "item2", "item3"}, names(view.Result().Items))
}

func TestViewRejectedChangesLeaveStateAlone(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	view := newStockView(t, 10, WithMetrics(m))
	require.NoError(t, view.SetItems(testhelpers.BuildStockLines(25), tablequery.ResetPage))
	require.NoError(t, view.SetPage(2))

	err := view.ToggleSort("colour")
	assert.ErrorIs(t, err, tablequery.ErrUnknownColumn)
	assert.Nil(t, view.State().Sort)

	err = view.SetPageSize(0)
	assert.ErrorIs(t, err, tablequery.ErrInvalidPageSize)
	assert.Equal(t, 10, view.State().PageSize)
	assert.Equal(t, 2, view.Result().Page)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecomputeErrors))
}

func TestViewSetPageSizeResetsPage(t *testing.T) {
	view := newStockView(t, 10)
	require.NoError(t, view.SetItems(testhelpers.BuildStockLines(25), tablequery.ResetPage))
	require.NoError(t, view.SetPage(3))

	require.NoError(t, view.SetPageSize(5))

	result := view.Result()
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 5, result.TotalPages)
	assert.Len(t, result.Items, 5)
}

func TestViewRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	view := newStockView(t, 10, WithMetrics(m))

	require.NoError(t, view.SetItems(testhelpers.BuildStockLines(5), tablequery.ResetPage))
	require.NoError(t, view.SetPage(1))
	require.NoError(t, view.Append(testhelpers.BuildStockLines(1)...))

	// New counts as one reset
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecomputeTotal.WithLabelValues("stock", "reset")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecomputeTotal.WithLabelValues("stock", "preserve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecomputeTotal.WithLabelValues("stock", "appended")))
}

func TestViewOwnsItsItems(t *testing.T) {
	view := newStockView(t, 10)
	lines := testhelpers.BuildStockLines(3)
	require.NoError(t, view.SetItems(lines, tablequery.ResetPage))

	lines[0] = &entities.StockLine{ID: "other", Name: "other"}
	assert.Equal(t, []string{"line-001", "line-002", "line-003"}, ids(view.Result().Items))
}
