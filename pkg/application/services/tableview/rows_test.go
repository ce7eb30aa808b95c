package tableview

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/domain/services/shelflife"
	"github.com/vsinha/backoffice/pkg/domain/services/tablequery"
	"github.com/vsinha/backoffice/pkg/infrastructure/metrics"
	testhelpers "github.com/vsinha/backoffice/pkg/infrastructure/testing"
)

func kitchenLine(t *testing.T, id string) *entities.StockLine {
	t.Helper()
	for _, line := range testhelpers.BuildKitchenStock() {
		if line.ID == id {
			return line
		}
	}
	t.Fatalf("no kitchen line %q", id)
	return nil
}

func newRowBuilder(t *testing.T, m *metrics.Metrics) *RowBuilder {
	t.Helper()
	b, err := NewRowBuilder(RowBuilderConfig{
		Reference: testhelpers.ReferenceDay,
		ChipWidth: 24,
		ChipGap:   1,
		Metrics:   m,
	})
	require.NoError(t, err)
	return b
}

func TestRowFormatsLine(t *testing.T) {
	b := newRowBuilder(t, nil)

	row := b.Row(kitchenLine(t, "tofu"))

	assert.Equal(t, "tofu", row.ID)
	assert.Equal(t, "Тофу", row.Name)
	assert.Equal(t, "3", row.Quantity)
	assert.Equal(t, "kg", row.Unit)
	assert.Equal(t, "310.00", row.UnitPrice)
	assert.Equal(t, "930.00", row.TotalValue)
	assert.Empty(t, row.ArrivalDate)
	assert.Equal(t, "2024-01-10", row.ExpiryDate)
	assert.Equal(t, shelflife.Warning, row.Status)
}

func TestRowLaysOutFlags(t *testing.T) {
	b := newRowBuilder(t, nil)

	tests := []struct {
		id          string
		wantVisible int
		wantHidden  int
		wantMore    string
		wantTooltip string
	}{
		{"tofu", 2, 3, "+3", "Kosher, Gluten free, Organic"},
		{"salmon", 2, 1, "+1", "Sushi grade"},
		{"milk", 2, 0, "", ""},
		{"flour", 0, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			row := b.Row(kitchenLine(t, tt.id))
			assert.Equal(t, tt.wantVisible, row.Flags.VisibleCount)
			assert.Equal(t, tt.wantHidden, row.Flags.HiddenCount)
			assert.Equal(t, tt.wantMore, row.Flags.MoreLabel)
			assert.Equal(t, tt.wantTooltip, row.Flags.Tooltip)
		})
	}
}

func TestRowStatuses(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	b := newRowBuilder(t, m)

	want := map[string]shelflife.Status{
		"milk":   shelflife.Warning,
		"cream":  shelflife.Ok,
		"salmon": shelflife.Expired,
		"tofu":   shelflife.Warning,
		"flour":  shelflife.Ok,
		"peas":   shelflife.Ok,
	}
	for _, line := range testhelpers.BuildKitchenStock() {
		assert.Equal(t, want[line.ID], b.Row(line).Status, line.ID)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.ClassifiedTotal.WithLabelValues("Ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ClassifiedTotal.WithLabelValues("Warning")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClassifiedTotal.WithLabelValues("Expired")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.LayoutPassesTotal))
}

func TestRowRefreshesStatusAfterEdit(t *testing.T) {
	b := newRowBuilder(t, nil)
	line := kitchenLine(t, "cream")
	require.Equal(t, shelflife.Ok, b.Row(line).Status)

	line.ExpiryDate = testhelpers.ReferenceDay
	assert.Equal(t, shelflife.Expired, b.Row(line).Status)
}

func TestPageCarriesQueryState(t *testing.T) {
	view := kitchenView(t)
	require.NoError(t, view.SetSort(&tablequery.SortState{Key: "name", Direction: tablequery.Descending}))
	require.NoError(t, view.SetPageSize(4))
	b := newRowBuilder(t, nil)

	page := b.Page(view.Result(), view.State())

	assert.Len(t, page.Rows, 4)
	assert.Equal(t, "tofu", page.Rows[0].ID)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 6, page.TotalCount)
	assert.Equal(t, 4, page.PageSize)
	assert.Equal(t, "name", page.SortKey)
	assert.Equal(t, "desc", page.SortDirection)
	assert.Equal(t, "2024-01-09", page.Reference)
}
