package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockLine_Validation(t *testing.T) {
	arrival := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := arrival.AddDate(0, 0, 10)

	validLine, err := NewStockLine("Молоко", "FRIDGE_1", decimal.RequireFromString("12.5"), Liter, arrival, expiry)
	require.NoError(t, err)
	assert.Equal(t, "12.5", validLine.Quantity.String())
	assert.Equal(t, expiry, validLine.ExpiryDate)

	testCases := []struct {
		name        string
		lineName    string
		location    string
		quantity    decimal.Decimal
		unit        Unit
		expectError string
	}{
		{"empty name", "", "FRIDGE_1", decimal.NewFromInt(1), Liter, "name cannot be empty"},
		{"blank name", "   ", "FRIDGE_1", decimal.NewFromInt(1), Liter, "name cannot be empty"},
		{"empty location", "Milk", "", decimal.NewFromInt(1), Liter, "location cannot be empty"},
		{"negative quantity", "Milk", "FRIDGE_1", decimal.NewFromInt(-5), Liter, "quantity cannot be negative, got -5"},
		{"empty unit", "Milk", "FRIDGE_1", decimal.NewFromInt(1), "", "unit cannot be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStockLine(tc.lineName, tc.location, tc.quantity, tc.unit, arrival, expiry)
			require.Error(t, err)
			assert.EqualError(t, err, tc.expectError)
		})
	}
}

func TestStockLine_TotalValue(t *testing.T) {
	line := &StockLine{
		Quantity:  decimal.RequireFromString("2.5"),
		UnitPrice: decimal.RequireFromString("80.40"),
	}
	assert.True(t, decimal.RequireFromString("201").Equal(line.TotalValue()))
}

func TestStockLine_CloneDoesNotShareFlags(t *testing.T) {
	line := (&StockLine{Name: "Tofu"}).WithFlags("Vegan", "Chilled")
	clone := line.Clone()
	clone.Flags[0] = "Changed"

	assert.Equal(t, Flag("Vegan"), line.Flags[0])
	assert.Equal(t, "Tofu", clone.Name)
}

func TestCatalogItem_Validation(t *testing.T) {
	item, err := NewCatalogItem("Tofu", "Soy", Kilogram, 14, "Vegan", " vegan ", "", "Halal")
	require.NoError(t, err)
	assert.Equal(t, []Flag{"Vegan", "Halal"}, item.Flags)

	testCases := []struct {
		name        string
		itemName    string
		unit        Unit
		shelfLife   int
		expectError string
	}{
		{"empty name", "", Kilogram, 1, "name cannot be empty"},
		{"empty unit", "Tofu", "", 1, "unit cannot be empty"},
		{"negative shelf life", "Tofu", Kilogram, -3, "shelf life cannot be negative, got -3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalogItem(tc.itemName, "Soy", tc.unit, tc.shelfLife)
			assert.EqualError(t, err, tc.expectError)
		})
	}
}

func TestParseFlags(t *testing.T) {
	assert.Nil(t, ParseFlags(""))
	assert.Equal(t, []Flag{"Vegan", "Frozen"}, ParseFlags("Vegan| Frozen |vegan||"))
	assert.Equal(t, []string{"Vegan", "Frozen"}, FlagLabels(ParseFlags("Vegan|Frozen")))
}
