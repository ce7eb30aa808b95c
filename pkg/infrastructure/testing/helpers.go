package testing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/infrastructure/events"
	"github.com/vsinha/backoffice/pkg/infrastructure/repositories/memory"
)

// ReferenceDay is the "today" the kitchen scenario is built around
var ReferenceDay = time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return ReferenceDay.AddDate(0, 0, offset)
}

// BuildKitchenStock builds a small restaurant stock covering every
// shelf-life status relative to ReferenceDay
func BuildKitchenStock() []*entities.StockLine {
	return []*entities.StockLine{
		{
			ID: "milk", Name: "Молоко 3.2%", Category: "Молочное", Supplier: "Ферма Озёры", Location: "FRIDGE_1",
			Quantity: decimal.RequireFromString("12"), Unit: entities.Liter, UnitPrice: decimal.RequireFromString("89.90"),
			ArrivalDate: day(-8), ExpiryDate: day(2),
			Flags: []entities.Flag{"Chilled", "Halal"},
		},
		{
			ID: "cream", Name: "Сливки 33%", Category: "Молочное", Supplier: "Ферма Озёры", Location: "FRIDGE_1",
			Quantity: decimal.RequireFromString("4.5"), Unit: entities.Liter, UnitPrice: decimal.RequireFromString("420"),
			ArrivalDate: day(-3), ExpiryDate: day(11),
			Flags: []entities.Flag{"Chilled"},
		},
		{
			ID: "salmon", Name: "Лосось охлаждённый", Category: "Рыба", Supplier: "Нордфиш", Location: "FRIDGE_2",
			Quantity: decimal.RequireFromString("7.25"), Unit: entities.Kilogram, UnitPrice: decimal.RequireFromString("1890"),
			ArrivalDate: day(-4), ExpiryDate: day(0),
			Flags: []entities.Flag{"Chilled", "Wild", "Sushi grade"},
		},
		{
			ID: "tofu", Name: "Тофу", Category: "Соя", Supplier: "EcoFood", Location: "FRIDGE_2",
			Quantity: decimal.RequireFromString("3"), Unit: entities.Kilogram, UnitPrice: decimal.RequireFromString("310"),
			ExpiryDate: day(1),
			Flags: []entities.Flag{"Vegan", "Halal", "Kosher", "Gluten free", "Organic"},
		},
		{
			ID: "flour", Name: "Мука пшеничная", Category: "Бакалея", Supplier: "Мельница №2", Location: "DRY_1",
			Quantity: decimal.RequireFromString("50"), Unit: entities.Kilogram, UnitPrice: decimal.RequireFromString("48"),
			ArrivalDate: day(-30),
		},
		{
			ID: "peas", Name: "Горошек зелёный", Category: "Заморозка", Supplier: "Нордфиш", Location: "FREEZER_1",
			Quantity: decimal.RequireFromString("10"), Unit: entities.Kilogram, UnitPrice: decimal.RequireFromString("150"),
			ArrivalDate: day(-20), ExpiryDate: day(160),
			Flags: []entities.Flag{"Frozen", "Vegan"},
		},
	}
}

// BuildStockLines builds n numbered stock lines named "item1".."itemN"
func BuildStockLines(n int) []*entities.StockLine {
	lines := make([]*entities.StockLine, 0, n)
	for i := 1; i <= n; i++ {
		lines = append(lines, &entities.StockLine{
			ID:          fmt.Sprintf("line-%03d", i),
			Name:        fmt.Sprintf("item%d", i),
			Location:    "DRY_1",
			Quantity:    decimal.NewFromInt(int64(i)),
			Unit:        entities.Piece,
			ArrivalDate: day(-i),
			ExpiryDate:  day(30 - i),
		})
	}
	return lines
}

// BuildKitchenRepository loads BuildKitchenStock into a repository wired to a fresh store
func BuildKitchenRepository() (*memory.StockRepository, *events.InMemoryEventStore) {
	store := events.NewInMemoryEventStore(nil)
	repo := memory.NewStockRepository(store)
	if err := repo.LoadStockLines(BuildKitchenStock()); err != nil {
		panic(fmt.Sprintf("failed to load kitchen stock: %v", err))
	}
	return repo, store
}
