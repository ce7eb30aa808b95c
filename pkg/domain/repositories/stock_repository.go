package repositories

import "github.com/vsinha/backoffice/pkg/domain/entities"

// StockRepository provides access to stock lines
type StockRepository interface {
	GetStockLine(id string) (*entities.StockLine, error)
	GetAllStockLines() ([]*entities.StockLine, error)
	LoadStockLines(lines []*entities.StockLine) error
	SaveStockLine(line *entities.StockLine) error
	UpdateStockLine(line *entities.StockLine) error
	DeleteStockLine(id string) error
}

// CatalogRepository provides access to catalog items
type CatalogRepository interface {
	GetCatalogItem(id string) (*entities.CatalogItem, error)
	GetAllCatalogItems() ([]*entities.CatalogItem, error)
	LoadCatalogItems(items []*entities.CatalogItem) error
}
