package memory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/domain/repositories"
)

// CatalogRepository provides in-memory catalog storage
type CatalogRepository struct {
	items []*entities.CatalogItem
	index map[string]*entities.CatalogItem
}

// NewCatalogRepository creates a new in-memory catalog repository with pre-allocated capacity
func NewCatalogRepository(expectedItems int) *CatalogRepository {
	return &CatalogRepository{
		items: make([]*entities.CatalogItem, 0, expectedItems),
		index: make(map[string]*entities.CatalogItem, expectedItems),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// LoadCatalogItems appends items, assigning IDs where missing
func (r *CatalogRepository) LoadCatalogItems(items []*entities.CatalogItem) error {
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if _, exists := r.index[item.ID]; exists {
			return fmt.Errorf("catalog item already exists: %s", item.ID)
		}
		r.index[item.ID] = item
		r.items = append(r.items, item)
	}
	return nil
}

// GetCatalogItem retrieves an item by ID
func (r *CatalogRepository) GetCatalogItem(id string) (*entities.CatalogItem, error) {
	item, exists := r.index[id]
	if !exists {
		return nil, fmt.Errorf("catalog item not found: %s", id)
	}
	return item, nil
}

// GetAllCatalogItems returns all items in insertion order
func (r *CatalogRepository) GetAllCatalogItems() ([]*entities.CatalogItem, error) {
	return append([]*entities.CatalogItem(nil), r.items...), nil
}
