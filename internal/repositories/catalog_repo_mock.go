package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockCatalogRepository is an in-memory implementation of CatalogRepository.
// It has no real transaction semantics; WithTx returns the same store.
type MockCatalogRepository struct {
	products   map[string]models.Product
	images     map[string][]models.ProductImage
	categories map[uint]models.Category
	relations  map[string][]string
	mu         sync.RWMutex
}

// NewMockCatalogRepository creates a new instance of MockCatalogRepository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		products:   make(map[string]models.Product),
		images:     make(map[string][]models.ProductImage),
		categories: make(map[uint]models.Category),
		relations:  make(map[string][]string),
	}
}

// WithTx returns the same store; the mock has no transactions.
func (r *MockCatalogRepository) WithTx(_ *gorm.DB) CatalogRepository {
	return r
}

// SeedCategory adds a category to the in-memory store.
func (r *MockCatalogRepository) SeedCategory(category models.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = category
}

// FindProducts returns products matching the column filter.
func (r *MockCatalogRepository) FindProducts(filter map[string]interface{}) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.Product, 0)
	for _, p := range r.products {
		if matchesFilter(p, filter) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func matchesFilter(p models.Product, filter map[string]interface{}) bool {
	for column, want := range filter {
		var got interface{}
		switch column {
		case "id":
			got = p.ID
		case "product_name":
			got = p.ProductName
		default:
			return false
		}
		if got != want {
			return false
		}
	}
	return true
}

// CreateProduct adds a product, generating its id if absent.
func (r *MockCatalogRepository) CreateProduct(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// UpdateProduct overwrites an existing product's fields.
func (r *MockCatalogRepository) UpdateProduct(id string, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %s not found for update", id)
	}
	updated := *product
	updated.ID = id
	r.products[id] = updated
	return nil
}

// DeleteProduct removes a product and its owned rows.
func (r *MockCatalogRepository) DeleteProduct(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	delete(r.products, id)
	delete(r.images, id)
	delete(r.relations, id)
	return nil
}

// CreateImages adds image rows, generating ids as needed.
func (r *MockCatalogRepository) CreateImages(images []models.ProductImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range images {
		if images[i].ID == "" {
			images[i].ID = uuid.New().String()
		}
		r.images[images[i].ProductID] = append(r.images[images[i].ProductID], images[i])
	}
	return nil
}

// ReplaceImages swaps a product's image rows for the given set.
func (r *MockCatalogRepository) ReplaceImages(productID string, images []models.ProductImage) error {
	r.mu.Lock()
	delete(r.images, productID)
	r.mu.Unlock()
	return r.CreateImages(images)
}

// ProductImages returns the image rows belonging to a product.
func (r *MockCatalogRepository) ProductImages(productID string) ([]models.ProductImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.ProductImage(nil), r.images[productID]...), nil
}

// FindCategories resolves the requested ids to seeded categories.
func (r *MockCatalogRepository) FindCategories(ids []string) ([]models.Category, error) {
	numericIDs, err := parseCategoryIDs(ids)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]models.Category, 0, len(numericIDs))
	for _, id := range numericIDs {
		if category, ok := r.categories[id]; ok {
			found = append(found, category)
		}
	}
	return found, nil
}

// CreateRelations links a product to the given categories.
func (r *MockCatalogRepository) CreateRelations(productID string, categoryIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.relations[productID] = append(r.relations[productID], categoryIDs...)
	return nil
}

// ReplaceRelations swaps a product's category links for the given set.
func (r *MockCatalogRepository) ReplaceRelations(productID string, categoryIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.relations[productID] = append([]string(nil), categoryIDs...)
	return nil
}

// CountProducts counts products matching the search term.
func (r *MockCatalogRepository) CountProducts(search string) (int64, error) {
	matches, err := r.searchAll(search)
	return int64(len(matches)), err
}

// SearchProducts returns one page of products matching the search term,
// ordered by product name for stable paging.
func (r *MockCatalogRepository) SearchProducts(search string, pagination Pagination) ([]models.Product, error) {
	matches, err := r.searchAll(search)
	if err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].ProductName < matches[j].ProductName
	})

	start := pagination.Offset()
	if start >= len(matches) {
		return []models.Product{}, nil
	}
	end := start + pagination.Limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], nil
}

func (r *MockCatalogRepository) searchAll(search string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if search == "" ||
			strings.Contains(p.ProductName, search) ||
			strings.Contains(p.Description, search) ||
			strings.Contains(p.Color, search) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}
