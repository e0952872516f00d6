package repositories

import (
	"katalog/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository defines the data access surface for products, their
// images, categories, and the product-category relations.
type CatalogRepository interface {
	// WithTx returns a repository bound to the given open transaction.
	WithTx(tx *gorm.DB) CatalogRepository

	FindProducts(filter map[string]interface{}) ([]models.Product, error)
	CreateProduct(product *models.Product) error
	UpdateProduct(id string, product *models.Product) error
	DeleteProduct(id string) error

	CreateImages(images []models.ProductImage) error
	ReplaceImages(productID string, images []models.ProductImage) error
	ProductImages(productID string) ([]models.ProductImage, error)

	FindCategories(ids []string) ([]models.Category, error)
	CreateRelations(productID string, categoryIDs []string) error
	ReplaceRelations(productID string, categoryIDs []string) error

	CountProducts(search string) (int64, error)
	SearchProducts(search string, pagination Pagination) ([]models.Product, error)
}
