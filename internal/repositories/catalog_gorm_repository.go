package repositories

import (
	"fmt"
	"strconv"

	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// WithTx returns a repository bound to the given open transaction.
func (r *GORMCatalogRepository) WithTx(tx *gorm.DB) CatalogRepository {
	return &GORMCatalogRepository{db: tx}
}

// FindProducts retrieves products matching the column filter.
func (r *GORMCatalogRepository) FindProducts(filter map[string]interface{}) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where(filter).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

// CreateProduct creates a new product row, generating its id if absent.
func (r *GORMCatalogRepository) CreateProduct(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct overwrites the mutable fields of an existing product.
func (r *GORMCatalogRepository) UpdateProduct(id string, product *models.Product) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Select("product_name", "description", "product_details", "price", "color", "rating", "reviews", "brand").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update", id)
	}
	return nil
}

// DeleteProduct deletes a product row along with its owned image and
// relation rows.
func (r *GORMCatalogRepository) DeleteProduct(id string) error {
	if err := r.db.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
		return fmt.Errorf("failed to delete relations for product %s: %w", id, err)
	}
	if err := r.db.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
		return fmt.Errorf("failed to delete images for product %s: %w", id, err)
	}
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	return nil
}

// CreateImages inserts image rows, generating ids as needed.
func (r *GORMCatalogRepository) CreateImages(images []models.ProductImage) error {
	for i := range images {
		if images[i].ID == "" {
			images[i].ID = uuid.New().String()
		}
	}
	if err := r.db.Create(&images).Error; err != nil {
		return fmt.Errorf("failed to create product images: %w", err)
	}
	return nil
}

// ReplaceImages drops a product's image rows and inserts the new set.
func (r *GORMCatalogRepository) ReplaceImages(productID string, images []models.ProductImage) error {
	if err := r.db.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		return fmt.Errorf("failed to delete old images for product %s: %w", productID, err)
	}
	return r.CreateImages(images)
}

// ProductImages retrieves the image rows belonging to a product.
func (r *GORMCatalogRepository) ProductImages(productID string) ([]models.ProductImage, error) {
	var images []models.ProductImage
	if err := r.db.Where("product_id = ?", productID).Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to get images for product %s: %w", productID, err)
	}
	return images, nil
}

// FindCategories resolves the requested category ids to existing rows.
// Callers compare the result count against the request count.
func (r *GORMCatalogRepository) FindCategories(ids []string) ([]models.Category, error) {
	numericIDs, err := parseCategoryIDs(ids)
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := r.db.Where("id IN ?", numericIDs).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

// CreateRelations links a product to each of the given categories.
func (r *GORMCatalogRepository) CreateRelations(productID string, categoryIDs []string) error {
	numericIDs, err := parseCategoryIDs(categoryIDs)
	if err != nil {
		return err
	}
	relations := make([]models.ProductCategory, 0, len(numericIDs))
	for _, categoryID := range numericIDs {
		relations = append(relations, models.ProductCategory{
			ProductID:  productID,
			CategoryID: categoryID,
		})
	}
	if err := r.db.Create(&relations).Error; err != nil {
		return fmt.Errorf("failed to create category relations: %w", err)
	}
	return nil
}

// ReplaceRelations swaps a product's category links for the given set.
func (r *GORMCatalogRepository) ReplaceRelations(productID string, categoryIDs []string) error {
	if err := r.db.Where("product_id = ?", productID).Delete(&models.ProductCategory{}).Error; err != nil {
		return fmt.Errorf("failed to delete old relations for product %s: %w", productID, err)
	}
	return r.CreateRelations(productID, categoryIDs)
}

// CountProducts counts the products matching the free-text search term.
func (r *GORMCatalogRepository) CountProducts(search string) (int64, error) {
	var total int64
	if err := r.searchScope(search).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// SearchProducts fetches one page of products matching the search term.
func (r *GORMCatalogRepository) SearchProducts(search string, pagination Pagination) ([]models.Product, error) {
	var products []models.Product
	err := r.searchScope(search).
		Order(pagination.OrderClause()).
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// searchScope matches the term against productName, description, color,
// and the names of linked categories.
func (r *GORMCatalogRepository) searchScope(search string) *gorm.DB {
	query := r.db.Model(&models.Product{})
	if search == "" {
		return query
	}
	like := "%" + search + "%"
	byCategory := r.db.Model(&models.ProductCategory{}).
		Select("product_categories.product_id").
		Joins("JOIN categories ON categories.id = product_categories.category_id").
		Where("categories.category_name LIKE ?", like)
	return query.Where(
		"products.product_name LIKE ? OR products.description LIKE ? OR products.color LIKE ? OR products.id IN (?)",
		like, like, like, byCategory,
	)
}

func parseCategoryIDs(ids []string) ([]uint, error) {
	numericIDs := make([]uint, 0, len(ids))
	for _, id := range ids {
		parsed, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid category id %q: %w", id, err)
		}
		numericIDs = append(numericIDs, uint(parsed))
	}
	return numericIDs, nil
}
