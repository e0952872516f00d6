package services

import (
	"log"
	"mime/multipart"

	"katalog/internal/apperrors"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/validation"
	"katalog/pkg/rabbitmq"
)

// ImageStore is the file storage surface the catalog workflows need.
type ImageStore interface {
	Save(file *multipart.FileHeader, productID string) (string, error)
	Remove(path string) error
}

// ProductPage is the paginated listing payload.
type ProductPage struct {
	Data  []models.Product `json:"data"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
	Total int64            `json:"total"`
}

// CatalogService orchestrates the product workflows: existence checks,
// persistence, image files, and category relations, under one transaction
// for the mutating paths.
type CatalogService struct {
	repo   repositories.CatalogRepository
	txm    *repositories.TxManager
	images ImageStore
	events *rabbitmq.Client
}

// NewCatalogService creates a new CatalogService. The events client may be
// nil; lifecycle events are then skipped.
func NewCatalogService(
	repo repositories.CatalogRepository,
	txm *repositories.TxManager,
	images ImageStore,
	events *rabbitmq.Client,
) *CatalogService {
	return &CatalogService{
		repo:   repo,
		txm:    txm,
		images: images,
		events: events,
	}
}

// CreateProduct runs the create workflow: uniqueness check, product row,
// image files and rows, category resolution, relation rows. Everything is
// committed together or not at all.
func (s *CatalogService) CreateProduct(req *validation.ProductRequest, files []*multipart.FileHeader) (*models.Product, error) {
	tx, err := s.txm.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	repo := s.repo.WithTx(tx.DB())

	existing, err := repo.FindProducts(map[string]interface{}{"product_name": req.ProductName})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperrors.BadRequest("Product already exists.")
	}

	product := productFromRequest(req)
	if err := repo.CreateProduct(product); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, apperrors.BadRequest("Image is required")
	}
	saved, err := s.saveImages(repo, files, product.ID)
	if err != nil {
		return nil, err
	}

	if err := s.linkCategories(repo, product.ID, req.CategoryIDs, false); err != nil {
		s.discardFiles(saved)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.discardFiles(saved)
		return nil, err
	}

	s.publish(rabbitmq.EventProductCreated, product.ID, product)
	return product, nil
}

// ListProducts returns one page of products matching the search term. An
// empty page is reported as not found.
func (s *CatalogService) ListProducts(q *validation.ListQuery) (*ProductPage, error) {
	pagination := repositories.NewPagination(q.Page, q.Limit, q.SortBy, q.SortOrder)

	total, err := s.repo.CountProducts(q.Search)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.SearchProducts(q.Search, pagination)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.NotFound("Product not found.")
	}

	return &ProductPage{
		Data:  products,
		Page:  pagination.Page,
		Limit: pagination.Limit,
		Total: total,
	}, nil
}

// GetProduct looks up a single product by id.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	products, err := s.repo.FindProducts(map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.NotFound("Product not found.")
	}
	return &products[0], nil
}

// UpdateProduct runs the update workflow: field updates, replacement of
// image files and rows, and wholesale replacement of category relations.
// A failed delete of a prior image file aborts the whole operation.
func (s *CatalogService) UpdateProduct(id string, req *validation.ProductRequest, files []*multipart.FileHeader) error {
	tx, err := s.txm.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	repo := s.repo.WithTx(tx.DB())

	existing, err := repo.FindProducts(map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return apperrors.NotFound("Product not found.")
	}

	product := productFromRequest(req)
	if err := repo.UpdateProduct(id, product); err != nil {
		return err
	}

	oldImages, err := repo.ProductImages(id)
	if err != nil {
		return err
	}
	for _, image := range oldImages {
		if err := s.images.Remove(image.ImageURL); err != nil {
			log.Printf("Failed to delete image file %s: %v", image.ImageURL, err)
			return apperrors.BadRequest("Error deleting file")
		}
	}

	if len(files) == 0 {
		return apperrors.BadRequest("Image is required")
	}
	saved, err := s.replaceImages(repo, files, id)
	if err != nil {
		return err
	}

	if err := s.linkCategories(repo, id, req.CategoryIDs, true); err != nil {
		s.discardFiles(saved)
		return err
	}

	if err := tx.Commit(); err != nil {
		s.discardFiles(saved)
		return err
	}

	s.publish(rabbitmq.EventProductUpdated, id, product)
	return nil
}

// DeleteProduct removes a product, its image files, and its owned rows.
// This path runs without a transaction; a failed file delete aborts before
// the row delete.
func (s *CatalogService) DeleteProduct(id string) error {
	products, err := s.repo.FindProducts(map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return apperrors.NotFound("Product not found.")
	}

	images, err := s.repo.ProductImages(id)
	if err != nil {
		return err
	}
	for _, image := range images {
		if err := s.images.Remove(image.ImageURL); err != nil {
			log.Printf("Failed to delete image file %s: %v", image.ImageURL, err)
			return apperrors.BadRequest("Error deleting file")
		}
	}

	if err := s.repo.DeleteProduct(id); err != nil {
		return err
	}

	s.publish(rabbitmq.EventProductDeleted, id, nil)
	return nil
}

// saveImages writes each uploaded file to disk and inserts the image rows.
// Files already written are discarded again when a later step fails.
func (s *CatalogService) saveImages(repo repositories.CatalogRepository, files []*multipart.FileHeader, productID string) ([]string, error) {
	saved := make([]string, 0, len(files))
	images := make([]models.ProductImage, 0, len(files))
	for _, file := range files {
		path, err := s.images.Save(file, productID)
		if err != nil {
			s.discardFiles(saved)
			return nil, apperrors.BadRequest("Error saving file")
		}
		saved = append(saved, path)
		images = append(images, models.ProductImage{ProductID: productID, ImageURL: path})
	}
	if err := repo.CreateImages(images); err != nil {
		s.discardFiles(saved)
		return nil, err
	}
	return saved, nil
}

// replaceImages writes the new files and swaps the product's image rows.
func (s *CatalogService) replaceImages(repo repositories.CatalogRepository, files []*multipart.FileHeader, productID string) ([]string, error) {
	saved := make([]string, 0, len(files))
	images := make([]models.ProductImage, 0, len(files))
	for _, file := range files {
		path, err := s.images.Save(file, productID)
		if err != nil {
			s.discardFiles(saved)
			return nil, apperrors.BadRequest("Error saving file")
		}
		saved = append(saved, path)
		images = append(images, models.ProductImage{ProductID: productID, ImageURL: path})
	}
	if err := repo.ReplaceImages(productID, images); err != nil {
		s.discardFiles(saved)
		return nil, err
	}
	return saved, nil
}

// linkCategories resolves every requested category id and writes the
// relation rows. The resolved count must equal the requested count.
func (s *CatalogService) linkCategories(repo repositories.CatalogRepository, productID string, categoryIDs []string, replace bool) error {
	if len(categoryIDs) == 0 {
		return apperrors.BadRequest("Category is required")
	}

	found, err := repo.FindCategories(categoryIDs)
	if err != nil {
		return err
	}
	if len(found) != len(categoryIDs) {
		return apperrors.NotFound("Some category IDs are not found")
	}

	if replace {
		return repo.ReplaceRelations(productID, categoryIDs)
	}
	return repo.CreateRelations(productID, categoryIDs)
}

// discardFiles removes files written during a failed workflow, best effort.
func (s *CatalogService) discardFiles(paths []string) {
	for _, path := range paths {
		if err := s.images.Remove(path); err != nil {
			log.Printf("Failed to discard image file %s: %v", path, err)
		}
	}
}

func (s *CatalogService) publish(eventType, productID string, product interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCatalogEvent(eventType, productID, product); err != nil {
		log.Printf("Failed to publish %s event for product %s: %v", eventType, productID, err)
	}
}

func productFromRequest(req *validation.ProductRequest) *models.Product {
	return &models.Product{
		ProductName:    req.ProductName,
		Description:    req.Description,
		ProductDetails: req.ProductDetails,
		Price:          req.Price,
		Color:          req.Color,
		Rating:         req.Rating,
		Reviews:        req.Reviews,
		Brand:          req.Brand,
	}
}
