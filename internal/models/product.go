package models

import "gorm.io/gorm"

// Product represents a catalog product.
type Product struct {
	ID             string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductName    string   `json:"productName" gorm:"index;type:varchar(255)"`
	Description    string   `json:"description" gorm:"type:varchar(255)"`
	ProductDetails string   `json:"productDetails" gorm:"type:varchar(255)"`
	Price          float64  `json:"price"`
	Color          string   `json:"color" gorm:"type:varchar(7)"`
	Rating         *float64 `json:"rating"`
	Reviews        *string  `json:"reviews"`
	Brand          *string  `json:"brand"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ProductImage is one stored image file belonging to a product.
// Image rows and their files on disk live and die with the product.
type ProductImage struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"productId" gorm:"index;type:varchar(36)"`
	ImageURL  string `json:"imageUrl" gorm:"type:varchar(512)"`
	gorm.Model
}

// Category is an independent entity products link to by id.
type Category struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	CategoryName string `json:"categoryName" gorm:"uniqueIndex;type:varchar(255)"`
	gorm.Model
}

// ProductCategory is the many-to-many join between products and categories.
// A product's relations are replaced wholesale on update, never merged.
type ProductCategory struct {
	ProductID  string `json:"productId" gorm:"primaryKey;type:varchar(36)"`
	CategoryID uint   `json:"categoryId" gorm:"primaryKey"`
}
