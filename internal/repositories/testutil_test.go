package repositories_test

import (
	"fmt"
	"testing"

	"katalog/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB opens a test-scoped in-memory sqlite database with the catalog
// schema migrated. Each test gets its own named database so shared-cache
// connections do not leak state between tests.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.Category{},
		&models.ProductCategory{},
		&models.User{},
	)
	require.NoError(t, err)
	return db
}
