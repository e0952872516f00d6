package main

import (
	"testing"

	"katalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestOpenDatabase_SQLite(t *testing.T) {
	db, err := openDatabase("sqlite", "file:main_test?mode=memory&cache=shared")
	require.NoError(t, err)
	assert.NotNil(t, db)
}

func TestSeedCategories_Idempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}))

	seedCategories(db)
	seedCategories(db)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}
