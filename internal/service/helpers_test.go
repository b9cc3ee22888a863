package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mserrat/tienda-api/internal/models"
	"github.com/mserrat/tienda-api/internal/repo"
)

func initTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open in-memory db")

	err = db.AutoMigrate(
		&models.Product{},
		&models.User{},
		&models.Cart{},
		&models.CartItem{},
		&models.Purchase{},
		&models.PurchaseItem{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return &repo.GormRepo{DB: db}
}

func createProduct(t *testing.T, r *repo.GormRepo, name string, price float64, stock uint) *models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    "test",
		Stock:       stock,
	}
	require.NoError(t, r.DB.Create(&product).Error)
	return &product
}

func testPricing() PricingPolicy {
	return PricingPolicy{TaxRate: 0.21, ShippingFlatFee: 50, FreeShippingOver: 50}
}
