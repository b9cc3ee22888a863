package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mserrat/tienda-api/internal/models"
)

func (r *GormRepo) Product(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Products filters by exact category and/or a case-insensitive match on
// name or description. Empty filters return the whole catalog.
func (r *GormRepo) Products(ctx context.Context, category, query string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})

	if category != "" {
		q = q.Where("category = ?", category)
	}
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var items []models.Product
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormRepo) CreateProducts(ctx context.Context, products []models.Product) error {
	return r.DB.WithContext(ctx).Create(&products).Error
}

// DecrementStock subtracts qty from the product's stock only when enough
// stock remains. It reports false when the guard fails, which is how a
// checkout that lost a concurrent race observes the conflict: the row is
// never driven below zero.
func (r *GormRepo) DecrementStock(ctx context.Context, productID uint, qty uint) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
