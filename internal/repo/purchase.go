package repo

import (
	"context"

	"github.com/mserrat/tienda-api/internal/models"
)

func (r *GormRepo) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	return r.DB.WithContext(ctx).Create(purchase).Error
}

func (r *GormRepo) Purchases(ctx context.Context, userID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *GormRepo) Purchase(ctx context.Context, id, userID uint) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}
