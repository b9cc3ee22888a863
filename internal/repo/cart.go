package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mserrat/tienda-api/internal/models"
)

func (r *GormRepo) ActiveCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ActiveCartOrCreate returns the user's active cart, creating an empty one
// when none exists yet.
func (r *GormRepo) ActiveCartOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := r.ActiveCart(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := models.Cart{UserID: userID, Status: models.CartStatusActive}
	if err := r.DB.WithContext(ctx).Create(&fresh).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (r *GormRepo) CartItems(ctx context.Context, cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CartItem(ctx context.Context, cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) UpdateCartItemQuantity(ctx context.Context, itemID uint, quantity uint) error {
	return r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteCartItem reports whether a line was actually removed.
func (r *GormRepo) DeleteCartItem(ctx context.Context, cartID, productID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID uint) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

// CloseCart flips the cart to closed and removes its lines. The purchase
// records created alongside are the source of truth for history.
func (r *GormRepo) CloseCart(ctx context.Context, cartID uint) error {
	err := r.DB.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("status", models.CartStatusClosed).Error
	if err != nil {
		return err
	}
	return r.ClearCart(ctx, cartID)
}
