package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mserrat/tienda-api/internal/models"
	"github.com/mserrat/tienda-api/internal/repo"
)

type CheckoutService struct {
	Repo    *repo.GormRepo
	Pricing PricingPolicy
}

// Checkout converts the user's active cart into a purchase in a single
// transaction: re-validate stock for every line, snapshot names and prices,
// decrement stock, close the cart and open a fresh one. Any failure rolls
// the whole unit back, so no partial purchase, stock change or cart
// mutation ever survives.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, address, card string) (*models.Purchase, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: shipping address required", ErrValidation)
	}
	if card == "" {
		return nil, fmt.Errorf("%w: payment card required", ErrValidation)
	}

	var purchase *models.Purchase
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.ActiveCart(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}

		items, err := tx.CartItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var subtotal float64
		lines := make([]models.PurchaseItem, 0, len(items))
		for _, item := range items {
			product, err := tx.Product(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, item.ProductID)
				}
				return err
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: only %d units of %s available", ErrInsufficientStock, product.Stock, product.Name)
			}

			subtotal += product.Price * float64(item.Quantity)
			lines = append(lines, models.PurchaseItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  item.Quantity,
			})
		}

		tax, shipping, total := s.Pricing.Quote(subtotal)

		created := models.Purchase{
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
			Address:   address,
			CardLast4: maskCard(card),
			Subtotal:  subtotal,
			Tax:       tax,
			Shipping:  shipping,
			Total:     total,
			Items:     lines,
		}
		if err := tx.CreatePurchase(ctx, &created); err != nil {
			return err
		}

		for _, item := range items {
			ok, err := tx.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// a concurrent checkout drained the stock between the
				// read above and this write; abort the whole purchase
				return fmt.Errorf("%w: product %d sold out during checkout", ErrInsufficientStock, item.ProductID)
			}
		}

		if err := tx.CloseCart(ctx, cart.ID); err != nil {
			return err
		}
		if _, err := tx.ActiveCartOrCreate(ctx, userID); err != nil {
			return err
		}

		purchase = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// maskCard keeps only the last four digits of the payment reference.
func maskCard(card string) string {
	if len(card) <= 4 {
		return card
	}
	return card[len(card)-4:]
}
