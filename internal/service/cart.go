package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mserrat/tienda-api/internal/models"
	"github.com/mserrat/tienda-api/internal/repo"
	"github.com/mserrat/tienda-api/internal/transport"
)

type CartService struct {
	Repo    *repo.GormRepo
	Pricing PricingPolicy
}

// AddItem puts quantity units of a product into the user's active cart,
// creating the cart on first use. Stock is checked against the live product
// row but not reserved; checkout re-validates before committing.
func (s *CartService) AddItem(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	if quantity == 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	var line *models.CartItem
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		product, err := tx.Product(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", ErrNotFound, productID)
			}
			return err
		}
		if product.Stock == 0 {
			return fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
		}
		if quantity > product.Stock {
			return fmt.Errorf("%w: only %d units of %s available", ErrInsufficientStock, product.Stock, product.Name)
		}

		cart, err := tx.ActiveCartOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		item, err := tx.CartItem(ctx, cart.ID, productID)
		switch {
		case err == nil:
			cumulative := item.Quantity + quantity
			if cumulative > product.Stock {
				return fmt.Errorf("%w: only %d units of %s available, cart already holds %d",
					ErrInsufficientStock, product.Stock, product.Name, item.Quantity)
			}
			if err := tx.UpdateCartItemQuantity(ctx, item.ID, cumulative); err != nil {
				return err
			}
			item.Quantity = cumulative
			line = item
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			fresh := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			if err := tx.CreateCartItem(ctx, &fresh); err != nil {
				return err
			}
			line = &fresh
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	cart, err := s.Repo.ActiveCart(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d not in cart", ErrNotFound, productID)
		}
		return err
	}

	deleted, err := s.Repo.DeleteCartItem(ctx, cart.ID, productID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: product %d not in cart", ErrNotFound, productID)
	}
	return nil
}

// ViewCart joins the active cart's lines with current product data and
// quotes subtotal, tax and shipping. A user without a cart gets an empty
// view rather than an error.
func (s *CartService) ViewCart(ctx context.Context, userID uint) (*transport.CartView, error) {
	cart, err := s.Repo.ActiveCart(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// synthetic view: no cart exists until the first add
			return &transport.CartView{Status: "inactive", Items: []transport.CartLineView{}}, nil
		}
		return nil, err
	}

	items, err := s.Repo.CartItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	view := transport.CartView{
		CartID: cart.ID,
		Status: cart.Status,
		Items:  make([]transport.CartLineView, 0, len(items)),
	}
	for _, item := range items {
		product, err := s.Repo.Product(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		lineTotal := product.Price * float64(item.Quantity)
		view.Items = append(view.Items, transport.CartLineView{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
			Stock:     product.Stock,
			LineTotal: lineTotal,
		})
		view.Subtotal += lineTotal
	}
	view.Tax, view.Shipping, view.Total = s.Pricing.Quote(view.Subtotal)

	return &view, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.Repo.ActiveCart(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.Repo.ClearCart(ctx, cart.ID)
}
