package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mserrat/tienda-api/internal/models"
)

func TestCheckout_EmptyCart(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	svc := &CheckoutService{Repo: r, Pricing: testPricing()}
	ctx := context.Background()

	// no cart at all
	_, err := svc.Checkout(ctx, 1, "Calle Falsa 123", "4111111111111111")
	require.ErrorIs(t, err, ErrEmptyCart)

	// cart exists but has no lines
	cart, err := r.ActiveCartOrCreate(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, 1, "Calle Falsa 123", "4111111111111111")
	require.ErrorIs(t, err, ErrEmptyCart)

	var purchases int64
	require.NoError(t, r.DB.Model(&models.Purchase{}).Count(&purchases).Error)
	assert.Zero(t, purchases, "a failed checkout must never create a purchase")

	after, err := r.ActiveCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, after.ID)
}

func TestCheckout_HappyPath(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	cartSvc := &CartService{Repo: r, Pricing: testPricing()}
	svc := &CheckoutService{Repo: r, Pricing: testPricing()}
	ctx := context.Background()

	a := createProduct(t, r, "producto A", 10, 5)
	b := createProduct(t, r, "producto B", 20, 3)

	_, err := cartSvc.AddItem(ctx, 1, a.ID, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, 1, b.ID, 1)
	require.NoError(t, err)

	oldCart, err := r.ActiveCart(ctx, 1)
	require.NoError(t, err)

	purchase, err := svc.Checkout(ctx, 1, "Calle Falsa 123", "4111111111111111")
	require.NoError(t, err)

	assert.InDelta(t, 40, purchase.Subtotal, 1e-9)
	assert.InDelta(t, 8.4, purchase.Tax, 1e-9)
	assert.InDelta(t, 50, purchase.Shipping, 1e-9)
	assert.InDelta(t, 98.4, purchase.Total, 1e-9)
	assert.Equal(t, "1111", purchase.CardLast4)
	assert.Equal(t, "Calle Falsa 123", purchase.Address)
	require.Len(t, purchase.Items, 2)
	assert.Equal(t, "producto A", purchase.Items[0].Name)
	assert.InDelta(t, 10, purchase.Items[0].UnitPrice, 1e-9)
	assert.Equal(t, uint(2), purchase.Items[0].Quantity)

	// stock decremented
	stockA, err := r.Product(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(3), stockA.Stock)
	stockB, err := r.Product(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), stockB.Stock)

	// old cart closed, fresh active cart with zero lines
	var closed models.Cart
	require.NoError(t, r.DB.First(&closed, oldCart.ID).Error)
	assert.Equal(t, models.CartStatusClosed, closed.Status)

	fresh, err := r.ActiveCart(ctx, 1)
	require.NoError(t, err)
	assert.NotEqual(t, oldCart.ID, fresh.ID)
	items, err := r.CartItems(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckout_FreeShippingAboveThreshold(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	cartSvc := &CartService{Repo: r, Pricing: testPricing()}
	svc := &CheckoutService{Repo: r, Pricing: testPricing()}
	ctx := context.Background()

	p := createProduct(t, r, "mochila", 30, 10)
	_, err := cartSvc.AddItem(ctx, 1, p.ID, 2)
	require.NoError(t, err)

	purchase, err := svc.Checkout(ctx, 1, "Av. Siempre Viva 742", "5500005555555559")
	require.NoError(t, err)

	assert.InDelta(t, 60, purchase.Subtotal, 1e-9)
	assert.InDelta(t, 0, purchase.Shipping, 1e-9, "subtotal 60 > threshold 50")
	assert.InDelta(t, 60+60*0.21, purchase.Total, 1e-9)
}

func TestCheckout_InsufficientStockIsAtomic(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	cartSvc := &CartService{Repo: r, Pricing: testPricing()}
	svc := &CheckoutService{Repo: r, Pricing: testPricing()}
	ctx := context.Background()

	a := createProduct(t, r, "producto A", 10, 5)
	b := createProduct(t, r, "producto B", 20, 3)

	_, err := cartSvc.AddItem(ctx, 1, a.ID, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, 1, b.ID, 3)
	require.NoError(t, err)

	cart, err := r.ActiveCart(ctx, 1)
	require.NoError(t, err)

	// someone else bought product B in the meantime
	require.NoError(t, r.DB.Model(&models.Product{}).
		Where("id = ?", b.ID).
		Update("stock", 1).Error)

	_, err = svc.Checkout(ctx, 1, "Calle Falsa 123", "4111111111111111")
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "producto B", "failure must name the offending product")

	// nothing changed: no purchase, stock of A intact, cart still active with its lines
	var purchases int64
	require.NoError(t, r.DB.Model(&models.Purchase{}).Count(&purchases).Error)
	assert.Zero(t, purchases)
	var lines int64
	require.NoError(t, r.DB.Model(&models.PurchaseItem{}).Count(&lines).Error)
	assert.Zero(t, lines)

	stockA, err := r.Product(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(5), stockA.Stock)

	after, err := r.ActiveCart(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, after.ID)
	items, err := r.CartItems(ctx, after.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCheckout_SnapshotSurvivesPriceChange(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	cartSvc := &CartService{Repo: r, Pricing: testPricing()}
	svc := &CheckoutService{Repo: r, Pricing: testPricing()}
	ctx := context.Background()

	p := createProduct(t, r, "vinilo", 28.5, 5)
	_, err := cartSvc.AddItem(ctx, 1, p.ID, 1)
	require.NoError(t, err)

	purchase, err := svc.Checkout(ctx, 1, "Calle Falsa 123", "4111111111111111")
	require.NoError(t, err)

	require.NoError(t, r.DB.Model(&models.Product{}).
		Where("id = ?", p.ID).
		Update("price", 99.99).Error)

	stored, err := r.Purchase(ctx, purchase.ID, 1)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.InDelta(t, 28.5, stored.Items[0].UnitPrice, 1e-9, "purchase keeps the price at checkout time")
	assert.InDelta(t, purchase.Total, stored.Total, 1e-9)
}

func TestCheckout_LastUnitGoesToOneBuyer(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	cartSvc := &CartService{Repo: r, Pricing: testPricing()}
	svc := &CheckoutService{Repo: r, Pricing: testPricing()}
	ctx := context.Background()

	p := createProduct(t, r, "vinilo", 28.5, 1)

	// both users manage to cart the last unit; only one checkout may win
	_, err := cartSvc.AddItem(ctx, 1, p.ID, 1)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, 2, p.ID, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, 1, "Calle Falsa 123", "4111111111111111")
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, 2, "Otra Calle 456", "5500005555555559")
	require.ErrorIs(t, err, ErrInsufficientStock)

	stock, err := r.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), stock.Stock, "stock may never go negative")

	var purchases int64
	require.NoError(t, r.DB.Model(&models.Purchase{}).Count(&purchases).Error)
	assert.EqualValues(t, 1, purchases)
}

func TestCheckout_Validation(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	svc := &CheckoutService{Repo: r, Pricing: testPricing()}
	ctx := context.Background()

	_, err := svc.Checkout(ctx, 1, "", "4111111111111111")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Checkout(ctx, 1, "Calle Falsa 123", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestMaskCard(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1111", maskCard("4111111111111111"))
	assert.Equal(t, "123", maskCard("123"))
}
