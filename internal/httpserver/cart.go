package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mserrat/tienda-api/internal/events"
	"github.com/mserrat/tienda-api/internal/logging"
	"github.com/mserrat/tienda-api/internal/metrics"
	"github.com/mserrat/tienda-api/internal/service"
	"github.com/mserrat/tienda-api/internal/transport"
)

type CartHTTP struct {
	Svc      *service.CartService
	Checkout *service.CheckoutService
	Producer *events.Producer
	Metrics  *metrics.Metrics
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_item_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.Svc.AddItem(ctx, uid, req.ProductID, req.Quantity)
	if err != nil {
		he := httpError(err)
		l.Warn("add_item_error", "status", he.Code, "error", err)
		return he
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"userID":    uid,
		"productID": item.ProductID,
		"quantity":  item.Quantity,
	})

	l.Info("item added to cart", "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	view, err := h.Svc.ViewCart(ctx, uid)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, view)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveItem(ctx, uid, productID); err != nil {
		he := httpError(err)
		l.Warn("remove_item_error", "status", he.Code, "error", err)
		return he
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_removed",
		"userID":    uid,
		"productID": productID,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) CancelCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.cancel")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(ctx, uid); err != nil {
		l.Error("cancel_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":   "cart_cleared",
		"userID": uid,
	})

	l.Info("cart cleared")
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}

func (h *CartHTTP) FinalizeCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.finalize")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	purchase, err := h.Checkout.Checkout(ctx, uid, req.Address, req.Card)
	if err != nil {
		he := httpError(err)
		l.Warn("checkout_error", "status", he.Code, "error", err)
		return he
	}

	h.publish(c, map[string]any{
		"type":       "purchase_completed",
		"userID":     uid,
		"purchaseID": purchase.ID,
		"total":      purchase.Total,
	})
	h.Metrics.RecordCheckout(ctx, purchase.Total)

	l.Info("checkout completed", "purchase_id", purchase.ID, "total", purchase.Total)
	return c.JSON(http.StatusCreated, purchase)
}

func (h *CartHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	topic := events.TopicCartEvents
	if event["type"] == "purchase_completed" {
		topic = events.TopicPurchaseEvents
	}
	if err := h.Producer.Publish(ctx, topic, eventKey(event), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}
