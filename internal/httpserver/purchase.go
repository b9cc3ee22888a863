package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mserrat/tienda-api/internal/logging"
	"github.com/mserrat/tienda-api/internal/service"
)

type PurchaseHTTP struct {
	Svc *service.PurchaseService
}

func (h *PurchaseHTTP) ListPurchases(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchases.list")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	purchases, err := h.Svc.Purchases(ctx, uid)
	if err != nil {
		l.Error("list_purchases_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, purchases)
}

func (h *PurchaseHTTP) GetPurchase(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchases.get")

	uid, err := userID(c)
	if err != nil {
		return err
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	purchase, err := h.Svc.Purchase(ctx, id, uid)
	if err != nil {
		he := httpError(err)
		l.Warn("get_purchase_error", "status", he.Code, "error", err)
		return he
	}

	return c.JSON(http.StatusOK, purchase)
}
