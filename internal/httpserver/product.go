package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mserrat/tienda-api/internal/logging"
	"github.com/mserrat/tienda-api/internal/service"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.Svc.Product(ctx, id)
	if err != nil {
		he := httpError(err)
		l.Warn("get_product_error", "status", he.Code, "error", err)
		return he
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	category := c.QueryParam("categoria")
	query := c.QueryParam("busqueda")

	products, err := h.Svc.Products(ctx, category, query)
	if err != nil {
		l.Error("get_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, products)
}
