package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mserrat/tienda-api/internal/middleware/auth"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	PurchaseHandler *PurchaseHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/registrar", d.AuthHandler.Register)
	e.POST("/iniciar-sesion", d.AuthHandler.Login)

	e.GET("/productos", d.CatalogHandler.GetProducts)
	e.GET("/productos/:id", d.CatalogHandler.GetProduct)

	authMW := auth.RequireAuth(d.JWTSecret)

	e.POST("/cerrar-sesion", d.AuthHandler.Logout, authMW)

	cart := e.Group("/carrito", authMW)
	cart.POST("", d.CartHandler.AddItem)
	cart.GET("", d.CartHandler.GetCart)
	cart.DELETE("/:productId", d.CartHandler.RemoveItem)
	cart.POST("/cancelar", d.CartHandler.CancelCart)
	cart.POST("/finalizar", d.CartHandler.FinalizeCart)

	compras := e.Group("/compras", authMW)
	compras.GET("", d.PurchaseHandler.ListPurchases)
	compras.GET("/:id", d.PurchaseHandler.GetPurchase)
	compras.POST("/finalizar", d.CartHandler.FinalizeCart)
}
