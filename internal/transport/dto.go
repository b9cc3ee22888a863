package transport

type RegisterRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"contrasena"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"contrasena"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AddItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type CheckoutRequest struct {
	Address string `json:"direccion"`
	Card    string `json:"tarjeta"`
}

// CartLineView joins a cart line with the current catalog snapshot of its
// product. Prices here are live; only a purchase freezes them.
type CartLineView struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  uint    `json:"quantity"`
	Stock     uint    `json:"stock"`
	LineTotal float64 `json:"line_total"`
}

type CartView struct {
	CartID   uint           `json:"cart_id"`
	Status   string         `json:"status"`
	Items    []CartLineView `json:"items"`
	Subtotal float64        `json:"subtotal"`
	Tax      float64        `json:"tax"`
	Shipping float64        `json:"shipping"`
	Total    float64        `json:"total"`
}
