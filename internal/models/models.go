package models

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey"                json:"id"`
	Name        string  `gorm:"not null;index"            json:"name"`
	Description string  `gorm:"not null"                  json:"description"`
	Price       float64 `gorm:"not null;check:price >= 0" json:"price"`
	Category    string  `gorm:"index"                     json:"category"`
	Stock       uint    `gorm:"not null;default:0"        json:"stock"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image"`
}

type User struct {
	ID           uint   `gorm:"primaryKey"           json:"id"`
	Name         string `gorm:"not null"             json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null"             json:"-"`
}

const (
	CartStatusActive = "active"
	CartStatusClosed = "closed"
)

// A user has at most one cart in status "active". The repo only ever creates
// a replacement cart in the same transaction that closes the previous one.
type Cart struct {
	ID     uint   `gorm:"primaryKey"                          json:"id"`
	UserID uint   `gorm:"index:idx_cart_user_status;not null" json:"user_id"`
	Status string `gorm:"index:idx_cart_user_status;not null" json:"status"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey"                            json:"id"`
	CartID    uint `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  uint `gorm:"default:1;check:quantity > 0"          json:"quantity"`
}

// Purchase is immutable once created. Its items carry name and unit price
// snapshots taken at checkout time, so later catalog edits never rewrite
// history.
type Purchase struct {
	ID        uint           `gorm:"primaryKey"            json:"id"`
	UserID    uint           `gorm:"index;not null"        json:"user_id"`
	CreatedAt time.Time      `gorm:"not null"              json:"created_at"`
	Address   string         `gorm:"not null"              json:"address"`
	CardLast4 string         `gorm:"not null"              json:"card_last4"`
	Subtotal  float64        `gorm:"not null"              json:"subtotal"`
	Tax       float64        `gorm:"not null"              json:"tax"`
	Shipping  float64        `gorm:"not null"              json:"shipping"`
	Total     float64        `gorm:"not null"              json:"total"`
	Items     []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items"`
}

type PurchaseItem struct {
	ID         uint    `gorm:"primaryKey"     json:"id"`
	PurchaseID uint    `gorm:"index;not null" json:"purchase_id"`
	ProductID  uint    `gorm:"not null"       json:"product_id"`
	Name       string  `gorm:"not null"       json:"name"`
	UnitPrice  float64 `gorm:"not null"       json:"unit_price"`
	Quantity   uint    `gorm:"not null"       json:"quantity"`
}
