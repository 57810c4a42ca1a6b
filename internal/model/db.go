package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"` // bcrypt, never plain text
	FirstName    string `gorm:"size:150"`
	CreatedAt    time.Time
}

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:200;not null;uniqueIndex:uq_product_name_category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null"` // never negative, mutated only by checkout
	Description string          `gorm:"type:text"`
	CategoryID  uint            `gorm:"not null;uniqueIndex:uq_product_name_category"`
	Category    Category
	CreatedAt   time.Time
}

// One active cart per user.
type Cart struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"uniqueIndex;not null"`
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// TotalItems is the quantity sum shown on the cart badge.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Same product appears at most once per cart, quantity accumulates.
type CartItem struct {
	ID        uint `gorm:"primaryKey"`
	CartID    uint `gorm:"not null;uniqueIndex:uq_cart_product"`
	ProductID uint `gorm:"not null;uniqueIndex:uq_cart_product"`
	Quantity  int  `gorm:"not null;default:1"`
	Product   Product
}

// LineTotal is the live price times quantity for display.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID          uint            `gorm:"primaryKey"`
	Reference   string          `gorm:"size:64;uniqueIndex;not null"`
	UserID      uint            `gorm:"index;not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Items       []OrderItem
	CreatedAt   time.Time
}

// OrderItem snapshots quantity and unit price at purchase time.
// Rows are written once during checkout and never updated, so later
// product price edits do not rewrite order history.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	ProductID uint            `gorm:"index;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Product   Product
	CreatedAt time.Time
}

// LineTotal uses the snapshotted unit price, not the live one.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Payment struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status    string          `gorm:"size:32;not null"` // simulated gateway, always "success"
	CreatedAt time.Time
}
