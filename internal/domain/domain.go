package domain

import (
	"time"
)

// Category is the normalized storefront category a product is shelved under.
type Category string

const (
	CategoryTech     Category = "Tech"
	CategoryFashion  Category = "Fashion"
	CategoryWellness Category = "Wellness"
	CategoryHome     Category = "Home"
)

// Product is a catalog item. Prices are whole currency units (no minor unit).
// Products are immutable once fetched; the cart keeps its own snapshot of the
// fields it needs, so a catalog refresh never rewrites a cart line.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Category    Category `json:"category"`
}

// CartLine is one product-quantity pairing in a cart. Name, Price and
// ImageURL are snapshots taken when the product was first added.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url"`
	Qty       int    `json:"qty"`
}

// Subtotal is the extended price of the line.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Qty)
}

type OrderStatus string

const (
	OrderStatusDraft  OrderStatus = "DRAFT"
	OrderStatusPlaced OrderStatus = "PLACED"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentCard           PaymentMethod = "Card"
	PaymentWallet         PaymentMethod = "JazzCash / EasyPaisa"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentCard, PaymentWallet:
		return true
	}
	return false
}

type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "Standard (3-5 Days)"
	DeliveryExpress  DeliveryMethod = "Express (1-2 Days)"
)

func (m DeliveryMethod) Valid() bool {
	switch m {
	case DeliveryStandard, DeliveryExpress:
		return true
	}
	return false
}

// Order is the frozen, priced result of a checkout. Lines is a copy of the
// cart taken when checkout began and is never affected by later cart
// mutations. All amounts are whole currency units; TaxAmount is 5% of
// Subtotal truncated to a whole unit, so Subtotal+TaxAmount == GrandTotal
// exactly.
type Order struct {
	InvoiceNo      string         `json:"invoice_no"`
	CustomerName   string         `json:"customer_name"`
	Lines          []CartLine     `json:"lines"`
	Subtotal       int64          `json:"subtotal"`
	TaxAmount      int64          `json:"tax_amount"`
	GrandTotal     int64          `json:"grand_total"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	Status         OrderStatus    `json:"status"`
	PlacedAt       time.Time      `json:"placed_at"`
}

// User is a registered account. PasswordHash is a bcrypt hash; the plaintext
// password is never stored.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the record of a logged-in identity. At most one session exists
// per session key; absent means anonymous.
type Session struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AuthToken string    `json:"auth_token"`
	CreatedAt time.Time `json:"created_at"`
}
