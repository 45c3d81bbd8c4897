package models

import (
	"time"

	"storefront-service/cart"
	"storefront-service/favorites"
)

// PurchaseType selects how a product is bought.
type PurchaseType string

const (
	PurchaseFull   PurchaseType = "full"
	PurchaseDecant PurchaseType = "decant"
)

// AddToCartRequest adds a product to the session cart. VolumeMl is only read
// for decants and is normalized before pricing.
type AddToCartRequest struct {
	ProductID    int64        `json:"product_id" binding:"required,gt=0"`
	Quantity     int          `json:"quantity" binding:"required,gt=0,lte=99"`
	PurchaseType PurchaseType `json:"purchase_type" binding:"omitempty,oneof=full decant"`
	VolumeMl     int          `json:"volume_ml" binding:"lte=1000"`
}

// UpdateCartItemRequest changes a line quantity. A quantity <= 0 removes the
// line. AllVariants applies the change to every classification of the product.
type UpdateCartItemRequest struct {
	Quantity       *int   `json:"quantity" binding:"required,lte=99"`
	Classification string `json:"classification"`
	AllVariants    bool   `json:"all_variants"`
}

// AddFavoriteRequest likes a product.
type AddFavoriteRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
}

// CartResponse is the cart as returned to the shopper.
type CartResponse struct {
	SessionID string      `json:"session_id"`
	Items     []cart.Item `json:"items"`
	Count     int         `json:"count"`
	Total     int64       `json:"total"`
}

// FavoritesResponse lists the session favorites.
type FavoritesResponse struct {
	SessionID string            `json:"session_id"`
	Items     []favorites.Entry `json:"items"`
}

// DecantQuote prices a decant of a product.
type DecantQuote struct {
	ProductID      int64  `json:"product_id"`
	RequestedMl    int    `json:"requested_ml"`
	VolumeMl       int    `json:"volume_ml"`
	PricePerTenMl  int64  `json:"price_per_ten_ml"`
	Price          int64  `json:"price"`
	Classification string `json:"classification"`
	QuickVolumes   []int  `json:"quick_volumes"`
}

// LoginRequest is the admin credential check.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued admin token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProductsResult is the catalog read result. Error stays nil when the
// fallback catalog was served.
type ProductsResult struct {
	Products []Product `json:"products"`
	Loading  bool      `json:"loading"`
	Error    *string   `json:"error"`
	Source   string    `json:"source"`
}

// DashboardStats summarises shop activity for the admin home page.
type DashboardStats struct {
	TotalSales     int64   `json:"total_sales"`
	OrdersCount    int64   `json:"orders_count"`
	ProductsCount  int64   `json:"products_count"`
	CustomersCount int64   `json:"customers_count"`
	RecentOrders   []Order `json:"recent_orders"`
}
