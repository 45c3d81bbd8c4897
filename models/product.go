package models

import (
	"time"

	"storefront-service/pricing"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry as the storefront sees it. Prices are whole DA.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	FalconPrice int64  `json:"falcon_price,omitempty"` // full-bottle price, 0 when absent
	Image       string `json:"image"`
	Category    string `json:"category"`
	IsNew       bool   `json:"is_new"`
	Discount    int    `json:"discount"`
	Stock       int    `json:"stock"`
}

// FinalPrice is the listed price after the discount.
func (p Product) FinalPrice() int64 {
	return pricing.FinalPrice(p.Price, p.Discount)
}

// BottlePrice is what a full bottle costs.
func (p Product) BottlePrice() int64 {
	return pricing.FullBottlePrice(p.Price, p.FalconPrice)
}

// ProductView adds derived prices to a Product for API responses.
type ProductView struct {
	Product
	FinalPrice  int64 `json:"final_price"`
	BottlePrice int64 `json:"bottle_price"`
}

// NewProductView wraps p with its derived prices.
func NewProductView(p Product) ProductView {
	return ProductView{Product: p, FinalPrice: p.FinalPrice(), BottlePrice: p.BottlePrice()}
}

// ProductRecord is a row of the products table.
type ProductRecord struct {
	ID          int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string              `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"price"`
	FalconPrice decimal.NullDecimal `gorm:"column:falcon_price;type:numeric(12,2)" json:"falcon_price"`
	Discount    int                 `gorm:"not null;default:0" json:"discount"`
	Category    string              `gorm:"type:varchar(120)" json:"category"`
	Stock       int                 `gorm:"not null;default:0" json:"stock"`
	Image       string              `gorm:"type:text" json:"image"`
	Description string              `gorm:"type:text" json:"description"`
	IsNew       bool                `gorm:"column:is_new;not null;default:false" json:"is_new"`
	CreatedAt   time.Time           `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name used by the storefront.
func (ProductRecord) TableName() string {
	return "products"
}

// ProductRecordFromProduct builds the products row for p, keeping its id.
func ProductRecordFromProduct(p Product) ProductRecord {
	rec := ProductRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       decimal.NewFromInt(p.Price),
		Discount:    p.Discount,
		Category:    p.Category,
		Stock:       p.Stock,
		Image:       p.Image,
		IsNew:       p.IsNew,
	}
	if p.FalconPrice > 0 {
		rec.FalconPrice = decimal.NewNullDecimal(decimal.NewFromInt(p.FalconPrice))
	}
	return rec
}

// ProductRequest is the admin payload for creating or replacing a product.
type ProductRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=5000"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	FalconPrice int64  `json:"falcon_price" binding:"gte=0"`
	Discount    int    `json:"discount" binding:"gte=0,lte=100"`
	Category    string `json:"category" binding:"required,max=120"`
	Stock       int    `json:"stock" binding:"gte=0"`
	Image       string `json:"image" binding:"omitempty,url"`
	IsNew       bool   `json:"is_new"`
}

// Record converts the request into a products row.
func (r *ProductRequest) Record() *ProductRecord {
	rec := &ProductRecord{
		Name:        r.Name,
		Description: r.Description,
		Price:       decimal.NewFromInt(r.Price),
		Discount:    r.Discount,
		Category:    r.Category,
		Stock:       r.Stock,
		Image:       r.Image,
		IsNew:       r.IsNew,
	}
	if r.FalconPrice > 0 {
		rec.FalconPrice = decimal.NewNullDecimal(decimal.NewFromInt(r.FalconPrice))
	}
	return rec
}

// Columns returns the column set written by an update.
func (r *ProductRequest) Columns() map[string]interface{} {
	falcon := decimal.NullDecimal{}
	if r.FalconPrice > 0 {
		falcon = decimal.NewNullDecimal(decimal.NewFromInt(r.FalconPrice))
	}
	return map[string]interface{}{
		"name":         r.Name,
		"description":  r.Description,
		"price":        decimal.NewFromInt(r.Price),
		"falcon_price": falcon,
		"discount":     r.Discount,
		"category":     r.Category,
		"stock":        r.Stock,
		"image":        r.Image,
		"is_new":       r.IsNew,
	}
}
