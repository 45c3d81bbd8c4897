package models

import "time"

// Collection is a curated group of perfumes shown on the storefront.
type Collection struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Image        string    `gorm:"type:text" json:"image"`
	ProductCount int       `gorm:"not null;default:0" json:"product_count"`
	IsExclusive  bool      `gorm:"not null;default:false" json:"is_exclusive"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Collection) TableName() string {
	return "collections"
}

type CollectionRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Description  string `json:"description" binding:"max=5000"`
	Image        string `json:"image" binding:"omitempty,url"`
	ProductCount int    `json:"product_count" binding:"gte=0"`
	IsExclusive  bool   `json:"is_exclusive"`
}

func (r *CollectionRequest) Record() *Collection {
	return &Collection{
		Name:         r.Name,
		Description:  r.Description,
		Image:        r.Image,
		ProductCount: r.ProductCount,
		IsExclusive:  r.IsExclusive,
	}
}

func (r *CollectionRequest) Columns() map[string]interface{} {
	return map[string]interface{}{
		"name":          r.Name,
		"description":   r.Description,
		"image":         r.Image,
		"product_count": r.ProductCount,
		"is_exclusive":  r.IsExclusive,
	}
}

// Brand is a perfume house carried by the shop.
type Brand struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsTrusted   bool      `gorm:"not null;default:false" json:"is_trusted"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Brand) TableName() string {
	return "brands"
}

type BrandRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=5000"`
	IsTrusted   bool   `json:"is_trusted"`
}

func (r *BrandRequest) Record() *Brand {
	return &Brand{Name: r.Name, Description: r.Description, IsTrusted: r.IsTrusted}
}

func (r *BrandRequest) Columns() map[string]interface{} {
	return map[string]interface{}{
		"name":        r.Name,
		"description": r.Description,
		"is_trusted":  r.IsTrusted,
	}
}
