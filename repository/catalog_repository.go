// Package repository is the storefront's data access layer over gorm.
package repository

import (
	"context"
	"strings"

	"storefront-service/models"

	"gorm.io/gorm"
)

// ProductRepository reads and writes the products table.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.ProductRecord, error)
	Search(ctx context.Context, query string) ([]models.ProductRecord, error)
	FindByID(ctx context.Context, id int64) (*models.ProductRecord, error)
	Create(ctx context.Context, product *models.ProductRecord) error
	Update(ctx context.Context, id int64, columns map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	table[models.ProductRecord]
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{table[models.ProductRecord]{db: db}}
}

// FindAll returns every product, newest first.
func (r *GormProductRepository) FindAll(ctx context.Context) ([]models.ProductRecord, error) {
	return r.list(ctx, "created_at DESC")
}

// Search matches query against name and category, newest first. An empty
// query returns everything.
func (r *GormProductRepository) Search(ctx context.Context, query string) ([]models.ProductRecord, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.FindAll(ctx)
	}
	like := "%" + q + "%"
	var rows []models.ProductRecord
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", like, like).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*models.ProductRecord, error) {
	return r.findByID(ctx, id)
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.ProductRecord) error {
	return r.create(ctx, product)
}

func (r *GormProductRepository) Update(ctx context.Context, id int64, columns map[string]interface{}) error {
	return r.update(ctx, id, columns)
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}

// CollectionRepository reads and writes the collections table.
type CollectionRepository interface {
	FindAll(ctx context.Context) ([]models.Collection, error)
	FindByID(ctx context.Context, id int64) (*models.Collection, error)
	Create(ctx context.Context, collection *models.Collection) error
	Update(ctx context.Context, id int64, columns map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type GormCollectionRepository struct {
	table[models.Collection]
}

func NewGormCollectionRepository(db *gorm.DB) CollectionRepository {
	return &GormCollectionRepository{table[models.Collection]{db: db}}
}

// FindAll returns collections, newest first.
func (r *GormCollectionRepository) FindAll(ctx context.Context) ([]models.Collection, error) {
	return r.list(ctx, "created_at DESC")
}

func (r *GormCollectionRepository) FindByID(ctx context.Context, id int64) (*models.Collection, error) {
	return r.findByID(ctx, id)
}

func (r *GormCollectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	return r.create(ctx, collection)
}

func (r *GormCollectionRepository) Update(ctx context.Context, id int64, columns map[string]interface{}) error {
	return r.update(ctx, id, columns)
}

func (r *GormCollectionRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

// BrandRepository reads and writes the brands table.
type BrandRepository interface {
	FindAllByName(ctx context.Context) ([]models.Brand, error)
	FindAllNewest(ctx context.Context) ([]models.Brand, error)
	FindByID(ctx context.Context, id int64) (*models.Brand, error)
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, id int64, columns map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

type GormBrandRepository struct {
	table[models.Brand]
}

func NewGormBrandRepository(db *gorm.DB) BrandRepository {
	return &GormBrandRepository{table[models.Brand]{db: db}}
}

// FindAllByName is the storefront ordering.
func (r *GormBrandRepository) FindAllByName(ctx context.Context) ([]models.Brand, error) {
	return r.list(ctx, "name ASC")
}

// FindAllNewest is the admin ordering.
func (r *GormBrandRepository) FindAllNewest(ctx context.Context) ([]models.Brand, error) {
	return r.list(ctx, "created_at DESC")
}

func (r *GormBrandRepository) FindByID(ctx context.Context, id int64) (*models.Brand, error) {
	return r.findByID(ctx, id)
}

func (r *GormBrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	return r.create(ctx, brand)
}

func (r *GormBrandRepository) Update(ctx context.Context, id int64, columns map[string]interface{}) error {
	return r.update(ctx, id, columns)
}

func (r *GormBrandRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
