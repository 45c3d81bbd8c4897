package repository

import (
	"context"

	"gorm.io/gorm"
)

// table implements the row operations every storefront table supports:
// select-all-ordered, insert-one, update-by-id and delete-by-id.
type table[T any] struct {
	db *gorm.DB
}

func (t table[T]) list(ctx context.Context, order string) ([]T, error) {
	var rows []T
	if err := t.db.WithContext(ctx).Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (t table[T]) findByID(ctx context.Context, id int64) (*T, error) {
	var row T
	if err := t.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (t table[T]) create(ctx context.Context, row *T) error {
	return t.db.WithContext(ctx).Create(row).Error
}

// update writes columns on row id and reports gorm.ErrRecordNotFound when no
// row matched.
func (t table[T]) update(ctx context.Context, id int64, columns map[string]interface{}) error {
	result := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (t table[T]) delete(ctx context.Context, id int64) error {
	result := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (t table[T]) count(ctx context.Context) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, err
}
