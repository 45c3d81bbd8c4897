package repository

import (
	"context"
	"errors"
	"strings"

	"storefront-service/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStatusConflict means the order moved to another status between the read
// and the conditional update.
var ErrStatusConflict = errors.New("order status changed concurrently")

// OrderStats are the aggregates behind the admin dashboard.
type OrderStats struct {
	TotalSales     decimal.Decimal
	OrdersCount    int64
	CustomersCount int64
}

// OrderRepository reads and writes orders with their items.
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
	FindAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (OrderStats, error)
	Recent(ctx context.Context, limit int) ([]models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// CreateWithItems inserts the order header and its items in one transaction.
// Failures come back as *models.OrderCreationError: OrderCreationFailed when
// the header could not be written, OrderCreationIncomplete when the items
// could not (the header is rolled back with them).
func (r *GormOrderRepository) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return &models.OrderCreationError{Kind: models.OrderCreationFailed, OrderID: order.OrderID, Err: err}
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return &models.OrderCreationError{Kind: models.OrderCreationIncomplete, OrderID: order.OrderID, Err: err}
		}
		return nil
	})
	if err != nil {
		var creationErr *models.OrderCreationError
		if errors.As(err, &creationErr) {
			return creationErr
		}
		return &models.OrderCreationError{Kind: models.OrderCreationFailed, OrderID: order.OrderID, Err: err}
	}
	order.Items = items
	return nil
}

// FindAll returns a page of orders, newest first, with the total matching
// count. Query matches order id, customer name or email.
func (r *GormOrderRepository) FindAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, int64, error) {
	var (
		orders []models.Order
		total  int64
	)

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != "" {
		query = query.Where("statut = ?", filter.Status)
	}
	if s := strings.ToLower(strings.TrimSpace(filter.Query)); s != "" {
		like := "%" + s + "%"
		query = query.Where(
			"LOWER(order_id) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ?",
			like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	err := query.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByOrderID looks an order up by its public CMD- reference.
func (r *GormOrderRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").Where("order_id = ?", orderID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves order id from one status to another. The write only
// applies while the row is still in from.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id int64, from, to models.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND statut = ?", id, from).
		Update("statut", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// Delete removes the order and its items.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormOrderRepository) Stats(ctx context.Context) (OrderStats, error) {
	var row struct {
		TotalSales     decimal.Decimal
		OrdersCount    int64
		CustomersCount int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total_sales, COUNT(*) AS orders_count, COUNT(DISTINCT customer_email) AS customers_count").
		Scan(&row).Error
	if err != nil {
		return OrderStats{}, err
	}
	return OrderStats{
		TotalSales:     row.TotalSales,
		OrdersCount:    row.OrdersCount,
		CustomersCount: row.CustomersCount,
	}, nil
}

// Recent returns the latest orders without their items.
func (r *GormOrderRepository) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
