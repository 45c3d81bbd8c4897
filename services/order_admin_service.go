package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/pkg/logger"
	"storefront-service/repository"

	"go.uber.org/zap"
)

const recentOrdersLimit = 5

// OrderAdminService is the back-office view of orders.
type OrderAdminService interface {
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, int64, *ServiceError)
	GetOrder(ctx context.Context, id int64) (*models.Order, *ServiceError)
	UpdateStatus(ctx context.Context, id int64, next models.OrderStatus) (*models.Order, *ServiceError)
	DeleteOrder(ctx context.Context, id int64) *ServiceError
	Dashboard(ctx context.Context) (*models.DashboardStats, *ServiceError)
}

type orderAdminServiceImpl struct {
	eventPublisher
	orders   repository.OrderRepository
	products repository.ProductRepository
	metrics  aws_pkg.MetricsRecorder
	logger   *zap.Logger
}

// NewOrderAdminService creates a new OrderAdminService.
func NewOrderAdminService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	metrics aws_pkg.MetricsRecorder,
	logger *zap.Logger,
) OrderAdminService {
	return &orderAdminServiceImpl{
		eventPublisher: eventPublisher{snsClient: snsClient, snsTopicArn: snsTopicArn, logger: logger},
		orders:         orders,
		products:       products,
		metrics:        metrics,
		logger:         logger,
	}
}

func (s *orderAdminServiceImpl) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, int64, *ServiceError) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, badRequest("Invalid status filter")
	}
	orders, total, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		logger.For(ctx, s.logger).Error("Failed to list orders", zap.Error(err))
		return nil, 0, internal("Failed to fetch orders")
	}
	return orders, total, nil
}

func (s *orderAdminServiceImpl) GetOrder(ctx context.Context, id int64) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepoError(err, "Order not found", "Failed to fetch order")
	}
	return order, nil
}

// UpdateStatus moves the order through the status machine. Illegal moves
// and lost races both answer 409.
func (s *orderAdminServiceImpl) UpdateStatus(ctx context.Context, id int64, next models.OrderStatus) (*models.Order, *ServiceError) {
	log := logger.For(ctx, s.logger)

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepoError(err, "Order not found", "Failed to fetch order")
	}

	from := order.Status
	if _, err := from.TransitionTo(next); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusConflict, Message: err.Error()}
	}

	if err := s.orders.UpdateStatus(ctx, id, from, next); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "Order status changed, reload and try again"}
		}
		log.Error("Failed to update order status", zap.Int64("id", id), zap.Error(err))
		return nil, internal("Failed to update order status")
	}
	order.Status = next

	log.Info("Order status updated",
		zap.String("order_id", order.OrderID),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
	)
	s.publishEvent(ctx, models.OrderStatusChangedEvent{
		EventType: "order_status_changed",
		OrderID:   order.OrderID,
		From:      string(from),
		To:        string(next),
		Timestamp: time.Now(),
	})
	recordCount(s.metrics, aws_pkg.MetricOrderStatusChanged, map[string]string{"Status": string(next)})

	return order, nil
}

func (s *orderAdminServiceImpl) DeleteOrder(ctx context.Context, id int64) *ServiceError {
	if err := s.orders.Delete(ctx, id); err != nil {
		logger.For(ctx, s.logger).Error("Failed to delete order", zap.Int64("id", id), zap.Error(err))
		return fromRepoError(err, "Order not found", "Failed to delete order")
	}
	return nil
}

// Dashboard aggregates sales, order, product and customer counts with the
// latest orders.
func (s *orderAdminServiceImpl) Dashboard(ctx context.Context) (*models.DashboardStats, *ServiceError) {
	log := logger.For(ctx, s.logger)

	stats, err := s.orders.Stats(ctx)
	if err != nil {
		log.Error("Failed to compute order stats", zap.Error(err))
		return nil, internal("Failed to fetch dashboard statistics")
	}
	productsCount, err := s.products.Count(ctx)
	if err != nil {
		log.Error("Failed to count products", zap.Error(err))
		return nil, internal("Failed to fetch dashboard statistics")
	}
	recent, err := s.orders.Recent(ctx, recentOrdersLimit)
	if err != nil {
		log.Error("Failed to fetch recent orders", zap.Error(err))
		return nil, internal("Failed to fetch dashboard statistics")
	}

	return &models.DashboardStats{
		TotalSales:     stats.TotalSales.Round(0).IntPart(),
		OrdersCount:    stats.OrdersCount,
		ProductsCount:  productsCount,
		CustomersCount: stats.CustomersCount,
		RecentOrders:   recent,
	}, nil
}
