package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/cart"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/pkg/logger"
	"storefront-service/repository"
	"storefront-service/sender"
	"storefront-service/session"
	"storefront-service/shipping"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	idempotencyTTL   = 24 * time.Hour
	reservationTTL   = 2 * time.Minute
	confirmationWait = 30 * time.Second

	// pendingCheckout marks an idempotency key whose order is being written.
	pendingCheckout = "pending"
)

// CheckoutService turns a session cart into an order.
type CheckoutService interface {
	CreateOrder(ctx context.Context, sessionID string, req *models.CheckoutRequest, idempotencyKey string) (*models.Order, *ServiceError)
}

type checkoutServiceImpl struct {
	eventPublisher
	orders  repository.OrderRepository
	store   session.Store
	mailer  sender.EmailSender
	metrics aws_pkg.MetricsRecorder
	now     func() time.Time
	logger  *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. mailer, snsClient and
// metrics may be nil.
func NewCheckoutService(
	orders repository.OrderRepository,
	store session.Store,
	mailer sender.EmailSender,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	metrics aws_pkg.MetricsRecorder,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		eventPublisher: eventPublisher{snsClient: snsClient, snsTopicArn: snsTopicArn, logger: logger},
		orders:         orders,
		store:          store,
		mailer:         mailer,
		metrics:        metrics,
		now:            time.Now,
		logger:         logger,
	}
}

// OrderReference is "CMD-" followed by the last 8 digits of the unix
// millisecond clock.
func OrderReference(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return "CMD-" + ms
}

// itemName is the product name stored on the order line; decant lines keep
// their volume.
func itemName(it cart.Item) string {
	if it.Classification == "" {
		return it.Name
	}
	return it.Name + " (" + it.Classification + ")"
}

// CreateOrder writes the order header and its items in one transaction, then
// clears the cart. With an idempotency key, the key is reserved before
// anything is written: a replay returns the order the first call created,
// and a call racing an unfinished one gets 409. A failed attempt releases
// the key.
func (s *checkoutServiceImpl) CreateOrder(ctx context.Context, sessionID string, req *models.CheckoutRequest, idempotencyKey string) (*models.Order, *ServiceError) {
	log := logger.For(ctx, s.logger).With(zap.String("session_id", sessionID))

	memoKey := ""
	placed := false
	if idempotencyKey != "" {
		memoKey = sessionID + ":" + idempotencyKey
		if existing, svcErr := s.reserve(ctx, memoKey, log); existing != nil || svcErr != nil {
			return existing, svcErr
		}
		defer func() {
			if placed {
				return
			}
			if err := s.store.Forget(context.WithoutCancel(ctx), memoKey); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
		}()
	}

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		log.Error("Failed to load session for checkout", zap.Error(err))
		return nil, internal("Failed to load session")
	}
	if sess == nil || sess.Cart.IsEmpty() {
		return nil, badRequest("Cart is empty")
	}

	quote, err := shipping.QuoteFor(req.Wilaya, req.DeliveryMethod)
	if err != nil {
		return nil, fromValidation(err)
	}

	shippingCost := decimal.NewFromInt(quote.Total)
	order := &models.Order{
		OrderID:        OrderReference(s.now()),
		CustomerName:   req.CustomerName(),
		CustomerEmail:  req.Email,
		CustomerPhone:  req.Phone,
		Wilaya:         quote.Wilaya.Name,
		Commune:        req.Commune,
		DeliveryMethod: req.DeliveryMethod,
		ShippingCost:   shippingCost,
		TotalAmount:    decimal.NewFromInt(sess.Cart.Total()).Add(shippingCost),
		Status:         models.OrderStatusPending,
	}

	lines := sess.Cart.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	for _, it := range lines {
		items = append(items, models.OrderItem{
			ProductName: itemName(it),
			Quantity:    it.Quantity,
			Price:       decimal.NewFromInt(it.Price),
		})
	}

	if err := s.orders.CreateWithItems(ctx, order, items); err != nil {
		return nil, s.creationFailure(err, order.OrderID, log)
	}
	placed = true

	sess.Cart.Clear()
	if err := s.store.Save(ctx, sess); err != nil {
		log.Error("Order placed but cart could not be cleared", zap.String("order_id", order.OrderID), zap.Error(err))
	}
	if memoKey != "" {
		if err := s.store.Remember(ctx, memoKey, order.OrderID, idempotencyTTL); err != nil {
			log.Warn("Failed to remember idempotency key", zap.Error(err))
		}
	}

	log.Info("Order created",
		zap.String("order_id", order.OrderID),
		zap.Int("items", len(items)),
		zap.String("total", order.TotalAmount.String()),
	)

	s.publishEvent(ctx, models.OrderCreatedEvent{
		EventType:      "order_created",
		OrderID:        order.OrderID,
		CustomerEmail:  order.CustomerEmail,
		Wilaya:         order.Wilaya,
		DeliveryMethod: string(order.DeliveryMethod),
		ItemCount:      len(items),
		ShippingCost:   order.ShippingCost.IntPart(),
		TotalAmount:    order.TotalAmount.IntPart(),
		Timestamp:      s.now(),
	})
	s.sendConfirmation(order, log)

	recordCount(s.metrics, aws_pkg.MetricOrdersCreated, map[string]string{"DeliveryMethod": string(order.DeliveryMethod)})
	recordValue(s.metrics, aws_pkg.MetricOrderValue, order.TotalAmount.InexactFloat64())

	return order, nil
}

// reserve claims memoKey for this call. It returns (nil, nil) when the
// caller owns the key, otherwise the replayed order or an error.
func (s *checkoutServiceImpl) reserve(ctx context.Context, memoKey string, log *zap.Logger) (*models.Order, *ServiceError) {
	ok, err := s.store.Reserve(ctx, memoKey, pendingCheckout, reservationTTL)
	if err != nil {
		log.Error("Failed to reserve idempotency key", zap.Error(err))
		return nil, internal("Failed to start checkout")
	}
	if ok {
		return nil, nil
	}
	if existing := s.replay(ctx, memoKey, log); existing != nil {
		return existing, nil
	}
	return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "Checkout already in progress"}
}

func (s *checkoutServiceImpl) replay(ctx context.Context, memoKey string, log *zap.Logger) *models.Order {
	orderID, err := s.store.Recall(ctx, memoKey)
	if err != nil {
		log.Warn("Failed to read idempotency key", zap.Error(err))
		return nil
	}
	if orderID == "" || orderID == pendingCheckout {
		return nil
	}
	order, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		log.Warn("Idempotent replay could not load order", zap.String("order_id", orderID), zap.Error(err))
		return nil
	}
	log.Info("Idempotent checkout replay", zap.String("order_id", orderID))
	return order
}

func (s *checkoutServiceImpl) creationFailure(err error, orderID string, log *zap.Logger) *ServiceError {
	kind := models.OrderCreationFailed
	var creationErr *models.OrderCreationError
	if errors.As(err, &creationErr) {
		kind = creationErr.Kind
	}
	log.Error("Failed to create order", zap.String("order_id", orderID), zap.String("kind", string(kind)), zap.Error(err))
	recordCount(s.metrics, aws_pkg.MetricOrdersFailed, map[string]string{"Kind": string(kind)})

	if kind == models.OrderCreationIncomplete {
		return &ServiceError{StatusCode: http.StatusBadGateway, Message: "Order items could not be saved, the order was not placed"}
	}
	return &ServiceError{StatusCode: http.StatusBadGateway, Message: "Failed to create order"}
}

// sendConfirmation mails the customer in the background.
func (s *checkoutServiceImpl) sendConfirmation(order *models.Order, log *zap.Logger) {
	if s.mailer == nil {
		return
	}
	subject, body, err := sender.OrderConfirmation(order)
	if err != nil {
		log.Error("Failed to render confirmation email", zap.Error(err))
		return
	}
	to := order.CustomerEmail
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), confirmationWait)
		defer cancel()
		if _, err := s.mailer.SendEmail(ctx, to, subject, body); err != nil {
			log.Warn("Failed to send confirmation email", zap.String("order_id", order.OrderID), zap.Error(err))
		}
	}()
}
