package services

import (
	"context"
	"errors"
	"time"

	"storefront-service/cart"
	"storefront-service/favorites"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/pkg/logger"
	"storefront-service/pricing"
	"storefront-service/session"

	"go.uber.org/zap"
)

// SessionService manages the shopper's cart and favorites.
type SessionService interface {
	GetCart(ctx context.Context, sessionID string) (*models.CartResponse, *ServiceError)
	AddToCart(ctx context.Context, sessionID string, req *models.AddToCartRequest) (*models.CartResponse, *ServiceError)
	UpdateCartItem(ctx context.Context, sessionID string, productID int64, req *models.UpdateCartItemRequest) (*models.CartResponse, *ServiceError)
	RemoveCartItem(ctx context.Context, sessionID string, productID int64, classification string, allVariants bool) (*models.CartResponse, *ServiceError)
	ClearCart(ctx context.Context, sessionID string) (*models.CartResponse, *ServiceError)

	GetFavorites(ctx context.Context, sessionID string) (*models.FavoritesResponse, *ServiceError)
	AddFavorite(ctx context.Context, sessionID string, productID int64) (*models.FavoritesResponse, *ServiceError)
	RemoveFavorite(ctx context.Context, sessionID string, productID int64) (*models.FavoritesResponse, *ServiceError)
	IsFavorite(ctx context.Context, sessionID string, productID int64) (bool, *ServiceError)

	EndSession(ctx context.Context, sessionID string) *ServiceError
}

type sessionServiceImpl struct {
	store   session.Store
	catalog CatalogService
	metrics aws_pkg.MetricsRecorder
	now     func() time.Time
	logger  *zap.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(store session.Store, catalog CatalogService, metrics aws_pkg.MetricsRecorder, logger *zap.Logger) SessionService {
	return &sessionServiceImpl{
		store:   store,
		catalog: catalog,
		metrics: metrics,
		now:     time.Now,
		logger:  logger,
	}
}

// load returns the stored session or a fresh one under sessionID.
func (s *sessionServiceImpl) load(ctx context.Context, sessionID string) (*session.Session, *ServiceError) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		logger.For(ctx, s.logger).Error("Failed to load session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, internal("Failed to load session")
	}
	if sess == nil {
		sess = session.New(sessionID, s.now())
	}
	return sess, nil
}

func (s *sessionServiceImpl) save(ctx context.Context, sess *session.Session) *ServiceError {
	if err := s.store.Save(ctx, sess); err != nil {
		logger.For(ctx, s.logger).Error("Failed to save session", zap.String("session_id", sess.ID), zap.Error(err))
		return internal("Failed to save session")
	}
	return nil
}

func cartResponse(sess *session.Session) *models.CartResponse {
	return &models.CartResponse{
		SessionID: sess.ID,
		Items:     sess.Cart.Lines(),
		Count:     sess.Cart.Count(),
		Total:     sess.Cart.Total(),
	}
}

func favoritesResponse(sess *session.Session) *models.FavoritesResponse {
	return &models.FavoritesResponse{SessionID: sess.ID, Items: sess.Favorites.List()}
}

func (s *sessionServiceImpl) GetCart(ctx context.Context, sessionID string) (*models.CartResponse, *ServiceError) {
	sess, svcErr := s.load(ctx, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}
	return cartResponse(sess), nil
}

// resolveLine prices a cart line. A full purchase costs the bottle price; a
// decant is prorated from the base price over the normalized volume.
func resolveLine(p *models.Product, purchase models.PurchaseType, volumeMl int) cart.Item {
	item := cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Category:  p.Category,
		Price:     p.BottlePrice(),
	}
	if purchase == models.PurchaseDecant {
		volume := pricing.NormalizeVolume(volumeMl)
		item.Price = pricing.DecantPrice(p.Price, volume)
		item.Classification = pricing.DecantClassification(volume)
	}
	return item
}

func (s *sessionServiceImpl) AddToCart(ctx context.Context, sessionID string, req *models.AddToCartRequest) (*models.CartResponse, *ServiceError) {
	p, svcErr := s.catalog.GetProduct(ctx, req.ProductID)
	if svcErr != nil {
		return nil, svcErr
	}

	sess, svcErr := s.load(ctx, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	if err := sess.Cart.Add(resolveLine(p, req.PurchaseType, req.VolumeMl), req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) || errors.Is(err, cart.ErrQuantityLimit) {
			return nil, badRequest(err.Error())
		}
		return nil, internal(err.Error())
	}
	if svcErr := s.save(ctx, sess); svcErr != nil {
		return nil, svcErr
	}

	recordCount(s.metrics, aws_pkg.MetricCartAdds, map[string]string{"PurchaseType": string(purchaseOrFull(req.PurchaseType))})
	return cartResponse(sess), nil
}

func purchaseOrFull(p models.PurchaseType) models.PurchaseType {
	if p == "" {
		return models.PurchaseFull
	}
	return p
}

// UpdateCartItem sets the quantity of one line, or of every line of the
// product when AllVariants is set. A quantity <= 0 removes. Unknown lines
// leave the cart unchanged.
func (s *sessionServiceImpl) UpdateCartItem(ctx context.Context, sessionID string, productID int64, req *models.UpdateCartItemRequest) (*models.CartResponse, *ServiceError) {
	sess, svcErr := s.load(ctx, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	quantity := *req.Quantity
	if quantity > cart.MaxQuantity {
		return nil, badRequest(cart.ErrQuantityLimit.Error())
	}
	if req.AllVariants {
		sess.Cart.UpdateAllQuantities(productID, quantity)
	} else {
		sess.Cart.UpdateQuantity(productID, req.Classification, quantity)
	}

	if svcErr := s.save(ctx, sess); svcErr != nil {
		return nil, svcErr
	}
	return cartResponse(sess), nil
}

func (s *sessionServiceImpl) RemoveCartItem(ctx context.Context, sessionID string, productID int64, classification string, allVariants bool) (*models.CartResponse, *ServiceError) {
	sess, svcErr := s.load(ctx, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	if allVariants {
		sess.Cart.RemoveAll(productID)
	} else {
		sess.Cart.Remove(productID, classification)
	}

	if svcErr := s.save(ctx, sess); svcErr != nil {
		return nil, svcErr
	}
	return cartResponse(sess), nil
}

func (s *sessionServiceImpl) ClearCart(ctx context.Context, sessionID string) (*models.CartResponse, *ServiceError) {
	sess, svcErr := s.load(ctx, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}
	sess.Cart.Clear()
	if svcErr := s.save(ctx, sess); svcErr != nil {
		return nil, svcErr
	}
	return cartResponse(sess), nil
}

func (s *sessionServiceImpl) GetFavorites(ctx context.Context, sessionID string) (*models.FavoritesResponse, *ServiceError) {
	sess, svcErr := s.load(ctx, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}
	return favoritesResponse(sess), nil
}

// AddFavorite is idempotent: liking a product twice keeps one entry.
func (s *sessionServiceImpl) AddFavorite(ctx context.Context, sessionID string, productID int64) (*models.FavoritesResponse, *ServiceError) {
	p, svcErr := s.catalog.GetProduct(ctx, productID)
	if svcErr != nil {
		return nil, svcErr
	}
	sess, svcErr := s.load(ctx, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	added := sess.Favorites.Add(favorites.Entry{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image,
		Category:  p.Category,
		Price:     p.Price,
		Discount:  p.Discount,
	})
	if added {
		if svcErr := s.save(ctx, sess); svcErr != nil {
			return nil, svcErr
		}
	}
	return favoritesResponse(sess), nil
}

func (s *sessionServiceImpl) RemoveFavorite(ctx context.Context, sessionID string, productID int64) (*models.FavoritesResponse, *ServiceError) {
	sess, svcErr := s.load(ctx, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}
	if sess.Favorites.Remove(productID) {
		if svcErr := s.save(ctx, sess); svcErr != nil {
			return nil, svcErr
		}
	}
	return favoritesResponse(sess), nil
}

func (s *sessionServiceImpl) IsFavorite(ctx context.Context, sessionID string, productID int64) (bool, *ServiceError) {
	sess, svcErr := s.load(ctx, sessionID)
	if svcErr != nil {
		return false, svcErr
	}
	return sess.Favorites.Contains(productID), nil
}

func (s *sessionServiceImpl) EndSession(ctx context.Context, sessionID string) *ServiceError {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		logger.For(ctx, s.logger).Error("Failed to delete session", zap.String("session_id", sessionID), zap.Error(err))
		return internal("Failed to end session")
	}
	return nil
}
