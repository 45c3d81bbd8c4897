package services

import (
	"context"
	"time"

	"storefront-service/cache"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/pkg/logger"
	"storefront-service/repository"

	"go.uber.org/zap"
)

// AdminService is the back-office CRUD over products, collections and
// brands. Writes surface every backend error; nothing falls back.
type AdminService interface {
	ListProducts(ctx context.Context, query string) ([]models.ProductRecord, *ServiceError)
	CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.ProductRecord, *ServiceError)
	UpdateProduct(ctx context.Context, id int64, req *models.ProductRequest) (*models.ProductRecord, *ServiceError)
	DeleteProduct(ctx context.Context, id int64) *ServiceError

	ListCollections(ctx context.Context) ([]models.Collection, *ServiceError)
	CreateCollection(ctx context.Context, req *models.CollectionRequest) (*models.Collection, *ServiceError)
	UpdateCollection(ctx context.Context, id int64, req *models.CollectionRequest) (*models.Collection, *ServiceError)
	DeleteCollection(ctx context.Context, id int64) *ServiceError

	ListBrands(ctx context.Context) ([]models.Brand, *ServiceError)
	CreateBrand(ctx context.Context, req *models.BrandRequest) (*models.Brand, *ServiceError)
	UpdateBrand(ctx context.Context, id int64, req *models.BrandRequest) (*models.Brand, *ServiceError)
	DeleteBrand(ctx context.Context, id int64) *ServiceError
}

type adminServiceImpl struct {
	eventPublisher
	products    repository.ProductRepository
	collections repository.CollectionRepository
	brands      repository.BrandRepository
	cache       *cache.CatalogCache
	logger      *zap.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	products repository.ProductRepository,
	collections repository.CollectionRepository,
	brands repository.BrandRepository,
	catalogCache *cache.CatalogCache,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) AdminService {
	return &adminServiceImpl{
		eventPublisher: eventPublisher{snsClient: snsClient, snsTopicArn: snsTopicArn, logger: logger},
		products:       products,
		collections:    collections,
		brands:         brands,
		cache:          catalogCache,
		logger:         logger,
	}
}

// catalogChanged drops the cached catalog and announces the write.
func (s *adminServiceImpl) catalogChanged(ctx context.Context, productID int64, action string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.For(ctx, s.logger).Error("Failed to invalidate catalog cache", zap.Int64("product_id", productID), zap.Error(err))
	}
	s.publishEvent(ctx, models.CatalogChangedEvent{
		EventType: "catalog_changed",
		ProductID: productID,
		Action:    action,
		Timestamp: time.Now(),
	})
}

func (s *adminServiceImpl) ListProducts(ctx context.Context, query string) ([]models.ProductRecord, *ServiceError) {
	products, err := s.products.Search(ctx, query)
	if err != nil {
		logger.For(ctx, s.logger).Error("Failed to list products", zap.Error(err))
		return nil, internal("Failed to fetch products")
	}
	return products, nil
}

func (s *adminServiceImpl) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.ProductRecord, *ServiceError) {
	rec := req.Record()
	if err := s.products.Create(ctx, rec); err != nil {
		logger.For(ctx, s.logger).Error("Failed to create product", zap.Error(err))
		return nil, internal("Failed to create product")
	}
	s.catalogChanged(ctx, rec.ID, "created")
	return rec, nil
}

func (s *adminServiceImpl) UpdateProduct(ctx context.Context, id int64, req *models.ProductRequest) (*models.ProductRecord, *ServiceError) {
	if err := s.products.Update(ctx, id, req.Columns()); err != nil {
		logger.For(ctx, s.logger).Error("Failed to update product", zap.Int64("id", id), zap.Error(err))
		return nil, fromRepoError(err, "Product not found", "Failed to update product")
	}
	s.catalogChanged(ctx, id, "updated")

	rec, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepoError(err, "Product not found", "Failed to fetch product")
	}
	return rec, nil
}

func (s *adminServiceImpl) DeleteProduct(ctx context.Context, id int64) *ServiceError {
	if err := s.products.Delete(ctx, id); err != nil {
		logger.For(ctx, s.logger).Error("Failed to delete product", zap.Int64("id", id), zap.Error(err))
		return fromRepoError(err, "Product not found", "Failed to delete product")
	}
	s.catalogChanged(ctx, id, "deleted")
	return nil
}

func (s *adminServiceImpl) ListCollections(ctx context.Context) ([]models.Collection, *ServiceError) {
	collections, err := s.collections.FindAll(ctx)
	if err != nil {
		logger.For(ctx, s.logger).Error("Failed to list collections", zap.Error(err))
		return nil, internal("Failed to fetch collections")
	}
	return collections, nil
}

func (s *adminServiceImpl) CreateCollection(ctx context.Context, req *models.CollectionRequest) (*models.Collection, *ServiceError) {
	rec := req.Record()
	if err := s.collections.Create(ctx, rec); err != nil {
		logger.For(ctx, s.logger).Error("Failed to create collection", zap.Error(err))
		return nil, internal("Failed to create collection")
	}
	return rec, nil
}

func (s *adminServiceImpl) UpdateCollection(ctx context.Context, id int64, req *models.CollectionRequest) (*models.Collection, *ServiceError) {
	if err := s.collections.Update(ctx, id, req.Columns()); err != nil {
		logger.For(ctx, s.logger).Error("Failed to update collection", zap.Int64("id", id), zap.Error(err))
		return nil, fromRepoError(err, "Collection not found", "Failed to update collection")
	}
	rec, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepoError(err, "Collection not found", "Failed to fetch collection")
	}
	return rec, nil
}

func (s *adminServiceImpl) DeleteCollection(ctx context.Context, id int64) *ServiceError {
	if err := s.collections.Delete(ctx, id); err != nil {
		logger.For(ctx, s.logger).Error("Failed to delete collection", zap.Int64("id", id), zap.Error(err))
		return fromRepoError(err, "Collection not found", "Failed to delete collection")
	}
	return nil
}

func (s *adminServiceImpl) ListBrands(ctx context.Context) ([]models.Brand, *ServiceError) {
	brands, err := s.brands.FindAllNewest(ctx)
	if err != nil {
		logger.For(ctx, s.logger).Error("Failed to list brands", zap.Error(err))
		return nil, internal("Failed to fetch brands")
	}
	return brands, nil
}

func (s *adminServiceImpl) CreateBrand(ctx context.Context, req *models.BrandRequest) (*models.Brand, *ServiceError) {
	rec := req.Record()
	if err := s.brands.Create(ctx, rec); err != nil {
		logger.For(ctx, s.logger).Error("Failed to create brand", zap.Error(err))
		return nil, internal("Failed to create brand")
	}
	return rec, nil
}

func (s *adminServiceImpl) UpdateBrand(ctx context.Context, id int64, req *models.BrandRequest) (*models.Brand, *ServiceError) {
	if err := s.brands.Update(ctx, id, req.Columns()); err != nil {
		logger.For(ctx, s.logger).Error("Failed to update brand", zap.Int64("id", id), zap.Error(err))
		return nil, fromRepoError(err, "Brand not found", "Failed to update brand")
	}
	rec, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, fromRepoError(err, "Brand not found", "Failed to fetch brand")
	}
	return rec, nil
}

func (s *adminServiceImpl) DeleteBrand(ctx context.Context, id int64) *ServiceError {
	if err := s.brands.Delete(ctx, id); err != nil {
		logger.For(ctx, s.logger).Error("Failed to delete brand", zap.Int64("id", id), zap.Error(err))
		return fromRepoError(err, "Brand not found", "Failed to delete brand")
	}
	return nil
}
