package services

import (
	"context"
	"strconv"
	"strings"

	"storefront-service/cache"
	"storefront-service/catalog"
	"storefront-service/models"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/pkg/logger"
	"storefront-service/pricing"
	"storefront-service/repository"

	"go.uber.org/zap"
)

const (
	SourceBackend  = "backend"
	SourceFallback = "fallback"

	relatedLimit = 4
)

// CatalogService is the storefront's read side of the catalog.
type CatalogService interface {
	FetchProducts(ctx context.Context) models.ProductsResult
	GetProduct(ctx context.Context, id int64) (*models.Product, *ServiceError)
	NewArrivals(ctx context.Context) []models.Product
	Related(ctx context.Context, id int64) ([]models.Product, *ServiceError)
	DecantQuote(ctx context.Context, id int64, rawVolume string) (*models.DecantQuote, *ServiceError)
	ListCollections(ctx context.Context) ([]models.Collection, *ServiceError)
	ListBrands(ctx context.Context) ([]models.Brand, *ServiceError)
}

type catalogServiceImpl struct {
	products    repository.ProductRepository
	collections repository.CollectionRepository
	brands      repository.BrandRepository
	cache       *cache.CatalogCache
	metrics     aws_pkg.MetricsRecorder
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService. catalogCache and metrics
// may be nil.
func NewCatalogService(
	products repository.ProductRepository,
	collections repository.CollectionRepository,
	brands repository.BrandRepository,
	catalogCache *cache.CatalogCache,
	metrics aws_pkg.MetricsRecorder,
	logger *zap.Logger,
) CatalogService {
	return &catalogServiceImpl{
		products:    products,
		collections: collections,
		brands:      brands,
		cache:       catalogCache,
		metrics:     metrics,
		logger:      logger,
	}
}

// FetchProducts never fails. An empty table, a backend error or a row that
// does not decode all serve the bundled catalog; the cause is logged and
// Error stays nil.
func (s *catalogServiceImpl) FetchProducts(ctx context.Context) models.ProductsResult {
	log := logger.For(ctx, s.logger)

	if cached, ok := s.cache.GetProducts(ctx); ok {
		recordCount(s.metrics, aws_pkg.MetricCacheHits, nil)
		return models.ProductsResult{Products: cached, Source: SourceBackend}
	}
	recordCount(s.metrics, aws_pkg.MetricCacheMisses, nil)

	rows, err := s.products.FindAll(ctx)
	if err != nil {
		log.Error("Failed to fetch products, serving fallback catalog", zap.Error(err))
		return s.fallback()
	}
	if len(rows) == 0 {
		log.Info("Products table is empty, serving fallback catalog")
		return s.fallback()
	}

	products, err := models.DecodeProducts(rows)
	if err != nil {
		log.Error("Failed to decode products, serving fallback catalog", zap.Error(err))
		return s.fallback()
	}

	s.cache.SetProducts(ctx, products)
	return models.ProductsResult{Products: products, Source: SourceBackend}
}

func (s *catalogServiceImpl) fallback() models.ProductsResult {
	recordCount(s.metrics, aws_pkg.MetricCatalogFallback, nil)
	return models.ProductsResult{Products: catalog.Fallback(), Source: SourceFallback}
}

// GetProduct looks id up in the same list FetchProducts serves.
func (s *catalogServiceImpl) GetProduct(ctx context.Context, id int64) (*models.Product, *ServiceError) {
	p, ok := catalog.FindByID(s.FetchProducts(ctx).Products, id)
	if !ok {
		return nil, notFound("Product not found")
	}
	return &p, nil
}

func (s *catalogServiceImpl) NewArrivals(ctx context.Context) []models.Product {
	return catalog.NewArrivals(s.FetchProducts(ctx).Products)
}

// Related lists products sharing the category of id.
func (s *catalogServiceImpl) Related(ctx context.Context, id int64) ([]models.Product, *ServiceError) {
	products := s.FetchProducts(ctx).Products
	p, ok := catalog.FindByID(products, id)
	if !ok {
		return nil, notFound("Product not found")
	}
	return catalog.Related(products, p, relatedLimit), nil
}

// DecantQuote prices a decant of id. The base price is the price per 10ml;
// the discount does not apply to decants.
func (s *catalogServiceImpl) DecantQuote(ctx context.Context, id int64, rawVolume string) (*models.DecantQuote, *ServiceError) {
	p, svcErr := s.GetProduct(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	requested, _ := strconv.Atoi(strings.TrimSpace(rawVolume))
	volume := pricing.ParseVolume(rawVolume)
	quick := make([]int, len(pricing.QuickVolumes))
	copy(quick, pricing.QuickVolumes)

	return &models.DecantQuote{
		ProductID:      p.ID,
		RequestedMl:    requested,
		VolumeMl:       volume,
		PricePerTenMl:  p.Price,
		Price:          pricing.DecantPrice(p.Price, volume),
		Classification: pricing.DecantClassification(volume),
		QuickVolumes:   quick,
	}, nil
}

func (s *catalogServiceImpl) ListCollections(ctx context.Context) ([]models.Collection, *ServiceError) {
	collections, err := s.collections.FindAll(ctx)
	if err != nil {
		logger.For(ctx, s.logger).Error("Failed to list collections", zap.Error(err))
		return nil, internal("Failed to fetch collections")
	}
	return collections, nil
}

func (s *catalogServiceImpl) ListBrands(ctx context.Context) ([]models.Brand, *ServiceError) {
	brands, err := s.brands.FindAllByName(ctx)
	if err != nil {
		logger.For(ctx, s.logger).Error("Failed to list brands", zap.Error(err))
		return nil, internal("Failed to fetch brands")
	}
	return brands, nil
}
