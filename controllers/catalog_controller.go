package controllers

import (
	"net/http"
	"strconv"

	"storefront-service/catalog"
	"storefront-service/models"
	"storefront-service/services"
	"storefront-service/shipping"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	service services.CatalogService
}

func NewCatalogController(s services.CatalogService) *CatalogController {
	return &CatalogController{service: s}
}

// GetProducts serves the filtered, searched and sorted product view.
// A missing min_price or max_price keeps its default of 1000 or 50000 DA.
func (ctrl *CatalogController) GetProducts(c *gin.Context) {
	minPrice, ok := optionalPrice(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := optionalPrice(c, "max_price")
	if !ok {
		return
	}
	filters := catalog.Filters{PriceRange: catalog.ResolvePriceRange(minPrice, maxPrice)}

	result := ctrl.service.FetchProducts(c.Request.Context())
	products := result.Products
	if c.Query("new") == "true" {
		products = catalog.NewArrivals(products)
	}
	view := catalog.DeriveView(products, filters, c.Query("q"), catalog.ParseSortKey(c.Query("sort")))

	c.JSON(http.StatusOK, gin.H{
		"products":    productViews(view),
		"count":       len(view),
		"price_range": filters.PriceRange,
		"loading":     result.Loading,
		"error":       result.Error,
		"source":      result.Source,
	})
}

// optionalPrice reads an integer query parameter, nil when absent.
func optionalPrice(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return nil, false
	}
	return &v, true
}

func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, svcErr := ctrl.service.GetProduct(c.Request.Context(), id)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": models.NewProductView(*product)})
}

// GetNewArrivals lists the products flagged as new.
func (ctrl *CatalogController) GetNewArrivals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": productViews(ctrl.service.NewArrivals(c.Request.Context()))})
}

// GetRelated lists products sharing the category of :id.
func (ctrl *CatalogController) GetRelated(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	related, svcErr := ctrl.service.Related(c.Request.Context(), id)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": productViews(related)})
}

func productViews(products []models.Product) []models.ProductView {
	out := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, models.NewProductView(p))
	}
	return out
}

func (ctrl *CatalogController) GetDecantQuote(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	quote, svcErr := ctrl.service.DecantQuote(c.Request.Context(), id, c.Query("ml"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (ctrl *CatalogController) GetCollections(c *gin.Context) {
	collections, svcErr := ctrl.service.ListCollections(c.Request.Context())
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

func (ctrl *CatalogController) GetBrands(c *gin.Context) {
	brands, svcErr := ctrl.service.ListBrands(c.Request.Context())
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// GetWilayas lists every wilaya with its base delivery price.
func (ctrl *CatalogController) GetWilayas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"wilayas":                 shipping.Wilayas(),
		"home_delivery_surcharge": shipping.HomeDeliverySurcharge,
	})
}

// GetShippingQuote prices delivery for ?wilaya=<code>&method=home|office.
func (ctrl *CatalogController) GetShippingQuote(c *gin.Context) {
	code, err := strconv.Atoi(c.Query("wilaya"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wilaya"})
		return
	}
	quote, err := shipping.QuoteFor(code, models.DeliveryMethod(c.DefaultQuery("method", "home")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}
