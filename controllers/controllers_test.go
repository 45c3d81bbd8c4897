package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/controllers"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/pkg/auth"
	"storefront-service/routes"
	"storefront-service/services"
	"storefront-service/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAdmin only implements what the tests call.
type fakeAdmin struct {
	services.AdminService
	lastQuery string
}

func (f *fakeAdmin) ListProducts(_ context.Context, q string) ([]models.ProductRecord, *services.ServiceError) {
	f.lastQuery = q
	return []models.ProductRecord{{ID: 1, Name: "Oud Royal"}}, nil
}

type harness struct {
	router   *gin.Engine
	catalog  *fakeCatalog
	checkout *fakeCheckout
	orders   *fakeOrders
	admin    *fakeAdmin
	images   *fakeImages
	token    string
}

func catalogProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Oud Royal", Price: 3000, FalconPrice: 24000, Category: "Oriental", Discount: 10},
		{ID: 2, Name: "ambre noir", Price: 2800, Category: "Oriental", IsNew: true},
		{ID: 3, Name: "Rose Poudrée", Price: 60000, Category: "Floral"},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{
		catalog:  &fakeCatalog{products: catalogProducts(), source: services.SourceBackend},
		checkout: &fakeCheckout{},
		orders:   &fakeOrders{},
		admin:    &fakeAdmin{},
		images:   &fakeImages{},
	}
	tokens := auth.NewTokens("test-secret", time.Hour)
	token, _, err := tokens.Issue("admin@parfum.dz", auth.TypeAdmin)
	require.NoError(t, err)
	h.token = token

	sessions := services.NewSessionService(session.NewMemoryStore(time.Hour), h.catalog, nil, zap.NewNop())

	h.router = gin.New()
	routes.RegisterRoutes(h.router, routes.Controllers{
		Catalog: controllers.NewCatalogController(h.catalog),
		Session: controllers.NewSessionController(sessions, h.checkout),
		Admin:   controllers.NewAdminController(h.admin, fakeAuth{}, h.images),
		Orders:  controllers.NewOrderController(h.orders),
	}, routes.Options{Tokens: tokens, SessionTTL: time.Hour, Logger: zap.NewNop()})
	return h
}

func (h *harness) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) asAdmin(method, path string, body interface{}) *httptest.ResponseRecorder {
	return h.do(method, path, body, map[string]string{"Authorization": "Bearer " + h.token})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func productIDs(t *testing.T, w *httptest.ResponseRecorder) []float64 {
	t.Helper()
	var body struct {
		Products []struct {
			ID float64 `json:"id"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	ids := make([]float64, 0, len(body.Products))
	for _, p := range body.Products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestGetProducts_DefaultRangeAndSort(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/products?sort=name", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	// 60000 DA is outside the default 1000..50000 range
	assert.Equal(t, []float64{2, 1}, productIDs(t, w))

	body := decode(t, w)
	assert.Equal(t, "backend", body["source"])
	assert.Nil(t, body["error"])
	assert.Equal(t, false, body["loading"])
}

func TestGetProducts_QueryParams(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/products?max_price=100000&sort=price-high", nil, nil)
	assert.Equal(t, []float64{3, 2, 1}, productIDs(t, w))

	w = h.do(http.MethodGet, "/products?q=FLORAL&max_price=100000", nil, nil)
	assert.Equal(t, []float64{3}, productIDs(t, w))

	w = h.do(http.MethodGet, "/products?new=true", nil, nil)
	assert.Equal(t, []float64{2}, productIDs(t, w))

	w = h.do(http.MethodGet, "/products/new", nil, nil)
	assert.Equal(t, []float64{2}, productIDs(t, w))

	w = h.do(http.MethodGet, "/products?min_price=abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProducts_BothBoundsAboveDefaultMax(t *testing.T) {
	h := newHarness(t)
	h.catalog.products = append(h.catalog.products,
		models.Product{ID: 4, Name: "Ambre Impérial", Price: 55000, Category: "Oriental"},
		models.Product{ID: 5, Name: "Musc Blanc", Price: 90000, Category: "Musc"},
	)

	w := h.do(http.MethodGet, "/products?min_price=60000&max_price=80000", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []float64{3}, productIDs(t, w))

	var body struct {
		PriceRange struct {
			Min int64 `json:"min"`
			Max int64 `json:"max"`
		} `json:"price_range"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(60000), body.PriceRange.Min)
	assert.Equal(t, int64(80000), body.PriceRange.Max)

	w = h.do(http.MethodGet, "/products?min_price=80000&max_price=50000&sort=price-low", nil, nil)
	assert.Equal(t, []float64{4, 3}, productIDs(t, w))
}

func TestAddCartItem_Bounds(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 100}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 1, "purchase_type": "decant", "volume_ml": int64(1) << 62}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 1, "purchase_type": "decant", "volume_ml": 1000}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cart models.CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, int64(300000), cart.Total)

	headers := map[string]string{middleware.SessionHeader: cart.SessionID}
	w = h.do(http.MethodPut, "/cart/items/1", gin.H{"quantity": 1 << 40, "classification": "1000ml Decant"}, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProduct(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/products/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	product := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, float64(2700), product["final_price"])
	assert.Equal(t, float64(24000), product["bottle_price"])

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/products/99", nil, nil).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/products/abc", nil, nil).Code)
}

func TestShippingEndpoints(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/shipping/quote?wilaya=16&method=home", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(600), decode(t, w)["total"])

	w = h.do(http.MethodGet, "/shipping/quote?wilaya=0", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodGet, "/shipping/wilayas", nil, nil)
	assert.Len(t, decode(t, w)["wilayas"], 58)
}

func TestCartFlowKeepsSession(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 2}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sid := w.Header().Get(middleware.SessionHeader)
	require.NotEmpty(t, sid)

	headers := map[string]string{middleware.SessionHeader: sid}
	w = h.do(http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 1, "purchase_type": "decant", "volume_ml": 20}, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodGet, "/cart", nil, headers)
	var cart models.CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, sid, cart.SessionID)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, int64(2*24000+6000), cart.Total)

	w = h.do(http.MethodDelete, "/cart/items/1?classification=20ml%20Decant", nil, headers)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 1)

	w = h.do(http.MethodGet, "/cart", nil, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)
}

func TestAddCartItem_Validation(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 0}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invalid request", body["error"])
	assert.NotEmpty(t, body["details"])

	w = h.do(http.MethodPost, "/cart/items", gin.H{"product_id": 1, "quantity": 1, "purchase_type": "sample"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/cart/items", gin.H{"product_id": 404, "quantity": 1}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavorites(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/favorites", gin.H{"product_id": 2}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	headers := map[string]string{middleware.SessionHeader: w.Header().Get(middleware.SessionHeader)}

	w = h.do(http.MethodGet, "/favorites/2", nil, headers)
	assert.Equal(t, true, decode(t, w)["is_favorite"])

	h.do(http.MethodDelete, "/favorites/2", nil, headers)
	w = h.do(http.MethodGet, "/favorites/2", nil, headers)
	assert.Equal(t, false, decode(t, w)["is_favorite"])
}

func validCheckout() gin.H {
	return gin.H{
		"first_name":      "Amina",
		"last_name":       "Benali",
		"email":           "amina@example.com",
		"phone":           "0555123456",
		"wilaya":          16,
		"commune":         "Hydra",
		"delivery_method": "home",
	}
}

func TestCheckout(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/checkout", validCheckout(), map[string]string{middleware.IdempotencyHeader: "abc"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "abc", h.checkout.lastKey)
	assert.Equal(t, w.Header().Get(middleware.SessionHeader), h.checkout.lastSession)
	assert.Equal(t, 16, h.checkout.lastReq.Wilaya)

	bad := validCheckout()
	bad["wilaya"] = 59
	w = h.do(http.MethodPost, "/checkout", bad, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bad = validCheckout()
	bad["delivery_method"] = "drone"
	w = h.do(http.MethodPost, "/checkout", bad, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	h.checkout.err = &services.ServiceError{StatusCode: http.StatusBadGateway, Message: "Failed to create order"}
	w = h.do(http.MethodPost, "/checkout", validCheckout(), nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to create order", decode(t, w)["error"])
}

func TestAdminRoutesRequireToken(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/admin/products", nil, nil).Code)

	w := h.asAdmin(http.MethodGet, "/admin/products?q=oud", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "oud", h.admin.lastQuery)
}

func TestAdminLogin(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/admin/login", gin.H{"email": "admin@parfum.dz", "password": "good"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodPost, "/admin/login", gin.H{"email": "admin@parfum.dz", "password": "bad"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = h.do(http.MethodPost, "/admin/login", gin.H{"email": "not-an-email", "password": "good"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrders_PaginationAndFilter(t *testing.T) {
	h := newHarness(t)
	h.orders.listFn = func(models.OrderFilter) ([]models.Order, int64, *services.ServiceError) {
		return []models.Order{{ID: 1}}, 25, nil
	}

	w := h.asAdmin(http.MethodGet, "/admin/orders?q=%20amina%20&status=pending&page=2&limit=500", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OrderFilter{Query: "amina", Status: models.OrderStatusPending, Page: 2, Limit: 100}, h.orders.lastFilter)

	meta := decode(t, w)["meta"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["total_pages"])
	assert.Equal(t, false, meta["has_more"])
}

func TestUpdateOrderStatus(t *testing.T) {
	h := newHarness(t)
	h.orders.updateFn = func(id int64, next models.OrderStatus) (*models.Order, *services.ServiceError) {
		if next == models.OrderStatusPending {
			return nil, &services.ServiceError{StatusCode: http.StatusConflict, Message: "statut: cannot move order from in_transit to pending"}
		}
		return &models.Order{ID: id, Status: next}, nil
	}

	w := h.asAdmin(http.MethodPatch, "/admin/orders/4/status", gin.H{"statut": "in_transit"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "En cours de livraison", decode(t, w)["label"])

	w = h.asAdmin(http.MethodPatch, "/admin/orders/4/status", gin.H{"statut": "pending"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.asAdmin(http.MethodPatch, "/admin/orders/4/status", gin.H{"statut": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)
	h.orders.dashboard = &models.DashboardStats{TotalSales: 125601, OrdersCount: 12}

	w := h.asAdmin(http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(125601), decode(t, w)["total_sales"])
}

func TestUploadImage(t *testing.T) {
	h := newHarness(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "flacon.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, mw.WriteField("bucket", "promo"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+h.token)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "flacon.png", h.images.filename)
	assert.Equal(t, "promo", h.images.bucket)
	assert.Equal(t, "png-bytes", h.images.body)

	w = h.asAdmin(http.MethodPost, "/admin/images", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
