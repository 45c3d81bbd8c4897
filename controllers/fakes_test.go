package controllers_test

import (
	"context"
	"io"
	"net/http"

	"storefront-service/models"
	"storefront-service/services"
)

type fakeCatalog struct {
	products []models.Product
	source   string
}

func (f *fakeCatalog) FetchProducts(_ context.Context) models.ProductsResult {
	return models.ProductsResult{Products: f.products, Source: f.source}
}
func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*models.Product, *services.ServiceError) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
}
func (f *fakeCatalog) NewArrivals(_ context.Context) []models.Product {
	var out []models.Product
	for _, p := range f.products {
		if p.IsNew {
			out = append(out, p)
		}
	}
	return out
}
func (f *fakeCatalog) Related(_ context.Context, _ int64) ([]models.Product, *services.ServiceError) {
	return nil, nil
}
func (f *fakeCatalog) DecantQuote(_ context.Context, id int64, raw string) (*models.DecantQuote, *services.ServiceError) {
	return &models.DecantQuote{ProductID: id, Classification: raw}, nil
}
func (f *fakeCatalog) ListCollections(_ context.Context) ([]models.Collection, *services.ServiceError) {
	return nil, nil
}
func (f *fakeCatalog) ListBrands(_ context.Context) ([]models.Brand, *services.ServiceError) {
	return []models.Brand{{ID: 1, Name: "Dior"}}, nil
}

type fakeCheckout struct {
	lastKey     string
	lastSession string
	lastReq     *models.CheckoutRequest
	err         *services.ServiceError
}

func (f *fakeCheckout) CreateOrder(_ context.Context, sessionID string, req *models.CheckoutRequest, key string) (*models.Order, *services.ServiceError) {
	f.lastSession, f.lastReq, f.lastKey = sessionID, req, key
	if f.err != nil {
		return nil, f.err
	}
	return &models.Order{ID: 1, OrderID: "CMD-12345678", Status: models.OrderStatusPending}, nil
}

// fakeOrders implements services.OrderAdminService with func fields.
type fakeOrders struct {
	listFn     func(models.OrderFilter) ([]models.Order, int64, *services.ServiceError)
	updateFn   func(int64, models.OrderStatus) (*models.Order, *services.ServiceError)
	dashboard  *models.DashboardStats
	lastFilter models.OrderFilter
}

func (f *fakeOrders) ListOrders(_ context.Context, filter models.OrderFilter) ([]models.Order, int64, *services.ServiceError) {
	f.lastFilter = filter
	return f.listFn(filter)
}
func (f *fakeOrders) GetOrder(_ context.Context, id int64) (*models.Order, *services.ServiceError) {
	return &models.Order{ID: id}, nil
}
func (f *fakeOrders) UpdateStatus(_ context.Context, id int64, next models.OrderStatus) (*models.Order, *services.ServiceError) {
	return f.updateFn(id, next)
}
func (f *fakeOrders) DeleteOrder(_ context.Context, _ int64) *services.ServiceError { return nil }
func (f *fakeOrders) Dashboard(_ context.Context) (*models.DashboardStats, *services.ServiceError) {
	return f.dashboard, nil
}

type fakeImages struct {
	filename string
	bucket   string
	body     string
}

func (f *fakeImages) Upload(_ context.Context, file io.Reader, filename, bucket string) (string, *services.ServiceError) {
	b, _ := io.ReadAll(file)
	f.filename, f.bucket, f.body = filename, bucket, string(b)
	return "https://cdn.example.com/parfum_images/products/1-abc.png", nil
}

type fakeAuth struct{}

func (fakeAuth) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, *services.ServiceError) {
	if req.Password != "good" {
		return nil, &services.ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid email or password"}
	}
	return &models.LoginResponse{Token: "t"}, nil
}
