package services_test

import (
	"context"
	"sync"

	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/sender"

	"gorm.io/gorm"
)

// ---- mock product repository ----

type mockProductRepo struct {
	rows      []models.ProductRecord
	findErr   error
	findCalls int
	createErr error
	updateErr error
	deleteErr error
	byID      map[int64]*models.ProductRecord
	count     int64
	lastQuery string
}

func (m *mockProductRepo) FindAll(_ context.Context) ([]models.ProductRecord, error) {
	m.findCalls++
	return m.rows, m.findErr
}
func (m *mockProductRepo) Search(_ context.Context, q string) ([]models.ProductRecord, error) {
	m.lastQuery = q
	return m.rows, m.findErr
}
func (m *mockProductRepo) FindByID(_ context.Context, id int64) (*models.ProductRecord, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockProductRepo) Create(_ context.Context, p *models.ProductRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	p.ID = 100
	return nil
}
func (m *mockProductRepo) Update(_ context.Context, _ int64, _ map[string]interface{}) error {
	return m.updateErr
}
func (m *mockProductRepo) Delete(_ context.Context, _ int64) error { return m.deleteErr }
func (m *mockProductRepo) Count(_ context.Context) (int64, error) { return m.count, nil }

// ---- mock collection / brand repositories ----

type mockCollectionRepo struct {
	rows []models.Collection
	err  error
}

func (m *mockCollectionRepo) FindAll(_ context.Context) ([]models.Collection, error) {
	return m.rows, m.err
}
func (m *mockCollectionRepo) FindByID(_ context.Context, id int64) (*models.Collection, error) {
	return &models.Collection{ID: id, Name: "Updated"}, m.err
}
func (m *mockCollectionRepo) Create(_ context.Context, c *models.Collection) error {
	c.ID = 1
	return m.err
}
func (m *mockCollectionRepo) Update(_ context.Context, _ int64, _ map[string]interface{}) error {
	return m.err
}
func (m *mockCollectionRepo) Delete(_ context.Context, _ int64) error { return m.err }

type mockBrandRepo struct {
	byName []models.Brand
	newest []models.Brand
	err    error
}

func (m *mockBrandRepo) FindAllByName(_ context.Context) ([]models.Brand, error) {
	return m.byName, m.err
}
func (m *mockBrandRepo) FindAllNewest(_ context.Context) ([]models.Brand, error) {
	return m.newest, m.err
}
func (m *mockBrandRepo) FindByID(_ context.Context, id int64) (*models.Brand, error) {
	return &models.Brand{ID: id}, m.err
}
func (m *mockBrandRepo) Create(_ context.Context, b *models.Brand) error { return m.err }
func (m *mockBrandRepo) Update(_ context.Context, _ int64, _ map[string]interface{}) error {
	return m.err
}
func (m *mockBrandRepo) Delete(_ context.Context, _ int64) error { return m.err }

// ---- mock order repository ----

type mockOrderRepo struct {
	createFn     func(order *models.Order, items []models.OrderItem) error
	created      *models.Order
	createdItems []models.OrderItem
	byID         *models.Order
	findErr      error
	byOrderID    map[string]*models.Order
	updateErr    error
	updatedFrom  models.OrderStatus
	updatedTo    models.OrderStatus
	deleteErr    error
	stats        repository.OrderStats
	statsErr     error
	recent       []models.Order
	listed       []models.Order
	listTotal    int64
	lastFilter   models.OrderFilter
}

func (m *mockOrderRepo) CreateWithItems(_ context.Context, order *models.Order, items []models.OrderItem) error {
	if m.createFn != nil {
		if err := m.createFn(order, items); err != nil {
			return err
		}
	}
	order.ID = 1
	order.Items = items
	m.created = order
	m.createdItems = items
	return nil
}
func (m *mockOrderRepo) FindAll(_ context.Context, f models.OrderFilter) ([]models.Order, int64, error) {
	m.lastFilter = f
	return m.listed, m.listTotal, m.findErr
}
func (m *mockOrderRepo) FindByID(_ context.Context, _ int64) (*models.Order, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.byID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.byID
	return &cp, nil
}
func (m *mockOrderRepo) FindByOrderID(_ context.Context, orderID string) (*models.Order, error) {
	if o, ok := m.byOrderID[orderID]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockOrderRepo) UpdateStatus(_ context.Context, _ int64, from, to models.OrderStatus) error {
	m.updatedFrom, m.updatedTo = from, to
	return m.updateErr
}
func (m *mockOrderRepo) Delete(_ context.Context, _ int64) error { return m.deleteErr }
func (m *mockOrderRepo) Stats(_ context.Context) (repository.OrderStats, error) {
	return m.stats, m.statsErr
}
func (m *mockOrderRepo) Recent(_ context.Context, _ int) ([]models.Order, error) {
	return m.recent, nil
}

// ---- mock SNS publisher ----

type mockSNS struct {
	mu         sync.Mutex
	publishErr error
	messages   [][]byte
}

func (m *mockSNS) Publish(_ context.Context, _ string, msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return m.publishErr
}

// ---- mock email sender ----

type mockMailer struct {
	sent chan string
}

func (m *mockMailer) SendEmail(_ context.Context, to, _, _ string) (sender.SendResult, error) {
	m.sent <- to
	return sender.SendResult{MessageID: "test"}, nil
}
