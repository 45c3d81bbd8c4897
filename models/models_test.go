package models_test

import (
	"errors"
	"testing"

	"storefront-service/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record() models.ProductRecord {
	return models.ProductRecord{
		ID:          8,
		Name:        "Rose de Grasse",
		Price:       decimal.NewFromInt(3200),
		FalconPrice: decimal.NewNullDecimal(decimal.NewFromInt(23000)),
		Discount:    15,
		Category:    "Parfums Floraux",
		Image:       "https://example.com/rose.jpg",
		Description: "Rose de mai cueillie à la main.",
		IsNew:       true,
	}
}

func TestDecodeProduct_MapsFields(t *testing.T) {
	p, err := models.DecodeProduct(record())
	require.NoError(t, err)

	assert.Equal(t, int64(8), p.ID)
	assert.Equal(t, int64(3200), p.Price)
	assert.Equal(t, int64(23000), p.FalconPrice)
	assert.True(t, p.IsNew)
	assert.Equal(t, int64(2720), p.FinalPrice())
	assert.Equal(t, int64(23000), p.BottlePrice())
}

func TestDecodeProduct_NullFalconPrice(t *testing.T) {
	r := record()
	r.FalconPrice = decimal.NullDecimal{}

	p, err := models.DecodeProduct(r)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.FalconPrice)
	assert.Equal(t, int64(3200), p.BottlePrice())
}

func TestDecodeProduct_RejectsBadRows(t *testing.T) {
	cases := map[string]func(r *models.ProductRecord){
		"name":         func(r *models.ProductRecord) { r.Name = "  " },
		"price":        func(r *models.ProductRecord) { r.Price = decimal.NewFromFloat(12.5) },
		"discount":     func(r *models.ProductRecord) { r.Discount = 120 },
		"falcon_price": func(r *models.ProductRecord) { r.FalconPrice = decimal.NewNullDecimal(decimal.NewFromInt(-1)) },
		"stock":        func(r *models.ProductRecord) { r.Stock = -3 },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			r := record()
			mutate(&r)
			_, err := models.DecodeProduct(r)

			var decodeErr *models.DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, field, decodeErr.Field)
			assert.Equal(t, int64(8), decodeErr.ID)
		})
	}
}

func TestDecodeProducts_StopsAtFirstError(t *testing.T) {
	bad := record()
	bad.ID = 9
	bad.Discount = -1

	_, err := models.DecodeProducts([]models.ProductRecord{record(), bad})
	assert.Error(t, err)
}

func TestProductRequest_Record(t *testing.T) {
	req := models.ProductRequest{Name: "Oud", Price: 3500, FalconPrice: 25000, Discount: 10, Category: "Parfums"}
	rec := req.Record()

	assert.True(t, rec.Price.Equal(decimal.NewFromInt(3500)))
	assert.True(t, rec.FalconPrice.Valid)

	req.FalconPrice = 0
	assert.False(t, req.Record().FalconPrice.Valid)
}

func TestOrderStatus_Transitions(t *testing.T) {
	allowed := map[models.OrderStatus][]models.OrderStatus{
		models.OrderStatusPending:   {models.OrderStatusInTransit, models.OrderStatusCancelled},
		models.OrderStatusInTransit: {models.OrderStatusDelivered, models.OrderStatusCancelled},
	}
	for _, from := range models.OrderStatuses() {
		for _, to := range models.OrderStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			got, err := from.TransitionTo(to)
			if want {
				assert.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, got)
			} else {
				var vErr *models.ValidationError
				assert.True(t, errors.As(err, &vErr), "%s -> %s", from, to)
				assert.Equal(t, from, got)
			}
		}
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, models.OrderStatusDelivered.IsTerminal())
	assert.True(t, models.OrderStatusCancelled.IsTerminal())
	assert.False(t, models.OrderStatusPending.IsTerminal())
	assert.False(t, models.OrderStatus("lost").IsTerminal())
}

func TestOrderStatus_Unknown(t *testing.T) {
	_, err := models.ParseOrderStatus("shipped")
	assert.Error(t, err)

	_, err = models.OrderStatus("shipped").TransitionTo(models.OrderStatusDelivered)
	assert.Error(t, err)

	s, err := models.ParseOrderStatus("in_transit")
	assert.NoError(t, err)
	assert.Equal(t, "En cours de livraison", s.Label())
}

func TestOrderCreationError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := &models.OrderCreationError{Kind: models.OrderCreationIncomplete, OrderID: "CMD-12345678", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "incomplete")
}

func TestCheckoutRequest_CustomerName(t *testing.T) {
	req := models.CheckoutRequest{FirstName: "Amina", LastName: "Belkacem"}
	assert.Equal(t, "Amina Belkacem", req.CustomerName())
}
