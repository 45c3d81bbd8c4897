package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DecodeError reports a backend row that cannot be mapped to a domain value.
type DecodeError struct {
	Table  string
	ID     int64
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s row %d: %s %s", e.Table, e.ID, e.Field, e.Reason)
}

// DecodeProduct maps a products row to a Product, rejecting rows that
// break the catalog rules (see DecodeError).
func DecodeProduct(r ProductRecord) (Product, error) {
	fail := func(field, reason string) (Product, error) {
		return Product{}, &DecodeError{Table: "products", ID: r.ID, Field: field, Reason: reason}
	}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fail("name", "is empty")
	}
	price, ok := wholeAmount(r.Price)
	if !ok {
		return fail("price", "must be a non-negative whole amount, got "+r.Price.String())
	}
	if r.Discount < 0 || r.Discount > 100 {
		return fail("discount", fmt.Sprintf("must be within [0,100], got %d", r.Discount))
	}
	var falcon int64
	if r.FalconPrice.Valid {
		if falcon, ok = wholeAmount(r.FalconPrice.Decimal); !ok {
			return fail("falcon_price", "must be a non-negative whole amount, got "+r.FalconPrice.Decimal.String())
		}
	}
	if r.Stock < 0 {
		return fail("stock", fmt.Sprintf("must not be negative, got %d", r.Stock))
	}

	return Product{
		ID:          r.ID,
		Name:        name,
		Description: r.Description,
		Price:       price,
		FalconPrice: falcon,
		Image:       r.Image,
		Category:    r.Category,
		IsNew:       r.IsNew,
		Discount:    r.Discount,
		Stock:       r.Stock,
	}, nil
}

// DecodeProducts maps rows in order and stops at the first bad row.
func DecodeProducts(rows []ProductRecord) ([]Product, error) {
	out := make([]Product, 0, len(rows))
	for _, r := range rows {
		p, err := DecodeProduct(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func wholeAmount(d decimal.Decimal) (int64, bool) {
	if d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return 0, false
	}
	return d.IntPart(), true
}
