// Package pricing derives displayed prices from a base price, a percentage
// discount and, for decants, a requested volume. All amounts are whole DA.
package pricing

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MinVolumeMl is the smallest decant volume that can be ordered.
	MinVolumeMl = 10
	// VolumeStepMl is the granularity decants are sold in.
	VolumeStepMl = 10
	// MaxVolumeMl is the largest decant volume that can be ordered.
	MaxVolumeMl = 1000
)

// QuickVolumes are the preset decant sizes offered on the product page.
var QuickVolumes = []int{10, 20, 30, 40, 50, 75, 100}

var (
	hundred  = decimal.NewFromInt(100)
	maxPrice = decimal.NewFromInt(math.MaxInt64)
	minPrice = decimal.NewFromInt(math.MinInt64)
)

// FinalPrice returns round(price * (1 - discountPercent/100)) when
// discountPercent > 0, else price. The result is never negative.
// Discounts outside [0,100] are not validated here.
func FinalPrice(price int64, discountPercent int) int64 {
	result := price
	if discountPercent > 0 {
		factor := hundred.Sub(decimal.NewFromInt(int64(discountPercent))).Div(hundred)
		result = decimal.NewFromInt(price).Mul(factor).Round(0).IntPart()
	}
	if result < 0 {
		return 0
	}
	return result
}

// DecantPrice prorates a 10ml reference price to volumeMl. Callers pass a
// positive multiple of 10; other volumes are truncated to whole DA. Results
// beyond the int64 range saturate instead of wrapping.
func DecantPrice(pricePerTenMl int64, volumeMl int) int64 {
	d := decimal.NewFromInt(int64(volumeMl)).
		Div(decimal.NewFromInt(VolumeStepMl)).
		Mul(decimal.NewFromInt(pricePerTenMl)).
		Truncate(0)
	switch {
	case d.GreaterThan(maxPrice):
		return math.MaxInt64
	case d.LessThan(minPrice):
		return math.MinInt64
	}
	return d.IntPart()
}

// NormalizeVolume clamps requested to [10ml, 1000ml] and rounds it to the
// nearest multiple of 10, halves rounding up.
func NormalizeVolume(requested int) int {
	if requested < MinVolumeMl {
		requested = MinVolumeMl
	}
	if requested > MaxVolumeMl {
		requested = MaxVolumeMl
	}
	return ((requested + VolumeStepMl/2) / VolumeStepMl) * VolumeStepMl
}

// ParseVolume reads a custom volume typed by a shopper. Leading digits are
// used, anything unparsable or zero falls back to 10ml, digits beyond the int
// range give the largest volume, and the result is normalized.
func ParseVolume(input string) int {
	s := strings.TrimSpace(input)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil && errors.Is(err, strconv.ErrRange) {
		v = MaxVolumeMl
		if strings.HasPrefix(s, "-") {
			v = MinVolumeMl
		}
	} else if err != nil || v == 0 {
		v = MinVolumeMl
	}
	return NormalizeVolume(v)
}

// FullBottlePrice is the price of a full bottle: the dedicated full-bottle
// price when set, the base price otherwise.
func FullBottlePrice(price, falconPrice int64) int64 {
	if falconPrice > 0 {
		return falconPrice
	}
	return price
}

// DecantClassification labels a decant cart line, e.g. "30ml Decant".
func DecantClassification(volumeMl int) string {
	return strconv.Itoa(volumeMl) + "ml Decant"
}
