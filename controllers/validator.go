package controllers

import (
	"sync"

	"storefront-service/models"
	"storefront-service/shipping"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the domain tags used in request binding:
// "wilaya" (a known wilaya code) and "order_status" (a known status).
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("wilaya", validateWilaya)
		_ = v.RegisterValidation("order_status", validateOrderStatus)
	})
}

func validateWilaya(fl validator.FieldLevel) bool {
	_, ok := shipping.Lookup(int(fl.Field().Int()))
	return ok
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	return models.OrderStatus(fl.Field().String()).Valid()
}
