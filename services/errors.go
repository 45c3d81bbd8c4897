// Package services holds the storefront and admin business logic.
package services

import (
	"errors"
	"net/http"

	"storefront-service/models"

	"gorm.io/gorm"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

func badRequest(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: msg}
}

func notFound(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: msg}
}

func internal(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: msg}
}

// fromRepoError maps gorm.ErrRecordNotFound to 404 and anything else to 500.
func fromRepoError(err error, notFoundMsg, failMsg string) *ServiceError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(notFoundMsg)
	}
	return internal(failMsg)
}

// fromValidation turns a domain ValidationError into a 400.
func fromValidation(err error) *ServiceError {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return badRequest(verr.Error())
	}
	return internal(err.Error())
}
