package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrUnbalanced       = &AppError{http.StatusUnprocessableEntity, "TRANSACTION_UNBALANCED", "Transaction debits and credits do not balance"}
	ErrAccountNotFound  = &AppError{http.StatusUnprocessableEntity, "ACCOUNT_NOT_FOUND", "Account not found"}
	ErrInvalidDirection = &AppError{http.StatusBadRequest, "INVALID_DIRECTION", "Direction must be debit or credit"}
	ErrInvalidValue     = &AppError{http.StatusBadRequest, "INVALID_VALUE", "Entry value must be greater than zero"}
	ErrVersionConflict  = &AppError{http.StatusConflict, "VERSION_CONFLICT", "Resource was modified concurrently, please retry"}
)
