package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrUnbalanced       = errors.New("transaction is not balanced")
	ErrEmptyDescription = errors.New("description must not be empty")
	ErrEmptyName        = errors.New("name must not be empty")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDirection = errors.New("direction must be debit or credit")
	ErrInvalidValue     = errors.New("entry value must be greater than zero")
	ErrNoEntries        = errors.New("transaction must have at least one entry")
	ErrInvalidBalance   = errors.New("balance must not be negative")
	ErrVersionConflict  = errors.New("optimistic lock conflict")
)
