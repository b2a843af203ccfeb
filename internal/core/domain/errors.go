package domain

import "errors"

var (
	ErrInvalidID = errors.New("invalid identifier")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("wrong password")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrInvalidRole        = errors.New("invalid role")

	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrOrderConflict      = errors.New("order was modified concurrently")
	ErrEmptyOrder         = errors.New("at least one product is required")

	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrInvalidCategory  = errors.New("category name is required")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProduct   = errors.New("invalid product")
)
