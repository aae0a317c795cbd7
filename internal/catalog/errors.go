package catalog

import "errors"

var (
	ErrDuplicateName   = errors.New("a product with that name already exists")
	ErrNotFound        = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrInvalidPrice    = errors.New("product price must be zero or greater")
)
