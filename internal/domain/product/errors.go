package product

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductForbidden   = errors.New("you do not have permission to view this product")
	ErrInvalidPriceFormat = errors.New("invalid price, expected something like 55,99")
)
