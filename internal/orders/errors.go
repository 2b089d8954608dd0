package orders

import (
	"errors"
	"fmt"
)

// Validation errors: raised before any pool interaction.
var (
	ErrItemsRequired    = errors.New("order must contain at least one item")
	ErrItemQtyInvalid   = errors.New("item qty must be greater than zero")
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	ErrProductRequired  = errors.New("item product_id is required")
	ErrTotalNegative    = errors.New("total_cents must be non-negative")
	ErrAddressRequired  = errors.New("shipping_address is required")
)

// Constraint errors: transaction rolled back, no partial effects,
// client-correctable.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ErrOrderNotFound is returned by the read repo.
var ErrOrderNotFound = errors.New("order not found")

// TxError wraps any failure during begin, statement execution or commit.
// The transaction has been rolled back; the cause is kept for logs only.
type TxError struct {
	Op  string
	Err error
}

func (e *TxError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *TxError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	for _, v := range []error{
		ErrItemsRequired, ErrItemQtyInvalid, ErrItemPriceInvalid,
		ErrProductRequired, ErrTotalNegative, ErrAddressRequired,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func IsConstraint(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrInsufficientStock)
}
