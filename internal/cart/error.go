package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")

	// -- Resource State --
	ErrLineNotFound       = errors.New("cart line not found")
	ErrNoActiveCart       = errors.New("no active cart")
	ErrCheckoutInProgress = errors.New("checkout already in progress for this cart")
	ErrCartNotClaimed     = errors.New("cart is not claimed for checkout")
)
