package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderNotPending = errors.New("order is not pending payment")
	ErrOrderTooRecent  = errors.New("order was placed less than a minute ago")
)
