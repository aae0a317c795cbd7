package shop

import "errors"

var (
	// ErrPermissionDenied rejects a mutating command from a non-admin actor
	// before any state is touched.
	ErrPermissionDenied = errors.New("administrator permission required")

	// ErrViewExpired means the shop view a component belongs to is no longer
	// tracked (evicted, or the process restarted since it was sent).
	ErrViewExpired = errors.New("shop view expired")

	// ErrNoHistory means the ledger holds no purchase records yet.
	ErrNoHistory = errors.New("no purchase history")

	// ErrNoProducts means a listing or shop filter matched nothing.
	ErrNoProducts = errors.New("no products in this category")
)
