package scheduling

import "errors"

var (
	// ErrCapacityExceeded is an invariant violation: a reservation was
	// attempted beyond what the ledger verified as available. With runs
	// serialized it indicates a bug, so the run aborts without committing.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNoCapacityWithinHorizon is an expected business outcome: no free
	// day was found inside the search horizon. It surfaces as a PARTIAL or
	// FAILED order status, not as an HTTP error.
	ErrNoCapacityWithinHorizon = errors.New("no capacity within horizon")

	// ErrInvalidOrder rejects orders before any ledger interaction.
	ErrInvalidOrder = errors.New("invalid order for scheduling")
)
