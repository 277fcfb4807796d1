// services/hal/internal/halerr/errors.go
package halerr

import "errors"

// Build/config
var (
	ErrMissingBusRef = errors.New("missing_bus_ref")
	ErrUnknownBus    = errors.New("unknown_bus")
	ErrUnknownPin    = errors.New("unknown_pin")
	ErrUnknownType   = errors.New("unknown_device_type")
	ErrInvalidParams = errors.New("invalid_params")
)
