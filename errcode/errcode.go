package errcode

import (
	"errors"

	"mprsense-go/drivers/mpr"
)

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK                Code = "ok"
	Busy              Code = "busy"
	Unsupported       Code = "unsupported"
	InvalidParams     Code = "invalid_params"
	UnknownCapability Code = "unknown_capability"
	HALNotReady       Code = "hal_not_ready"

	UnknownBus Code = "unknown_bus"
	UnknownPin Code = "unknown_pin"
	Timeout    Code = "timeout"

	// Sensor-level outcomes.
	NotFound      Code = "not_found"
	DataIntegrity Code = "data_integrity"
	BusFault      Code = "bus_fault"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap attaches the mapped code of err and the operation name. nil stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: MapDriverErr(err), Op: op, Msg: err.Error(), Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps low-level driver errors to a Code.
func MapDriverErr(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, mpr.ErrNotFound):
		return NotFound
	case errors.Is(err, mpr.ErrIntegrity), errors.Is(err, mpr.ErrSaturation):
		return DataIntegrity
	case errors.Is(err, mpr.ErrBusFault):
		return BusFault
	case errors.Is(err, mpr.ErrTimeout):
		return Timeout
	case errors.Is(err, mpr.ErrUnknownDeviceType), errors.Is(err, mpr.ErrInvalidRange):
		return InvalidParams
	}
	return Of(err)
}
