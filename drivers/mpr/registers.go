package mpr

// 7-bit I2C address (0x18 on MPRLS0025PA00001A and most variants).
const Address = 0x18

// Output measurement command: 0xAA 0x00 0x00.
var cmdMeasure = [3]byte{0xAA, 0x00, 0x00}

// Status byte bits.
const (
	StatusPowered    = 0x40
	StatusBusy       = 0x20
	StatusIntegrity  = 0x04 // memory checksum failed
	StatusSaturation = 0x01 // internal math saturated

	// A status of all ones means nothing drove the bus.
	statusFloating = 0xFF
)

const (
	defaultMinPSI = 0
	defaultMaxPSI = 25

	// Reset pulse low time and settle time after release.
	resetHold = 5 // ms
	// Nominal conversion time (datasheet: 5 ms max).
	conversionHint = 5 // ms
	pollInterval   = 1 // ms
)
