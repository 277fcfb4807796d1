// services/hal/internal/consts/consts.go
package consts

// Top-level topics
const (
	TokConfig     = "config"
	TokHAL        = "hal"
	TokCapability = "capability"
	TokInfo       = "info"
	TokState      = "state"
	TokValue      = "value"
	TokControl    = "control"
)

// Control verbs
const (
	CtrlReadNow = "read_now"
	CtrlSetRate = "set_rate"
	CtrlSetUnit = "set_unit"
	CtrlGetInfo = "get_info"
)

// Capability kinds used in service wiring
const (
	KindPressure = "pressure"
)

// Sampling period bounds (ms).
const (
	MinPeriodMS = 50
	MaxPeriodMS = 3_600_000
)
