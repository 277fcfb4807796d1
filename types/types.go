package types

// ---- Common HAL state (retained) ----

type HALState struct {
	Level  string `json:"level"`  // "idle", "ready", "stopped"
	Status string `json:"status"` // freeform short code
	TS     int64  `json:"ts_ms"`
	Error  string `json:"error,omitempty"`
}

// Link is the link/state reported for a capability.
type Link string

const (
	LinkUp       Link = "up"
	LinkDown     Link = "down"
	LinkDegraded Link = "degraded"
)

type CapabilityStatus struct {
	Link  Link   `json:"link"`
	TS    int64  `json:"ts_ms"`
	Error string `json:"error,omitempty"` // errcode.Code
}

// ---- Capability kinds & info ----

type Kind string

const (
	KindPressure Kind = "pressure"
)

// Info envelope each device/cap exposes (retained).
type Info struct {
	SchemaVersion int         `json:"schema_version"`
	Driver        string      `json:"driver"`
	Detail        interface{} `json:"detail,omitempty"`
}

// ---- HAL configuration (topic "config/hal") ----

type HALConfig struct {
	Devices []HALDevice `json:"devices"`
}

type HALDevice struct {
	ID     string `json:"id"`
	Type   string `json:"type"`             // e.g. "mpr"
	Params any    `json:"params,omitempty"` // device-specific, JSON-like
	BusRef BusRef `json:"bus_ref,omitempty"`
}

// BusRef identifies a named bus instance configured by the platform layer.
type BusRef struct {
	Type string `json:"type"` // "i2c"
	ID   string `json:"id"`   // "i2c0"
}

// ---- Generic replies ----

type OKReply struct {
	OK bool `json:"ok"`
}

type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// ---- Control payloads ----

type SetRate struct {
	PeriodMS int `json:"period_ms"`
}

type SetRateAck struct {
	OK       bool `json:"ok"`
	PeriodMS int  `json:"period_ms"`
}
