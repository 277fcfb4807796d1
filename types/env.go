package types

// ------------------------
// Pressure
// ------------------------

type PressureInfo struct {
	Sensor string  `json:"sensor"` // "mpr"
	Addr   uint16  `json:"addr"`   // I2C address
	Bus    string  `json:"bus"`    // "i2c0", ...
	Type   string  `json:"type"`   // transfer function "A", "B", "C"
	Min    float64 `json:"min_psi"`
	Max    float64 `json:"max_psi"`
	Unit   string  `json:"unit"` // unit of PressureValue.Value
}

type PressureValue struct {
	Value float64 `json:"value"` // in Unit
	Unit  string  `json:"unit"`  // "psi", "pa", "kpa", "torr", "inhg", "atm", "bar"
	Raw   uint32  `json:"raw"`   // 24-bit output code
	TsMs  int64   `json:"ts_ms"`
}

type SetUnit struct {
	Unit string `json:"unit"`
}

type SetUnitAck struct {
	OK   bool   `json:"ok"`
	Unit string `json:"unit"`
}
