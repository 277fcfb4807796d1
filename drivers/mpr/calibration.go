package mpr

import "mprsense-go/x/mathx"

// DeviceType selects the factory transfer function, i.e. which span of the
// 24-bit output corresponds to the rated pressure range.
type DeviceType uint8

const (
	TransferA DeviceType = iota + 1 // 10% to 90% of 2^24
	TransferB                       // 2.5% to 22.5% of 2^24
	TransferC                       // 20% to 80% of 2^24
)

// Calibration holds the raw output codes at the minimum and maximum of the
// rated pressure range.
type Calibration struct {
	OutputMin uint32
	OutputMax uint32
}

var calibrations = [...]Calibration{
	TransferA: {OutputMin: 0x19999A, OutputMax: 0xE66666},
	TransferB: {OutputMin: 0x066666, OutputMax: 0x39999A},
	TransferC: {OutputMin: 0x333333, OutputMax: 0xCCCCCD},
}

// CalibrationFor returns the output code range of a device type.
func CalibrationFor(t DeviceType) (Calibration, error) {
	if t < TransferA || int(t) >= len(calibrations) {
		return Calibration{}, ErrUnknownDeviceType
	}
	return calibrations[t], nil
}

// Span is OutputMax-OutputMin.
func (c Calibration) Span() uint32 { return c.OutputMax - c.OutputMin }

// Contains reports whether raw lies inside the calibrated output range.
func (c Calibration) Contains(raw uint32) bool {
	return mathx.Between(raw, c.OutputMin, c.OutputMax)
}

// rescale maps raw linearly from [OutputMin, OutputMax] to [lo, hi]. Codes
// outside the calibrated span extrapolate; they are not clamped.
func (c Calibration) rescale(raw uint32, lo, hi float64) float64 {
	return mathx.MapRange(float64(raw), float64(c.OutputMin), float64(c.OutputMax), lo, hi)
}

func (t DeviceType) String() string {
	switch t {
	case TransferA:
		return "A"
	case TransferB:
		return "B"
	case TransferC:
		return "C"
	default:
		return "unknown"
	}
}
