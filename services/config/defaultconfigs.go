package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

// MPRLS0025PA00001A on i2c0, status polling, no reset line.
const cfgPico = `{
  "hal": {
    "devices": [
      {
        "id": "mpr0",
        "type": "mpr",
        "bus_ref": {"type": "i2c", "id": "i2c0"},
        "params": {"addr": 24, "type": 1, "min": 0, "max": 25, "unit": "inhg", "sample_ms": 1000}
      }
    ]
  }
}`

// Same sensor with EOC on GP6 and reset on GP7.
const cfgPicoEOC = `{
  "hal": {
    "devices": [
      {
        "id": "mpr0",
        "type": "mpr",
        "bus_ref": {"type": "i2c", "id": "i2c0"},
        "params": {"unit": "inhg", "eoc_pin": 6, "rst_pin": 7, "sample_ms": 500, "timeout_ms": 20}
      }
    ]
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico":     []byte(cfgPico),
	"pico-eoc": []byte(cfgPicoEOC),
}
