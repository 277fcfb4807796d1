package setups

// ResourcePlan wires bus controllers to pins for one board setup.
type ResourcePlan struct {
	I2C []I2CPlan
}

type I2CPlan struct {
	ID  string // e.g. "i2c0"
	SDA int    // GPIO number
	SCL int    // GPIO number
	Hz  uint32 // bus frequency
}
