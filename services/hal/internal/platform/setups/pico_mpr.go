//go:build pico && pico_mpr

package setups

// SelectedPlan: MPR breakout on i2c0 at GP4 (SDA) / GP5 (SCL).
var SelectedPlan = ResourcePlan{
	I2C: []I2CPlan{{ID: "i2c0", SDA: 4, SCL: 5, Hz: 400_000}},
}
