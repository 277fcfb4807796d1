// services/hal/internal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"tinygo.org/x/drivers"

	"mprsense-go/services/hal/internal/halcore"
	"mprsense-go/services/hal/internal/platform/setups"
)

// DefaultI2CFactory configures the buses of the selected plan, or i2c0 and
// i2c1 on board-default pins at 400 kHz when no plan is selected.
func DefaultI2CFactory() halcore.I2CBusFactory {
	plan := GetSelectedPlan().I2C
	if len(plan) == 0 {
		plan = []setups.I2CPlan{
			{ID: "i2c0", SDA: int(machine.I2C0_SDA_PIN), SCL: int(machine.I2C0_SCL_PIN), Hz: 400_000},
			{ID: "i2c1", SDA: int(machine.I2C1_SDA_PIN), SCL: int(machine.I2C1_SCL_PIN), Hz: 400_000},
		}
	}
	f := &rp2I2CFactory{buses: make(map[string]drivers.I2C)}
	for _, p := range plan {
		var b *machine.I2C
		switch p.ID {
		case "i2c0":
			b = machine.I2C0
		case "i2c1":
			b = machine.I2C1
		default:
			println("Warn: unknown i2c controller", p.ID)
			continue
		}
		if err := b.Configure(machine.I2CConfig{
			Frequency: p.Hz,
			SDA:       machine.Pin(p.SDA),
			SCL:       machine.Pin(p.SCL),
		}); err != nil {
			println("Warn: i2c configure", p.ID, err.Error())
			continue
		}
		f.buses[p.ID] = b
	}
	return f
}

// DefaultPinFactory returns a GPIO factory that maps logical numbers directly
// to machine.Pin(n). This matches Pico/Pico 2 GP numbering.
func DefaultPinFactory() halcore.PinFactory { return rp2PinFactory{} }

// ---- I²C implementation ----

type rp2I2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *rp2I2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// ---- GPIO implementation ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// Constrain to RP2’s user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }
