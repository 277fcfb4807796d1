//go:build rp2040 || rp2350

// mpr-read polls an MPR sensor on I2C0 (GP4/GP5) once per second and prints
// PSI and inHg. Wire EOC to GP6 and RST to GP7, or leave them unconnected
// and build with -tags nopins to poll the status byte instead.
package main

import (
	"machine"
	"math"
	"time"

	"mprsense-go/drivers/mpr"
)

// machinePin adapts machine.Pin to the driver's pin interfaces.
type machinePin machine.Pin

func (p machinePin) ConfigureInput() error {
	machine.Pin(p).Configure(machine.PinConfig{Mode: machine.PinInput})
	return nil
}

func (p machinePin) ConfigureOutput(initial bool) error {
	machine.Pin(p).Configure(machine.PinConfig{Mode: machine.PinOutput})
	machine.Pin(p).Set(initial)
	return nil
}

func (p machinePin) Get() bool      { return machine.Pin(p).Get() }
func (p machinePin) Set(level bool) { machine.Pin(p).Set(level) }

func main() {
	time.Sleep(2 * time.Second)

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP4,
		SCL:       machine.GP5,
	}); err != nil {
		println("i2c configure:", err.Error())
		return
	}

	cfg := mpr.Config{MinPressure: 0, MaxPressure: 25, Type: mpr.TransferA}
	if usePins {
		cfg.EOC = machinePin(machine.GP6)
		cfg.Reset = machinePin(machine.GP7)
	}
	dev, err := mpr.New(i2c, cfg)
	if err != nil {
		println("mpr config:", err.Error())
		return
	}
	for {
		if err := dev.Init(0); err != nil {
			println("mpr init:", err.Error())
			time.Sleep(time.Second)
			continue
		}
		break
	}
	println("mpr ready at", dev.Address(), "type", dev.Type().String(), "eoc", dev.UsesEOC())

	for {
		psi, err := dev.Pressure(mpr.PSI)
		if err != nil {
			println("read:", err.Error())
		} else {
			println("psi", psi, "inhg", mpr.InHg.FromPSI(psi))
		}
		// ReadPressure folds every failure into NaN.
		if p := dev.ReadPressure(mpr.KPa); !math.IsNaN(p) {
			println("kpa", p)
		}
		time.Sleep(time.Second)
	}
}
