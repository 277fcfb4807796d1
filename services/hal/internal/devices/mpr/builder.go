// services/hal/internal/devices/mpr/builder.go
package mprdev

import (
	"time"

	"mprsense-go/drivers/mpr"
	"mprsense-go/errcode"
	"mprsense-go/services/hal/internal/halcore"
	"mprsense-go/services/hal/internal/halerr"
	"mprsense-go/services/hal/internal/registry"
	"mprsense-go/services/hal/internal/util"
	"mprsense-go/x/timex"
)

func init() {
	registry.RegisterBuilder("mpr", builder{})
}

// Params is the "params" object of an "mpr" device in config/hal.
type Params struct {
	Addr      int     `json:"addr"`       // default 0x18
	Type      int     `json:"type"`       // transfer function 1..3 (A..C), default A
	Min       float64 `json:"min"`        // PSI
	Max       float64 `json:"max"`        // PSI
	Unit      string  `json:"unit"`       // published unit, default "psi"
	EOCPin    *int    `json:"eoc_pin"`    // absent or negative: poll status
	RstPin    *int    `json:"rst_pin"`    // absent or negative: no reset
	SampleMS  int     `json:"sample_ms"`  // default 1000
	TimeoutMS int     `json:"timeout_ms"` // 0: rely on worker retries
}

const defaultSample = time.Second

type builder struct{}

func (builder) Build(in registry.BuildInput) (registry.BuildOutput, error) {
	if in.BusRefType != "i2c" || in.BusRefID == "" {
		return registry.BuildOutput{}, halerr.ErrMissingBusRef
	}
	i2c, ok := in.Buses.ByID(in.BusRefID)
	if !ok {
		return registry.BuildOutput{}, util.Errf("%w: %q", halerr.ErrUnknownBus, in.BusRefID)
	}
	var p Params
	if err := util.DecodeJSON(in.ParamsJSON, &p); err != nil {
		return registry.BuildOutput{}, util.Errf("%w: %v", halerr.ErrInvalidParams, err)
	}
	unit, ok := mpr.ParseUnit(p.Unit)
	if !ok {
		return registry.BuildOutput{}, util.Errf("%w: unit %q", halerr.ErrInvalidParams, p.Unit)
	}
	if p.Type < 0 || p.Type > 255 || p.Addr < 0 || p.Addr > 0x7F {
		return registry.BuildOutput{}, halerr.ErrInvalidParams
	}

	cfg := mpr.Config{
		Address:     uint16(p.Addr),
		MinPressure: p.Min,
		MaxPressure: p.Max,
		Type:        mpr.DeviceType(p.Type),
	}
	if pin, ok, err := lookupPin(in.Pins, p.EOCPin); err != nil {
		return registry.BuildOutput{}, err
	} else if ok {
		cfg.EOC = inputPin{pin}
	}
	if pin, ok, err := lookupPin(in.Pins, p.RstPin); err != nil {
		return registry.BuildOutput{}, err
	} else if ok {
		cfg.Reset = pin
	}

	dev, err := mpr.New(i2c, cfg)
	if err != nil {
		return registry.BuildOutput{}, errcode.Wrap("new", err)
	}
	if err := dev.Init(0); err != nil {
		return registry.BuildOutput{}, errcode.Wrap("init", err)
	}

	ad := newAdaptor(in.DeviceID, in.BusRefID, dev, unit)
	ad.timeout = timex.Ms(p.TimeoutMS, 0)
	return registry.BuildOutput{
		Adaptor:     ad,
		BusID:       in.BusRefID,
		SampleEvery: timex.Ms(p.SampleMS, defaultSample),
	}, nil
}

func lookupPin(pins halcore.PinFactory, n *int) (halcore.GPIOPin, bool, error) {
	if n == nil || *n < 0 {
		return nil, false, nil
	}
	if pins == nil {
		return nil, false, halerr.ErrUnknownPin
	}
	pin, ok := pins.ByNumber(*n)
	if !ok {
		return nil, false, util.Errf("%w: %d", halerr.ErrUnknownPin, *n)
	}
	return pin, true, nil
}

// inputPin adapts a HAL GPIO to the driver's EOC line (no pull).
type inputPin struct{ halcore.GPIOPin }

func (p inputPin) ConfigureInput() error { return p.GPIOPin.ConfigureInput(halcore.PullNone) }
