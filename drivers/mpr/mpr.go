// Package mpr provides a driver for Honeywell MPR series pressure sensors
// (e.g. MPRLS0025PA00001A) on I2C.
//
// A measurement is three bus transactions: a measure command, a wait for the
// end of conversion, and a 4-byte read of status plus a 24-bit big-endian
// output code. The code is rescaled linearly from the calibrated output span
// of the device's transfer function to the configured pressure range.
//
//	d, _ := mpr.New(bus, mpr.Config{})
//	if err := d.Init(0); err != nil { ... }
//	p := d.ReadPressure(mpr.InHg) // NaN on any failure
//
// End of conversion is detected either on the optional EOC pin or, when no
// pin is wired, by polling the status byte. The strategy is fixed in New.
//
// The driver does no locking; one caller owns the bus and pins at a time.
package mpr

import (
	"errors"
	"math"
	"time"

	"tinygo.org/x/drivers"
)

// Errors returned by the driver.
var (
	ErrUnknownDeviceType = errors.New("mpr: unknown device type")
	ErrInvalidRange      = errors.New("mpr: max pressure must exceed min pressure")
	ErrNotFound          = errors.New("mpr: device not found")
	ErrBusFault          = errors.New("mpr: status reads 0xFF")
	ErrIntegrity         = errors.New("mpr: memory integrity fault")
	ErrSaturation        = errors.New("mpr: math saturation")
	ErrTimeout           = errors.New("mpr: conversion timeout")
)

// Config holds the static sensor configuration. All fields are optional.
type Config struct {
	// Address defaults to 0x18 if zero.
	Address uint16
	// Rated pressure range in PSI. If both are zero the range is 0..25.
	MinPressure float64
	MaxPressure float64
	// Type defaults to TransferA if zero.
	Type DeviceType

	// EOC, if set, is polled for end of conversion instead of the status byte.
	EOC InputPin
	// Reset, if set, is pulsed low during Init.
	Reset OutputPin

	// PollInterval between end-of-conversion checks. Default 1 ms.
	PollInterval time.Duration
	// ConversionTimeout bounds the wait in Read, counted in poll intervals.
	// Zero waits until the device signals completion.
	ConversionTimeout time.Duration
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Sample is one validated reading.
type Sample struct {
	Status byte
	Raw    uint32 // 24-bit output code
}

// Device wraps an I2C connection to an MPR sensor.
type Device struct {
	bus  drivers.I2C
	addr uint16

	typ      DeviceType
	cal      Calibration
	min, max float64

	eoc   InputPin
	rst   OutputPin
	ready func() (bool, error)

	poll    time.Duration
	timeout time.Duration
	sleep   func(time.Duration)

	buf [4]byte
}

// New creates a Device. It does not touch the bus or the pins.
func New(bus drivers.I2C, cfg Config) (*Device, error) {
	if cfg.Type == 0 {
		cfg.Type = TransferA
	}
	cal, err := CalibrationFor(cfg.Type)
	if err != nil {
		return nil, err
	}
	if cfg.MinPressure == 0 && cfg.MaxPressure == 0 {
		cfg.MinPressure, cfg.MaxPressure = defaultMinPSI, defaultMaxPSI
	}
	if !(cfg.MaxPressure > cfg.MinPressure) {
		return nil, ErrInvalidRange
	}
	if cfg.Address == 0 {
		cfg.Address = Address
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = pollInterval * time.Millisecond
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}

	d := &Device{
		bus:     bus,
		addr:    cfg.Address,
		typ:     cfg.Type,
		cal:     cal,
		min:     cfg.MinPressure,
		max:     cfg.MaxPressure,
		eoc:     cfg.EOC,
		rst:     cfg.Reset,
		poll:    cfg.PollInterval,
		timeout: cfg.ConversionTimeout,
		sleep:   cfg.Sleep,
	}
	if d.eoc != nil {
		d.ready = d.eocReady
	} else {
		d.ready = d.statusReady
	}
	return d, nil
}

// Init prepares the pins, pulses reset if wired and probes the device. A
// non-zero addr replaces the configured address for all later calls. It is
// safe to call more than once.
func (d *Device) Init(addr uint16) error {
	if addr != 0 {
		d.addr = addr
	}
	if d.eoc != nil {
		if err := d.eoc.ConfigureInput(); err != nil {
			return err
		}
	}
	if d.rst != nil {
		if err := d.rst.ConfigureOutput(true); err != nil {
			return err
		}
		d.rst.Set(false)
		d.sleep(resetHold * time.Millisecond)
		d.rst.Set(true)
		d.sleep(resetHold * time.Millisecond)
	}
	// Address-only write; succeeds iff the device ACKs.
	if err := d.bus.Tx(d.addr, nil, nil); err != nil {
		return errors.Join(ErrNotFound, err)
	}
	return nil
}

// ReadStatus reads and returns the status byte as-is.
func (d *Device) ReadStatus() (byte, error) {
	r := d.buf[:1]
	if err := d.bus.Tx(d.addr, nil, r); err != nil {
		return 0, err
	}
	return r[0], nil
}

// Trigger sends the measure command. It does not wait.
func (d *Device) Trigger() error {
	return d.bus.Tx(d.addr, cmdMeasure[:], nil)
}

// TriggerHint returns the nominal conversion time after Trigger.
func (d *Device) TriggerHint() time.Duration { return conversionHint * time.Millisecond }

// Ready checks once whether the conversion has finished, using the EOC pin
// or the status byte. A floating status (0xFF) ends the wait with
// ErrBusFault even though its busy bit is set.
func (d *Device) Ready() (bool, error) { return d.ready() }

func (d *Device) eocReady() (bool, error) { return d.eoc.Get(), nil }

func (d *Device) statusReady() (bool, error) {
	st, err := d.ReadStatus()
	if err != nil {
		return false, err
	}
	if st == statusFloating {
		return false, ErrBusFault
	}
	return st&StatusBusy == 0, nil
}

// Collect reads status and output code. It fails with ErrIntegrity or
// ErrSaturation if the status byte flags the sample; out is then untouched.
func (d *Device) Collect(out *Sample) error {
	r := d.buf[:4]
	if err := d.bus.Tx(d.addr, nil, r); err != nil {
		return err
	}
	st := r[0]
	if st&StatusIntegrity != 0 {
		return ErrIntegrity
	}
	if st&StatusSaturation != 0 {
		return ErrSaturation
	}
	if out != nil {
		out.Status = st
		out.Raw = uint32(r[1])<<16 | uint32(r[2])<<8 | uint32(r[3])
	}
	return nil
}

// Read performs a full measurement: Trigger, wait, Collect.
func (d *Device) Read(out *Sample) error {
	if err := d.Trigger(); err != nil {
		return err
	}
	if err := d.wait(); err != nil {
		return err
	}
	return d.Collect(out)
}

func (d *Device) wait() error {
	var waited time.Duration
	for {
		ok, err := d.ready()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if d.timeout > 0 && waited >= d.timeout {
			return ErrTimeout
		}
		d.sleep(d.poll)
		waited += d.poll
	}
}

// PSI converts an output code to PSI within the configured range.
func (d *Device) PSI(raw uint32) float64 {
	return d.cal.rescale(raw, d.min, d.max)
}

// Pressure performs a measurement and returns it in unit.
func (d *Device) Pressure(unit Unit) (float64, error) {
	var s Sample
	if err := d.Read(&s); err != nil {
		return math.NaN(), err
	}
	return unit.FromPSI(d.PSI(s.Raw)), nil
}

// ReadPressure is Pressure with every failure reported as NaN.
func (d *Device) ReadPressure(unit Unit) float64 {
	p, _ := d.Pressure(unit)
	return p
}

// Introspection.
func (d *Device) Address() uint16           { return d.addr }
func (d *Device) Type() DeviceType          { return d.typ }
func (d *Device) Calibration() Calibration  { return d.cal }
func (d *Device) Range() (min, max float64) { return d.min, d.max }
func (d *Device) UsesEOC() bool             { return d.eoc != nil }
