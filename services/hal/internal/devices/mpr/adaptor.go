// services/hal/internal/devices/mpr/adaptor.go
package mprdev

import (
	"context"
	"sync/atomic"
	"time"

	"mprsense-go/drivers/mpr"
	"mprsense-go/errcode"
	"mprsense-go/services/hal/internal/consts"
	"mprsense-go/services/hal/internal/halcore"
	"mprsense-go/services/hal/internal/util"
	"mprsense-go/types"
	"mprsense-go/x/timex"
)

// sensor is the part of *mpr.Device the adaptor drives.
type sensor interface {
	Trigger() error
	TriggerHint() time.Duration
	Ready() (bool, error)
	Collect(out *mpr.Sample) error
	PSI(raw uint32) float64
	Address() uint16
	Type() mpr.DeviceType
	Range() (min, max float64)
	UsesEOC() bool
}

type adaptor struct {
	id    string
	busID string
	dev   sensor

	// Control runs on the service goroutine, Collect on the worker.
	unit atomic.Uint32

	timeout   time.Duration
	triggered time.Time
	now       func() time.Time
}

func newAdaptor(id, busID string, dev sensor, unit mpr.Unit) *adaptor {
	a := &adaptor{id: id, busID: busID, dev: dev, now: time.Now}
	a.unit.Store(uint32(unit))
	return a
}

func (a *adaptor) ID() string { return a.id }

func (a *adaptor) Capabilities() []halcore.CapInfo {
	return []halcore.CapInfo{{
		Kind: consts.KindPressure,
		Info: types.Info{SchemaVersion: 1, Driver: "mpr", Detail: a.info()},
	}}
}

func (a *adaptor) info() types.PressureInfo {
	lo, hi := a.dev.Range()
	return types.PressureInfo{
		Sensor: "mpr",
		Addr:   a.dev.Address(),
		Bus:    a.busID,
		Type:   a.dev.Type().String(),
		Min:    lo,
		Max:    hi,
		Unit:   a.currentUnit().String(),
	}
}

func (a *adaptor) currentUnit() mpr.Unit { return mpr.Unit(a.unit.Load()) }

func (a *adaptor) Trigger(ctx context.Context) (time.Duration, error) {
	if err := a.dev.Trigger(); err != nil {
		return 0, errcode.Wrap("trigger", err)
	}
	a.triggered = a.now()
	return a.dev.TriggerHint(), nil
}

func (a *adaptor) Collect(ctx context.Context) (halcore.Sample, error) {
	ok, err := a.dev.Ready()
	if err != nil {
		return nil, errcode.Wrap("ready", err)
	}
	if !ok {
		if a.timeout > 0 && a.now().Sub(a.triggered) >= a.timeout {
			return nil, errcode.Wrap("ready", mpr.ErrTimeout)
		}
		return nil, halcore.ErrNotReady
	}
	var s mpr.Sample
	if err := a.dev.Collect(&s); err != nil {
		return nil, errcode.Wrap("collect", err)
	}
	u := a.currentUnit()
	ts := timex.NowMs()
	return halcore.Sample{{
		Kind: consts.KindPressure,
		Payload: types.PressureValue{
			Value: u.FromPSI(a.dev.PSI(s.Raw)),
			Unit:  u.String(),
			Raw:   s.Raw,
			TsMs:  ts,
		},
		TsMs: ts,
	}}, nil
}

func (a *adaptor) Control(kind, method string, payload any) (any, error) {
	if kind != consts.KindPressure {
		return nil, halcore.ErrUnsupported
	}
	switch method {
	case consts.CtrlSetUnit:
		var req types.SetUnit
		if s, ok := payload.(string); ok {
			req.Unit = s
		} else if err := util.DecodeJSON(payload, &req); err != nil {
			return nil, errcode.InvalidParams
		}
		u, ok := mpr.ParseUnit(req.Unit)
		if !ok {
			return nil, errcode.InvalidParams
		}
		a.unit.Store(uint32(u))
		return types.SetUnitAck{OK: true, Unit: u.String()}, nil
	case consts.CtrlGetInfo:
		return a.info(), nil
	}
	return nil, halcore.ErrUnsupported
}
