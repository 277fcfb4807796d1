package service

import (
	"context"
	"math"
	"testing"
	"time"

	"mprsense-go/bus"
	"mprsense-go/services/hal/internal/consts"
	_ "mprsense-go/services/hal/internal/devices/mpr"
	"mprsense-go/services/hal/internal/platform"
	"mprsense-go/types"
)

// ---- helpers ----

type harness struct {
	conn *bus.Connection
	sim  *platform.MPRSim
}

func start(t *testing.T) *harness {
	t.Helper()
	i2c0 := &platform.HostI2C{}
	sim := platform.NewMPRSim(0x7FFFFF)
	i2c0.Attach(0x18, sim)

	b := bus.NewBus(16)
	conn := b.NewConnection("test")
	s := New(conn,
		platform.NewI2CFactory(map[string]*platform.HostI2C{"i2c0": i2c0}),
		&platform.HostPinFactory{})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go s.Run(ctx)

	h := &harness{conn: conn, sim: sim}
	h.waitHALLevel(t, "idle", "")
	return h
}

func (h *harness) configure(devs ...types.HALDevice) {
	h.conn.Publish(h.conn.NewMessage(
		bus.T(consts.TokConfig, consts.TokHAL), types.HALConfig{Devices: devs}, false))
}

func mprDevice(id string, params map[string]any) types.HALDevice {
	return types.HALDevice{
		ID:     id,
		Type:   "mpr",
		Params: params,
		BusRef: types.BusRef{Type: "i2c", ID: "i2c0"},
	}
}

func waitFor(t *testing.T, sub *bus.Subscription, d time.Duration, pred func(*bus.Message) bool) *bus.Message {
	t.Helper()
	deadline := time.After(d)
	for {
		select {
		case m := <-sub.Channel():
			if pred(m) {
				return m
			}
		case <-deadline:
			t.Fatalf("timeout waiting on %v", sub.Topic())
			return nil
		}
	}
}

func (h *harness) waitHALLevel(t *testing.T, level, status string) types.HALState {
	t.Helper()
	sub := h.conn.Subscribe(bus.T(consts.TokHAL, consts.TokState))
	defer h.conn.Unsubscribe(sub)
	m := waitFor(t, sub, time.Second, func(m *bus.Message) bool {
		st, ok := m.Payload.(types.HALState)
		return ok && st.Level == level && (status == "" || st.Status == status)
	})
	return m.Payload.(types.HALState)
}

func capT(id int, suffix ...any) bus.Topic {
	return bus.T(consts.TokHAL, consts.TokCapability, consts.KindPressure, id).Append(suffix...)
}

func (h *harness) request(t *testing.T, topic bus.Topic, payload any) any {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	reply, err := h.conn.RequestWait(ctx, h.conn.NewMessage(topic, payload, false))
	if err != nil {
		t.Fatalf("request %v: %v", topic, err)
	}
	return reply.Payload
}

func linkIs(want types.Link) func(*bus.Message) bool {
	return func(m *bus.Message) bool {
		st, ok := m.Payload.(types.CapabilityStatus)
		return ok && st.Link == want
	}
}

// ---- tests ----

func TestServicePublishesInfoStateAndValues(t *testing.T) {
	h := start(t)

	valSub := h.conn.Subscribe(capT(0, consts.TokValue))
	defer h.conn.Unsubscribe(valSub)

	h.configure(mprDevice("mpr0", map[string]any{"sample_ms": 50}))
	h.waitHALLevel(t, "ready", "configured")

	infoSub := h.conn.Subscribe(capT(0, consts.TokInfo))
	defer h.conn.Unsubscribe(infoSub)
	m := waitFor(t, infoSub, 200*time.Millisecond, func(*bus.Message) bool { return true })
	info, ok := m.Payload.(types.Info)
	if !ok || info.Driver != "mpr" {
		t.Fatalf("unexpected info %+v", m.Payload)
	}
	if pi := info.Detail.(types.PressureInfo); pi.Bus != "i2c0" || pi.Addr != 0x18 || pi.Max != 25 {
		t.Fatalf("unexpected detail %+v", pi)
	}

	m = waitFor(t, valSub, time.Second, func(*bus.Message) bool { return true })
	v := m.Payload.(types.PressureValue)
	if v.Unit != "psi" || math.Abs(v.Value-12.5) > 1e-3 || v.Raw != 0x7FFFFF {
		t.Fatalf("unexpected value %+v", v)
	}

	stSub := h.conn.Subscribe(capT(0, consts.TokState))
	defer h.conn.Unsubscribe(stSub)
	waitFor(t, stSub, 500*time.Millisecond, linkIs(types.LinkUp))
}

func TestServiceControlPlane(t *testing.T) {
	h := start(t)
	h.configure(mprDevice("mpr0", map[string]any{"sample_ms": 3_600_000}))
	h.waitHALLevel(t, "ready", "configured")

	valSub := h.conn.Subscribe(capT(0, consts.TokValue))
	defer h.conn.Unsubscribe(valSub)

	// read_now goes through the worker and yields a value.
	if r, ok := h.request(t, capT(0, consts.TokControl, consts.CtrlReadNow), nil).(types.OKReply); !ok || !r.OK {
		t.Fatalf("read_now reply %+v", r)
	}
	waitFor(t, valSub, time.Second, func(*bus.Message) bool { return true })

	// set_rate clamps to the minimum period.
	r := h.request(t, capT(0, consts.TokControl, consts.CtrlSetRate), map[string]any{"period_ms": 1})
	if ack, ok := r.(types.SetRateAck); !ok || !ack.OK || ack.PeriodMS != consts.MinPeriodMS {
		t.Fatalf("set_rate reply %+v", r)
	}
	r = h.request(t, capT(0, consts.TokControl, consts.CtrlSetRate), types.SetRate{})
	if e, ok := r.(types.ErrorReply); !ok || e.Error != "invalid_params" {
		t.Fatalf("zero period reply %+v", r)
	}

	// set_unit is passed to the adaptor and applies to later values.
	r = h.request(t, capT(0, consts.TokControl, consts.CtrlSetUnit), types.SetUnit{Unit: "kpa"})
	if ack, ok := r.(types.SetUnitAck); !ok || ack.Unit != "kpa" {
		t.Fatalf("set_unit reply %+v", r)
	}
	m := waitFor(t, valSub, time.Second, func(m *bus.Message) bool {
		return m.Payload.(types.PressureValue).Unit == "kpa"
	})
	if v := m.Payload.(types.PressureValue); math.Abs(v.Value-12.5*6.89476) > 1e-2 {
		t.Fatalf("unexpected kpa value %+v", v)
	}

	r = h.request(t, capT(0, consts.TokControl, consts.CtrlSetUnit), "furlong")
	if e, ok := r.(types.ErrorReply); !ok || e.Error != "invalid_params" {
		t.Fatalf("bad unit reply %+v", r)
	}
	r = h.request(t, capT(0, consts.TokControl, "reboot"), nil)
	if e, ok := r.(types.ErrorReply); !ok || e.Error != "unsupported" {
		t.Fatalf("unknown method reply %+v", r)
	}
	r = h.request(t, capT(7, consts.TokControl, consts.CtrlReadNow), nil)
	if e, ok := r.(types.ErrorReply); !ok || e.Error != "unknown_capability" {
		t.Fatalf("unknown capability reply %+v", r)
	}
}

func TestServiceFaultDegradesState(t *testing.T) {
	h := start(t)
	h.configure(mprDevice("mpr0", map[string]any{"sample_ms": 50}))
	h.waitHALLevel(t, "ready", "configured")

	stSub := h.conn.Subscribe(capT(0, consts.TokState))
	defer h.conn.Unsubscribe(stSub)

	h.sim.SetFaults(0x04)
	m := waitFor(t, stSub, time.Second, linkIs(types.LinkDegraded))
	if st := m.Payload.(types.CapabilityStatus); st.Error != "data_integrity" {
		t.Fatalf("unexpected state %+v", st)
	}

	h.sim.SetFaults(0)
	waitFor(t, stSub, time.Second, linkIs(types.LinkUp))
}

func TestServiceApplyConfigRemovesDevices(t *testing.T) {
	h := start(t)

	stSub := h.conn.Subscribe(bus.T(consts.TokHAL, consts.TokCapability, consts.KindPressure, bus.Single, consts.TokState))
	defer h.conn.Unsubscribe(stSub)

	h.configure(mprDevice("mpr0", nil))
	m := waitFor(t, stSub, time.Second, linkIs(types.LinkUp))
	idTok := m.Topic[3]

	h.configure()
	waitFor(t, stSub, time.Second, func(m *bus.Message) bool {
		return m.Topic[3] == idTok && linkIs(types.LinkDown)(m)
	})

	// Retained info is cleared.
	infoSub := h.conn.Subscribe(capT(0, consts.TokInfo))
	defer h.conn.Unsubscribe(infoSub)
	select {
	case m := <-infoSub.Channel():
		t.Fatalf("info still retained: %+v", m.Payload)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestServiceReportsBuildFailures(t *testing.T) {
	h := start(t)
	h.configure(
		mprDevice("ghost", map[string]any{"addr": 0x28}),
		types.HALDevice{ID: "x", Type: "no_such_type"},
	)
	st := h.waitHALLevel(t, "ready", "partial_config")
	if st.Error == "" {
		t.Fatal("expected error detail in hal/state")
	}
}

func TestServiceRejectsWrongConfigType(t *testing.T) {
	h := start(t)
	h.conn.Publish(h.conn.NewMessage(bus.T(consts.TokConfig, consts.TokHAL), 42, false))
	h.waitHALLevel(t, "error", "config_wrong_type")
}
