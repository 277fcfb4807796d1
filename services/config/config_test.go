// config/config_test.go
package config

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"mprsense-go/bus"
	"mprsense-go/types"
)

func TestConfig_PublishEmbedded_RetainedPerKey(t *testing.T) {
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "pico" {
			return nil, false
		}
		return []byte(`{
			"mode": "dev",
			"debug": true,
			"region": {"code": "eu"}
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "pico")
	svc.Start(ctx, conn)

	// Subscribe; retained messages arrive whether or not the publisher ran first.
	sub := conn.Subscribe(bus.T(configPrefix, bus.Multi))

	got := map[string]any{}
	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < 3 && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			key, ok := m.Topic[1].(string)
			if !ok || m.Topic[0] != configPrefix {
				t.Fatalf("unexpected topic: %#v", m.Topic)
			}
			if !m.Retained {
				t.Fatalf("config/%s not retained", key)
			}
			got[key] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 retained messages, got %v", got)
	}
	if s, _ := got["mode"].(string); s != "dev" {
		t.Fatalf("mode payload = %#v", got["mode"])
	}
	if v, _ := got["debug"].(bool); !v {
		t.Fatalf("debug payload = %#v", got["debug"])
	}
	if r, _ := got["region"].(map[string]any); r["code"] != "eu" {
		t.Fatalf("region payload = %#v", got["region"])
	}
}

func TestConfig_Errors(t *testing.T) {
	conn := bus.NewBus(4).NewConnection("test")
	svc := NewConfigService()

	if err := svc.publishConfig(context.Background(), conn); err == nil {
		t.Fatal("expected error without device id")
	}
	ctx := context.WithValue(context.Background(), CtxDeviceKey, "no-such-board")
	if err := svc.publishConfig(ctx, conn); err == nil {
		t.Fatal("expected error for unknown device")
	}

	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(string) ([]byte, bool) { return []byte(`[1,2]`), true }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })
	if err := svc.publishConfig(ctx, conn); err == nil {
		t.Fatal("expected error for non-object config")
	}
}

func TestEmbeddedConfigsDecodeAsHALConfig(t *testing.T) {
	for dev, raw := range embeddedConfigs {
		var top struct {
			HAL types.HALConfig `json:"hal"`
		}
		if err := json.Unmarshal(raw, &top); err != nil {
			t.Fatalf("%s: %v", dev, err)
		}
		if len(top.HAL.Devices) != 1 {
			t.Fatalf("%s: expected one device, got %+v", dev, top.HAL)
		}
		d := top.HAL.Devices[0]
		if d.Type != "mpr" || d.BusRef.ID != "i2c0" || d.BusRef.Type != "i2c" {
			t.Fatalf("%s: unexpected device %+v", dev, d)
		}
	}
}
