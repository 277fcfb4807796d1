//go:build !rp2040 && !rp2350

package hal

import (
	"context"
	"math"
	"testing"
	"time"

	"mprsense-go/bus"
	"mprsense-go/types"
)

// On host builds i2c0 carries a simulated MPR at 0x18.
func TestRunWithJSONConfig(t *testing.T) {
	b := bus.NewBus(16)
	halConn := b.NewConnection("hal")
	ui := b.NewConnection("ui")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Run(ctx, halConn)

	vals := ui.Subscribe(bus.T("hal", "capability", "pressure", 0, "value"))
	defer ui.Unsubscribe(vals)

	// JSON-shaped config, as delivered by the config service.
	cfg := map[string]any{
		"devices": []any{map[string]any{
			"id":      "mpr0",
			"type":    "mpr",
			"bus_ref": map[string]any{"type": "i2c", "id": "i2c0"},
			"params":  map[string]any{"unit": "inhg", "sample_ms": 50},
		}},
	}
	ui.Publish(ui.NewMessage(bus.T("config", "hal"), cfg, true))

	select {
	case m := <-vals.Channel():
		v, ok := m.Payload.(types.PressureValue)
		if !ok || v.Unit != "inhg" || math.Abs(v.Value-12.5*2.03602) > 1e-3 {
			t.Fatalf("unexpected value %#v", m.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for pressure value")
	}
}
