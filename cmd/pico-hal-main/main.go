//go:build rp2040 || rp2350

package main

import (
	"context"
	"runtime"
	"time"

	"mprsense-go/bus"
	"mprsense-go/services/config"
	"mprsense-go/services/hal"
	"mprsense-go/services/heartbeat"
	"mprsense-go/types"
)

func printTopicWith(prefix string, t bus.Topic) {
	print(prefix)
	print(" ")
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			print("/")
		}
		switch v := t.At(i).(type) {
		case string:
			print(v)
		case int:
			print(v)
		default:
			print("?")
		}
	}
	println()
}

func main() {
	time.Sleep(3 * time.Second)
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, "pico")

	println("[main] bootstrapping bus …")
	b := bus.NewBus(4)
	halConn := b.NewConnection("hal")
	cfgConn := b.NewConnection("config")
	hbConn := b.NewConnection("heartbeat")
	uiConn := b.NewConnection("ui")

	println("[main] subscribing to hal/# for diagnostics …")
	mon := uiConn.Subscribe(bus.T("hal", bus.Multi))
	go func() {
		for m := range mon.Channel() {
			printTopicWith("[monitor] <-", m.Topic)
			switch p := m.Payload.(type) {
			case types.PressureValue:
				println("  pressure", p.Value, p.Unit, "raw", p.Raw)
			case types.CapabilityStatus:
				println("  link", string(p.Link), p.Error)
			case types.HALState:
				println("  hal", p.Level, p.Status, p.Error)
			}
		}
	}()

	println("[main] starting hal.Run …")
	go hal.Run(ctx, halConn)

	println("[main] publishing embedded config …")
	config.NewConfigService().Start(ctx, cfgConn)
	_ = (&heartbeat.Service{Interval: 5 * time.Second}).Start(ctx, hbConn)

	time.Sleep(500 * time.Millisecond)

	readNow := bus.T("hal", "capability", string(types.KindPressure), 0, "control", "read_now")
	for {
		rctx, cancel := context.WithTimeout(ctx, time.Second)
		if _, err := uiConn.RequestWait(rctx, uiConn.NewMessage(readNow, nil, false)); err != nil {
			println("[main] read_now error:", err.Error())
		}
		cancel()
		printMem()
		time.Sleep(10 * time.Second)
	}
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
// Uses builtin println to avoid fmt overhead/allocations.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"heapSys:", uint32(ms.HeapSys),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}
