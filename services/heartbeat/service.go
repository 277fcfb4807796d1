package heartbeat

import (
	"context"
	"time"

	"mprsense-go/bus"
	"mprsense-go/types"
	"mprsense-go/x/timex"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicHeartbeat       = bus.T("heartbeat")
	topicPressureValues  = bus.T("hal", "capability", "pressure", bus.Single, "value")
)

// Beat is published on "heartbeat" once per interval.
type Beat struct {
	TsMs     int64                       `json:"ts_ms"`
	Pressure map[int]types.PressureValue `json:"pressure,omitempty"` // latest value per capability id
}

type Service struct {
	Interval time.Duration // default 1 s
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)
	valSub := conn.Subscribe(topicPressureValues)
	defer conn.Unsubscribe(valSub)

	interval := s.Interval
	if interval <= 0 {
		interval = time.Second
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()

	last := map[int]types.PressureValue{}

	for {
		select {
		case <-ctx.Done():
			println("Info: heartbeat service stopping")
			return
		case t := <-tick.C:
			beat := Beat{TsMs: timex.NowMs(), Pressure: make(map[int]types.PressureValue, len(last))}
			for id, v := range last {
				beat.Pressure[id] = v
				println("Info:", t.Format("15:04:05"), "Heartbeat pressure", id, v.Value, v.Unit)
			}
			if len(last) == 0 {
				println("Info:", t.Format("15:04:05"), "Heartbeat")
			}
			conn.Publish(conn.NewMessage(topicHeartbeat, beat, true))
		case msg := <-valSub.Channel():
			v, ok := msg.Payload.(types.PressureValue)
			if !ok || len(msg.Topic) < 4 {
				continue
			}
			if id, ok := msg.Topic[3].(int); ok {
				last[id] = v
			}
		case msg := <-cfgSub.Channel():
			// {"interval": seconds}
			if m, ok := msg.Payload.(map[string]any); ok {
				if iv, ok := m["interval"].(float64); ok && iv > 0 {
					tick.Reset(time.Duration(iv * float64(time.Second)))
					println("Info:", "Heartbeat interval set to", iv, "seconds")
				}
			}
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
