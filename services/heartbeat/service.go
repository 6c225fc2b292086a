// Package heartbeat publishes a retained uptime counter so anything on the
// bus can tell the firmware is alive and for how long.
package heartbeat

import (
	"context"
	"time"

	"pulsegen-go/bus"
	"pulsegen-go/types"
)

// TopicUptime carries the retained uptime announcement.
var TopicUptime = bus.T("status", "uptime")

var topicConfig = bus.T("config", "heartbeat")

// Service counts seconds since Start and announces them periodically.
type Service struct {
	interval time.Duration
}

// New creates the service. interval <= 0 selects one second.
func New(interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Second
	}
	return &Service{interval: interval}
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfig)
	defer cfgSub.Unsubscribe()

	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	started := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			up := types.Uptime{Seconds: int64(time.Since(started) / time.Second)}
			conn.Publish(conn.NewMessage(TopicUptime, up, true))
		case msg := <-cfgSub.Channel():
			// Interval changes arrive as {"interval": seconds}.
			if m, ok := msg.Payload.(map[string]any); ok {
				if iv, ok := m["interval"].(float64); ok && iv > 0 {
					tick.Reset(time.Duration(iv * float64(time.Second)))
				}
			}
		}
	}
}

// Start launches the heartbeat loop.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
