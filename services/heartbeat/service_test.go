package heartbeat

import (
	"context"
	"testing"
	"time"

	"pulsegen-go/bus"
	"pulsegen-go/types"
)

func TestPublishesUptime(t *testing.T) {
	b := bus.NewBus(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := b.NewConnection("test").Subscribe(TopicUptime)
	if err := New(10 * time.Millisecond).Start(ctx, b.NewConnection("heartbeat")); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-sub.Channel():
		up, ok := msg.Payload.(types.Uptime)
		if !ok {
			t.Fatalf("payload = %T", msg.Payload)
		}
		if up.Seconds < 0 {
			t.Errorf("uptime = %d", up.Seconds)
		}
		if !msg.Retained {
			t.Error("uptime not retained")
		}
	case <-time.After(time.Second):
		t.Fatal("no heartbeat published")
	}
}

func TestIntervalReconfigure(t *testing.T) {
	b := bus.NewBus(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := b.NewConnection("test").Subscribe(TopicUptime)
	if err := New(time.Hour).Start(ctx, b.NewConnection("heartbeat")); err != nil {
		t.Fatal(err)
	}

	cfg := b.NewConnection("config")
	cfg.Publish(cfg.NewMessage(topicConfig, map[string]any{"interval": 0.01}, false))

	select {
	case <-sub.Channel():
	case <-time.After(time.Second):
		t.Fatal("reconfigured heartbeat never fired")
	}
}
