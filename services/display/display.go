// Package display turns published frames into pixels. It subscribes to the
// frame topic and draws each frame on a Surface, so the same service runs
// against the OLED on the device and a terminal surface on the host.
package display

import (
	"context"
	"strconv"

	"pulsegen-go/bus"
	"pulsegen-go/services/control"
	"pulsegen-go/types"
)

// Surface is the drawing contract. Implementations buffer WriteLine calls
// and push the whole frame out on Flush.
type Surface interface {
	Clear()
	WriteLine(row int, text string, active bool)
	Flush() error
}

// Service renders frames as they arrive.
type Service struct {
	surface Surface
}

// New creates the service over a surface.
func New(surface Surface) *Service {
	return &Service{surface: surface}
}

// Start subscribes to the frame topic and renders until ctx is cancelled.
// The frame topic is retained, so a service starting late draws the current
// state immediately.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	sub := conn.Subscribe(control.TopicFrame)
	go s.serviceLoop(ctx, sub)
	return nil
}

func (s *Service) serviceLoop(ctx context.Context, sub *bus.Subscription) {
	defer sub.Unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			if frame, ok := msg.Payload.(types.Frame); ok {
				s.draw(frame)
			}
		}
	}
}

func (s *Service) draw(f types.Frame) {
	s.surface.Clear()
	if f.Measuring {
		s.surface.WriteLine(0, f.Label, false)
		s.surface.WriteLine(2, FormatValue(f.Value, f.Unit), true)
	} else {
		for _, row := range f.Rows {
			s.surface.WriteLine(row.Row, FormatRow(row), row.Active)
		}
	}
	s.surface.Flush()
}

// FormatRow renders one menu line: check or radio marker, then the caption.
func FormatRow(r types.Row) string {
	switch r.Marker {
	case types.MarkerCheck:
		if r.Checked {
			return "[x] " + r.Caption
		}
		return "[ ] " + r.Caption
	case types.MarkerRadio:
		if r.Checked {
			return "(*) " + r.Caption
		}
		return "( ) " + r.Caption
	default:
		return r.Caption
	}
}

// FormatValue renders the measured value with its unit.
func FormatValue(v int32, unit string) string {
	s := strconv.FormatInt(int64(v), 10)
	if unit != "" {
		s += " " + unit
	}
	return s
}
