package timex

import "time"

// Clock supplies the monotonic millisecond timestamps the control loop
// threads through the input decoder. One reading per tick; never read the
// clock twice within a tick.
type Clock interface {
	Millis() int64
}

// Wall is a Clock backed by the runtime clock.
type Wall struct{}

func (Wall) Millis() int64 { return time.Now().UnixMilli() }
