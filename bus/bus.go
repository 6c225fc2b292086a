// Package bus is a small in-process publish/subscribe broker. Topics are
// slices of string tokens, subscriptions may use single-level ("+") and
// multi-level ("#") wildcards, and retained messages replay to late
// subscribers. Delivery is best-effort: a full subscriber queue drops the
// oldest message.
package bus

import (
	"strings"
	"sync"
)

// Topic is a sequence of path tokens, e.g. T("menu", "active").
type Topic []string

// T builds a topic from its tokens.
func T(tokens ...string) Topic { return Topic(tokens) }

// String renders the topic in slash notation for logs.
func (t Topic) String() string { return strings.Join(t, "/") }

func (t Topic) key() string { return strings.Join(t, "\x00") }

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	pattern Topic
	ch      chan *Message
	conn    *Connection
}

func (s *Subscription) Pattern() Topic           { return s.pattern }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

type Bus struct {
	mu       sync.RWMutex
	subs     []*Subscription
	retained map[string]*Message
	qLen     int
	wildOne  string
	wildAll  string
}

// NewBus creates a broker with the given per-subscription queue length.
// Wildcard tokens default to "+" (one level) and "#" (rest of topic); pass
// two strings to override them.
func NewBus(queueLen int, wildcards ...string) *Bus {
	if queueLen <= 0 {
		queueLen = 8
	}
	b := &Bus{
		retained: make(map[string]*Message),
		qLen:     queueLen,
		wildOne:  "+",
		wildAll:  "#",
	}
	if len(wildcards) >= 2 {
		b.wildOne, b.wildAll = wildcards[0], wildcards[1]
	}
	return b
}

func (b *Bus) matches(pattern, topic Topic) bool {
	for i, tok := range pattern {
		if tok == b.wildAll {
			return true
		}
		if i >= len(topic) {
			return false
		}
		if tok != b.wildOne && tok != topic[i] {
			return false
		}
	}
	return len(pattern) == len(topic)
}

// Publish delivers msg to every matching subscription and updates the
// retained store when msg.Retained is set. A retained message with a nil
// payload clears the retained slot.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if b.matches(sub.pattern, msg.Topic) {
			deliver(sub.ch, msg)
		}
	}

	if msg.Retained {
		if msg.Payload == nil {
			delete(b.retained, msg.Topic.key())
		} else {
			b.retained[msg.Topic.key()] = msg
		}
	}
}

func deliver(ch chan *Message, msg *Message) {
	select {
	case ch <- msg:
	default:
		// Queue full: drop the oldest so the newest state wins.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- msg:
		default:
		}
	}
}

func (b *Bus) subscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs = append(b.subs, sub)
	for _, msg := range b.retained {
		if b.matches(sub.pattern, msg.Topic) {
			deliver(sub.ch, msg)
		}
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

// Connection is a named attachment to the bus that owns its subscriptions.
// Disconnect releases all of them at once.
type Connection struct {
	bus  *Bus
	mu   sync.Mutex
	subs []*Subscription
	id   string
}

func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

// NewMessage is a convenience constructor matching the publish call style.
func (c *Connection) NewMessage(topic Topic, payload any, retained bool) *Message {
	return &Message{Topic: topic, Payload: payload, Retained: retained}
}

func (c *Connection) Publish(msg *Message) { c.bus.Publish(msg) }

func (c *Connection) Subscribe(pattern Topic) *Subscription {
	sub := &Subscription{
		pattern: pattern,
		ch:      make(chan *Message, c.bus.qLen),
		conn:    c,
	}
	c.bus.subscribe(sub)
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

func (c *Connection) Unsubscribe(sub *Subscription) {
	c.bus.unsubscribe(sub)
	c.mu.Lock()
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	close(sub.ch)
}

// Disconnect closes every subscription owned by this connection.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.unsubscribe(sub)
		close(sub.ch)
	}
}
