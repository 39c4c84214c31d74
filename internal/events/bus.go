package events

import "sync"

// Bus carries cart-changed notifications between views in-process. It replaces
// the old page-level broadcast with explicit state: subscribers register once
// and receive the session key of every change, and publishing never blocks
// the publisher.
type Bus struct {
	mu   sync.Mutex
	subs []chan string
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe returns a channel of session keys and a cancel func. The channel
// is buffered; a subscriber that falls behind loses notifications rather than
// stalling publishers.
func (b *Bus) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 16)

	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s == ch {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// CartChanged notifies all subscribers that the given session's cart changed.
// Fire-and-forget: slow subscribers are skipped.
func (b *Bus) CartChanged(sessionKey string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- sessionKey:
		default:
		}
	}
}
