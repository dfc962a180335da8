package watcher

import (
	"time"
)

// debouncer is a trailing-edge timer owned by the event loop
type debouncer struct {
	d     time.Duration
	timer *time.Timer
	c     <-chan time.Time
}

func newDebouncer(d time.Duration) *debouncer {
	return &debouncer{d: d}
}

// poke restarts the quiet period
func (b *debouncer) poke() {
	if b.timer == nil {
		b.timer = time.NewTimer(b.d)
	} else {
		b.timer.Stop()
		b.timer.Reset(b.d)
	}
	b.c = b.timer.C
}

// fired is nil, and so never ready, while nothing is pending
func (b *debouncer) fired() <-chan time.Time {
	return b.c
}

func (b *debouncer) reset() {
	b.c = nil
}

func (b *debouncer) stop() {
	if b.timer != nil {
		b.timer.Stop()
	}
}
