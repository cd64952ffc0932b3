package rate

import (
	"context"

	"go.uber.org/ratelimit"
)

// Pacer emits at most perSec signals per second on Chan until ctx is done.
// Signals are not accumulated while nobody reads, a slow reader simply gets fewer of them.
type Pacer struct {
	ch     chan struct{}
	l      ratelimit.Limiter
	perSec int
}

func NewPacer(ctx context.Context, perSec int) *Pacer {
	if perSec < 1 {
		perSec = 1
	}
	p := &Pacer{
		perSec: perSec,
		ch:     make(chan struct{}, 1),
		l:      ratelimit.New(perSec, ratelimit.WithoutSlack),
	}
	go p.provider(ctx)
	return p
}

func (p *Pacer) provider(ctx context.Context) {
	defer close(p.ch)
	for {
		p.l.Take()
		select {
		case <-ctx.Done():
			return
		case p.ch <- struct{}{}:
		}
	}
}

// Chan is closed once the pacer stops.
func (p *Pacer) Chan() <-chan struct{} {
	return p.ch
}

func (p *Pacer) PerSec() int {
	return p.perSec
}
