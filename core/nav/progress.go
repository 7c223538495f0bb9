package nav

import (
	"context"
	"sync"
	"time"
)

// progressTicker reveals the cosmetic step captions one by one while an
// engine call is in flight. It is scoped to the operation's context, so
// navigating away or logging out stops it; the captions never outlive the
// screen that showed them.
type progressTicker struct {
	mu      sync.Mutex
	steps   []string
	visible int
}

func newProgressTicker(ctx context.Context, steps []string, interval time.Duration) *progressTicker {
	p := &progressTicker{steps: steps}
	if interval <= 0 || len(steps) == 0 {
		p.visible = len(steps)
		return p
	}
	go p.run(ctx, interval)
	return p
}

func (p *progressTicker) run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.mu.Lock()
			if p.visible < len(p.steps) {
				p.visible++
			}
			done := p.visible >= len(p.steps)
			p.mu.Unlock()
			if done {
				return
			}
		}
	}
}

// Visible returns the captions revealed so far.
func (p *progressTicker) Visible() []string {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.steps[:p.visible]...)
}
