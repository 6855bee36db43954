package core

import "time"

// Pacer rations work to a steady rate, used to cap how often snapshot frames
// are pushed to viewers regardless of the simulation tick rate.
type Pacer struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewPacer constructs a Pacer targeting the given events per second.
func NewPacer(perSecond int) *Pacer {
	if perSecond <= 0 {
		perSecond = 30
	}
	p := &Pacer{}
	p.SetRate(perSecond)
	p.accumulator = p.step
	return p
}

// SetRate changes the target rate. It is safe to call between Due checks.
func (p *Pacer) SetRate(perSecond int) {
	if perSecond <= 0 {
		perSecond = 30
	}
	p.step = time.Second / time.Duration(perSecond)
}

// Due reports whether another event should fire now.
func (p *Pacer) Due() bool {
	now := time.Now()
	if p.last.IsZero() {
		p.last = now
	}
	delta := now.Sub(p.last)
	p.last = now
	p.accumulator += delta
	if p.accumulator >= p.step {
		p.accumulator -= p.step
		return true
	}
	return false
}
