package sim

import "time"

// TickerClock caps the tick rate at a fixed frequency.
type TickerClock struct {
	ticker *time.Ticker
}

func NewTickerClock(fps int) *TickerClock {
	if fps <= 0 {
		fps = 60
	}
	return &TickerClock{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (c *TickerClock) Wait() { <-c.ticker.C }

func (c *TickerClock) Stop() { c.ticker.Stop() }

// Unthrottled never waits; used for headless batch runs and tests.
type Unthrottled struct{}

func (Unthrottled) Wait() {}
