package sim_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/sim"
)

var _ = Describe("TickerClock", func() {
	It("holds each tick for at least one frame period", func() {
		clock := sim.NewTickerClock(200)
		defer clock.Stop()

		start := time.Now()
		for range 3 {
			clock.Wait()
		}
		Expect(time.Since(start)).To(BeNumerically(">=", 10*time.Millisecond))
	})

	It("stops delivering ticks after Stop", func() {
		clock := sim.NewTickerClock(1000)
		clock.Wait()
		clock.Stop()

		Consistently(waitAsync(clock), 50*time.Millisecond).ShouldNot(BeClosed())
	})

	It("falls back to 60 fps for a non-positive rate", func() {
		clock := sim.NewTickerClock(0)
		defer clock.Stop()
		Eventually(waitAsync(clock), 200*time.Millisecond).Should(BeClosed())
	})
})

var _ = Describe("Unthrottled", func() {
	It("never blocks", func() {
		Eventually(waitAsync(sim.Unthrottled{}), 10*time.Millisecond).Should(BeClosed())
	})
})

// waitAsync closes the returned channel once c.Wait returns.
func waitAsync(c sim.Clock) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	return done
}
