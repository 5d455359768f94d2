package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Gateway counts outbound calls to the payment gateway per endpoint.
type Gateway struct {
	RequestCalls    Counter
	RequestFailures Counter
	ResultCalls     Counter
	ResultFailures  Counter
	LatencyMillis   Counter
}

func (g *Gateway) Observe(t *Timer) {
	g.LatencyMillis.Add(uint64(t.Duration().Milliseconds()))
}

func (g *Gateway) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"request_calls":    g.RequestCalls.Load(),
		"request_failures": g.RequestFailures.Load(),
		"result_calls":     g.ResultCalls.Load(),
		"result_failures":  g.ResultFailures.Load(),
		"latency_ms_total": g.LatencyMillis.Load(),
	}
}
