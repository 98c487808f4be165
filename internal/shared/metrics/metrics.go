package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	scheduleRunsTotal      atomic.Uint64
	scheduleScheduledTotal atomic.Uint64
	schedulePartialTotal   atomic.Uint64
	scheduleFailedTotal    atomic.Uint64

	scheduleRunDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000})
)

// IncScheduleRun increments the scheduling-run counter.
func IncScheduleRun() {
	scheduleRunsTotal.Add(1)
}

// ObserveScheduleOutcome increments the counter matching a run's terminal order status.
func ObserveScheduleOutcome(status string) {
	switch status {
	case "SCHEDULED":
		scheduleScheduledTotal.Add(1)
	case "PARTIAL":
		schedulePartialTotal.Add(1)
	case "FAILED":
		scheduleFailedTotal.Add(1)
	}
}

// ObserveScheduleRunDurationMs records a scheduling run duration in milliseconds.
func ObserveScheduleRunDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	scheduleRunDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "schedule_runs_total", "Total scheduling runs started", scheduleRunsTotal.Load())
	writeCounter(&buf, "schedule_runs_scheduled_total", "Runs that fully scheduled the order", scheduleScheduledTotal.Load())
	writeCounter(&buf, "schedule_runs_partial_total", "Runs that ran out of horizon mid-pipeline", schedulePartialTotal.Load())
	writeCounter(&buf, "schedule_runs_failed_total", "Runs where the first operation found no capacity", scheduleFailedTotal.Load())
	writeHistogram(&buf, "schedule_run_duration_ms", "Scheduling run duration in milliseconds", scheduleRunDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
