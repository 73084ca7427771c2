// Package jobs runs fire-and-forget deliveries on a background worker that
// survives the originating request. Failures are logged, never surfaced.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"promoback/internal/platform/metrics"
)

type job struct {
	Name string
	Run  func(context.Context) error
}

type Service struct {
	queue   chan job
	stats   *metrics.Collector
	timeout time.Duration
}

func New(queueSize int, stats *metrics.Collector) *Service {
	return &Service{
		queue:   make(chan job, queueSize),
		stats:   stats,
		timeout: 30 * time.Second,
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

// Dispatch enqueues a delivery. A full queue drops the job with a warning:
// sink deliveries are best-effort and must never block the caller.
func (s *Service) Dispatch(name string, run func(context.Context) error) {
	select {
	case s.queue <- job{Name: name, Run: run}:
	default:
		slog.Warn("sink queue full, dropping delivery", "job", name)
		if s.stats != nil {
			s.stats.RecordSinkFailure()
		}
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			runCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
			if err := j.Run(runCtx); err != nil {
				slog.Warn("sink delivery failed", "job", j.Name, "err", err)
				if s.stats != nil {
					s.stats.RecordSinkFailure()
				}
			}
			cancel()
		}
	}
}
