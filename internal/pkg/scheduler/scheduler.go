// Package scheduler wires up the cron jobs that sweep expired subscriptions
// and lapsed access grants, so staleness never depends on a status check
// happening to run.
package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/matchpro/platform/internal/pkg/access"
	"github.com/matchpro/platform/internal/pkg/metrics/counter"
	"github.com/matchpro/platform/internal/pkg/subscription"
)

const sweepBatchSize = 500

// Scheduler wraps robfig/cron and manages the expiry sweeps.
type Scheduler struct {
	cron   *cron.Cron
	subs   *subscription.Service
	ledger *access.Ledger
	spec   string // cron spec, e.g. "@hourly"
}

// New creates a Scheduler running on the given cron spec.
func New(subs *subscription.Service, ledger *access.Ledger, spec string) *Scheduler {
	if spec == "" {
		spec = "@hourly"
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		subs:   subs,
		ledger: ledger,
		spec:   spec,
	}
}

// Start registers the sweep and starts the scheduler. One sweep runs
// immediately so a restart does not leave stale rows until the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runSweep(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("[scheduler] expiry sweep started, spec: %s", s.spec)

	go s.runSweep(ctx)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] expiry sweep stopped")
}

func (s *Scheduler) runSweep(ctx context.Context) {
	expired, err := s.subs.ExpireDue(ctx, sweepBatchSize)
	if err != nil {
		log.Printf("[scheduler] subscription sweep error: %v", err)
	} else if expired > 0 {
		log.Printf("[scheduler] expired %d subscription(s)", expired)
	}

	lapsed, err := s.ledger.ExpireLapsed(ctx)
	if err != nil {
		log.Printf("[scheduler] access sweep error: %v", err)
	} else if lapsed > 0 {
		log.Printf("[scheduler] expired %d access grant(s)", lapsed)
	}

	if err := counter.FlushAll(); err != nil {
		log.Printf("[scheduler] view counter flush error: %v", err)
	}
}
