package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	portssvc "github.com/jomonylw/flow-balance-sub006/internal/core/ports/services"
	"github.com/jomonylw/flow-balance-sub006/internal/utils/dateutil"
)

// Scheduler runs the nightly derivation sweep that regenerates AUTO rates
// for every user holding primary rates.
type Scheduler struct {
	cron       *cron.Cron
	derivation portssvc.RateDerivationSvc
	logger     *slog.Logger
}

// New builds a scheduler around the given derivation service.
func New(derivation portssvc.RateDerivationSvc, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		derivation: derivation,
		logger:     logger,
	}
}

// Start registers the sweep under spec and begins ticking. An empty spec
// disables scheduling entirely.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		s.logger.Info("Derivation scheduler disabled (empty cron spec)")
		return nil
	}

	_, err := s.cron.AddFunc(spec, s.runSweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Derivation scheduler started", slog.String("spec", spec))
	return nil
}

// Stop halts the cron loop and waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Derivation scheduler stopped")
}

func (s *Scheduler) runSweep() {
	ctx := context.Background()
	effectiveDate := dateutil.TruncateToDay(time.Now())
	s.logger.Info("Starting nightly rate derivation sweep", slog.Time("effectiveDate", effectiveDate))
	if err := s.derivation.DeriveForAllUsers(ctx, effectiveDate); err != nil {
		s.logger.Error("Nightly rate derivation sweep failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Nightly rate derivation sweep finished")
}
