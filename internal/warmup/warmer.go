// Package warmup keeps the catalog cache entries primed so request paths
// mostly hit warm keys.
package warmup

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"program-catalog/internal/catalog"
	"program-catalog/internal/common/logging"
)

// Warmer periodically re-primes the program and program-type cache
// entries on a cron schedule.
type Warmer struct {
	service  *catalog.Service
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   logging.Logger
}

// New creates a warmer for the given cron schedule.
func New(service *catalog.Service, schedule string, logger logging.Logger) *Warmer {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Warmer{
		service:  service,
		schedule: schedule,
		timeout:  2 * time.Minute,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start schedules the warm-up job and runs one refresh immediately.
func (w *Warmer) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.run); err != nil {
		return err
	}

	w.cron.Start()
	go w.run()
	return nil
}

// Stop halts the schedule, waiting for a running refresh to finish.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
}

func (w *Warmer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.Refresh(ctx); err != nil {
		w.logger.Warn("catalog cache warm-up failed", logging.Err(err))
	}
}

// Refresh re-fetches the program list and program types, repopulating
// their cache entries. Failures are reported but never interrupt serving;
// the next scheduled run simply tries again.
func (w *Warmer) Refresh(ctx context.Context) error {
	programs, err := w.service.GetPrograms(ctx, "")
	if err != nil {
		return err
	}

	types, err := w.service.GetProgramTypes(ctx)
	if err != nil {
		return err
	}

	w.logger.Info("catalog cache warmed",
		logging.Int("programs", len(programs)),
		logging.Int("program_types", len(types)))
	return nil
}
