package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Tafita-R/Examen-Web2/internal/logging"
	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// refreshTimeout bounds one scheduled snapshot refresh.
const refreshTimeout = time.Minute

// Scheduler refreshes today's patrimony snapshot on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	snapshots *SnapshotService
}

// NewScheduler creates a Scheduler firing on spec, a standard five-field cron
// expression or a descriptor such as "@daily". Schedules are evaluated in UTC.
func NewScheduler(spec string, snapshots *SnapshotService) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		snapshots: snapshots,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if _, err := s.RefreshNow(ctx); err != nil {
		logging.Get().Errorw("scheduled snapshot refresh failed", "error", err)
	}
}

// RefreshNow refreshes today's snapshot immediately.
func (s *Scheduler) RefreshNow(ctx context.Context) (model.PatrimonySnapshot, error) {
	snapshot, err := s.snapshots.Refresh(ctx, valuation.Today())
	if err != nil {
		return model.PatrimonySnapshot{}, err
	}

	logging.Get().Infow("patrimony snapshot refreshed",
		"date", snapshot.Date.String(),
		"value", snapshot.Value.String(),
		"active", snapshot.ActiveCount,
	)
	return snapshot, nil
}

// Run starts the schedule and blocks until ctx is done. It then waits for a refresh
// in progress to finish before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	return nil
}
