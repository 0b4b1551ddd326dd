package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/Tafita-R/Examen-Web2/internal/logging"
	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/repository"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// SnapshotService maintains the patrimony_snapshot table: pre-calculated daily totals
// that let the history endpoint answer without re-valuing the whole ledger for every day.
//
// Snapshots are written by the scheduler and by explicit refresh requests, and are
// dropped from the first affected date onward whenever a possession changes.
type SnapshotService struct {
	possessionRepo *repository.PossessionRepository
	snapshotRepo   *repository.SnapshotRepository

	// refresh collapses concurrent refreshes of the same date into one computation.
	refresh singleflight.Group
	now     func() time.Time
}

// NewSnapshotService creates a new SnapshotService with the provided repository dependencies.
func NewSnapshotService(
	possessionRepo *repository.PossessionRepository,
	snapshotRepo *repository.SnapshotRepository,
) *SnapshotService {
	return &SnapshotService{
		possessionRepo: possessionRepo,
		snapshotRepo:   snapshotRepo,
		now:            time.Now,
	}
}

// Refresh recomputes and stores the patrimony snapshot for one date, replacing any
// earlier snapshot of that date. Concurrent calls for the same date share one result.
func (s *SnapshotService) Refresh(ctx context.Context, on valuation.Date) (model.PatrimonySnapshot, error) {
	v, err, shared := s.refresh.Do(on.String(), func() (any, error) {
		return s.refreshDate(ctx, on)
	})
	if err != nil {
		return model.PatrimonySnapshot{}, err
	}

	if shared {
		logging.Get().Debugw("snapshot refresh coalesced", "date", on.String())
	}

	return v.(model.PatrimonySnapshot), nil
}

func (s *SnapshotService) refreshDate(ctx context.Context, on valuation.Date) (model.PatrimonySnapshot, error) {
	possessions, err := s.possessionRepo.GetPossessions(ctx, model.PossessionFilter{})
	if err != nil {
		return model.PatrimonySnapshot{}, err
	}

	ledger := valuation.Ledger(possessions)
	total, err := ledger.TotalAt(on)
	if err != nil {
		return model.PatrimonySnapshot{}, fmt.Errorf("failed to value ledger on %s: %w", on, err)
	}

	activeCount := 0
	for _, p := range ledger {
		if p.ActiveAt(on) {
			activeCount++
		}
	}

	record := model.PatrimonySnapshot{
		ID:           uuid.New().String(),
		Date:         on,
		Value:        total,
		ActiveCount:  activeCount,
		CalculatedAt: s.now().UTC().Truncate(time.Second),
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, record); err != nil {
		return model.PatrimonySnapshot{}, err
	}

	// Read back: on conflict the row keeps its original ID.
	return s.snapshotRepo.GetSnapshot(ctx, on)
}

// GetSnapshotHistory retrieves the stored snapshots inside the filter window, oldest first.
// Only dates that have been snapshotted are included in the result.
func (s *SnapshotService) GetSnapshotHistory(ctx context.Context, filter model.SnapshotFilter) ([]model.PatrimonySnapshot, error) {
	result := []model.PatrimonySnapshot{}

	err := s.snapshotRepo.GetSnapshots(
		ctx,
		filter.StartDate,
		filter.EndDate,
		func(record model.PatrimonySnapshot) error {
			record.Value = round(record.Value)
			result = append(result, record)
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// InvalidateFrom drops every snapshot dated on or after from. It is called whenever a
// possession change alters the patrimony from that date onward.
func (s *SnapshotService) InvalidateFrom(ctx context.Context, from valuation.Date) error {
	removed, err := s.snapshotRepo.DeleteSnapshotsFrom(ctx, from)
	if err != nil {
		return err
	}

	if removed > 0 {
		logging.Get().Debugw("snapshots invalidated", "from", from.String(), "count", removed)
	}

	return nil
}
