package service

import (
	"context"
	"fmt"

	"github.com/Tafita-R/Examen-Web2/internal/api/request"
	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/repository"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// PossessionService owns the possession collection: it is the only writer of the
// possession table and keeps the snapshot table consistent with every change.
type PossessionService struct {
	possessionRepo *repository.PossessionRepository
	snapshots      *SnapshotService
}

// NewPossessionService creates a new PossessionService with the provided dependencies.
func NewPossessionService(
	possessionRepo *repository.PossessionRepository,
	snapshots *SnapshotService,
) *PossessionService {
	return &PossessionService{
		possessionRepo: possessionRepo,
		snapshots:      snapshots,
	}
}

// GetPossessions returns every possession, or only those of owner when it is not empty,
// in insertion order.
func (s *PossessionService) GetPossessions(ctx context.Context, owner string) ([]valuation.Possession, error) {
	return s.possessionRepo.GetPossessions(ctx, model.PossessionFilter{Owner: owner})
}

// GetPossession returns the possession with the given label.
// Returns apperrors.ErrPossessionNotFound if it does not exist.
func (s *PossessionService) GetPossession(ctx context.Context, label string) (valuation.Possession, error) {
	return s.possessionRepo.GetPossession(ctx, label)
}

// CreatePossession stores a new possession built from req.
//
// Returns *valuation.InvalidDateError for unparseable dates, *valuation.InvalidPossessionError
// if the record breaks a possession invariant and apperrors.ErrDuplicateLabel if the label
// is taken. Snapshots from the start date onward are dropped.
func (s *PossessionService) CreatePossession(ctx context.Context, req request.CreatePossessionRequest) (valuation.Possession, error) {
	start, err := valuation.ParseDate(req.StartDate)
	if err != nil {
		return valuation.Possession{}, err
	}

	var end valuation.Date
	if req.EndDate != nil && *req.EndDate != "" {
		end, err = valuation.ParseDate(*req.EndDate)
		if err != nil {
			return valuation.Possession{}, err
		}
	}

	p := valuation.Possession{
		Owner:                   req.Owner,
		Label:                   req.Label,
		InitialValue:            req.InitialValue,
		StartDate:               start,
		EndDate:                 end,
		DepreciationRatePercent: req.DepreciationRatePercent,
		ConstantPerPeriodValue:  req.ConstantPerPeriodValue,
		UsesDayCount:            req.UsesDayCount,
	}

	if err := p.Validate(); err != nil {
		return valuation.Possession{}, err
	}

	if err := s.possessionRepo.InsertPossession(ctx, p); err != nil {
		return valuation.Possession{}, err
	}

	if err := s.snapshots.InvalidateFrom(ctx, p.StartDate); err != nil {
		return valuation.Possession{}, fmt.Errorf("possession created but snapshots not invalidated: %w", err)
	}

	return p, nil
}

// ClosePossession sets the end date of a possession. A zero end date closes it today.
// Closing again overwrites the previous end date; closing again on the same date
// changes nothing.
//
// Returns *valuation.InvalidPossessionError if end is before the start date.
func (s *PossessionService) ClosePossession(ctx context.Context, label string, end valuation.Date) (valuation.Possession, error) {
	if end.IsZero() {
		end = valuation.Today()
	}

	p, err := s.possessionRepo.GetPossession(ctx, label)
	if err != nil {
		return valuation.Possession{}, err
	}
	if p.EndDate.Equal(end) {
		return p, nil
	}

	closed := p.Close(end)
	if err := closed.Validate(); err != nil {
		return valuation.Possession{}, err
	}

	if err := s.possessionRepo.UpdateEndDate(ctx, label, end); err != nil {
		return valuation.Possession{}, err
	}

	// Values change from the earlier of the old and new end dates.
	from := end
	if p.Closed() && p.EndDate.Before(from) {
		from = p.EndDate
	}
	if err := s.snapshots.InvalidateFrom(ctx, from); err != nil {
		return valuation.Possession{}, fmt.Errorf("possession closed but snapshots not invalidated: %w", err)
	}

	return closed, nil
}

// DeletePossession removes a possession.
// Returns apperrors.ErrPossessionNotFound if it does not exist.
func (s *PossessionService) DeletePossession(ctx context.Context, label string) error {
	p, err := s.possessionRepo.GetPossession(ctx, label)
	if err != nil {
		return err
	}

	if err := s.possessionRepo.DeletePossession(ctx, label); err != nil {
		return err
	}

	if err := s.snapshots.InvalidateFrom(ctx, p.StartDate); err != nil {
		return fmt.Errorf("possession deleted but snapshots not invalidated: %w", err)
	}

	return nil
}
