package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/report"
	"github.com/Tafita-R/Examen-Web2/internal/repository"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// PatrimonyService answers valuation questions over the stored possessions.
// Every call loads a fresh ledger and hands it to the valuation engine; nothing is
// cached between calls.
//
// Engine errors (*valuation.InvalidPossessionError, valuation.ErrInvalidRange,
// valuation.ErrInvalidStep) are returned wrapped so callers can match them with
// errors.As / errors.Is.
type PatrimonyService struct {
	possessionRepo *repository.PossessionRepository
	currency       string
}

// NewPatrimonyService creates a new PatrimonyService reporting amounts in currency.
func NewPatrimonyService(possessionRepo *repository.PossessionRepository, currency string) *PatrimonyService {
	return &PatrimonyService{
		possessionRepo: possessionRepo,
		currency:       currency,
	}
}

// Currency returns the ISO 4217 code amounts are formatted in.
func (s *PatrimonyService) Currency() string {
	return s.currency
}

func (s *PatrimonyService) loadLedger(ctx context.Context, owner string) (valuation.Ledger, error) {
	possessions, err := s.possessionRepo.GetPossessions(ctx, model.PossessionFilter{Owner: owner})
	if err != nil {
		return nil, err
	}
	return valuation.Ledger(possessions), nil
}

// GetPatrimony returns the patrimony on a date, for every owner or for one owner.
func (s *PatrimonyService) GetPatrimony(ctx context.Context, on valuation.Date, owner string) (model.PatrimonyValue, error) {
	ledger, err := s.loadLedger(ctx, owner)
	if err != nil {
		return model.PatrimonyValue{}, err
	}

	total, err := ledger.TotalAt(on)
	if err != nil {
		return model.PatrimonyValue{}, fmt.Errorf("failed to value patrimony on %s: %w", on, err)
	}

	return model.PatrimonyValue{
		Date:      on,
		Owner:     owner,
		Value:     round(total),
		Formatted: report.FormatAmount(total, s.currency),
	}, nil
}

// GetPatrimonyOverRange returns the patrimony for a date range. The value is the
// patrimony on endDate; startDate is only echoed back.
func (s *PatrimonyService) GetPatrimonyOverRange(ctx context.Context, startDate, endDate valuation.Date, owner string) (model.PatrimonyRange, error) {
	ledger, err := s.loadLedger(ctx, owner)
	if err != nil {
		return model.PatrimonyRange{}, err
	}

	total, err := ledger.TotalOverRange(startDate, endDate)
	if err != nil {
		return model.PatrimonyRange{}, fmt.Errorf("failed to value patrimony on %s: %w", endDate, err)
	}

	return model.PatrimonyRange{
		StartDate: startDate,
		EndDate:   endDate,
		Owner:     owner,
		Value:     round(total),
		Formatted: report.FormatAmount(total, s.currency),
	}, nil
}

// GetBreakdown returns every possession's value on a date along with the total.
func (s *PatrimonyService) GetBreakdown(ctx context.Context, on valuation.Date, owner string) (valuation.Breakdown, error) {
	ledger, err := s.loadLedger(ctx, owner)
	if err != nil {
		return valuation.Breakdown{}, err
	}

	breakdown, err := ledger.Breakdown(on)
	if err != nil {
		return valuation.Breakdown{}, fmt.Errorf("failed to value patrimony on %s: %w", on, err)
	}

	for i := range breakdown.Items {
		breakdown.Items[i].Value = round(breakdown.Items[i].Value)
	}
	breakdown.Total = round(breakdown.Total)

	return breakdown, nil
}

// GetSeries samples the patrimony every stepDays days between startDate and endDate,
// always including endDate.
func (s *PatrimonyService) GetSeries(ctx context.Context, startDate, endDate valuation.Date, stepDays int, owner string) (model.PatrimonySeries, error) {
	ledger, err := s.loadLedger(ctx, owner)
	if err != nil {
		return model.PatrimonySeries{}, err
	}

	points, err := ledger.Series(startDate, endDate, stepDays)
	if err != nil {
		return model.PatrimonySeries{}, fmt.Errorf("failed to build patrimony series: %w", err)
	}

	series := model.PatrimonySeries{
		Dates:  make([]valuation.Date, 0, len(points)),
		Values: make([]decimal.Decimal, 0, len(points)),
	}
	for _, point := range points {
		series.Dates = append(series.Dates, point.Date)
		series.Values = append(series.Values, round(point.Value))
	}

	return series, nil
}

// GetPossessionValue values a single possession on a date. A closed possession reports
// its frozen value, and Active tells whether it still counts in the patrimony.
func (s *PatrimonyService) GetPossessionValue(ctx context.Context, label string, on valuation.Date) (model.PossessionValue, error) {
	p, err := s.possessionRepo.GetPossession(ctx, label)
	if err != nil {
		return model.PossessionValue{}, err
	}

	value, err := valuation.ValueAt(p, on)
	if err != nil {
		return model.PossessionValue{}, fmt.Errorf("failed to value possession %q on %s: %w", label, on, err)
	}

	return model.PossessionValue{
		Label:     p.Label,
		Date:      on,
		Mode:      p.Mode(),
		Active:    p.ActiveAt(on),
		Value:     round(value),
		Formatted: report.FormatAmount(value, s.currency),
	}, nil
}

// GetReport renders the breakdown on a date as a standalone HTML page.
func (s *PatrimonyService) GetReport(ctx context.Context, on valuation.Date, owner string) ([]byte, error) {
	breakdown, err := s.GetBreakdown(ctx, on, owner)
	if err != nil {
		return nil, err
	}

	body, err := report.HTML(report.Markdown(breakdown, owner, s.currency))
	if err != nil {
		return nil, err
	}

	return report.Page(fmt.Sprintf("Patrimony on %s", on), body), nil
}
