package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Tafita-R/Examen-Web2/internal/apperrors"
	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/repository"
	"github.com/Tafita-R/Examen-Web2/internal/testutil"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

func TestSnapshotRepository_UpsertSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts then replaces by date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)
		on := valuation.MustParseDate("2024-01-01")

		first := model.PatrimonySnapshot{
			ID:           testutil.MakeID(),
			Date:         on,
			Value:        decimal.RequireFromString("1500.5"),
			ActiveCount:  3,
			CalculatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := repo.UpsertSnapshot(ctx, first); err != nil {
			t.Fatalf("UpsertSnapshot() returned unexpected error: %v", err)
		}

		second := first
		second.ID = testutil.MakeID()
		second.Value = decimal.NewFromInt(900)
		second.ActiveCount = 2
		if err := repo.UpsertSnapshot(ctx, second); err != nil {
			t.Fatalf("UpsertSnapshot() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "patrimony_snapshot", 1)

		got, err := repo.GetSnapshot(ctx, on)
		if err != nil {
			t.Fatalf("GetSnapshot() returned unexpected error: %v", err)
		}
		if got.ID != first.ID {
			t.Errorf("Expected original ID %s to be kept, got %s", first.ID, got.ID)
		}
		if !got.Value.Equal(second.Value) {
			t.Errorf("Expected value %s, got %s", second.Value, got.Value)
		}
		if got.ActiveCount != 2 {
			t.Errorf("Expected active count 2, got %d", got.ActiveCount)
		}
		if got.Date != on {
			t.Errorf("Expected date %s, got %s", on, got.Date)
		}
		if !got.CalculatedAt.Equal(first.CalculatedAt) {
			t.Errorf("Expected calculated_at %s, got %s", first.CalculatedAt, got.CalculatedAt)
		}
	})
}

func TestSnapshotRepository_GetSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	_, err := repo.GetSnapshot(context.Background(), valuation.MustParseDate("2024-01-01"))
	if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestSnapshotRepository_GetSnapshots(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *repository.SnapshotRepository {
		t.Helper()
		db := testutil.SetupTestDB(t)
		testutil.CreateSnapshot(t, db, "2024-01-03", 300)
		testutil.CreateSnapshot(t, db, "2024-01-01", 100)
		testutil.CreateSnapshot(t, db, "2024-01-02", 200)
		testutil.CreateSnapshot(t, db, "2024-02-01", 400)
		return repository.NewSnapshotRepository(db)
	}

	t.Run("streams the window in date order", func(t *testing.T) {
		repo := setup(t)

		var dates []string
		err := repo.GetSnapshots(ctx,
			valuation.MustParseDate("2024-01-01"),
			valuation.MustParseDate("2024-01-31"),
			func(record model.PatrimonySnapshot) error {
				dates = append(dates, record.Date.String())
				return nil
			},
		)
		if err != nil {
			t.Fatalf("GetSnapshots() returned unexpected error: %v", err)
		}

		want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
		if len(dates) != len(want) {
			t.Fatalf("Expected %v, got %v", want, dates)
		}
		for i := range want {
			if dates[i] != want[i] {
				t.Errorf("Expected %s at index %d, got %s", want[i], i, dates[i])
			}
		}
	})

	t.Run("stops on callback error", func(t *testing.T) {
		repo := setup(t)
		stop := errors.New("stop")

		calls := 0
		err := repo.GetSnapshots(ctx,
			valuation.MustParseDate("2024-01-01"),
			valuation.MustParseDate("2024-12-31"),
			func(model.PatrimonySnapshot) error {
				calls++
				return stop
			},
		)
		if !errors.Is(err, stop) {
			t.Errorf("Expected callback error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("Expected 1 callback call, got %d", calls)
		}
	})
}

func TestSnapshotRepository_DeleteSnapshotsFrom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)
	testutil.CreateSnapshot(t, db, "2024-01-01", 100)
	testutil.CreateSnapshot(t, db, "2024-01-02", 200)
	testutil.CreateSnapshot(t, db, "2024-01-03", 300)

	removed, err := repo.DeleteSnapshotsFrom(context.Background(), valuation.MustParseDate("2024-01-02"))
	if err != nil {
		t.Fatalf("DeleteSnapshotsFrom() returned unexpected error: %v", err)
	}

	if removed != 2 {
		t.Errorf("Expected 2 snapshots removed, got %d", removed)
	}
	testutil.AssertRowCount(t, db, "patrimony_snapshot", 1)
}
