package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/testutil"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// TestSnapshotService_Refresh tests snapshot computation.
//
// WHY: History is served from stored snapshots only. A refresh must store the same
// total the live valuation returns, and refreshing twice must not duplicate rows.
func TestSnapshotService_Refresh(t *testing.T) {
	ctx := context.Background()
	on := valuation.MustParseDate("2022-01-01")

	t.Run("stores the patrimony total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		seedLedger(t, db)

		snapshot, err := svc.Refresh(ctx, on)
		if err != nil {
			t.Fatalf("Refresh() returned unexpected error: %v", err)
		}

		if snapshot.Value.String() != "1450" {
			t.Errorf("Expected 1450, got %s", snapshot.Value)
		}
		if snapshot.ActiveCount != 3 {
			t.Errorf("Expected 3 active possessions, got %d", snapshot.ActiveCount)
		}
		if snapshot.Date != on {
			t.Errorf("Expected date %s, got %s", on, snapshot.Date)
		}
		testutil.AssertRowCount(t, db, "patrimony_snapshot", 1)
	})

	t.Run("second refresh replaces the first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		testutil.NewPossession().WithLabel("Cash").WithInitialValue(300).Build(t, db)

		first, err := svc.Refresh(ctx, on)
		if err != nil {
			t.Fatalf("Refresh() returned unexpected error: %v", err)
		}

		testutil.NewPossession().WithLabel("Car").WithInitialValue(700).Build(t, db)

		second, err := svc.Refresh(ctx, on)
		if err != nil {
			t.Fatalf("Refresh() returned unexpected error: %v", err)
		}

		if second.ID != first.ID {
			t.Errorf("Expected ID %s to be kept, got %s", first.ID, second.ID)
		}
		if second.Value.String() != "1000" {
			t.Errorf("Expected 1000, got %s", second.Value)
		}
		testutil.AssertRowCount(t, db, "patrimony_snapshot", 1)
	})

	t.Run("concurrent refreshes store one row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)
		seedLedger(t, db)

		var wg sync.WaitGroup
		errs := make(chan error, 5)
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := svc.Refresh(ctx, on); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			t.Errorf("Refresh() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "patrimony_snapshot", 1)
	})
}

func TestSnapshotService_GetSnapshotHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSnapshotService(t, db)
	testutil.CreateSnapshot(t, db, "2024-01-02", 200)
	testutil.CreateSnapshot(t, db, "2024-01-01", 100)
	testutil.CreateSnapshot(t, db, "2024-03-01", 300)

	history, err := svc.GetSnapshotHistory(context.Background(), model.SnapshotFilter{
		StartDate: valuation.MustParseDate("2024-01-01"),
		EndDate:   valuation.MustParseDate("2024-01-31"),
	})
	if err != nil {
		t.Fatalf("GetSnapshotHistory() returned unexpected error: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(history))
	}
	if history[0].Date.String() != "2024-01-01" || history[1].Date.String() != "2024-01-02" {
		t.Errorf("Expected oldest first, got %s then %s", history[0].Date, history[1].Date)
	}
}

func TestSnapshotService_GetSnapshotHistory_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSnapshotService(t, db)

	history, err := svc.GetSnapshotHistory(context.Background(), model.SnapshotFilter{
		StartDate: valuation.MustParseDate("2024-01-01"),
		EndDate:   valuation.MustParseDate("2024-01-31"),
	})
	if err != nil {
		t.Fatalf("GetSnapshotHistory() returned unexpected error: %v", err)
	}

	// An empty slice, not nil, so the API encodes [] instead of null.
	if history == nil || len(history) != 0 {
		t.Errorf("Expected empty non-nil history, got %v", history)
	}
}

func TestSnapshotService_InvalidateFrom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSnapshotService(t, db)
	testutil.CreateSnapshot(t, db, "2024-01-01", 100)
	testutil.CreateSnapshot(t, db, "2024-01-02", 200)

	if err := svc.InvalidateFrom(context.Background(), valuation.MustParseDate("2024-01-02")); err != nil {
		t.Fatalf("InvalidateFrom() returned unexpected error: %v", err)
	}
	testutil.AssertRowCount(t, db, "patrimony_snapshot", 1)

	// Nothing left to drop is not an error.
	if err := svc.InvalidateFrom(context.Background(), valuation.MustParseDate("2030-01-01")); err != nil {
		t.Fatalf("InvalidateFrom() returned unexpected error: %v", err)
	}
}
