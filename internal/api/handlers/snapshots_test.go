package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/testutil"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

func setupSnapshotHandler(t *testing.T) (*SnapshotHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewSnapshotHandler(testutil.NewTestSnapshotService(t, db)), db
}

func TestSnapshotHandler_Snapshots(t *testing.T) {
	t.Run("returns snapshots inside the window", func(t *testing.T) {
		handler, db := setupSnapshotHandler(t)
		testutil.CreateSnapshot(t, db, "2024-01-01", 100)
		testutil.CreateSnapshot(t, db, "2024-01-15", 150)
		testutil.CreateSnapshot(t, db, "2024-03-01", 300)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/patrimony/snapshots", map[string]string{
			"start_date": "2024-01-01",
			"end_date":   "2024-01-31",
		})
		w := httptest.NewRecorder()

		handler.Snapshots(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.PatrimonySnapshot
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 snapshots, got %d", len(response))
		}
		if response[1].Value.String() != "150" {
			t.Errorf("Expected 150, got %s", response[1].Value)
		}
	})

	t.Run("returns 400 for inverted range", func(t *testing.T) {
		handler, _ := setupSnapshotHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/patrimony/snapshots", map[string]string{
			"start_date": "2024-02-01",
			"end_date":   "2024-01-01",
		})
		w := httptest.NewRecorder()

		handler.Snapshots(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 for malformed date", func(t *testing.T) {
		handler, _ := setupSnapshotHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/patrimony/snapshots", map[string]string{
			"end_date": "31-01-2024",
		})
		w := httptest.NewRecorder()

		handler.Snapshots(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestSnapshotHandler_RefreshSnapshot(t *testing.T) {
	handler, db := setupSnapshotHandler(t)
	testutil.NewPossession().WithLabel("Cash").WithInitialValue(300).Build(t, db)

	req := httptest.NewRequest(http.MethodPost, "/api/patrimony/snapshots/refresh", nil)
	w := httptest.NewRecorder()

	handler.RefreshSnapshot(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response model.PatrimonySnapshot
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&response)

	if response.Date != valuation.Today() {
		t.Errorf("Expected today's snapshot, got %s", response.Date)
	}
	if response.Value.String() != "300" {
		t.Errorf("Expected 300, got %s", response.Value)
	}
	testutil.AssertRowCount(t, db, "patrimony_snapshot", 1)
}
