package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Tafita-R/Examen-Web2/internal/apperrors"
	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/repository"
	"github.com/Tafita-R/Examen-Web2/internal/testutil"
	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

func laptop() valuation.Possession {
	return valuation.Possession{
		Owner:                   "Zety",
		Label:                   "Laptop",
		InitialValue:            decimal.NewFromInt(1000),
		StartDate:               valuation.MustParseDate("2020-01-01"),
		DepreciationRatePercent: decimal.RequireFromString("12.5"),
	}
}

// TestPossessionRepository_RoundTrip tests that every possession field survives storage.
//
// WHY: Decimals and dates are stored as TEXT; a lossy round trip would silently
// change valuations.
func TestPossessionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("rate possession", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)

		want := laptop()
		if err := repo.InsertPossession(ctx, want); err != nil {
			t.Fatalf("InsertPossession() returned unexpected error: %v", err)
		}

		got, err := repo.GetPossession(ctx, "Laptop")
		if err != nil {
			t.Fatalf("GetPossession() returned unexpected error: %v", err)
		}

		if got.Owner != want.Owner || got.Label != want.Label {
			t.Errorf("Expected %s/%s, got %s/%s", want.Owner, want.Label, got.Owner, got.Label)
		}
		if !got.InitialValue.Equal(want.InitialValue) {
			t.Errorf("Expected initial value %s, got %s", want.InitialValue, got.InitialValue)
		}
		if !got.DepreciationRatePercent.Equal(want.DepreciationRatePercent) {
			t.Errorf("Expected rate %s, got %s", want.DepreciationRatePercent, got.DepreciationRatePercent)
		}
		if got.StartDate != want.StartDate {
			t.Errorf("Expected start date %s, got %s", want.StartDate, got.StartDate)
		}
		if !got.EndDate.IsZero() {
			t.Errorf("Expected open possession, got end date %s", got.EndDate)
		}
		if got.ConstantPerPeriodValue.Valid {
			t.Error("Expected no constant value")
		}
	})

	t.Run("closed constant possession", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)

		want := valuation.Possession{
			Label:                  "Salary",
			InitialValue:           decimal.Zero,
			StartDate:              valuation.MustParseDate("2021-06-01"),
			EndDate:                valuation.MustParseDate("2022-06-01"),
			ConstantPerPeriodValue: decimal.NewNullDecimal(decimal.RequireFromString("50.25")),
			UsesDayCount:           true,
		}
		if err := repo.InsertPossession(ctx, want); err != nil {
			t.Fatalf("InsertPossession() returned unexpected error: %v", err)
		}

		got, err := repo.GetPossession(ctx, "Salary")
		if err != nil {
			t.Fatalf("GetPossession() returned unexpected error: %v", err)
		}

		if got.EndDate != want.EndDate {
			t.Errorf("Expected end date %s, got %s", want.EndDate, got.EndDate)
		}
		if !got.ConstantPerPeriodValue.Valid || !got.ConstantPerPeriodValue.Decimal.Equal(want.ConstantPerPeriodValue.Decimal) {
			t.Errorf("Expected constant %s, got %v", want.ConstantPerPeriodValue.Decimal, got.ConstantPerPeriodValue)
		}
		if !got.UsesDayCount {
			t.Error("Expected UsesDayCount to be true")
		}
		if got.Mode() != valuation.ModeConstant {
			t.Errorf("Expected constant mode, got %s", got.Mode())
		}
	})
}

func TestPossessionRepository_InsertPossession(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects duplicate label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)

		if err := repo.InsertPossession(ctx, laptop()); err != nil {
			t.Fatalf("InsertPossession() returned unexpected error: %v", err)
		}

		err := repo.InsertPossession(ctx, laptop())
		if !errors.Is(err, apperrors.ErrDuplicateLabel) {
			t.Errorf("Expected ErrDuplicateLabel, got %v", err)
		}

		testutil.AssertRowCount(t, db, "possession", 1)
	})
}

func TestPossessionRepository_GetPossessions(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty slice when no possessions exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)

		possessions, err := repo.GetPossessions(ctx, model.PossessionFilter{})
		if err != nil {
			t.Fatalf("GetPossessions() returned unexpected error: %v", err)
		}

		if possessions == nil || len(possessions) != 0 {
			t.Errorf("Expected empty slice, got %v", possessions)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)

		labels := []string{"Zebra", "Apple", "Mango"}
		for _, label := range labels {
			testutil.CreatePossession(t, db, label)
		}

		possessions, err := repo.GetPossessions(ctx, model.PossessionFilter{})
		if err != nil {
			t.Fatalf("GetPossessions() returned unexpected error: %v", err)
		}

		if len(possessions) != len(labels) {
			t.Fatalf("Expected %d possessions, got %d", len(labels), len(possessions))
		}
		for i, label := range labels {
			if possessions[i].Label != label {
				t.Errorf("Expected %s at index %d, got %s", label, i, possessions[i].Label)
			}
		}
	})

	t.Run("sees nothing after the database is cleaned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)

		testutil.CreatePossessions(t, db, 5)
		testutil.CreateSnapshot(t, db, "2024-01-01", 100)

		possessions, err := repo.GetPossessions(ctx, model.PossessionFilter{})
		if err != nil {
			t.Fatalf("GetPossessions() returned unexpected error: %v", err)
		}
		if len(possessions) != 5 {
			t.Fatalf("Expected 5 possessions, got %d", len(possessions))
		}

		testutil.CleanDatabase(t, db)

		possessions, err = repo.GetPossessions(ctx, model.PossessionFilter{})
		if err != nil {
			t.Fatalf("GetPossessions() returned unexpected error: %v", err)
		}
		if len(possessions) != 0 {
			t.Errorf("Expected no possessions, got %d", len(possessions))
		}
		testutil.AssertRowCount(t, db, "patrimony_snapshot", 0)
	})

	t.Run("filters by owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)

		testutil.NewPossession().WithLabel("A").WithOwner("Zety").Build(t, db)
		testutil.NewPossession().WithLabel("B").WithOwner("Zety").ClosedOn("2021-01-01").Build(t, db)
		testutil.NewPossession().WithLabel("C").WithOwner("Rasoa").Build(t, db)

		owned, err := repo.GetPossessions(ctx, model.PossessionFilter{Owner: "Zety"})
		if err != nil {
			t.Fatalf("GetPossessions() returned unexpected error: %v", err)
		}
		if len(owned) != 2 {
			t.Errorf("Expected 2 possessions for Zety, got %d", len(owned))
		}
		for _, p := range owned {
			if p.Owner != "Zety" {
				t.Errorf("Expected only Zety's possessions, got %s owned by %s", p.Label, p.Owner)
			}
		}
	})
}

func TestPossessionRepository_UpdateEndDate(t *testing.T) {
	ctx := context.Background()

	t.Run("sets and overwrites end date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)
		testutil.CreatePossession(t, db, "Car")

		for _, end := range []string{"2023-01-01", "2022-06-30"} {
			if err := repo.UpdateEndDate(ctx, "Car", valuation.MustParseDate(end)); err != nil {
				t.Fatalf("UpdateEndDate() returned unexpected error: %v", err)
			}

			got, err := repo.GetPossession(ctx, "Car")
			if err != nil {
				t.Fatalf("GetPossession() returned unexpected error: %v", err)
			}
			if got.EndDate.String() != end {
				t.Errorf("Expected end date %s, got %s", end, got.EndDate)
			}
		}
	})

	t.Run("returns not found for unknown label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)

		err := repo.UpdateEndDate(ctx, "Ghost", valuation.MustParseDate("2023-01-01"))
		if !errors.Is(err, apperrors.ErrPossessionNotFound) {
			t.Errorf("Expected ErrPossessionNotFound, got %v", err)
		}
	})
}

func TestPossessionRepository_DeletePossession(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the possession", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)
		testutil.CreatePossession(t, db, "Car")

		if err := repo.DeletePossession(ctx, "Car"); err != nil {
			t.Fatalf("DeletePossession() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "possession", 0)

		_, err := repo.GetPossession(ctx, "Car")
		if !errors.Is(err, apperrors.ErrPossessionNotFound) {
			t.Errorf("Expected ErrPossessionNotFound, got %v", err)
		}
	})

	t.Run("returns not found for unknown label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, nil)

		err := repo.DeletePossession(ctx, "Ghost")
		if !errors.Is(err, apperrors.ErrPossessionNotFound) {
			t.Errorf("Expected ErrPossessionNotFound, got %v", err)
		}
	})
}

// TestPossessionRepository_OwnerEncryption tests owner encryption at rest.
//
// WHY: With a key configured, the owner column must never hold the clear name,
// while reads and owner filters keep working.
func TestPossessionRepository_OwnerEncryption(t *testing.T) {
	ctx := context.Background()

	t.Run("stores ciphertext and reads plain text", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewPossessionRepository(db, testutil.NewTestOwnerCipher(t))

		if err := repo.InsertPossession(ctx, laptop()); err != nil {
			t.Fatalf("InsertPossession() returned unexpected error: %v", err)
		}

		var stored string
		if err := db.QueryRow("SELECT owner FROM possession WHERE label = 'Laptop'").Scan(&stored); err != nil {
			t.Fatalf("Failed to read owner column: %v", err)
		}
		if !strings.HasPrefix(stored, "fernet:") || strings.Contains(stored, "Zety") {
			t.Errorf("Expected encrypted owner, got %q", stored)
		}

		got, err := repo.GetPossessions(ctx, model.PossessionFilter{Owner: "Zety"})
		if err != nil {
			t.Fatalf("GetPossessions() returned unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Owner != "Zety" {
			t.Errorf("Expected decrypted owner Zety, got %v", got)
		}
	})

	t.Run("reads plain text rows written before encryption", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.NewPossession().WithLabel("Old").WithOwner("Rasoa").Build(t, db)

		repo := repository.NewPossessionRepository(db, testutil.NewTestOwnerCipher(t))
		got, err := repo.GetPossession(ctx, "Old")
		if err != nil {
			t.Fatalf("GetPossession() returned unexpected error: %v", err)
		}
		if got.Owner != "Rasoa" {
			t.Errorf("Expected owner Rasoa, got %q", got.Owner)
		}
	})

	t.Run("fails without the key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		encrypted := repository.NewPossessionRepository(db, testutil.NewTestOwnerCipher(t))
		if err := encrypted.InsertPossession(ctx, laptop()); err != nil {
			t.Fatalf("InsertPossession() returned unexpected error: %v", err)
		}

		for name, repo := range map[string]*repository.PossessionRepository{
			"no key":    repository.NewPossessionRepository(db, nil),
			"other key": repository.NewPossessionRepository(db, testutil.NewTestOwnerCipher(t)),
		} {
			_, err := repo.GetPossession(ctx, "Laptop")
			if !errors.Is(err, apperrors.ErrDataInconsistency) {
				t.Errorf("%s: expected ErrDataInconsistency, got %v", name, err)
			}
		}
	})
}

func TestNewOwnerCipher(t *testing.T) {
	cipher, err := repository.NewOwnerCipher("")
	if err != nil || cipher != nil {
		t.Errorf("Expected nil cipher for empty key, got %v, %v", cipher, err)
	}

	if _, err := repository.NewOwnerCipher("not a key"); err == nil {
		t.Error("Expected error for malformed key")
	}

	// A nil cipher stores owners unchanged.
	sealed, err := cipher.Seal("Zety")
	if err != nil || sealed != "Zety" {
		t.Errorf("Expected plain owner from nil cipher, got %q, %v", sealed, err)
	}
}
