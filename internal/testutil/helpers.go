package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/Tafita-R/Examen-Web2/internal/repository"
	"github.com/Tafita-R/Examen-Web2/internal/service"
)

// TestCurrency is the reporting currency used by the test services.
const TestCurrency = "USD"

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewPossessionRepository(db, nil),
		repository.NewSnapshotRepository(db),
	)
}

func NewTestPossessionService(t *testing.T, db *sql.DB) *service.PossessionService {
	t.Helper()

	return service.NewPossessionService(
		repository.NewPossessionRepository(db, nil),
		NewTestSnapshotService(t, db),
	)
}

func NewTestPatrimonyService(t *testing.T, db *sql.DB) *service.PatrimonyService {
	t.Helper()

	return service.NewPatrimonyService(
		repository.NewPossessionRepository(db, nil),
		TestCurrency,
	)
}

func NewTestScheduler(t *testing.T, db *sql.DB) *service.Scheduler {
	t.Helper()

	scheduler, err := service.NewScheduler("@daily", NewTestSnapshotService(t, db))
	if err != nil {
		t.Fatalf("Failed to create test scheduler: %v", err)
	}
	return scheduler
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, TestCurrency)
}

// NewTestOwnerCipher returns a cipher with a freshly generated key.
func NewTestOwnerCipher(t *testing.T) *repository.OwnerCipher {
	t.Helper()

	key, err := repository.GenerateOwnerKey()
	if err != nil {
		t.Fatalf("Failed to generate owner key: %v", err)
	}
	cipher, err := repository.NewOwnerCipher(key)
	if err != nil {
		t.Fatalf("Failed to create owner cipher: %v", err)
	}
	return cipher
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeLabel generates a unique possession label for testing.
//
// Example usage:
//
//	label := testutil.MakeLabel("Car")
//	// Returns: "Car ABC123"
func MakeLabel(base string) string {
	if base == "" {
		base = "Possession"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
