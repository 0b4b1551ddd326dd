package service

import (
	"database/sql"

	"github.com/Tafita-R/Examen-Web2/internal/database"
	"github.com/Tafita-R/Examen-Web2/internal/model"
	"github.com/Tafita-R/Examen-Web2/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	currency string
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, currency string) *SystemService {
	return &SystemService{
		db:       db,
		currency: currency,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version, the applied schema migration and
// the reporting currency.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  dbVersion,
		Currency:   s.currency,
	}, nil
}
