package storage

import (
	"context"
	"errors"

	"github.com/ogulcanaydogan/vitals-guardian/pkg/model"
)

// ErrNotFound is returned when a patient id is not in the directory.
var ErrNotFound = errors.New("patient not found")

// Storage defines the patient directory.
type Storage interface {
	// GetPatient returns the patient with the given id or an error wrapping ErrNotFound.
	GetPatient(ctx context.Context, id string) (*model.Patient, error)

	// SavePatient creates or updates a patient.
	SavePatient(ctx context.Context, patient *model.Patient) error

	// ListPatients returns all patients ordered by id.
	ListPatients(ctx context.Context) ([]model.Patient, error)

	// DeletePatient removes a patient.
	DeletePatient(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
