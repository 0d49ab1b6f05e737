package monitor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ogulcanaydogan/vitals-guardian/pkg/alerts"
	"github.com/ogulcanaydogan/vitals-guardian/pkg/model"
	"github.com/shopspring/decimal"
)

// DefaultTemperatureMargin is how far below baseline a temperature may fall
// before the patient needs help.
var DefaultTemperatureMargin = decimal.RequireFromString("1.5")

// PatientDirectory looks up patients by id. storage.Storage satisfies it.
type PatientDirectory interface {
	GetPatient(ctx context.Context, id string) (*model.Patient, error)
}

// Monitor compares vital readings against each patient's own baseline
// and raises a warning through the notifier on deviation. It holds no
// mutable state and is safe for concurrent use.
type Monitor struct {
	directory PatientDirectory
	notifier  alerts.Notifier
	margin    decimal.Decimal
	logger    *slog.Logger
}

// NewMonitor creates a monitor. margin is the allowed drop below the
// baseline temperature.
func NewMonitor(directory PatientDirectory, notifier alerts.Notifier, margin decimal.Decimal, logger *slog.Logger) *Monitor {
	return &Monitor{
		directory: directory,
		notifier:  notifier,
		margin:    margin,
		logger:    logger,
	}
}

// Message returns the warning text sent for a patient.
func Message(patientID string) string {
	return fmt.Sprintf("Warning, patient with id: %s, need help", patientID)
}

// CheckBloodPressure alerts when reading differs from the patient's normal
// pressure in either value. It reports whether an alert was sent.
func (m *Monitor) CheckBloodPressure(ctx context.Context, patientID string, reading model.BloodPressure) (bool, error) {
	patient, err := m.directory.GetPatient(ctx, patientID)
	if err != nil {
		return false, fmt.Errorf("check blood pressure: %w", err)
	}

	normal := patient.Health.NormalPressure
	if reading.Equal(normal) {
		return false, nil
	}

	m.logger.Warn("blood pressure deviation",
		"patient", patientID,
		"reading", reading.String(),
		"normal", normal.String(),
	)
	return true, m.alert(ctx, patientID)
}

// CheckTemperature alerts when reading is more than the margin below the
// patient's normal temperature. Elevated temperature is not flagged.
func (m *Monitor) CheckTemperature(ctx context.Context, patientID string, reading decimal.Decimal) (bool, error) {
	patient, err := m.directory.GetPatient(ctx, patientID)
	if err != nil {
		return false, fmt.Errorf("check temperature: %w", err)
	}

	normal := patient.Health.NormalTemperature
	if !normal.Sub(reading).GreaterThan(m.margin) {
		return false, nil
	}

	m.logger.Warn("temperature deviation",
		"patient", patientID,
		"reading", reading.String(),
		"normal", normal.String(),
		"margin", m.margin.String(),
	)
	return true, m.alert(ctx, patientID)
}

func (m *Monitor) alert(ctx context.Context, patientID string) error {
	if err := m.notifier.Send(ctx, Message(patientID)); err != nil {
		m.logger.Error("send alert failed",
			"notifier", m.notifier.Name(),
			"patient", patientID,
			"error", err,
		)
		return fmt.Errorf("send alert via %s: %w", m.notifier.Name(), err)
	}
	return nil
}
