package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ogulcanaydogan/vitals-guardian/pkg/model"
)

// Memory is an in-process patient directory.
type Memory struct {
	mu       sync.RWMutex
	patients map[string]model.Patient
}

// NewMemory creates an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{
		patients: make(map[string]model.Patient),
	}
}

func (m *Memory) GetPatient(_ context.Context, id string) (*model.Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient %q: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (m *Memory) SavePatient(_ context.Context, patient *model.Patient) error {
	if patient.ID == "" {
		return fmt.Errorf("save patient: empty id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := m.patients[patient.ID]; ok {
		patient.CreatedAt = existing.CreatedAt
	} else if patient.CreatedAt.IsZero() {
		patient.CreatedAt = now
	}
	patient.UpdatedAt = now
	m.patients[patient.ID] = *patient
	return nil
}

func (m *Memory) ListPatients(_ context.Context) ([]model.Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	patients := make([]model.Patient, 0, len(m.patients))
	for _, p := range m.patients {
		patients = append(patients, p)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })
	return patients, nil
}

func (m *Memory) DeletePatient(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.patients[id]; !ok {
		return fmt.Errorf("patient %q: %w", id, ErrNotFound)
	}
	delete(m.patients, id)
	return nil
}

func (m *Memory) Close() error { return nil }
