package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ogulcanaydogan/vitals-guardian/pkg/model"
)

// SeedPatient is the YAML form of a directory entry.
type SeedPatient struct {
	ID                string              `yaml:"id"`
	FirstName         string              `yaml:"first_name"`
	LastName          string              `yaml:"last_name"`
	BirthDate         string              `yaml:"birth_date"`
	NormalTemperature string              `yaml:"normal_temperature"`
	NormalPressure    model.BloodPressure `yaml:"normal_pressure"`
}

// SeedFile is the top-level layout of a patient seed file.
type SeedFile struct {
	Patients []SeedPatient `yaml:"patients"`
}

// LoadSeed reads a YAML seed file and returns validated patients.
func LoadSeed(path string) ([]model.Patient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	patients, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return patients, nil
}

// ParseSeed parses YAML seed data from raw bytes.
func ParseSeed(data []byte) ([]model.Patient, error) {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	if len(f.Patients) == 0 {
		return nil, fmt.Errorf("no patients defined")
	}

	seen := make(map[string]bool, len(f.Patients))
	patients := make([]model.Patient, 0, len(f.Patients))
	for i, sp := range f.Patients {
		p, err := sp.toPatient()
		if err != nil {
			return nil, fmt.Errorf("patient %d: %w", i+1, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("patient %d: duplicate id %q", i+1, p.ID)
		}
		seen[p.ID] = true
		patients = append(patients, p)
	}
	return patients, nil
}

func (sp SeedPatient) toPatient() (model.Patient, error) {
	if sp.ID == "" {
		return model.Patient{}, fmt.Errorf("missing id")
	}
	if sp.NormalPressure.Upper <= 0 || sp.NormalPressure.Lower <= 0 {
		return model.Patient{}, fmt.Errorf("%s: normal pressure must be positive", sp.ID)
	}

	temp, err := decimal.NewFromString(sp.NormalTemperature)
	if err != nil {
		return model.Patient{}, fmt.Errorf("%s: invalid normal temperature %q: %w", sp.ID, sp.NormalTemperature, err)
	}

	p := model.Patient{
		ID:        sp.ID,
		FirstName: sp.FirstName,
		LastName:  sp.LastName,
		Health: model.HealthInfo{
			NormalTemperature: temp,
			NormalPressure:    sp.NormalPressure,
		},
	}

	if sp.BirthDate != "" {
		d, err := time.Parse(model.BirthDateLayout, sp.BirthDate)
		if err != nil {
			return model.Patient{}, fmt.Errorf("%s: invalid birth date %q: %w", sp.ID, sp.BirthDate, err)
		}
		p.BirthDate = d
	}
	return p, nil
}

// Seed upserts the given patients into the store.
func Seed(ctx context.Context, store Storage, patients []model.Patient) error {
	for i := range patients {
		if err := store.SavePatient(ctx, &patients[i]); err != nil {
			return fmt.Errorf("seed patient %q: %w", patients[i].ID, err)
		}
	}
	return nil
}
