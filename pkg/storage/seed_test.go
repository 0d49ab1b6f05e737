package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ogulcanaydogan/vitals-guardian/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
patients:
  - id: "12"
    first_name: John
    last_name: Doe
    birth_date: "1980-11-26"
    normal_temperature: "36.6"
    normal_pressure:
      upper: 120
      lower: 80
  - id: "13"
    first_name: Ivan
    last_name: Petrov
    normal_temperature: "36.2"
    normal_pressure:
      upper: 125
      lower: 78
`

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))

	patients, err := storage.LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, patients, 2)

	assert.Equal(t, "12", patients[0].ID)
	assert.Equal(t, "36.6", patients[0].Health.NormalTemperature.String())
	assert.Equal(t, 120, patients[0].Health.NormalPressure.Upper)
	assert.Equal(t, 1980, patients[0].BirthDate.Year())
	assert.True(t, patients[1].BirthDate.IsZero())
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := storage.LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseSeed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad yaml", "patients: [", "parse seed data"},
		{"empty", "patients: []", "no patients"},
		{"missing id", `patients: [{normal_temperature: "36.6", normal_pressure: {upper: 120, lower: 80}}]`, "missing id"},
		{"bad temperature", `patients: [{id: "1", normal_temperature: "warm", normal_pressure: {upper: 120, lower: 80}}]`, "invalid normal temperature"},
		{"bad pressure", `patients: [{id: "1", normal_temperature: "36.6", normal_pressure: {upper: 0, lower: 80}}]`, "must be positive"},
		{"bad birth date", `patients: [{id: "1", birth_date: "26.11.1980", normal_temperature: "36.6", normal_pressure: {upper: 120, lower: 80}}]`, "invalid birth date"},
		{"duplicate", `patients: [{id: "1", normal_temperature: "36.6", normal_pressure: {upper: 120, lower: 80}}, {id: "1", normal_temperature: "36.6", normal_pressure: {upper: 120, lower: 80}}]`, "duplicate id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.ParseSeed([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSeed(t *testing.T) {
	patients, err := storage.ParseSeed([]byte(seedYAML))
	require.NoError(t, err)

	store := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, storage.Seed(ctx, store, patients))

	list, err := store.ListPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
