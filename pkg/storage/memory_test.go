package storage_test

import (
	"context"
	"sync"
	"testing"

	"github.com/ogulcanaydogan/vitals-guardian/pkg/model"
	"github.com/ogulcanaydogan/vitals-guardian/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SaveAndGet(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SavePatient(ctx, johnDoe("12")))

	got, err := m.GetPatient(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.FullName())
	assert.Equal(t, model.BloodPressure{Upper: 120, Lower: 80}, got.Health.NormalPressure)
}

func TestMemory_GetPatient_ReturnsCopy(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, m.SavePatient(ctx, johnDoe("12")))

	got, err := m.GetPatient(ctx, "12")
	require.NoError(t, err)
	got.Health.NormalPressure.Upper = 200

	again, err := m.GetPatient(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, 120, again.Health.NormalPressure.Upper)
}

func TestMemory_NotFound(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()

	_, err := m.GetPatient(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = m.DeletePatient(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMemory_UpsertKeepsCreatedAt(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()

	p := johnDoe("12")
	require.NoError(t, m.SavePatient(ctx, p))
	created := p.CreatedAt

	update := johnDoe("12")
	require.NoError(t, m.SavePatient(ctx, update))
	assert.Equal(t, created, update.CreatedAt)
}

func TestMemory_ListSorted(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()
	for _, id := range []string{"3", "1", "2"} {
		require.NoError(t, m.SavePatient(ctx, johnDoe(id)))
	}

	list, err := m.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestMemory_ConcurrentReads(t *testing.T) {
	m := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, m.SavePatient(ctx, johnDoe("12")))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.GetPatient(ctx, "12")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
