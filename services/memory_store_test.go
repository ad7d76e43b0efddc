package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"checkin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateAssignsUniqueIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		rec, err := s.Create(ctx, models.CheckinRecord{Plate: fmt.Sprintf("P%02d", i), Date: "2024-01-01"})
		require.NoError(t, err)
		require.NotEmpty(t, rec.ID)
		assert.False(t, seen[rec.ID], "duplicate id %s", rec.ID)
		seen[rec.ID] = true
	}
}

func TestMemoryStoreCreateNormalizesRecord(t *testing.T) {
	s := NewMemoryStore()
	s.now = func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.FixedZone("BRT", -3*3600)) }

	rec, err := s.Create(context.Background(), models.CheckinRecord{ClientName: "Ana"})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-05T13:00:00Z", rec.Date)
	assert.NotNil(t, rec.PhotoURLs)
	assert.Empty(t, rec.PhotoURLs)
}

func TestMemoryStoreListOrdersByDateDesc(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, d := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		_, err := s.Create(ctx, models.CheckinRecord{Date: d})
		require.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"2024-03-01", "2024-02-01", "2024-01-01"}, dates(list))

	later, err := s.Create(ctx, models.CheckinRecord{Date: "2024-12-31"})
	require.NoError(t, err)

	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, later.ID, list[0].ID)
}

func TestMemoryStoreListEmpty(t *testing.T) {
	list, err := NewMemoryStore().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a, _ := s.Create(ctx, models.CheckinRecord{Date: "2024-01-01"})
	b, _ := s.Create(ctx, models.CheckinRecord{Date: "2024-01-02"})

	require.NoError(t, s.Delete(ctx, a.ID))
	require.NoError(t, s.Delete(ctx, a.ID), "second delete must still succeed")
	require.NoError(t, s.Delete(ctx, "does-not-exist"))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec, _ := s.Create(ctx, models.CheckinRecord{Date: "2024-01-01", PhotoURLs: []string{"https://a"}})
	rec.PhotoURLs[0] = "mutated"

	list, _ := s.List(ctx)
	assert.Equal(t, "https://a", list[0].PhotoURLs[0])
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := s.Create(ctx, models.CheckinRecord{Date: fmt.Sprintf("2024-01-%02d", i+1)})
			if err == nil && i%2 == 0 {
				_ = s.Delete(ctx, rec.ID)
			}
			_, _ = s.List(ctx)
		}(i)
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 10)
}

func dates(list []models.CheckinRecord) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Date)
	}
	return out
}
