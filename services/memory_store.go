package services

import (
	"context"
	"sync"
	"time"

	"checkin/models"

	"github.com/google/uuid"
)

// MemoryStore keeps records in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.CheckinRecord
	order   []string
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]models.CheckinRecord),
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, record models.CheckinRecord) (*models.CheckinRecord, error) {
	stored := record.Clone()
	stored.ID = uuid.NewString()
	stampDate(&stored, s.now)
	stored.Normalize()

	s.mu.Lock()
	s.records[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	s.mu.Unlock()

	out := stored.Clone()
	return &out, nil
}

// List returns records newest first; ties keep insertion order
func (s *MemoryStore) List(_ context.Context) ([]models.CheckinRecord, error) {
	s.mu.RLock()
	out := make([]models.CheckinRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].Clone())
	}
	s.mu.RUnlock()

	sortByDateDesc(out)
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return nil
	}
	delete(s.records, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
