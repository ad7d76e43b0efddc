package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"checkin/dto"
	"checkin/errors"
	"checkin/models"

	"github.com/goccy/go-json"
)

// ---- uploader ----

type fakeUploader struct {
	mu       sync.Mutex
	calls    []string
	failOn   map[string]bool
	removed  []string
	removeFn func(publicID string) error
}

func (f *fakeUploader) Upload(_ context.Context, r io.Reader, filename string) (*UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := io.ReadAll(r); err != nil {
		return nil, errors.UploadFailed(err)
	}
	f.calls = append(f.calls, filename)
	if f.failOn[filename] {
		return nil, errors.UploadFailed(io.ErrUnexpectedEOF)
	}
	return &UploadResult{
		URL:      "https://res.example.com/checkins/" + filename,
		PublicID: "checkins/" + strings.TrimSuffix(filename, ".jpg"),
	}, nil
}

// removingUploader adds AssetRemover to fakeUploader
type removingUploader struct {
	*fakeUploader
}

func (f removingUploader) Remove(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeFn != nil {
		if err := f.removeFn(publicID); err != nil {
			return err
		}
	}
	f.removed = append(f.removed, publicID)
	return nil
}

// ---- store ----

type failingStore struct {
	*MemoryStore
	createErr error
	listErr   error
	deleteErr error
	listCalls int
	// afterList runs once the listing has been read
	afterList func()
}

func newFailingStore() *failingStore {
	return &failingStore{MemoryStore: NewMemoryStore()}
}

func (s *failingStore) Create(ctx context.Context, r models.CheckinRecord) (*models.CheckinRecord, error) {
	if s.createErr != nil {
		return nil, errors.StoreWriteFailed(s.createErr)
	}
	return s.MemoryStore.Create(ctx, r)
}

func (s *failingStore) List(ctx context.Context) ([]models.CheckinRecord, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, errors.StoreReadFailed(s.listErr)
	}
	records, err := s.MemoryStore.List(ctx)
	if s.afterList != nil {
		s.afterList()
	}
	return records, err
}

func (s *failingStore) Delete(ctx context.Context, id string) error {
	if s.deleteErr != nil {
		return errors.StoreDeleteFailed(s.deleteErr)
	}
	return s.MemoryStore.Delete(ctx, id)
}

// ---- cache ----

type fakeCache struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	delErr  error
	incrErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, target interface{}) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, target)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	if c.delErr != nil {
		return c.delErr
	}
	delete(c.data, key)
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	if c.incrErr != nil {
		return 0, c.incrErr
	}
	var n int64
	if raw, ok := c.data[key]; ok {
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
	}
	n++
	raw, _ := json.Marshal(n)
	c.data[key] = raw
	return n, nil
}

// ---- events ----

type recordingPublisher struct {
	events []dto.CheckinEvent
}

func (p *recordingPublisher) Publish(e dto.CheckinEvent) {
	p.events = append(p.events, e)
}

func photo(name, content string) Photo {
	return Photo{
		Filename: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}
