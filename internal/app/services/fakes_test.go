package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
)

type memoryProfileStore struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[int64]*models.StudentProfile
	reads    int
	err      error
}

func newMemoryProfileStore() *memoryProfileStore {
	return &memoryProfileStore{profiles: map[int64]*models.StudentProfile{}}
}

func (s *memoryProfileStore) Create(_ context.Context, p *models.StudentProfile) (*models.StudentProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	stored := *p
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	s.profiles[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (s *memoryProfileStore) GetByID(_ context.Context, id int64) (*models.StudentProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	out := *p
	return &out, nil
}

type memoryMatchStore struct {
	mu      sync.Mutex
	nextID  int64
	matches map[int64][]*models.ScholarshipMatch
	inserts int
	listErr error
}

func newMemoryMatchStore() *memoryMatchStore {
	return &memoryMatchStore{matches: map[int64][]*models.ScholarshipMatch{}}
}

func (s *memoryMatchStore) ListByProfile(_ context.Context, profileID int64) ([]*models.ScholarshipMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]*models.ScholarshipMatch{}, s.matches[profileID]...), nil
}

func (s *memoryMatchStore) CreateBatchIfAbsent(_ context.Context, profileID int64, batch []*models.ScholarshipMatch) ([]*models.ScholarshipMatch, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.matches[profileID]; len(existing) > 0 {
		return append([]*models.ScholarshipMatch{}, existing...), false, nil
	}
	if len(batch) == 0 {
		return []*models.ScholarshipMatch{}, false, nil
	}
	stored := make([]*models.ScholarshipMatch, 0, len(batch))
	for _, m := range batch {
		s.nextID++
		c := *m
		c.ID = s.nextID
		stored = append(stored, &c)
	}
	s.matches[profileID] = stored
	s.inserts++
	return append([]*models.ScholarshipMatch{}, stored...), true, nil
}

func (s *memoryMatchStore) seed(profileID int64, names ...string) {
	for _, n := range names {
		s.nextID++
		s.matches[profileID] = append(s.matches[profileID], &models.ScholarshipMatch{
			ID: s.nextID, ProfileID: profileID, Name: n,
			GovernmentType: models.GovernmentTypePrivate, RequiredDocuments: []string{},
		})
	}
}

type stubCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	prompts []string
	delay   time.Duration
}

func (c *stubCompleter) CompleteJSON(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	c.calls++
	c.prompts = append(c.prompts, prompt)
	c.mu.Unlock()
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return c.reply, c.err
}

type publishedEvent struct {
	routingKey string
	payload    interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{routingKey: routingKey, payload: payload})
	return p.err
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = b
	c.ttls[key] = ttl
	return nil
}
