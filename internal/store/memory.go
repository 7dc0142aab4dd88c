package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/rajasatyajit/FloodAlert/internal/cities"
	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
	"github.com/rajasatyajit/FloodAlert/internal/models"
	"github.com/rajasatyajit/FloodAlert/pkg/utils"
)

// InMemoryStore implements UserStore using in-memory storage
type InMemoryStore struct {
	mu      sync.RWMutex
	users   map[string]models.User
	byEmail map[string]string
	clock   clockwork.Clock
}

// NewInMemoryStore creates a new in-memory store
func NewInMemoryStore(clock clockwork.Clock) *InMemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &InMemoryStore{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
		clock:   clock,
	}
}

// Create assigns an ID and timestamps when missing.
func (s *InMemoryStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := utils.NormalizeEmail(u.Email)
	if _, exists := s.byEmail[email]; exists {
		return apperrors.ErrConflict
	}

	now := s.clock.Now().UTC()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	u.Email = email

	s.users[u.ID] = *u
	s.byEmail[email] = u.ID
	return nil
}

func (s *InMemoryStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *InMemoryStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.byEmail[utils.NormalizeEmail(email)]; ok {
		u := s.users[id]
		return &u, nil
	}
	return nil, apperrors.ErrNotFound
}

func sortByCreated(users []models.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
}

func (s *InMemoryStore) FindByCity(ctx context.Context, city string) ([]models.User, error) {
	want := make(map[string]bool)
	for _, c := range cities.Related(city) {
		want[c] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.User
	for _, u := range s.users {
		if u.IsActive && want[u.City] {
			result = append(result, u)
		}
	}
	sortByCreated(result)
	return result, nil
}

func (s *InMemoryStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		result = append(result, u)
	}
	sortByCreated(result)
	return result, nil
}

func (s *InMemoryStore) UpdateCity(ctx context.Context, id, city string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.City = city
	u.UpdatedAt = s.clock.Now().UTC()
	s.users[id] = u
	return nil
}

func (s *InMemoryStore) SetActive(ctx context.Context, id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.IsActive = active
	u.UpdatedAt = s.clock.Now().UTC()
	s.users[id] = u
	return nil
}

func (s *InMemoryStore) IncrementAlertCount(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	at = at.UTC()
	u.AlertsReceived++
	u.LastAlertAt = &at
	u.UpdatedAt = at
	s.users[id] = u
	return nil
}

// Health always returns nil for in-memory store
func (s *InMemoryStore) Health(ctx context.Context) error {
	return nil
}
