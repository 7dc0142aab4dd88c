package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
	"github.com/rajasatyajit/FloodAlert/internal/models"
)

func seed(t *testing.T, s UserStore, clock *clockwork.FakeClock, users ...models.User) []models.User {
	t.Helper()
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if err := s.Create(context.Background(), &u); err != nil {
			t.Fatalf("seed %s: %v", u.Email, err)
		}
		out = append(out, u)
		clock.Advance(time.Second)
	}
	return out
}

func TestInMemoryStore_CreateAndFind(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	s := NewInMemoryStore(clock)
	ctx := context.Background()

	u := models.User{Email: " Priya@Example.com", Name: "Priya", City: "colaba", IsActive: true}
	if err := s.Create(ctx, &u); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if u.ID == "" {
		t.Fatal("Expected generated ID")
	}
	if !u.CreatedAt.Equal(clock.Now()) {
		t.Errorf("Expected CreatedAt from clock, got %v", u.CreatedAt)
	}

	got, err := s.FindByEmail(ctx, "priya@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.ID != u.ID || got.Email != "priya@example.com" {
		t.Errorf("unexpected user %+v", got)
	}

	if _, err := s.FindByID(ctx, u.ID); err != nil {
		t.Errorf("FindByID: %v", err)
	}

	dup := models.User{Email: "PRIYA@example.com", City: "worli"}
	if err := s.Create(ctx, &dup); !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate email, got %v", err)
	}

	if _, err := s.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryStore_FindByCity(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewInMemoryStore(clock)

	seed(t, s, clock,
		models.User{Email: "a@example.com", City: "colaba", IsActive: true},
		models.User{Email: "b@example.com", City: "south mumbai", IsActive: true},
		models.User{Email: "c@example.com", City: "worli", IsActive: true},
		models.User{Email: "d@example.com", City: "colaba", IsActive: false},
		models.User{Email: "e@example.com", City: "fort", IsActive: true},
	)

	got, err := s.FindByCity(context.Background(), "Fort Colaba")
	if err != nil {
		t.Fatalf("FindByCity: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 users, got %d: %+v", len(got), got)
	}
	if got[0].Email != "a@example.com" || got[1].Email != "b@example.com" {
		t.Errorf("Expected creation order, got %s, %s", got[0].Email, got[1].Email)
	}

	got, _ = s.FindByCity(context.Background(), "Nowhere City")
	if len(got) != 0 {
		t.Errorf("Expected no users, got %d", len(got))
	}
}

func TestInMemoryStore_UpdateAndIncrement(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewInMemoryStore(clock)
	ctx := context.Background()
	users := seed(t, s, clock, models.User{Email: "a@example.com", City: "colaba", IsActive: true})
	id := users[0].ID

	if err := s.UpdateCity(ctx, id, "powai"); err != nil {
		t.Fatalf("UpdateCity: %v", err)
	}
	at := clock.Now().Add(time.Hour)
	if err := s.IncrementAlertCount(ctx, id, at); err != nil {
		t.Fatalf("IncrementAlertCount: %v", err)
	}
	if err := s.IncrementAlertCount(ctx, id, at); err != nil {
		t.Fatalf("IncrementAlertCount: %v", err)
	}

	u, _ := s.FindByID(ctx, id)
	if u.City != "powai" {
		t.Errorf("Expected city powai, got %s", u.City)
	}
	if u.AlertsReceived != 2 {
		t.Errorf("Expected 2 alerts, got %d", u.AlertsReceived)
	}
	if u.LastAlertAt == nil || !u.LastAlertAt.Equal(at) {
		t.Errorf("Expected LastAlertAt %v, got %v", at, u.LastAlertAt)
	}

	if err := s.UpdateCity(ctx, "missing", "x"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := s.IncrementAlertCount(ctx, "missing", at); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryStore_List(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewInMemoryStore(clock)
	seed(t, s, clock,
		models.User{Email: "a@example.com", City: "colaba"},
		models.User{Email: "b@example.com", City: "worli"},
	)

	all, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].Email != "a@example.com" {
		t.Errorf("unexpected list %+v", all)
	}
	if err := s.Health(context.Background()); err != nil {
		t.Errorf("Health: %v", err)
	}
}
