package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonboulle/clockwork"

	"github.com/rajasatyajit/FloodAlert/internal/models"
)

// UserStore is the user directory behind alert registration and fan-out.
// Lookups that find nothing return apperrors.ErrNotFound.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByCity returns active users registered for city or any city
	// cities.Related considers equivalent.
	FindByCity(ctx context.Context, city string) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateCity(ctx context.Context, id, city string) error
	SetActive(ctx context.Context, id string, active bool) error
	IncrementAlertCount(ctx context.Context, id string, at time.Time) error
	Health(ctx context.Context) error
}

// Database interface for dependency injection
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Health(ctx context.Context) error
	IsConfigured() bool
}

// New creates a new store instance
func New(db Database, clock clockwork.Clock) UserStore {
	if db.IsConfigured() {
		return NewPostgresStore(db, clock)
	}
	// Fallback to in-memory store if no database
	return NewInMemoryStore(clock)
}
