package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonboulle/clockwork"

	"github.com/rajasatyajit/FloodAlert/internal/cities"
	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
	"github.com/rajasatyajit/FloodAlert/internal/models"
	"github.com/rajasatyajit/FloodAlert/pkg/utils"
)

const usersTable = "alert_users"

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

var userColumns = []string{
	"id", "email", "name", "phone", "city", "is_active",
	"alerts_received", "last_alert_at", "created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresStore implements UserStore using PostgreSQL
type PostgresStore struct {
	db    Database
	clock clockwork.Clock
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(db Database, clock clockwork.Clock) *PostgresStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PostgresStore{db: db, clock: clock}
}

func dbErr(op string, err error) error {
	return apperrors.DatabaseError{Operation: op, Err: err}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Phone, &u.City, &u.IsActive,
		&u.AlertsReceived, &u.LastAlertAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user. A duplicate email maps to ErrConflict.
func (s *PostgresStore) Create(ctx context.Context, u *models.User) error {
	now := s.clock.Now().UTC()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	u.Email = utils.NormalizeEmail(u.Email)

	query, args, err := psql.Insert(usersTable).
		Columns(userColumns...).
		Values(u.ID, u.Email, u.Name, u.Phone, u.City, u.IsActive,
			u.AlertsReceived, u.LastAlertAt, u.CreatedAt, u.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrConflict
		}
		return dbErr("create user", err)
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, op string, where sq.Eq) (*models.User, error) {
	query, args, err := psql.Select(userColumns...).From(usersTable).Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}

	u, err := scanUser(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, dbErr(op, err)
	}
	return u, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, "find user by id", sq.Eq{"id": id})
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, "find user by email", sq.Eq{"email": utils.NormalizeEmail(email)})
}

func (s *PostgresStore) queryUsers(ctx context.Context, op string, b sq.SelectBuilder) ([]models.User, error) {
	query, args, err := b.OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, dbErr(op, err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(op, err)
	}
	return users, nil
}

func (s *PostgresStore) FindByCity(ctx context.Context, city string) ([]models.User, error) {
	b := psql.Select(userColumns...).From(usersTable).
		Where(sq.Eq{"city": cities.Related(city), "is_active": true})
	return s.queryUsers(ctx, "find users by city", b)
}

func (s *PostgresStore) List(ctx context.Context) ([]models.User, error) {
	return s.queryUsers(ctx, "list users", psql.Select(userColumns...).From(usersTable))
}

func (s *PostgresStore) update(ctx context.Context, op string, b sq.UpdateBuilder) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build %s: %w", op, err)
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return dbErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) UpdateCity(ctx context.Context, id, city string) error {
	return s.update(ctx, "update user city", psql.Update(usersTable).
		Set("city", city).
		Set("updated_at", s.clock.Now().UTC()).
		Where(sq.Eq{"id": id}))
}

func (s *PostgresStore) SetActive(ctx context.Context, id string, active bool) error {
	return s.update(ctx, "set user active", psql.Update(usersTable).
		Set("is_active", active).
		Set("updated_at", s.clock.Now().UTC()).
		Where(sq.Eq{"id": id}))
}

func (s *PostgresStore) IncrementAlertCount(ctx context.Context, id string, at time.Time) error {
	at = at.UTC()
	return s.update(ctx, "increment alert count", psql.Update(usersTable).
		Set("alerts_received", sq.Expr("alerts_received + 1")).
		Set("last_alert_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}))
}

func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.Health(ctx)
}
