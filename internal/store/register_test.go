package store

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
)

func TestRegister_CreatesWithNormalizedCity(t *testing.T) {
	s := NewInMemoryStore(clockwork.NewFakeClock())

	u, created, err := Register(context.Background(), s, Registration{
		Email: "Priya@Example.com",
		Phone: "98765 43210",
		City:  " Bandra W ",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "bandra west", u.City)
	assert.Equal(t, "Priya", u.Name)
	assert.Equal(t, "+919876543210", u.Phone)
	assert.True(t, u.IsActive)
}

func TestRegister_ExistingEmailMovesCity(t *testing.T) {
	s := NewInMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	first, _, err := Register(ctx, s, Registration{Email: "priya@example.com", City: "colaba"})
	require.NoError(t, err)

	again, created, err := Register(ctx, s, Registration{Email: "PRIYA@example.com", City: "powai"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "powai", again.City)

	stored, err := s.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "powai", stored.City)
}

func TestRegister_ReactivatesInactiveUser(t *testing.T) {
	s := NewInMemoryStore(clockwork.NewFakeClock())
	ctx := context.Background()

	u, _, err := Register(ctx, s, Registration{Email: "priya@example.com", City: "colaba"})
	require.NoError(t, err)
	require.NoError(t, s.SetActive(ctx, u.ID, false))

	found, err := s.FindByCity(ctx, "colaba")
	require.NoError(t, err)
	require.Empty(t, found)

	again, created, err := Register(ctx, s, Registration{Email: "priya@example.com", City: "colaba"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, again.IsActive)

	found, err = s.FindByCity(ctx, "colaba")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, u.ID, found[0].ID)
}

func TestRegister_Validation(t *testing.T) {
	s := NewInMemoryStore(nil)
	tests := []struct {
		name  string
		reg   Registration
		field string
	}{
		{"missing email", Registration{City: "colaba"}, "email"},
		{"bad email", Registration{Email: "priya@", City: "colaba"}, "email"},
		{"missing city", Registration{Email: "priya@example.com", City: "  "}, "city"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Register(context.Background(), s, tt.reg)
			var verr apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}
