package store

import (
	"context"
	"errors"
	"strings"

	"github.com/rajasatyajit/FloodAlert/internal/cities"
	apperrors "github.com/rajasatyajit/FloodAlert/internal/errors"
	"github.com/rajasatyajit/FloodAlert/internal/models"
	"github.com/rajasatyajit/FloodAlert/pkg/utils"
)

// Registration is the input to Register.
type Registration struct {
	Email string
	Name  string
	Phone string
	City  string
}

// Validate checks the required fields.
func (r Registration) Validate() error {
	email := utils.NormalizeEmail(r.Email)
	if email == "" {
		return apperrors.ValidationError{Field: "email", Message: "is required"}
	}
	if at := strings.IndexByte(email, '@'); at <= 0 || at == len(email)-1 {
		return apperrors.ValidationError{Field: "email", Message: "is not a valid address"}
	}
	if strings.TrimSpace(r.City) == "" {
		return apperrors.ValidationError{Field: "city", Message: "is required"}
	}
	return nil
}

// Register creates a user for the email or returns the existing one,
// moving it to the new city when that changed and reactivating it when it
// was switched off. The city is stored in
// normalized form. created reports whether a new user was inserted.
func Register(ctx context.Context, s UserStore, r Registration) (u *models.User, created bool, err error) {
	if err := r.Validate(); err != nil {
		return nil, false, err
	}
	city := cities.Normalize(r.City)

	existing, err := s.FindByEmail(ctx, r.Email)
	switch {
	case err == nil:
		if existing.City != city {
			if err := s.UpdateCity(ctx, existing.ID, city); err != nil {
				return nil, false, err
			}
			existing.City = city
		}
		if !existing.IsActive {
			if err := s.SetActive(ctx, existing.ID, true); err != nil {
				return nil, false, err
			}
			existing.IsActive = true
		}
		return existing, false, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, false, err
	}

	u = &models.User{
		Email:    r.Email,
		Name:     strings.TrimSpace(r.Name),
		Phone:    utils.NormalizePhone(r.Phone),
		City:     city,
		IsActive: true,
	}
	if u.Name == "" {
		u.Name = models.EmailLocalPart(utils.NormalizeEmail(r.Email))
	}
	if err := s.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}
