package models

import "time"

// User is a person registered to receive flood alerts for one city.
type User struct {
	ID             string     `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	Name           string     `json:"name" db:"name"`
	Phone          string     `json:"phone,omitempty" db:"phone"`
	City           string     `json:"city" db:"city"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	AlertsReceived int        `json:"alerts_received" db:"alerts_received"`
	LastAlertAt    *time.Time `json:"last_alert_at,omitempty" db:"last_alert_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// DisplayName returns the name, falling back to the email local part.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return EmailLocalPart(u.Email)
}

// EmailLocalPart returns everything before the first '@'.
func EmailLocalPart(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
