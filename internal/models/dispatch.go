package models

import "time"

// DispatchResult summarises one alert fan-out for a city.
type DispatchResult struct {
	RunID         string    `json:"run_id"`
	Kind          string    `json:"kind"`
	City          string    `json:"city"`
	CanonicalCity string    `json:"canonical_city"`
	RiskLevel     RiskLevel `json:"risk_level"`
	Alerted       bool      `json:"alerted"`
	UsersFound    int       `json:"users_found"`
	UsersNotified int       `json:"users_notified"`
	EmailsSent    int       `json:"emails_sent"`
	SMSSent       int       `json:"sms_sent"`
	Errors        []string  `json:"errors,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// PartialFailure reports whether some but not all sends failed.
func (r DispatchResult) PartialFailure() bool {
	return len(r.Errors) > 0 && (r.EmailsSent > 0 || r.SMSSent > 0)
}
