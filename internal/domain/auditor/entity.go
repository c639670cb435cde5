package auditor

import "time"

// Auditor is an account allowed to run and read timesheet audits.
type Auditor struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can log in with a password.
func (a *Auditor) HasPassword() bool {
	return a.PasswordHash != nil && *a.PasswordHash != ""
}
