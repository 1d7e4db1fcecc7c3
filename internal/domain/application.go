package domain

import (
	"strings"
	"time"
)

// Application is a single job application owned by one user.
type Application struct {
	ID             string            `json:"id"`
	OwnerID        string            `json:"userId"`
	Company        string            `json:"company"`
	Position       string            `json:"position,omitempty"`
	Connection     string            `json:"connection,omitempty"`
	Status         ApplicationStatus `json:"status"`
	InterviewStage InterviewStage    `json:"interviewStage,omitempty"`
	NumInterviews  *int              `json:"numInterviews,omitempty"`
	DateApplied    *time.Time        `json:"dateApplied,omitempty"`
	DateResponded  *time.Time        `json:"dateResponded,omitempty"`
	Notes          string            `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`

	// Contacts is only populated when the application was read in expanded form.
	Contacts []LinkedContact `json:"contacts,omitempty"`
}

// LinkedContact is the projection of a Contact embedded in an expanded Application.
type LinkedContact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// EffectiveStatus treats an absent status as Pending.
func (a Application) EffectiveStatus() ApplicationStatus {
	if a.Status == "" {
		return StatusPending
	}
	return a.Status
}

// Normalize trims text fields and fills the default status.
func (a *Application) Normalize() {
	a.Company = strings.TrimSpace(a.Company)
	a.Position = strings.TrimSpace(a.Position)
	a.Connection = strings.TrimSpace(a.Connection)
	a.Notes = strings.TrimSpace(a.Notes)
	a.InterviewStage = InterviewStage(strings.TrimSpace(string(a.InterviewStage)))
	a.Status = ApplicationStatus(strings.TrimSpace(string(a.Status)))
	if a.Status == "" {
		a.Status = StatusPending
	}
}

func (a Application) Validate() error {
	if strings.TrimSpace(a.Company) == "" {
		return ValidationError{Field: "company", Reason: "is required"}
	}
	if a.Status != "" && !a.Status.Valid() {
		return ValidationError{Field: "status", Reason: "must be Pending, Accepted or Denied"}
	}
	if a.InterviewStage != "" && !a.InterviewStage.Valid() {
		return ValidationError{Field: "interviewStage", Reason: "is not a known stage"}
	}
	if a.NumInterviews != nil && *a.NumInterviews < 0 {
		return ValidationError{Field: "numInterviews", Reason: "must not be negative"}
	}
	return nil
}
