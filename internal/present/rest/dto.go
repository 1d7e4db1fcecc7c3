package rest

import (
	"time"

	"github.com/totegamma/jobtrack/internal/domain"
)

const dateLayout = "2006-01-02"

type applicationRequest struct {
	Company        string   `json:"company"`
	Position       string   `json:"position"`
	Connection     string   `json:"connection"`
	Status         string   `json:"status"`
	InterviewStage string   `json:"interviewStage"`
	NumInterviews  *int     `json:"numInterviews"`
	DateApplied    string   `json:"dateApplied"`
	DateResponded  string   `json:"dateResponded"`
	Notes          string   `json:"notes"`
	ContactIDs     []string `json:"contactIds"`
}

func (r applicationRequest) toDomain(id string) (domain.Application, error) {
	applied, err := parseDate("dateApplied", r.DateApplied)
	if err != nil {
		return domain.Application{}, err
	}
	responded, err := parseDate("dateResponded", r.DateResponded)
	if err != nil {
		return domain.Application{}, err
	}

	return domain.Application{
		ID:             id,
		Company:        r.Company,
		Position:       r.Position,
		Connection:     r.Connection,
		Status:         domain.ApplicationStatus(r.Status),
		InterviewStage: domain.InterviewStage(r.InterviewStage),
		NumInterviews:  r.NumInterviews,
		DateApplied:    applied,
		DateResponded:  responded,
		Notes:          r.Notes,
	}, nil
}

type contactRequest struct {
	Name               string `json:"name"`
	Company            string `json:"company"`
	Position           string `json:"position"`
	School             string `json:"school"`
	Major              string `json:"major"`
	GradYear           *int   `json:"gradYear"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	LastContactDate    string `json:"lastContactDate"`
	ChatLength         string `json:"chatLength"`
	ChatFeel           string `json:"chatFeel"`
	RelationshipStatus string `json:"relationshipStatus"`
	Notes              string `json:"notes"`
}

func (r contactRequest) toDomain(id string) (domain.Contact, error) {
	last, err := parseDate("lastContactDate", r.LastContactDate)
	if err != nil {
		return domain.Contact{}, err
	}

	return domain.Contact{
		ID:                 id,
		Name:               r.Name,
		Company:            r.Company,
		Position:           r.Position,
		School:             r.School,
		Major:              r.Major,
		GradYear:           r.GradYear,
		Email:              r.Email,
		Phone:              r.Phone,
		LastContactDate:    last,
		ChatLength:         r.ChatLength,
		ChatFeel:           domain.ChatFeel(r.ChatFeel),
		RelationshipStatus: domain.RelationshipStatus(r.RelationshipStatus),
		Notes:              r.Notes,
	}, nil
}

type linksRequest struct {
	ContactIDs []string `json:"contactIds"`
}

type linksResponse struct {
	ApplicationID string                 `json:"applicationId"`
	ContactIDs    []string               `json:"contactIds"`
	Contacts      []domain.LinkedContact `json:"contacts,omitempty"`
}

// parseDate accepts a calendar date or an RFC 3339 timestamp. Empty means absent.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	return nil, domain.ValidationError{Field: field, Reason: "must be a date (YYYY-MM-DD)"}
}
