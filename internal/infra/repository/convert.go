package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/totegamma/jobtrack/internal/domain"
	"github.com/totegamma/jobtrack/internal/infra/database/models"
)

// optional stores empty text as NULL.
func optional[T ~string](s T) *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// translate maps gorm errors onto domain error kinds.
func translate(op, resource string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFoundError{Resource: resource}
	}
	return domain.StorageError{Op: op, Err: err}
}

func applicationToDomain(m models.Application) domain.Application {
	return domain.Application{
		ID:             m.ID,
		OwnerID:        m.UserID,
		Company:        m.Company,
		Position:       deref(m.Position),
		Connection:     deref(m.Connection),
		Status:         domain.ApplicationStatus(m.Status),
		InterviewStage: domain.InterviewStage(deref(m.InterviewStage)),
		NumInterviews:  m.NumInterviews,
		DateApplied:    m.DateApplied,
		DateResponded:  m.DateResponded,
		Notes:          deref(m.Notes),
		CreatedAt:      m.CreatedAt,
	}
}

func applicationFromDomain(ownerID string, a domain.Application) models.Application {
	status := string(a.Status)
	if status == "" {
		status = string(domain.StatusPending)
	}
	return models.Application{
		ID:             a.ID,
		UserID:         ownerID,
		Company:        a.Company,
		Position:       optional(a.Position),
		Connection:     optional(a.Connection),
		Status:         status,
		InterviewStage: optional(a.InterviewStage),
		NumInterviews:  a.NumInterviews,
		DateApplied:    dateOnly(a.DateApplied),
		DateResponded:  dateOnly(a.DateResponded),
		Notes:          optional(a.Notes),
	}
}

func contactToDomain(m models.Contact) domain.Contact {
	return domain.Contact{
		ID:                 m.ID,
		OwnerID:            m.UserID,
		Name:               m.Name,
		Company:            deref(m.Company),
		Position:           deref(m.Position),
		School:             deref(m.School),
		Major:              deref(m.Major),
		GradYear:           m.GradYear,
		Email:              deref(m.Email),
		Phone:              deref(m.Phone),
		LastContactDate:    m.LastContactDate,
		ChatLength:         deref(m.ChatLength),
		ChatFeel:           domain.ChatFeel(deref(m.ChatFeel)),
		RelationshipStatus: domain.RelationshipStatus(deref(m.RelationshipStatus)),
		Notes:              deref(m.Notes),
		CreatedAt:          m.CreatedAt,
	}
}

func contactFromDomain(ownerID string, c domain.Contact) models.Contact {
	return models.Contact{
		ID:                 c.ID,
		UserID:             ownerID,
		Name:               c.Name,
		Company:            optional(c.Company),
		Position:           optional(c.Position),
		School:             optional(c.School),
		Major:              optional(c.Major),
		GradYear:           c.GradYear,
		Email:              optional(c.Email),
		Phone:              optional(c.Phone),
		LastContactDate:    dateOnly(c.LastContactDate),
		ChatLength:         optional(c.ChatLength),
		ChatFeel:           optional(c.ChatFeel),
		RelationshipStatus: optional(c.RelationshipStatus),
		Notes:              optional(c.Notes),
	}
}
