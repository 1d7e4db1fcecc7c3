package domain

import (
	"strings"
	"time"
)

// Contact is a networking contact owned by one user.
type Contact struct {
	ID                 string             `json:"id"`
	OwnerID            string             `json:"userId"`
	Name               string             `json:"name"`
	Company            string             `json:"company,omitempty"`
	Position           string             `json:"position,omitempty"`
	School             string             `json:"school,omitempty"`
	Major              string             `json:"major,omitempty"`
	GradYear           *int               `json:"gradYear,omitempty"`
	Email              string             `json:"email,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	LastContactDate    *time.Time         `json:"lastContactDate,omitempty"`
	ChatLength         string             `json:"chatLength,omitempty"`
	ChatFeel           ChatFeel           `json:"chatFeel,omitempty"`
	RelationshipStatus RelationshipStatus `json:"relationshipStatus,omitempty"`
	Notes              string             `json:"notes,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
}

func (c *Contact) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Company = strings.TrimSpace(c.Company)
	c.Position = strings.TrimSpace(c.Position)
	c.School = strings.TrimSpace(c.School)
	c.Major = strings.TrimSpace(c.Major)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.ChatLength = strings.TrimSpace(c.ChatLength)
	c.Notes = strings.TrimSpace(c.Notes)
	c.ChatFeel = ChatFeel(strings.TrimSpace(string(c.ChatFeel)))
	c.RelationshipStatus = RelationshipStatus(strings.TrimSpace(string(c.RelationshipStatus)))
}

func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ValidationError{Field: "name", Reason: "is required"}
	}
	if c.GradYear != nil && (*c.GradYear < MinGradYear || *c.GradYear > MaxGradYear) {
		return ValidationError{Field: "gradYear", Reason: "is out of range"}
	}
	if c.ChatFeel != "" && !c.ChatFeel.Valid() {
		return ValidationError{Field: "chatFeel", Reason: "must be Great, Good, Okay or Cold"}
	}
	if c.RelationshipStatus != "" && !c.RelationshipStatus.Valid() {
		return ValidationError{Field: "relationshipStatus", Reason: "must be Lead, Connected, Close or Mentor"}
	}
	return nil
}

// Linked returns the projection embedded in expanded applications.
func (c Contact) Linked() LinkedContact {
	return LinkedContact{
		ID:       c.ID,
		Name:     c.Name,
		Company:  c.Company,
		Position: c.Position,
		Email:    c.Email,
		Phone:    c.Phone,
	}
}
