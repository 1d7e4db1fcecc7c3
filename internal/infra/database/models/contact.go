package models

import (
	"time"
)

type Contact struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:text"`
	UserID             string     `json:"user_id" gorm:"type:text;not null;index"`
	Name               string     `json:"name" gorm:"type:text;not null"`
	Company            *string    `json:"company" gorm:"type:text"`
	Position           *string    `json:"position" gorm:"type:text"`
	School             *string    `json:"school" gorm:"type:text"`
	Major              *string    `json:"major" gorm:"type:text"`
	GradYear           *int       `json:"grad_year" gorm:"type:integer"`
	Email              *string    `json:"email" gorm:"type:text"`
	Phone              *string    `json:"phone" gorm:"type:text"`
	LastContactDate    *time.Time `json:"last_contact_date" gorm:"type:date"`
	ChatLength         *string    `json:"chat_length" gorm:"type:text"`
	ChatFeel           *string    `json:"chat_feel" gorm:"type:text"`
	RelationshipStatus *string    `json:"relationship_status" gorm:"type:text"`
	Notes              *string    `json:"notes" gorm:"type:text"`
	CreatedAt          time.Time  `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp();index"`
}
