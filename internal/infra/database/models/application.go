package models

import (
	"time"
)

type Application struct {
	ID             string     `json:"id" gorm:"primaryKey;type:text"`
	UserID         string     `json:"user_id" gorm:"type:text;not null;index"`
	Company        string     `json:"company" gorm:"type:text;not null"`
	Position       *string    `json:"position" gorm:"type:text"`
	Connection     *string    `json:"connection" gorm:"type:text"`
	Status         string     `json:"status" gorm:"type:text;not null;default:'Pending'"`
	InterviewStage *string    `json:"interview_stage" gorm:"type:text"`
	NumInterviews  *int       `json:"num_interviews" gorm:"type:integer"`
	DateApplied    *time.Time `json:"date_applied" gorm:"type:date"`
	DateResponded  *time.Time `json:"date_responded" gorm:"type:date"`
	Notes          *string    `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time  `json:"created_at" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp();index"`
}
