package models

// ApplicationContact is the join row between an application and a contact.
// Deleting either side removes the row.
type ApplicationContact struct {
	ApplicationID string      `json:"application_id" gorm:"primaryKey;type:text"`
	Application   Application `json:"-" gorm:"foreignKey:ApplicationID;references:ID;constraint:OnDelete:CASCADE;"`
	ContactID     string      `json:"contact_id" gorm:"primaryKey;type:text;index"`
	Contact       Contact     `json:"-" gorm:"foreignKey:ContactID;references:ID;constraint:OnDelete:CASCADE;"`
}
