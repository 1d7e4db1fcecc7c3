package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/jobtrack/internal/infra/database/models"
)

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

func (r *LinkRepository) ListLinks(ctx context.Context, ownerID, applicationID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.ApplicationContact{}).
		Joins("JOIN applications ON applications.id = application_contacts.application_id").
		Where("application_contacts.application_id = ? AND applications.user_id = ?", applicationID, ownerID).
		Order("application_contacts.contact_id").
		Pluck("application_contacts.contact_id", &ids).Error
	if err != nil {
		return nil, translate("list links", "link", err)
	}
	return ids, nil
}

func (r *LinkRepository) DeleteLinks(ctx context.Context, ownerID, applicationID string) error {
	return deleteLinks(r.db.WithContext(ctx), ownerID, applicationID)
}

func (r *LinkRepository) InsertLinks(ctx context.Context, ownerID, applicationID string, contactIDs []string) error {
	return insertLinks(r.db.WithContext(ctx), applicationID, contactIDs)
}

func (r *LinkRepository) ReplaceLinks(ctx context.Context, ownerID, applicationID string, contactIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteLinks(tx, ownerID, applicationID); err != nil {
			return err
		}
		return insertLinks(tx, applicationID, contactIDs)
	})
}

func deleteLinks(db *gorm.DB, ownerID, applicationID string) error {
	owned := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Application{}).
		Select("id").
		Where("user_id = ?", ownerID)

	err := db.
		Where("application_id = ?", applicationID).
		Where("application_id IN (?)", owned).
		Delete(&models.ApplicationContact{}).Error
	if err != nil {
		return translate("delete links", "link", err)
	}
	return nil
}

func insertLinks(db *gorm.DB, applicationID string, contactIDs []string) error {
	if len(contactIDs) == 0 {
		return nil
	}

	rows := make([]models.ApplicationContact, 0, len(contactIDs))
	for _, contactID := range contactIDs {
		rows = append(rows, models.ApplicationContact{
			ApplicationID: applicationID,
			ContactID:     contactID,
		})
	}

	err := db.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return translate("insert links", "link", err)
	}
	return nil
}
