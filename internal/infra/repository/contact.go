package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/jobtrack/internal/domain"
	"github.com/totegamma/jobtrack/internal/infra/database/models"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) List(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	var rows []models.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("list contacts", "contact", err)
	}

	contacts := make([]domain.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, contactToDomain(row))
	}
	return contacts, nil
}

func (r *ContactRepository) Get(ctx context.Context, ownerID, id string) (domain.Contact, error) {
	var row models.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Take(&row).Error
	if err != nil {
		return domain.Contact{}, translate("get contact", "contact", err)
	}
	return contactToDomain(row), nil
}

func (r *ContactRepository) Create(ctx context.Context, ownerID string, contact domain.Contact) (domain.Contact, error) {
	row := contactFromDomain(ownerID, contact)
	row.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Contact{}, translate("create contact", "contact", err)
	}
	return contactToDomain(row), nil
}

func (r *ContactRepository) Update(ctx context.Context, ownerID string, contact domain.Contact) (domain.Contact, error) {
	row := contactFromDomain(ownerID, contact)

	var updated models.Contact
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", contact.ID, ownerID).
		Updates(map[string]any{
			"name":                row.Name,
			"company":             row.Company,
			"position":            row.Position,
			"school":              row.School,
			"major":               row.Major,
			"grad_year":           row.GradYear,
			"email":               row.Email,
			"phone":               row.Phone,
			"last_contact_date":   row.LastContactDate,
			"chat_length":         row.ChatLength,
			"chat_feel":           row.ChatFeel,
			"relationship_status": row.RelationshipStatus,
			"notes":               row.Notes,
		})
	if result.Error != nil {
		return domain.Contact{}, translate("update contact", "contact", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.Contact{}, domain.NotFoundError{Resource: "contact"}
	}

	return contactToDomain(updated), nil
}

// Delete removes the contact and, through the cascading foreign key, every
// link that referenced it.
func (r *ContactRepository) Delete(ctx context.Context, ownerID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Contact{})
	if result.Error != nil {
		return translate("delete contact", "contact", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "contact"}
	}
	return nil
}

func (r *ContactRepository) Resolve(ctx context.Context, ownerID string, ids []string) ([]domain.LinkedContact, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", ownerID, ids).
		Find(&rows).Error
	if err != nil {
		return nil, translate("resolve contacts", "contact", err)
	}

	linked := make([]domain.LinkedContact, 0, len(rows))
	for _, row := range rows {
		linked = append(linked, contactToDomain(row).Linked())
	}
	return linked, nil
}
