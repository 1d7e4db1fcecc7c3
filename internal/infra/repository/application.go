package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/jobtrack/internal/domain"
	"github.com/totegamma/jobtrack/internal/infra/database/models"
	"github.com/totegamma/jobtrack/internal/usecase"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) List(ctx context.Context, ownerID string, opts usecase.ListOptions) ([]domain.Application, error) {
	var rows []models.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("list applications", "application", err)
	}

	apps := make([]domain.Application, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, applicationToDomain(row))
	}

	if opts.ExpandContacts && len(apps) > 0 {
		if err := r.expand(ctx, ownerID, apps); err != nil {
			return nil, err
		}
	}
	return apps, nil
}

func (r *ApplicationRepository) Get(ctx context.Context, ownerID, id string, opts usecase.ListOptions) (domain.Application, error) {
	var row models.Application
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Take(&row).Error
	if err != nil {
		return domain.Application{}, translate("get application", "application", err)
	}

	apps := []domain.Application{applicationToDomain(row)}
	if opts.ExpandContacts {
		if err := r.expand(ctx, ownerID, apps); err != nil {
			return domain.Application{}, err
		}
	}
	return apps[0], nil
}

func (r *ApplicationRepository) Create(ctx context.Context, ownerID string, app domain.Application) (domain.Application, error) {
	row := applicationFromDomain(ownerID, app)
	row.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Application{}, translate("create application", "application", err)
	}
	return applicationToDomain(row), nil
}

func (r *ApplicationRepository) Update(ctx context.Context, ownerID string, app domain.Application) (domain.Application, error) {
	row := applicationFromDomain(ownerID, app)

	// RETURNING hands back the written row, so no second read follows the write.
	var updated models.Application
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", app.ID, ownerID).
		Updates(map[string]any{
			"company":         row.Company,
			"position":        row.Position,
			"connection":      row.Connection,
			"status":          row.Status,
			"interview_stage": row.InterviewStage,
			"num_interviews":  row.NumInterviews,
			"date_applied":    row.DateApplied,
			"date_responded":  row.DateResponded,
			"notes":           row.Notes,
		})
	if result.Error != nil {
		return domain.Application{}, translate("update application", "application", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.Application{}, domain.NotFoundError{Resource: "application"}
	}

	return applicationToDomain(updated), nil
}

// Delete removes the application; its links go with it through the
// cascading foreign key.
func (r *ApplicationRepository) Delete(ctx context.Context, ownerID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Application{})
	if result.Error != nil {
		return translate("delete application", "application", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "application"}
	}
	return nil
}

type linkedContactRow struct {
	ApplicationID string
	ID            string
	Name          string
	Company       *string
	Position      *string
	Email         *string
	Phone         *string
}

// expand embeds the linked contacts of every application in apps.
func (r *ApplicationRepository) expand(ctx context.Context, ownerID string, apps []domain.Application) error {
	ids := make([]string, 0, len(apps))
	index := make(map[string]int, len(apps))
	for i, app := range apps {
		ids = append(ids, app.ID)
		index[app.ID] = i
	}

	var rows []linkedContactRow
	err := r.db.WithContext(ctx).
		Table("application_contacts").
		Select("application_contacts.application_id, contacts.id, contacts.name, contacts.company, contacts.position, contacts.email, contacts.phone").
		Joins("JOIN contacts ON contacts.id = application_contacts.contact_id").
		Where("application_contacts.application_id IN ?", ids).
		Where("contacts.user_id = ?", ownerID).
		Order("contacts.name ASC").
		Scan(&rows).Error
	if err != nil {
		return translate("expand contacts", "contact", err)
	}

	for _, row := range rows {
		i, ok := index[row.ApplicationID]
		if !ok {
			continue
		}
		apps[i].Contacts = append(apps[i].Contacts, domain.LinkedContact{
			ID:       row.ID,
			Name:     row.Name,
			Company:  deref(row.Company),
			Position: deref(row.Position),
			Email:    deref(row.Email),
			Phone:    deref(row.Phone),
		})
	}
	return nil
}
