package usecase

import (
	"context"
	"time"

	"github.com/totegamma/jobtrack/internal/domain"
)

// ListOptions controls how applications are read.
type ListOptions struct {
	ExpandContacts bool
}

// ApplicationRepository defines owner-scoped storage for applications.
type ApplicationRepository interface {
	List(ctx context.Context, ownerID string, opts ListOptions) ([]domain.Application, error)
	Get(ctx context.Context, ownerID, id string, opts ListOptions) (domain.Application, error)
	Create(ctx context.Context, ownerID string, app domain.Application) (domain.Application, error)
	Update(ctx context.Context, ownerID string, app domain.Application) (domain.Application, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// ContactRepository defines owner-scoped storage for contacts.
type ContactRepository interface {
	List(ctx context.Context, ownerID string) ([]domain.Contact, error)
	Get(ctx context.Context, ownerID, id string) (domain.Contact, error)
	Create(ctx context.Context, ownerID string, contact domain.Contact) (domain.Contact, error)
	Update(ctx context.Context, ownerID string, contact domain.Contact) (domain.Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
	// Resolve returns the subset of ids owned by ownerID.
	Resolve(ctx context.Context, ownerID string, ids []string) ([]domain.LinkedContact, error)
}

// LinkRepository defines storage for application/contact links.
type LinkRepository interface {
	ListLinks(ctx context.Context, ownerID, applicationID string) ([]string, error)
	DeleteLinks(ctx context.Context, ownerID, applicationID string) error
	InsertLinks(ctx context.Context, ownerID, applicationID string, contactIDs []string) error
	// ReplaceLinks runs delete and insert in a single transaction.
	ReplaceLinks(ctx context.Context, ownerID, applicationID string, contactIDs []string) error
}

// EventPublisher fans collection changes out to listeners.
type EventPublisher interface {
	Publish(ctx context.Context, ownerID string, event domain.Event) error
}

// DashboardCache stores computed dashboards per owner under a generation.
// Invalidate advances the generation, so an entry set under an older one is
// never served.
type DashboardCache interface {
	Generation(ctx context.Context, ownerID string) uint64
	Get(ctx context.Context, ownerID string, generation uint64) (domain.Dashboard, bool)
	Set(ctx context.Context, ownerID string, generation uint64, dashboard domain.Dashboard)
	Invalidate(ctx context.Context, ownerID string)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
