package usecase

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/jobtrack/internal/domain"
	"github.com/totegamma/jobtrack/internal/metrics"
)

var tracer = otel.Tracer("usecase")

// SyncInput is the desired state produced by an edit: the application's own
// fields plus the full set of contacts it should be linked to.
type SyncInput struct {
	Application domain.Application
	ContactIDs  []string
}

type ApplicationOption func(*ApplicationUsecase)

// WithTransactionalLinks makes link replacement a single transaction.
func WithTransactionalLinks() ApplicationOption {
	return func(uc *ApplicationUsecase) {
		uc.transactionalLinks = true
	}
}

func WithApplicationEvents(events EventPublisher) ApplicationOption {
	return func(uc *ApplicationUsecase) {
		uc.notify.events = events
	}
}

func WithApplicationCache(cache DashboardCache) ApplicationOption {
	return func(uc *ApplicationUsecase) {
		uc.notify.cache = cache
	}
}

type ApplicationUsecase struct {
	apps               ApplicationRepository
	contacts           ContactRepository
	links              LinkRepository
	notify             notifier
	transactionalLinks bool
}

func NewApplicationUsecase(
	apps ApplicationRepository,
	contacts ContactRepository,
	links LinkRepository,
	opts ...ApplicationOption,
) *ApplicationUsecase {
	uc := &ApplicationUsecase{
		apps:     apps,
		contacts: contacts,
		links:    links,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *ApplicationUsecase) List(ctx context.Context, ownerID string, opts ListOptions) ([]domain.Application, error) {
	ctx, span := tracer.Start(ctx, "Application.Usecase.List")
	defer span.End()

	apps, err := uc.apps.List(ctx, ownerID, opts)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "list applications")
	}
	return apps, nil
}

func (uc *ApplicationUsecase) Get(ctx context.Context, ownerID, id string) (domain.Application, error) {
	ctx, span := tracer.Start(ctx, "Application.Usecase.Get")
	defer span.End()

	app, err := uc.apps.Get(ctx, ownerID, id, ListOptions{ExpandContacts: true})
	if err != nil {
		span.RecordError(err)
		return domain.Application{}, errors.Wrap(err, "get application")
	}
	return app, nil
}

// ListLinks returns the linked contact ids. A missing or foreign application
// is NotFound rather than an empty set.
func (uc *ApplicationUsecase) ListLinks(ctx context.Context, ownerID, id string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Application.Usecase.ListLinks")
	defer span.End()

	if _, err := uc.apps.Get(ctx, ownerID, id, ListOptions{}); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "list links")
	}

	ids, err := uc.links.ListLinks(ctx, ownerID, id)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "list links")
	}
	return ids, nil
}

// Synchronize creates or updates an application and makes its persisted link
// set equal to the desired contact set. An empty Application.ID creates.
func (uc *ApplicationUsecase) Synchronize(ctx context.Context, ownerID string, input SyncInput) (domain.Application, error) {
	ctx, span := tracer.Start(ctx, "Application.Usecase.Synchronize")
	defer span.End()

	mode := metrics.SyncModeUpdate
	if input.Application.ID == "" {
		mode = metrics.SyncModeCreate
	}
	span.SetAttributes(attribute.String("mode", mode))

	app := input.Application
	app.Normalize()
	if err := app.Validate(); err != nil {
		metrics.RecordSync(mode, metrics.OutcomeValidation)
		span.RecordError(err)
		return domain.Application{}, err
	}

	desired, linked, err := uc.resolveDesired(ctx, ownerID, input.ContactIDs)
	if err != nil {
		metrics.RecordSync(mode, outcomeOf(err))
		span.RecordError(err)
		return domain.Application{}, err
	}

	var saved domain.Application
	if mode == metrics.SyncModeCreate {
		saved, err = uc.apps.Create(ctx, ownerID, app)
	} else {
		saved, err = uc.apps.Update(ctx, ownerID, app)
	}
	if err != nil {
		metrics.RecordSync(mode, outcomeOf(err))
		span.RecordError(err)
		return domain.Application{}, errors.Wrap(err, "write application fields")
	}
	uc.notify.changed(ctx, ownerID, domain.EventApplicationSaved, saved.ID)

	if mode == metrics.SyncModeCreate {
		err = uc.insertLinks(ctx, ownerID, saved.ID, desired)
	} else {
		err = uc.replaceLinks(ctx, span, ownerID, saved.ID, desired)
	}
	if err != nil {
		metrics.RecordSync(mode, metrics.OutcomePartial)
		span.RecordError(err)
		return saved, err
	}

	saved.Contacts = linked
	metrics.RecordSync(mode, metrics.OutcomeOK)
	metrics.RecordLinksWritten(len(desired))
	uc.notify.changed(ctx, ownerID, domain.EventLinksReplaced, saved.ID)
	return saved, nil
}

// Relink re-runs only the link step for an existing application. It is the
// retry path after a PartialSyncError.
func (uc *ApplicationUsecase) Relink(ctx context.Context, ownerID, applicationID string, contactIDs []string) ([]domain.LinkedContact, error) {
	ctx, span := tracer.Start(ctx, "Application.Usecase.Relink")
	defer span.End()

	if applicationID == "" {
		err := domain.ValidationError{Field: "id", Reason: "is required"}
		metrics.RecordSync(metrics.SyncModeRelink, metrics.OutcomeValidation)
		return nil, err
	}

	desired, linked, err := uc.resolveDesired(ctx, ownerID, contactIDs)
	if err != nil {
		metrics.RecordSync(metrics.SyncModeRelink, outcomeOf(err))
		span.RecordError(err)
		return nil, err
	}

	if _, err := uc.apps.Get(ctx, ownerID, applicationID, ListOptions{}); err != nil {
		metrics.RecordSync(metrics.SyncModeRelink, outcomeOf(err))
		span.RecordError(err)
		return nil, errors.Wrap(err, "relink")
	}

	if err := uc.replaceLinks(ctx, span, ownerID, applicationID, desired); err != nil {
		metrics.RecordSync(metrics.SyncModeRelink, metrics.OutcomePartial)
		span.RecordError(err)
		return nil, err
	}

	metrics.RecordSync(metrics.SyncModeRelink, metrics.OutcomeOK)
	metrics.RecordLinksWritten(len(desired))
	uc.notify.changed(ctx, ownerID, domain.EventLinksReplaced, applicationID)
	return linked, nil
}

func (uc *ApplicationUsecase) Delete(ctx context.Context, ownerID, id string) error {
	ctx, span := tracer.Start(ctx, "Application.Usecase.Delete")
	defer span.End()

	if err := uc.apps.Delete(ctx, ownerID, id); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "delete application")
	}
	uc.notify.changed(ctx, ownerID, domain.EventApplicationDeleted, id)
	return nil
}

// resolveDesired dedupes the desired set and checks every id belongs to the
// owner. The returned projections follow the order of the deduped ids.
func (uc *ApplicationUsecase) resolveDesired(ctx context.Context, ownerID string, contactIDs []string) ([]string, []domain.LinkedContact, error) {
	desired := domain.DedupeContactIDs(contactIDs)
	for _, id := range desired {
		if id == "" {
			return nil, nil, domain.ValidationError{Field: "contactIds", Reason: "must not contain empty ids"}
		}
	}
	if len(desired) == 0 {
		return desired, nil, nil
	}

	found, err := uc.contacts.Resolve(ctx, ownerID, desired)
	if err != nil {
		return nil, nil, errors.Wrap(err, "resolve contacts")
	}

	byID := make(map[string]domain.LinkedContact, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	linked := make([]domain.LinkedContact, 0, len(desired))
	for _, id := range desired {
		c, ok := byID[id]
		if !ok {
			return nil, nil, domain.ValidationError{
				Field:  "contactIds",
				Reason: fmt.Sprintf("contact %s does not exist", id),
			}
		}
		linked = append(linked, c)
	}
	return desired, linked, nil
}

func (uc *ApplicationUsecase) insertLinks(ctx context.Context, ownerID, applicationID string, desired []string) error {
	if len(desired) == 0 {
		return nil
	}
	if err := uc.links.InsertLinks(ctx, ownerID, applicationID, desired); err != nil {
		return domain.PartialSyncError{ApplicationID: applicationID, Stage: domain.SyncStageInsert, Err: err}
	}
	return nil
}

// replaceLinks deletes every link of the application and inserts the desired
// set. The result equals the desired set whatever existed before.
func (uc *ApplicationUsecase) replaceLinks(ctx context.Context, span trace.Span, ownerID, applicationID string, desired []string) error {
	span.SetAttributes(
		attribute.Int("links.desired", len(desired)),
		attribute.Bool("links.transactional", uc.transactionalLinks),
	)

	if uc.transactionalLinks {
		if err := uc.links.ReplaceLinks(ctx, ownerID, applicationID, desired); err != nil {
			return domain.PartialSyncError{ApplicationID: applicationID, Stage: domain.SyncStageReplace, Err: err}
		}
		return nil
	}

	if err := uc.links.DeleteLinks(ctx, ownerID, applicationID); err != nil {
		return domain.PartialSyncError{ApplicationID: applicationID, Stage: domain.SyncStageDelete, Err: err}
	}
	return uc.insertLinks(ctx, ownerID, applicationID, desired)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeValidation
	case errors.Is(err, domain.ErrPartialSync):
		return metrics.OutcomePartial
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeStorage
	}
}
