package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/totegamma/jobtrack/internal/domain"
)

type ContactUsecase struct {
	repo   ContactRepository
	notify notifier
}

func NewContactUsecase(repo ContactRepository, events EventPublisher, cache DashboardCache) *ContactUsecase {
	return &ContactUsecase{
		repo:   repo,
		notify: notifier{events: events, cache: cache},
	}
}

func (uc *ContactUsecase) List(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	ctx, span := tracer.Start(ctx, "Contact.Usecase.List")
	defer span.End()

	contacts, err := uc.repo.List(ctx, ownerID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "list contacts")
	}
	return contacts, nil
}

func (uc *ContactUsecase) Get(ctx context.Context, ownerID, id string) (domain.Contact, error) {
	ctx, span := tracer.Start(ctx, "Contact.Usecase.Get")
	defer span.End()

	contact, err := uc.repo.Get(ctx, ownerID, id)
	if err != nil {
		span.RecordError(err)
		return domain.Contact{}, errors.Wrap(err, "get contact")
	}
	return contact, nil
}

// Save creates the contact when ID is empty and updates it otherwise.
func (uc *ContactUsecase) Save(ctx context.Context, ownerID string, contact domain.Contact) (domain.Contact, error) {
	ctx, span := tracer.Start(ctx, "Contact.Usecase.Save")
	defer span.End()

	contact.Normalize()
	if err := contact.Validate(); err != nil {
		span.RecordError(err)
		return domain.Contact{}, err
	}

	var (
		saved domain.Contact
		err   error
	)
	if contact.ID == "" {
		saved, err = uc.repo.Create(ctx, ownerID, contact)
	} else {
		saved, err = uc.repo.Update(ctx, ownerID, contact)
	}
	if err != nil {
		span.RecordError(err)
		return domain.Contact{}, errors.Wrap(err, "save contact")
	}

	uc.notify.changed(ctx, ownerID, domain.EventContactSaved, saved.ID)
	return saved, nil
}

// Delete removes the contact. Links referencing it are removed by the store.
func (uc *ContactUsecase) Delete(ctx context.Context, ownerID, id string) error {
	ctx, span := tracer.Start(ctx, "Contact.Usecase.Delete")
	defer span.End()

	if err := uc.repo.Delete(ctx, ownerID, id); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "delete contact")
	}
	uc.notify.changed(ctx, ownerID, domain.EventContactDeleted, id)
	return nil
}
