package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/jobtrack/internal/domain"
)

type SearchResult struct {
	Kind         domain.EntityKind     `json:"kind"`
	Query        string                `json:"query"`
	Applications []domain.Application `json:"applications,omitempty"`
	Contacts     []domain.Contact     `json:"contacts,omitempty"`
}

// SearchUsecase fetches one owner's collection and filters it in memory.
type SearchUsecase struct {
	apps     ApplicationRepository
	contacts ContactRepository
}

func NewSearchUsecase(apps ApplicationRepository, contacts ContactRepository) *SearchUsecase {
	return &SearchUsecase{apps: apps, contacts: contacts}
}

func (uc *SearchUsecase) Search(ctx context.Context, ownerID string, kind domain.EntityKind, query string) (SearchResult, error) {
	ctx, span := tracer.Start(ctx, "Search.Usecase.Search")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(kind)))

	result := SearchResult{Kind: kind, Query: query}

	switch kind {
	case domain.KindApplication:
		apps, err := uc.apps.List(ctx, ownerID, ListOptions{ExpandContacts: true})
		if err != nil {
			span.RecordError(err)
			return SearchResult{}, errors.Wrap(err, "search applications")
		}
		result.Applications = FilterApplications(apps, query)
	case domain.KindContact:
		contacts, err := uc.contacts.List(ctx, ownerID)
		if err != nil {
			span.RecordError(err)
			return SearchResult{}, errors.Wrap(err, "search contacts")
		}
		result.Contacts = FilterContacts(contacts, query)
	default:
		return SearchResult{}, domain.ValidationError{Field: "kind", Reason: "must be applications or contacts"}
	}

	return result, nil
}
