package usecase

import (
	"strings"

	"github.com/totegamma/jobtrack/internal/domain"
)

// FilterApplications keeps applications whose company, position or notes, or
// the name or company of any linked contact, contain the query. Matching is
// case-insensitive against the query as given and the input order is
// preserved. An empty or whitespace-only query returns the input unchanged.
func FilterApplications(apps []domain.Application, query string) []domain.Application {
	return filterBy(apps, query, applicationFields)
}

// FilterContacts keeps contacts whose name, company, position, school or
// email contain the query.
func FilterContacts(contacts []domain.Contact, query string) []domain.Contact {
	return filterBy(contacts, query, contactFields)
}

func applicationFields(a domain.Application) []string {
	fields := make([]string, 0, 3+2*len(a.Contacts))
	fields = append(fields, a.Company, a.Position, a.Notes)
	for _, c := range a.Contacts {
		fields = append(fields, c.Name, c.Company)
	}
	return fields
}

func contactFields(c domain.Contact) []string {
	return []string{c.Name, c.Company, c.Position, c.School, c.Email}
}

func filterBy[T any](items []T, query string, fields func(T) []string) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}
	needle := strings.ToLower(query)

	result := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if field == "" {
				continue
			}
			if strings.Contains(strings.ToLower(field), needle) {
				result = append(result, item)
				break
			}
		}
	}
	return result
}
