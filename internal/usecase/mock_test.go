package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/totegamma/jobtrack/internal/domain"
)

// memStore is an in-memory entity store with the same owner scoping and
// cascade behaviour as the postgres schema.
type memStore struct {
	apps     map[string]domain.Application
	contacts map[string]domain.Contact
	links    map[string]map[string]struct{}
	seq      int

	failCreate  error
	failUpdate  error
	failDelete  error
	failInsert  error
	failReplace error
	failResolve error

	calls []string
}

func newMemStore() *memStore {
	return &memStore{
		apps:     map[string]domain.Application{},
		contacts: map[string]domain.Contact{},
		links:    map[string]map[string]struct{}{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) addContact(owner, id, name, company string) {
	m.contacts[id] = domain.Contact{ID: id, OwnerID: owner, Name: name, Company: company}
}

func (m *memStore) linkSet(appID string) []string {
	ids := make([]string, 0, len(m.links[appID]))
	for id := range m.links[appID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type memApps struct{ *memStore }

func (m memApps) List(ctx context.Context, ownerID string, opts ListOptions) ([]domain.Application, error) {
	m.calls = append(m.calls, "apps.list")
	var result []domain.Application
	for _, app := range m.apps {
		if app.OwnerID != ownerID {
			continue
		}
		if opts.ExpandContacts {
			for _, id := range m.linkSet(app.ID) {
				app.Contacts = append(app.Contacts, m.contacts[id].Linked())
			}
		}
		result = append(result, app)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m memApps) Get(ctx context.Context, ownerID, id string, opts ListOptions) (domain.Application, error) {
	m.calls = append(m.calls, "apps.get")
	app, ok := m.apps[id]
	if !ok || app.OwnerID != ownerID {
		return domain.Application{}, domain.NotFoundError{Resource: "application"}
	}
	return app, nil
}

func (m memApps) Create(ctx context.Context, ownerID string, app domain.Application) (domain.Application, error) {
	m.calls = append(m.calls, "apps.create")
	if m.failCreate != nil {
		return domain.Application{}, domain.StorageError{Op: "create application", Err: m.failCreate}
	}
	app.ID = m.nextID("app")
	app.OwnerID = ownerID
	app.CreatedAt = time.Date(2026, 1, 1, 0, 0, m.seq, 0, time.UTC)
	m.apps[app.ID] = app
	return app, nil
}

func (m memApps) Update(ctx context.Context, ownerID string, app domain.Application) (domain.Application, error) {
	m.calls = append(m.calls, "apps.update")
	if m.failUpdate != nil {
		return domain.Application{}, domain.StorageError{Op: "update application", Err: m.failUpdate}
	}
	existing, ok := m.apps[app.ID]
	if !ok || existing.OwnerID != ownerID {
		return domain.Application{}, domain.NotFoundError{Resource: "application"}
	}
	app.OwnerID = ownerID
	app.CreatedAt = existing.CreatedAt
	m.apps[app.ID] = app
	return app, nil
}

func (m memApps) Delete(ctx context.Context, ownerID, id string) error {
	m.calls = append(m.calls, "apps.delete")
	app, ok := m.apps[id]
	if !ok || app.OwnerID != ownerID {
		return domain.NotFoundError{Resource: "application"}
	}
	delete(m.apps, id)
	delete(m.links, id)
	return nil
}

type memContacts struct{ *memStore }

func (m memContacts) List(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	m.calls = append(m.calls, "contacts.list")
	var result []domain.Contact
	for _, c := range m.contacts {
		if c.OwnerID == ownerID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m memContacts) Get(ctx context.Context, ownerID, id string) (domain.Contact, error) {
	c, ok := m.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return domain.Contact{}, domain.NotFoundError{Resource: "contact"}
	}
	return c, nil
}

func (m memContacts) Create(ctx context.Context, ownerID string, contact domain.Contact) (domain.Contact, error) {
	m.calls = append(m.calls, "contacts.create")
	contact.ID = m.nextID("contact")
	contact.OwnerID = ownerID
	m.contacts[contact.ID] = contact
	return contact, nil
}

func (m memContacts) Update(ctx context.Context, ownerID string, contact domain.Contact) (domain.Contact, error) {
	m.calls = append(m.calls, "contacts.update")
	existing, ok := m.contacts[contact.ID]
	if !ok || existing.OwnerID != ownerID {
		return domain.Contact{}, domain.NotFoundError{Resource: "contact"}
	}
	contact.OwnerID = ownerID
	m.contacts[contact.ID] = contact
	return contact, nil
}

func (m memContacts) Delete(ctx context.Context, ownerID, id string) error {
	m.calls = append(m.calls, "contacts.delete")
	c, ok := m.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return domain.NotFoundError{Resource: "contact"}
	}
	delete(m.contacts, id)
	for _, set := range m.links {
		delete(set, id)
	}
	return nil
}

func (m memContacts) Resolve(ctx context.Context, ownerID string, ids []string) ([]domain.LinkedContact, error) {
	m.calls = append(m.calls, "contacts.resolve")
	if m.failResolve != nil {
		return nil, domain.StorageError{Op: "resolve contacts", Err: m.failResolve}
	}
	var result []domain.LinkedContact
	for _, id := range ids {
		if c, ok := m.contacts[id]; ok && c.OwnerID == ownerID {
			result = append(result, c.Linked())
		}
	}
	return result, nil
}

type memLinks struct{ *memStore }

func (m memLinks) ListLinks(ctx context.Context, ownerID, applicationID string) ([]string, error) {
	app, ok := m.apps[applicationID]
	if !ok || app.OwnerID != ownerID {
		return nil, nil
	}
	return m.linkSet(applicationID), nil
}

func (m memLinks) DeleteLinks(ctx context.Context, ownerID, applicationID string) error {
	m.calls = append(m.calls, "links.delete")
	if m.failDelete != nil {
		return domain.StorageError{Op: "delete links", Err: m.failDelete}
	}
	delete(m.links, applicationID)
	return nil
}

func (m memLinks) InsertLinks(ctx context.Context, ownerID, applicationID string, contactIDs []string) error {
	m.calls = append(m.calls, "links.insert")
	if m.failInsert != nil {
		return domain.StorageError{Op: "insert links", Err: m.failInsert}
	}
	set, ok := m.links[applicationID]
	if !ok {
		set = map[string]struct{}{}
		m.links[applicationID] = set
	}
	for _, id := range contactIDs {
		set[id] = struct{}{}
	}
	return nil
}

func (m memLinks) ReplaceLinks(ctx context.Context, ownerID, applicationID string, contactIDs []string) error {
	m.calls = append(m.calls, "links.replace")
	if m.failReplace != nil {
		return domain.StorageError{Op: "replace links", Err: m.failReplace}
	}
	set := map[string]struct{}{}
	for _, id := range contactIDs {
		set[id] = struct{}{}
	}
	m.links[applicationID] = set
	return nil
}

type mockPublisher struct {
	events []domain.Event
}

func (m *mockPublisher) Publish(ctx context.Context, ownerID string, event domain.Event) error {
	m.events = append(m.events, event)
	return nil
}

type mockDashboardCache struct {
	stored      map[string]domain.Dashboard
	generations map[string]uint64
	invalidated []string
}

func newMockDashboardCache() *mockDashboardCache {
	return &mockDashboardCache{
		stored:      map[string]domain.Dashboard{},
		generations: map[string]uint64{},
	}
}

func (m *mockDashboardCache) key(ownerID string, generation uint64) string {
	return fmt.Sprintf("%s:%d", ownerID, generation)
}

func (m *mockDashboardCache) Generation(ctx context.Context, ownerID string) uint64 {
	return m.generations[ownerID]
}

func (m *mockDashboardCache) Get(ctx context.Context, ownerID string, generation uint64) (domain.Dashboard, bool) {
	d, ok := m.stored[m.key(ownerID, generation)]
	return d, ok
}

func (m *mockDashboardCache) Set(ctx context.Context, ownerID string, generation uint64, dashboard domain.Dashboard) {
	m.stored[m.key(ownerID, generation)] = dashboard
}

func (m *mockDashboardCache) Invalidate(ctx context.Context, ownerID string) {
	m.invalidated = append(m.invalidated, ownerID)
	m.generations[ownerID]++
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
