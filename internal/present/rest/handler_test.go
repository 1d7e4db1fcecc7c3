package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/jobtrack/internal/domain"
	"github.com/totegamma/jobtrack/internal/present/rest/middleware"
	"github.com/totegamma/jobtrack/internal/service"
	"github.com/totegamma/jobtrack/internal/usecase"
)

type fakeStore struct {
	apps       map[string]domain.Application
	contacts   map[string]domain.Contact
	links      map[string][]string
	failInsert error
}

type fakeApps struct{ *fakeStore }

func (f fakeApps) List(ctx context.Context, ownerID string, opts usecase.ListOptions) ([]domain.Application, error) {
	var result []domain.Application
	for _, a := range f.apps {
		if a.OwnerID == ownerID {
			if opts.ExpandContacts {
				for _, id := range f.links[a.ID] {
					a.Contacts = append(a.Contacts, f.contacts[id].Linked())
				}
			}
			result = append(result, a)
		}
	}
	return result, nil
}

func (f fakeApps) Get(ctx context.Context, ownerID, id string, opts usecase.ListOptions) (domain.Application, error) {
	a, ok := f.apps[id]
	if !ok || a.OwnerID != ownerID {
		return domain.Application{}, domain.NotFoundError{Resource: "application"}
	}
	return a, nil
}

func (f fakeApps) Create(ctx context.Context, ownerID string, app domain.Application) (domain.Application, error) {
	app.ID = "a1"
	app.OwnerID = ownerID
	f.apps[app.ID] = app
	return app, nil
}

func (f fakeApps) Update(ctx context.Context, ownerID string, app domain.Application) (domain.Application, error) {
	if _, err := f.Get(ctx, ownerID, app.ID, usecase.ListOptions{}); err != nil {
		return domain.Application{}, err
	}
	app.OwnerID = ownerID
	f.apps[app.ID] = app
	return app, nil
}

func (f fakeApps) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := f.Get(ctx, ownerID, id, usecase.ListOptions{}); err != nil {
		return err
	}
	delete(f.apps, id)
	return nil
}

type fakeContacts struct{ *fakeStore }

func (f fakeContacts) List(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	var result []domain.Contact
	for _, c := range f.contacts {
		if c.OwnerID == ownerID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f fakeContacts) Get(ctx context.Context, ownerID, id string) (domain.Contact, error) {
	c, ok := f.contacts[id]
	if !ok || c.OwnerID != ownerID {
		return domain.Contact{}, domain.NotFoundError{Resource: "contact"}
	}
	return c, nil
}

func (f fakeContacts) Create(ctx context.Context, ownerID string, contact domain.Contact) (domain.Contact, error) {
	contact.ID = "c-new"
	contact.OwnerID = ownerID
	f.contacts[contact.ID] = contact
	return contact, nil
}

func (f fakeContacts) Update(ctx context.Context, ownerID string, contact domain.Contact) (domain.Contact, error) {
	contact.OwnerID = ownerID
	f.contacts[contact.ID] = contact
	return contact, nil
}

func (f fakeContacts) Delete(ctx context.Context, ownerID, id string) error {
	delete(f.contacts, id)
	return nil
}

func (f fakeContacts) Resolve(ctx context.Context, ownerID string, ids []string) ([]domain.LinkedContact, error) {
	var result []domain.LinkedContact
	for _, id := range ids {
		if c, ok := f.contacts[id]; ok && c.OwnerID == ownerID {
			result = append(result, c.Linked())
		}
	}
	return result, nil
}

type fakeLinks struct{ *fakeStore }

func (f fakeLinks) ListLinks(ctx context.Context, ownerID, applicationID string) ([]string, error) {
	return f.links[applicationID], nil
}

func (f fakeLinks) DeleteLinks(ctx context.Context, ownerID, applicationID string) error {
	delete(f.links, applicationID)
	return nil
}

func (f fakeLinks) InsertLinks(ctx context.Context, ownerID, applicationID string, contactIDs []string) error {
	if f.failInsert != nil {
		return domain.StorageError{Op: "insert links", Err: f.failInsert}
	}
	f.links[applicationID] = append(f.links[applicationID], contactIDs...)
	return nil
}

func (f fakeLinks) ReplaceLinks(ctx context.Context, ownerID, applicationID string, contactIDs []string) error {
	f.links[applicationID] = contactIDs
	return nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
}

func newTestServer() (*echo.Echo, *fakeStore) {
	store := &fakeStore{
		apps:     map[string]domain.Application{},
		contacts: map[string]domain.Contact{},
		links:    map[string][]string{},
	}
	store.contacts["c1"] = domain.Contact{ID: "c1", OwnerID: "owner-1", Name: "Ada", Company: "Acme"}

	apps, contacts, links := fakeApps{store}, fakeContacts{store}, fakeLinks{store}
	handler := NewHandler(
		usecase.NewApplicationUsecase(apps, contacts, links),
		usecase.NewContactUsecase(contacts, nil, nil),
		usecase.NewSearchUsecase(apps, contacts),
		usecase.NewDashboardUsecase(apps, contacts, nil, fixedClock{}, usecase.DefaultDashboardPolicy()),
		nil,
	)

	e := echo.New()
	handler.RegisterRoutes(e, middleware.NewAuthMiddleware(service.NewAuthService(false)))
	return e, store
}

func do(e *echo.Echo, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var asOwner = map[string]string{domain.OwnerIDHeader: "owner-1"}

func TestMissingOwnerIsUnauthorized(t *testing.T) {
	e, _ := newTestServer()

	rec := do(e, http.MethodGet, "/api/v1/applications", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestCreateApplication(t *testing.T) {
	e, store := newTestServer()

	rec := do(e, http.MethodPost, "/api/v1/applications",
		`{"company":"Acme","dateApplied":"2026-03-01","contactIds":["c1","c1"]}`, asOwner)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var app domain.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &app); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if app.ID != "a1" || app.Status != domain.StatusPending {
		t.Fatalf("unexpected application %+v", app)
	}
	if len(store.links["a1"]) != 1 {
		t.Fatalf("expected deduped link set got %v", store.links["a1"])
	}

	rec = do(e, http.MethodGet, "/api/v1/applications/a1/contacts", "", asOwner)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"contactIds":["c1"]`) {
		t.Fatalf("unexpected links response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateApplicationValidation(t *testing.T) {
	e, _ := newTestServer()

	rec := do(e, http.MethodPost, "/api/v1/applications", `{"company":""}`, asOwner)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/api/v1/applications", `{"company":"Acme","dateApplied":"yesterday"}`, asOwner)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date got %d", rec.Code)
	}
}

func TestPartialSyncIsConflict(t *testing.T) {
	e, store := newTestServer()
	store.failInsert = errors.New("timeout")

	rec := do(e, http.MethodPost, "/api/v1/applications", `{"company":"Acme","contactIds":["c1"]}`, asOwner)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["applicationId"] != "a1" || body["stage"] != "insert" {
		t.Fatalf("unexpected body %v", body)
	}

	store.failInsert = nil
	rec = do(e, http.MethodPut, "/api/v1/applications/a1/contacts", `{"contactIds":["c1"]}`, asOwner)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected relink to succeed got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetApplicationOtherOwner(t *testing.T) {
	e, store := newTestServer()
	store.apps["a9"] = domain.Application{ID: "a9", OwnerID: "owner-2", Company: "Hooli"}

	rec := do(e, http.MethodGet, "/api/v1/applications/a9", "", asOwner)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestListLinksUnknownApplication(t *testing.T) {
	e, store := newTestServer()
	store.apps["a9"] = domain.Application{ID: "a9", OwnerID: "owner-2", Company: "Hooli"}

	rec := do(e, http.MethodGet, "/api/v1/applications/a9/contacts", "", asOwner)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other owner got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/api/v1/applications/missing/contacts", "", asOwner)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing application got %d", rec.Code)
	}
}

func TestDashboardETag(t *testing.T) {
	e, store := newTestServer()
	store.apps["a1"] = domain.Application{ID: "a1", OwnerID: "owner-1", Company: "Acme", Status: domain.StatusDenied}

	rec := do(e, http.MethodGet, "/api/v1/dashboard", "", asOwner)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected etag")
	}

	var dashboard domain.Dashboard
	if err := json.Unmarshal(rec.Body.Bytes(), &dashboard); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if dashboard.ResponseRate != 100 || dashboard.Counts.Denied != 1 {
		t.Fatalf("unexpected dashboard %+v", dashboard)
	}
	if len(dashboard.FollowUpContacts) != 1 {
		t.Fatalf("expected never-contacted contact to need follow up")
	}

	rec = do(e, http.MethodGet, "/api/v1/dashboard", "", map[string]string{
		domain.OwnerIDHeader:   "owner-1",
		"If-None-Match": etag,
	})
	if rec.Code != http.StatusNotModified {
		t.Fatalf("expected 304 got %d", rec.Code)
	}
}

func TestSearch(t *testing.T) {
	e, store := newTestServer()
	store.apps["a1"] = domain.Application{ID: "a1", OwnerID: "owner-1", Company: "Globex"}
	store.apps["a2"] = domain.Application{ID: "a2", OwnerID: "owner-1", Company: "Hooli"}
	store.links["a1"] = []string{"c1"}

	rec := do(e, http.MethodGet, "/api/v1/search?kind=applications&q=ACME", "", asOwner)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var result usecase.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(result.Applications) != 1 || result.Applications[0].ID != "a1" {
		t.Fatalf("unexpected search result %+v", result)
	}

	rec = do(e, http.MethodGet, "/api/v1/search?kind=jobs&q=x", "", asOwner)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown kind got %d", rec.Code)
	}
}
