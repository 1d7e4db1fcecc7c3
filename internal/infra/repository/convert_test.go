package repository

import (
	"testing"
	"time"

	"github.com/totegamma/jobtrack/internal/domain"
)

func TestApplicationFromDomainStoresEmptyAsNull(t *testing.T) {
	row := applicationFromDomain("owner-1", domain.Application{Company: "Acme"})

	if row.Position != nil || row.Notes != nil || row.InterviewStage != nil {
		t.Fatalf("expected empty optional fields to be nil: %+v", row)
	}
	if row.Status != string(domain.StatusPending) {
		t.Fatalf("expected default status Pending got %s", row.Status)
	}
	if row.UserID != "owner-1" {
		t.Fatalf("expected owner to be set")
	}
}

func TestContactRoundTripKeepsDates(t *testing.T) {
	last := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	in := domain.Contact{Name: "Ada", Company: "Acme", LastContactDate: &last, ChatFeel: domain.FeelGood}

	out := contactToDomain(contactFromDomain("owner-1", in))

	if out.LastContactDate == nil || !out.LastContactDate.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected date-only last contact, got %v", out.LastContactDate)
	}
	if out.Company != "Acme" || out.ChatFeel != domain.FeelGood {
		t.Fatalf("unexpected contact %+v", out)
	}
	if out.School != "" {
		t.Fatalf("expected absent school to stay empty")
	}
}
