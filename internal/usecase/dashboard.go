package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/jobtrack/internal/domain"
	"github.com/totegamma/jobtrack/internal/metrics"
)

const (
	DefaultFollowUpAfter = 14 * 24 * time.Hour
	DefaultRecentLimit   = 5
	DefaultFollowUpLimit = 5
)

// DashboardPolicy holds the thresholds of the dashboard heuristics.
type DashboardPolicy struct {
	FollowUpAfter time.Duration
	RecentLimit   int
	FollowUpLimit int
}

func DefaultDashboardPolicy() DashboardPolicy {
	return DashboardPolicy{
		FollowUpAfter: DefaultFollowUpAfter,
		RecentLimit:   DefaultRecentLimit,
		FollowUpLimit: DefaultFollowUpLimit,
	}
}

// ComputeDashboard summarises the collections with the default policy.
// apps are expected newest first.
func ComputeDashboard(apps []domain.Application, contacts []domain.Contact, now time.Time) domain.Dashboard {
	return DefaultDashboardPolicy().Compute(apps, contacts, now)
}

func (p DashboardPolicy) Compute(apps []domain.Application, contacts []domain.Contact, now time.Time) domain.Dashboard {
	counts := CountStatuses(apps)
	return domain.Dashboard{
		Counts:             counts,
		ResponseRate:       ResponseRate(counts),
		RecentApplications: headOf(apps, p.RecentLimit),
		FollowUpContacts:   p.FollowUps(contacts, now),
		GeneratedAt:        now,
	}
}

func CountStatuses(apps []domain.Application) domain.StatusCounts {
	counts := domain.StatusCounts{Total: len(apps)}
	for _, a := range apps {
		switch a.EffectiveStatus() {
		case domain.StatusPending:
			counts.Pending++
		case domain.StatusAccepted:
			counts.Accepted++
		case domain.StatusDenied:
			counts.Denied++
		}
	}
	return counts
}

// ResponseRate is the rounded (half-up) percentage of applications that
// reached Accepted or Denied.
func ResponseRate(counts domain.StatusCounts) int {
	if counts.Total <= 0 {
		return 0
	}
	responded := 100 * (counts.Accepted + counts.Denied)
	return (2*responded + counts.Total) / (2 * counts.Total)
}

// FollowUps selects contacts never contacted or last contacted strictly
// before now minus FollowUpAfter. Never-contacted sort first, then oldest.
func (p DashboardPolicy) FollowUps(contacts []domain.Contact, now time.Time) []domain.Contact {
	cutoff := now.Add(-p.FollowUpAfter)

	candidates := make([]domain.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.LastContactDate == nil || c.LastContactDate.Before(cutoff) {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].LastContactDate, candidates[j].LastContactDate
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})

	return headOf(candidates, p.FollowUpLimit)
}

func headOf[T any](items []T, n int) []T {
	if n < 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

type DashboardUsecase struct {
	apps     ApplicationRepository
	contacts ContactRepository
	cache    DashboardCache
	clock    Clock
	policy   DashboardPolicy
}

func NewDashboardUsecase(
	apps ApplicationRepository,
	contacts ContactRepository,
	cache DashboardCache,
	clock Clock,
	policy DashboardPolicy,
) *DashboardUsecase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &DashboardUsecase{
		apps:     apps,
		contacts: contacts,
		cache:    cache,
		clock:    clock,
		policy:   policy,
	}
}

// Get returns the owner's dashboard, computed over freshly fetched
// collections unless a cached copy is still valid.
func (uc *DashboardUsecase) Get(ctx context.Context, ownerID string) (domain.Dashboard, error) {
	ctx, span := tracer.Start(ctx, "Dashboard.Usecase.Get")
	defer span.End()

	// read before fetching; a write during the fetch moves the generation on
	var generation uint64
	if uc.cache != nil {
		generation = uc.cache.Generation(ctx, ownerID)
		if cached, ok := uc.cache.Get(ctx, ownerID, generation); ok {
			metrics.RecordDashboardCache(true)
			return cached, nil
		}
		metrics.RecordDashboardCache(false)
	}

	apps, err := uc.apps.List(ctx, ownerID, ListOptions{})
	if err != nil {
		span.RecordError(err)
		return domain.Dashboard{}, errors.Wrap(err, "dashboard applications")
	}
	contacts, err := uc.contacts.List(ctx, ownerID)
	if err != nil {
		span.RecordError(err)
		return domain.Dashboard{}, errors.Wrap(err, "dashboard contacts")
	}

	dashboard := uc.policy.Compute(apps, contacts, uc.clock.Now())
	if uc.cache != nil {
		uc.cache.Set(ctx, ownerID, generation, dashboard)
	}
	return dashboard, nil
}
