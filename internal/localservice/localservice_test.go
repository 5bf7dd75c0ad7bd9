package localservice

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/localstore"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// emptyStore returns a store with no collections written
func emptyStore(now time.Time) *localstore.Store {
	return localstore.New(localstore.NewMemoryKV(), localstore.Options{Now: clock(now)})
}

func defaultStore(t *testing.T, now time.Time) *localstore.Store {
	t.Helper()
	s := emptyStore(now)
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

func eventTitles(events []*models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

func seedFilterEvents(t *testing.T, store *localstore.Store) {
	t.Helper()
	for _, e := range []*models.Event{
		{Title: "done", EventDate: date(2025, time.January, 1), Status: models.EventStatusCompleted},
		{Title: "far", EventDate: date(2099, time.January, 1), Status: models.EventStatusUpcoming},
		{Title: "mid", EventDate: date(2030, time.June, 1), Status: models.EventStatusUpcoming},
	} {
		if _, err := store.AddEvent(e); err != nil {
			t.Fatalf("AddEvent: %v", err)
		}
	}
}

func TestUpcomingEventsFilterAndOrder(t *testing.T) {
	store := emptyStore(date(2025, time.February, 1))
	seedFilterEvents(t, store)
	ctx := context.Background()

	svc := NewEventService(store, zerolog.Nop(), Options{Now: clock(date(2031, time.January, 1))})
	upcoming, err := svc.GetUpcomingEvents(ctx)
	if err != nil {
		t.Fatalf("GetUpcomingEvents: %v", err)
	}
	if got := eventTitles(upcoming); !reflect.DeepEqual(got, []string{"far"}) {
		t.Fatalf("upcoming after 2030 = %v", got)
	}

	past, err := svc.GetPastEvents(ctx)
	if err != nil {
		t.Fatalf("GetPastEvents: %v", err)
	}
	if got := eventTitles(past); !reflect.DeepEqual(got, []string{"mid", "done"}) {
		t.Fatalf("past after 2030 = %v", got)
	}

	earlier := NewEventService(store, zerolog.Nop(), Options{Now: clock(date(2026, time.January, 1))})
	upcoming, _ = earlier.GetUpcomingEvents(ctx)
	if got := eventTitles(upcoming); !reflect.DeepEqual(got, []string{"mid", "far"}) {
		t.Fatalf("upcoming in 2026 = %v, want ascending by date", got)
	}
}

func TestEventsByYearLatestFirst(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewEventService(store, zerolog.Nop(), Options{})

	events, err := svc.GetEventsByYear(context.Background(), 2025)
	if err != nil {
		t.Fatalf("GetEventsByYear: %v", err)
	}
	if len(events) != 6 {
		t.Fatalf("got %d events in 2025", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].EventDate.After(events[i-1].EventDate) {
			t.Fatalf("events not in descending date order: %v", eventTitles(events))
		}
	}

	none, _ := svc.GetEventsByYear(context.Background(), 1999)
	if len(none) != 0 {
		t.Fatalf("expected no events in 1999, got %d", len(none))
	}
}

func TestEventsJoinBranch(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewEventService(store, zerolog.Nop(), Options{})

	e, err := svc.GetEvent(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if e.Branch == nil || e.Branch.ID != 1 {
		t.Fatalf("event 1 should be joined with branch 1: %+v", e.Branch)
	}

	churchWide, _ := svc.GetEvent(context.Background(), 3)
	if churchWide.Branch != nil {
		t.Fatal("church-wide event must have no branch")
	}

	dangling := int64(99)
	if _, err := store.UpdateEvent(2, &models.Event{Title: "x", EventDate: date(2025, 1, 1), BranchID: &dangling}); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	e, _ = svc.GetEvent(context.Background(), 2)
	if e.Branch != nil {
		t.Fatal("event pointing at a missing branch must have no branch")
	}
}

func TestCreateEventValidatesBranch(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewEventService(store, zerolog.Nop(), Options{})

	missing := int64(42)
	_, err := svc.CreateEvent(context.Background(), &models.Event{Title: "x", EventDate: date(2025, 7, 1), BranchID: &missing})
	if !errors.Is(err, apperrors.ErrBranchInactiveOrMissing) {
		t.Fatalf("expected invalid branch, got %v", err)
	}

	_, err = svc.CreateEvent(context.Background(), &models.Event{Title: "x", EventDate: date(2025, 7, 1), Type: models.EventType(42)})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	branchID := int64(2)
	e, err := svc.CreateEvent(context.Background(), &models.Event{Title: "Prayer Night", EventDate: date(2025, 7, 1), BranchID: &branchID})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if e.ID != 7 || e.Branch == nil || e.Branch.ID != 2 {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestCreateEventSurfacesStoreErrors(t *testing.T) {
	kv := localstore.NewMemoryKV()
	if err := kv.Set(localstore.KeyBranches, []byte("{not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	store := localstore.New(kv, localstore.Options{Now: clock(date(2025, time.June, 20))})
	svc := NewEventService(store, zerolog.Nop(), Options{})

	branchID := int64(1)
	_, err := svc.CreateEvent(context.Background(), &models.Event{Title: "x", EventDate: date(2025, 7, 1), BranchID: &branchID})
	if err == nil || errors.Is(err, apperrors.ErrBranchInactiveOrMissing) {
		t.Fatalf("expected the decode error to pass through, got %v", err)
	}
}

func TestUpdateEventStatus(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewEventService(store, zerolog.Nop(), Options{})

	e, err := svc.UpdateEventStatus(context.Background(), 1, models.EventStatusCancelled)
	if err != nil {
		t.Fatalf("UpdateEventStatus: %v", err)
	}
	if e.Status != models.EventStatusCancelled || e.UpdatedAt == nil {
		t.Fatalf("unexpected event: %+v", e)
	}
	if _, err := svc.UpdateEventStatus(context.Background(), 404, models.EventStatusCompleted); !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdminEventListing(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewEventService(store, zerolog.Nop(), Options{})

	branchID := int64(1)
	events, err := svc.ListEventsForAdmin(context.Background(), &branchID)
	if err != nil {
		t.Fatalf("ListEventsForAdmin: %v", err)
	}
	want := []string{"Sunday Worship Service", "Women's Prayer Breakfast", "Youth Conference 2025"}
	if got := eventTitles(events); !reflect.DeepEqual(got, want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
	for _, e := range events {
		if e.BranchName == nil || *e.BranchName != "Main Branch - Johannesburg" {
			t.Fatalf("branch name missing on %q", e.Title)
		}
	}
}

func TestBranchesAttachPastors(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	if _, err := store.AddPastor(&models.Pastor{FirstName: "Retired", LastName: "Pastor", BranchID: 2, IsActive: false}); err != nil {
		t.Fatalf("AddPastor: %v", err)
	}
	svc := NewBranchService(store, zerolog.Nop(), Options{})

	branches, err := svc.GetBranches(context.Background())
	if err != nil {
		t.Fatalf("GetBranches: %v", err)
	}
	counts := map[int64]int{}
	for _, b := range branches {
		counts[b.ID] = len(b.Pastors)
		for _, p := range b.Pastors {
			if p.BranchID != b.ID {
				t.Fatalf("pastor %d attached to branch %d", p.ID, b.ID)
			}
		}
	}
	if !reflect.DeepEqual(counts, map[int64]int{1: 2, 2: 2, 3: 1}) {
		t.Fatalf("pastor counts = %v (inactive pastors must be included)", counts)
	}
}

func TestPastorsJoinBranch(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewPastorService(store, zerolog.Nop(), Options{})

	pastors, err := svc.GetPastors(context.Background())
	if err != nil {
		t.Fatalf("GetPastors: %v", err)
	}
	for _, p := range pastors {
		if p.Branch == nil || p.Branch.ID != p.BranchID {
			t.Fatalf("pastor %d not joined with branch %d", p.ID, p.BranchID)
		}
	}

	byBranch, _ := svc.GetPastorsByBranch(context.Background(), 1)
	if len(byBranch) != 2 {
		t.Fatalf("branch 1 pastors = %d", len(byBranch))
	}

	_, err = svc.CreatePastor(context.Background(), &models.Pastor{FirstName: "A", LastName: "B", BranchID: 77})
	if !errors.Is(err, apperrors.ErrBranchInactiveOrMissing) {
		t.Fatalf("expected invalid branch, got %v", err)
	}
}

func TestPurgeBranchRules(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewBranchService(store, zerolog.Nop(), Options{})
	ctx := context.Background()

	if err := svc.PurgeBranch(ctx, 1); !errors.Is(err, apperrors.ErrBranchHasRelations) {
		t.Fatalf("branch with active pastors: got %v", err)
	}
	if err := svc.PurgeBranch(ctx, 404); !errors.Is(err, apperrors.ErrBranchNotFound) {
		t.Fatalf("missing branch: got %v", err)
	}

	b, _ := store.AddBranch(&models.Branch{Name: "Pop-up", Address: "a", City: "c", IsActive: true})
	e, _ := store.AddEvent(&models.Event{Title: "Finished", EventDate: date(2025, 1, 1), Status: models.EventStatusCompleted, BranchID: &b.ID})

	if err := svc.PurgeBranch(ctx, b.ID); err != nil {
		t.Fatalf("PurgeBranch: %v", err)
	}
	if _, err := store.GetBranch(b.ID); !errors.Is(err, apperrors.ErrBranchNotFound) {
		t.Fatalf("branch still present: %v", err)
	}
	detached, _ := store.GetEvent(e.ID)
	if detached.BranchID != nil {
		t.Fatal("events of a deleted branch should become church-wide")
	}
}

func TestBranchSummaries(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewBranchService(store, zerolog.Nop(), Options{})

	summaries, err := svc.ListBranchSummaries(context.Background())
	if err != nil {
		t.Fatalf("ListBranchSummaries: %v", err)
	}
	if len(summaries) != 3 || summaries[0].PastorCount != 2 || summaries[0].EventCount != 3 {
		t.Fatalf("unexpected first summary: %+v", summaries[0])
	}
}

func TestTestimonyApprovalOrdering(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewTestimonyService(store, zerolog.Nop(), Options{})
	ctx := context.Background()

	approved, err := svc.GetApprovedTestimonies(ctx)
	if err != nil {
		t.Fatalf("GetApprovedTestimonies: %v", err)
	}
	var ids []int64
	for _, tm := range approved {
		ids = append(ids, tm.ID)
	}
	if !reflect.DeepEqual(ids, []int64{4, 3, 2, 1}) {
		t.Fatalf("approved ids = %v, want newest first", ids)
	}

	submitted, err := svc.SubmitTestimony(ctx, &models.Testimony{Testimony: "  Praise God for a new job!  ", IsApproved: true})
	if err != nil {
		t.Fatalf("SubmitTestimony: %v", err)
	}
	if submitted.IsApproved || submitted.Testimony != "Praise God for a new job!" || submitted.Name != nil {
		t.Fatalf("unexpected submission: %+v", submitted)
	}

	approved, _ = svc.GetApprovedTestimonies(ctx)
	if len(approved) != 4 {
		t.Fatal("unapproved testimony must not be listed publicly")
	}

	if _, err := svc.ApproveTestimony(ctx, submitted.ID); err != nil {
		t.Fatalf("ApproveTestimony: %v", err)
	}
	approved, _ = svc.GetApprovedTestimonies(ctx)
	if len(approved) != 5 || approved[0].ID != submitted.ID {
		t.Fatalf("approved testimony should lead the list: %+v", approved[0])
	}
}

func TestEditingTestimonyKeepsApproval(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewTestimonyService(store, zerolog.Nop(), Options{})
	ctx := context.Background()

	name := "Sarah J."
	edited, err := svc.UpdateTestimony(ctx, 1, models.TestimonyPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateTestimony: %v", err)
	}
	if !edited.IsApproved || *edited.Name != name {
		t.Fatalf("unexpected testimony after edit: %+v", edited)
	}

	approved, _ := svc.GetApprovedTestimonies(ctx)
	if len(approved) != 4 {
		t.Fatalf("approved testimonies = %d, want 4", len(approved))
	}

	again, err := svc.ApproveTestimony(ctx, 1)
	if err != nil || !again.IsApproved {
		t.Fatalf("approving twice: %+v, %v", again, err)
	}
}

func TestListTestimoniesPaginates(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewTestimonyService(store, zerolog.Nop(), Options{})

	page, total, err := svc.ListTestimonies(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("ListTestimonies: %v", err)
	}
	if total != 4 || len(page) != 1 || page[0].ID != 1 {
		t.Fatalf("page 2 = %+v total %d", page, total)
	}
}

func TestActiveHighlightsOrdered(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewHighlightService(store, zerolog.Nop(), Options{})
	ctx := context.Background()

	if _, err := store.AddHighlight(&models.Highlight{Title: "first", MediaURL: "/uploads/a.jpg", OrderIndex: 0, IsActive: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddHighlight(&models.Highlight{Title: "hidden", MediaURL: "/uploads/b.jpg", OrderIndex: 0, IsActive: false}); err != nil {
		t.Fatal(err)
	}

	active, err := svc.GetActiveHighlights(ctx)
	if err != nil {
		t.Fatalf("GetActiveHighlights: %v", err)
	}
	var titles []string
	for _, h := range active {
		titles = append(titles, h.Title)
	}
	want := []string{"first", "Sunday Worship Service", "Youth Conference 2025", "Community Outreach"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
}

func TestChurchInfoUpdateChecksID(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewChurchInfoService(store, zerolog.Nop(), Options{})
	ctx := context.Background()

	if _, err := svc.UpdateChurchInfo(ctx, 9, &models.ChurchInfo{Mission: "m", Vision: "v", Beliefs: "b"}); !errors.Is(err, apperrors.ErrChurchInfoNotFound) {
		t.Fatalf("expected not found for wrong id, got %v", err)
	}
	info, err := svc.UpdateChurchInfo(ctx, 1, &models.ChurchInfo{Mission: "m", Vision: "v", Beliefs: "b"})
	if err != nil {
		t.Fatalf("UpdateChurchInfo: %v", err)
	}
	if info.ID != 1 || info.Mission != "m" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestStatistics(t *testing.T) {
	now := date(2025, time.June, 20)
	store := defaultStore(t, now)
	svc := NewStatisticsService(store, zerolog.Nop(), Options{})

	stats, err := svc.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	want := models.Statistics{
		TotalBranches:   3,
		TotalPastors:    4,
		TotalEvents:     6,
		UpcomingEvents:  4,
		CompletedEvents: 2,
		RecentEvents:    4,
	}
	if *stats != want {
		t.Fatalf("stats = %+v, want %+v", *stats, want)
	}
}

func TestLatencyHonoursContext(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewBranchService(store, zerolog.Nop(), Options{Latency: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := svc.GetBranches(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("cancelled call waited out the latency")
	}
}

func TestLatencyDelaysResult(t *testing.T) {
	store := defaultStore(t, date(2025, time.June, 20))
	svc := NewHighlightService(store, zerolog.Nop(), Options{Latency: 20 * time.Millisecond})

	start := time.Now()
	if _, err := svc.GetHighlights(context.Background()); err != nil {
		t.Fatalf("GetHighlights: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("returned after %v, before the configured latency", elapsed)
	}
}

func TestStaticAdmins(t *testing.T) {
	admins, err := NewStaticAdmins(bcrypt.MinCost, date(2025, 1, 1), AdminAccount{
		Username: "admin", Password: "Admin@123", Email: "admin@voiceofchrist.org", FullName: "System Administrator",
	})
	if err != nil {
		t.Fatalf("NewStaticAdmins: %v", err)
	}
	ctx := context.Background()

	a, err := admins.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if a.ID != 1 || a.PasswordHash == "Admin@123" || !a.IsActive {
		t.Fatalf("unexpected admin: %+v", a)
	}
	if _, err := admins.GetByUsername(ctx, "nobody"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	at := date(2025, 2, 2)
	if err := admins.UpdateLastLogin(ctx, 1, at); err != nil {
		t.Fatalf("UpdateLastLogin: %v", err)
	}
	a, _ = admins.GetByID(ctx, 1)
	if a.LastLoginAt == nil || !a.LastLoginAt.Equal(at) {
		t.Fatalf("lastLoginAt = %v", a.LastLoginAt)
	}

	if _, err := NewStaticAdmins(bcrypt.MinCost, at, AdminAccount{Username: "x"}); err == nil {
		t.Fatal("expected error for missing password")
	}
}
