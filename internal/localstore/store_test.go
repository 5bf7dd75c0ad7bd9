package localstore

import (
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/seed"
)

var fixedNow = time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(NewMemoryKV(), Options{Now: func() time.Time { return fixedNow }})
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return s
}

func ids[T any](items []*T, idOf func(*T) int64) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, idOf(it))
	}
	return out
}

func branchIDs(items []*models.Branch) []int64 {
	return ids(items, func(b *models.Branch) int64 { return b.ID })
}

func TestInitializeWritesDefaultDataset(t *testing.T) {
	s := newTestStore(t)
	want := seed.Default(fixedNow)

	branches, err := s.GetBranches()
	if err != nil {
		t.Fatalf("GetBranches: %v", err)
	}
	if len(branches) != len(want.Branches) {
		t.Fatalf("got %d branches, want %d", len(branches), len(want.Branches))
	}
	gotJSON, _ := json.Marshal(branches)
	wantJSON, _ := json.Marshal(want.Branches)
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("branches = %s, want %s", gotJSON, wantJSON)
	}

	events, _ := s.GetEvents()
	if len(events) != len(want.Events) {
		t.Fatalf("got %d events, want %d", len(events), len(want.Events))
	}
	for i := range events {
		if !events[i].EventDate.Equal(want.Events[i].EventDate) || events[i].Title != want.Events[i].Title {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want.Events[i])
		}
	}

	info, err := s.GetChurchInfo()
	if err != nil {
		t.Fatalf("GetChurchInfo: %v", err)
	}
	if info.Mission != want.ChurchInfo.Mission || !info.FoundedDate.Equal(*want.ChurchInfo.FoundedDate) {
		t.Errorf("church info = %+v", info)
	}

	pastors, _ := s.GetPastors()
	highlights, _ := s.GetHighlights()
	testimonies, _ := s.GetTestimonies()
	if len(pastors) != 4 || len(highlights) != 3 || len(testimonies) != 4 {
		t.Errorf("counts: pastors=%d highlights=%d testimonies=%d", len(pastors), len(highlights), len(testimonies))
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddBranch(&models.Branch{Name: "Soweto", Address: "1 Vilakazi St", City: "Soweto", IsActive: true}); err != nil {
		t.Fatalf("AddBranch: %v", err)
	}
	before, _ := s.Dump()

	if err := s.Initialize(); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	after, _ := s.Dump()

	if !reflect.DeepEqual(before, after) {
		t.Fatal("second Initialize changed stored data")
	}
}

func TestInitializeKeepsEmptyCollections(t *testing.T) {
	kv := NewMemoryKV()
	if err := kv.Set(KeyBranches, []byte("[]")); err != nil {
		t.Fatal(err)
	}
	s := New(kv, Options{Now: func() time.Time { return fixedNow }})
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	branches, _ := s.GetBranches()
	if len(branches) != 0 {
		t.Fatalf("existing empty collection was overwritten: %d branches", len(branches))
	}
	pastors, _ := s.GetPastors()
	if len(pastors) == 0 {
		t.Fatal("absent collection should have been seeded")
	}
}

func TestGetAllOnAbsentKeyIsEmpty(t *testing.T) {
	s := New(NewMemoryKV(), Options{})
	events, err := s.GetEvents()
	if err != nil || events == nil || len(events) != 0 {
		t.Fatalf("expected empty slice, got %v, %v", events, err)
	}
	if _, err := s.GetChurchInfo(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("absent church info: expected not found, got %v", err)
	}
}

func TestAddAssignsMaxPlusOne(t *testing.T) {
	s := newTestStore(t)

	if err := s.DeleteBranch(2); err != nil {
		t.Fatalf("DeleteBranch: %v", err)
	}
	b, err := s.AddBranch(&models.Branch{ID: 99, Name: "Soweto", Address: "1 Vilakazi St", City: "Soweto"})
	if err != nil {
		t.Fatalf("AddBranch: %v", err)
	}
	if b.ID != 4 {
		t.Fatalf("id = %d, want 4 (max existing id 3 plus one)", b.ID)
	}

	branches, _ := s.GetBranches()
	if got := branchIDs(branches); !reflect.DeepEqual(got, []int64{1, 3, 4}) {
		t.Fatalf("ids = %v", got)
	}
}

func TestAddOnEmptyCollectionStartsAtOne(t *testing.T) {
	s := New(NewMemoryKV(), Options{Now: func() time.Time { return fixedNow }})
	h, err := s.AddHighlight(&models.Highlight{Title: "First", MediaURL: "/uploads/a.jpg"})
	if err != nil {
		t.Fatalf("AddHighlight: %v", err)
	}
	if h.ID != 1 {
		t.Fatalf("id = %d, want 1", h.ID)
	}
	if !h.CreatedAt.Equal(fixedNow) {
		t.Fatalf("createdAt = %v", h.CreatedAt)
	}
}

func TestAddDoesNotPersistJoins(t *testing.T) {
	s := newTestStore(t)
	p, err := s.AddPastor(&models.Pastor{FirstName: "Thabo", LastName: "Mokoena", BranchID: 1, Branch: &models.Branch{ID: 1, Name: "x"}})
	if err != nil {
		t.Fatalf("AddPastor: %v", err)
	}
	stored, _ := s.GetPastor(p.ID)
	if stored.Branch != nil {
		t.Fatal("joined branch must not be persisted")
	}
}

func TestAddEventStampsCreatedAt(t *testing.T) {
	s := newTestStore(t)
	e, err := s.AddEvent(&models.Event{Title: "Prayer Night", EventDate: fixedNow.AddDate(0, 1, 0)})
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if e.ID != 7 || !e.CreatedAt.Equal(fixedNow) || e.UpdatedAt != nil {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestTestimonyIDsAreTimestampsAndUnique(t *testing.T) {
	s := newTestStore(t)
	first, err := s.AddTestimony(&models.Testimony{Testimony: "Thank you Lord for healing."})
	if err != nil {
		t.Fatalf("AddTestimony: %v", err)
	}
	second, err := s.AddTestimony(&models.Testimony{Testimony: "Grateful for this family."})
	if err != nil {
		t.Fatalf("AddTestimony: %v", err)
	}
	if first.ID != fixedNow.UnixMilli() {
		t.Fatalf("first id = %d, want %d", first.ID, fixedNow.UnixMilli())
	}
	if second.ID != first.ID+1 {
		t.Fatalf("colliding id should be bumped, got %d", second.ID)
	}
	if !first.CreatedAt.Equal(fixedNow) {
		t.Fatalf("createdAt = %v", first.CreatedAt)
	}
}

func TestUpdatePreservesIDAndOverwritesFields(t *testing.T) {
	s := newTestStore(t)
	updated, err := s.UpdateBranch(2, &models.Branch{
		ID:              42,
		Name:            "Cape Town Central",
		Address:         "1 Long Street",
		City:            "Cape Town",
		EstablishedDate: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:        false,
	})
	if err != nil {
		t.Fatalf("UpdateBranch: %v", err)
	}
	if updated.ID != 2 {
		t.Fatalf("id = %d, want 2", updated.ID)
	}

	stored, _ := s.GetBranch(2)
	if stored.Name != "Cape Town Central" || stored.Address != "1 Long Street" || stored.IsActive || stored.Province != nil || stored.Email != nil {
		t.Fatalf("fields not overwritten: %+v", stored)
	}
	if _, err := s.GetBranch(42); !errors.Is(err, apperrors.ErrBranchNotFound) {
		t.Fatalf("body id must be ignored, got %v", err)
	}
}

func TestUpdateMissingIDLeavesCollectionUnchanged(t *testing.T) {
	s := newTestStore(t)
	before, _ := s.Dump()

	_, err := s.UpdatePastor(404, &models.Pastor{FirstName: "Ghost", LastName: "Writer", BranchID: 1})
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, apperrors.ErrPastorNotFound) {
		t.Fatalf("expected pastor not found, got %v", err)
	}
	if _, err := s.UpdateTestimony(404, models.TestimonyPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected testimony not found, got %v", err)
	}
	if err := s.DeleteEvent(404); !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Fatalf("expected event not found, got %v", err)
	}

	after, _ := s.Dump()
	if !reflect.DeepEqual(before, after) {
		t.Fatal("collection changed after operations on a missing id")
	}
}

func TestUpdateEventKeepsCreatedAtAndStampsUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	original, _ := s.GetEvent(5)

	later := fixedNow.Add(time.Hour)
	s.now = func() time.Time { return later }

	e, err := s.UpdateEvent(5, &models.Event{Title: "Easter 2025", EventDate: original.EventDate, Status: models.EventStatusCompleted})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if !e.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("createdAt changed: %v -> %v", original.CreatedAt, e.CreatedAt)
	}
	if e.UpdatedAt == nil || !e.UpdatedAt.Equal(later) {
		t.Fatalf("updatedAt = %v", e.UpdatedAt)
	}
}

func TestUpdateTestimonyIsPartial(t *testing.T) {
	s := newTestStore(t)
	text := "A shorter account of the same blessing."
	tm, err := s.UpdateTestimony(1, models.TestimonyPatch{Testimony: &text})
	if err != nil {
		t.Fatalf("UpdateTestimony: %v", err)
	}
	if tm.Testimony != text || !tm.IsApproved || tm.Name == nil || *tm.Name != "Sarah Johnson" || tm.UpdatedAt == nil {
		t.Fatalf("unexpected testimony after patch: %+v", tm)
	}
}

func TestDeleteRemovesExactlyOneAndKeepsOrder(t *testing.T) {
	s := newTestStore(t)
	if err := s.DeletePastor(2); err != nil {
		t.Fatalf("DeletePastor: %v", err)
	}
	pastors, _ := s.GetPastors()
	got := ids(pastors, func(p *models.Pastor) int64 { return p.ID })
	if !reflect.DeepEqual(got, []int64{1, 3, 4}) {
		t.Fatalf("ids after delete = %v", got)
	}
	if err := s.DeletePastor(2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
}

func TestChurchInfoUpdateStampsUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	later := fixedNow.Add(48 * time.Hour)
	s.now = func() time.Time { return later }

	info, err := s.UpdateChurchInfo(&models.ChurchInfo{Mission: "m", Vision: "v", Beliefs: "b"})
	if err != nil {
		t.Fatalf("UpdateChurchInfo: %v", err)
	}
	if info.ID != 1 || !info.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected info: %+v", info)
	}

	raw, _, _ := s.kv.Get(KeyChurchInfo)
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("church info must be stored as a single object: %v", err)
	}
}

func TestResetRemovesAllCollections(t *testing.T) {
	s := newTestStore(t)
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	dump, _ := s.Dump()
	if len(dump) != 0 {
		t.Fatalf("keys left after reset: %v", dump)
	}
}

func TestConcurrentAddsGetDistinctIDs(t *testing.T) {
	s := newTestStore(t)
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AddBranch(&models.Branch{Name: "b", Address: "a", City: "c"}); err != nil {
				t.Errorf("AddBranch: %v", err)
			}
		}()
	}
	wg.Wait()

	branches, _ := s.GetBranches()
	seen := map[int64]bool{}
	for _, b := range branches {
		if seen[b.ID] {
			t.Fatalf("duplicate id %d", b.ID)
		}
		seen[b.ID] = true
	}
	if len(branches) != 3+n {
		t.Fatalf("got %d branches, want %d", len(branches), 3+n)
	}
}

func TestCorruptCollectionReportsError(t *testing.T) {
	kv := NewMemoryKV()
	_ = kv.Set(KeyEvents, []byte("{not json"))
	s := New(kv, Options{})
	if _, err := s.GetEvents(); err == nil {
		t.Fatal("expected decode error")
	}
}

// failingKV refuses writes to one key
type failingKV struct {
	*MemoryKV
	failKey string
}

func (kv *failingKV) Set(key string, value []byte) error {
	if key == kv.failKey {
		return errors.New("disk full")
	}
	return kv.MemoryKV.Set(key, value)
}

func addBranchWithEvent(t *testing.T, s *Store) (*models.Branch, *models.Event) {
	t.Helper()
	b, err := s.AddBranch(&models.Branch{Name: "Pop-up", Address: "1 Hall Road", City: "Durban", IsActive: true})
	if err != nil {
		t.Fatalf("AddBranch: %v", err)
	}
	e, err := s.AddEvent(&models.Event{Title: "Opening", EventDate: fixedNow.AddDate(0, -1, 0), Status: models.EventStatusCompleted, BranchID: &b.ID})
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	return b, e
}

func TestPurgeBranchDetachesEvents(t *testing.T) {
	s := newTestStore(t)
	b, e := addBranchWithEvent(t, s)

	detached, err := s.PurgeBranch(b.ID, nil)
	if err != nil {
		t.Fatalf("PurgeBranch: %v", err)
	}
	if detached != 1 {
		t.Fatalf("detached = %d, want 1", detached)
	}
	if _, err := s.GetBranch(b.ID); !errors.Is(err, apperrors.ErrBranchNotFound) {
		t.Fatalf("branch still present: %v", err)
	}
	got, _ := s.GetEvent(e.ID)
	if got.BranchID != nil || got.UpdatedAt == nil {
		t.Fatalf("event not detached: %+v", got)
	}

	if _, err := s.PurgeBranch(404, nil); !errors.Is(err, apperrors.ErrBranchNotFound) {
		t.Fatalf("missing branch: got %v", err)
	}
}

func TestPurgeBranchRefusalWritesNothing(t *testing.T) {
	s := newTestStore(t)
	before, _ := s.Dump()

	refused := errors.New("refused")
	var seenPastors, seenEvents int
	_, err := s.PurgeBranch(1, func(pastors []*models.Pastor, events []*models.Event) error {
		seenPastors, seenEvents = len(pastors), len(events)
		return refused
	})
	if !errors.Is(err, refused) {
		t.Fatalf("expected refusal, got %v", err)
	}
	if seenPastors != 2 || seenEvents != 3 {
		t.Errorf("allow saw %d pastors and %d events, want 2 and 3", seenPastors, seenEvents)
	}
	after, _ := s.Dump()
	if !reflect.DeepEqual(before, after) {
		t.Fatal("refused purge changed the store")
	}
}

func TestPurgeBranchRestoresEventsWhenDeleteFails(t *testing.T) {
	kv := &failingKV{MemoryKV: NewMemoryKV()}
	s := New(kv, Options{Now: func() time.Time { return fixedNow }})
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	b, e := addBranchWithEvent(t, s)

	kv.failKey = KeyBranches
	if _, err := s.PurgeBranch(b.ID, nil); err == nil {
		t.Fatal("expected the branch write to fail")
	}
	got, _ := s.GetEvent(e.ID)
	if got.BranchID == nil || *got.BranchID != b.ID {
		t.Fatalf("event lost its branch after a failed purge: %+v", got)
	}
	if _, err := s.GetBranch(b.ID); err != nil {
		t.Fatalf("branch should still exist: %v", err)
	}
}
