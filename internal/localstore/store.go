package localstore

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
	"github.com/voiceofchrist/churchsite/internal/seed"
)

// Collection keys
const (
	KeyBranches    = "voc_branches"
	KeyPastors     = "voc_pastors"
	KeyEvents      = "voc_events"
	KeyChurchInfo  = "voc_church_info"
	KeyHighlights  = "voc_highlights"
	KeyTestimonies = "voc_testimonies"
)

// CollectionKeys lists every collection key in initialization order
var CollectionKeys = []string{KeyBranches, KeyPastors, KeyEvents, KeyChurchInfo, KeyHighlights, KeyTestimonies}

// ErrNotFound is wrapped by every not-found error the store returns
var ErrNotFound = apperrors.ErrResourceNotFound

// Options configures a Store
type Options struct {
	// Now stamps createdAt/updatedAt and seeds testimony ids. Defaults to time.Now.
	Now func() time.Time
	// Defaults builds the dataset Initialize writes. Defaults to seed.Default.
	Defaults func(now time.Time) *seed.Dataset
}

// Store is a key-value backed emulation of the site database. Every
// collection is one JSON document under a fixed key.
//
// All read-modify-write sequences run under a single mutex, so concurrent
// adds always receive distinct ids. Two full-record updates of the same id
// still resolve as last write wins.
type Store struct {
	kv       KV
	mu       sync.Mutex
	now      func() time.Time
	defaults func(now time.Time) *seed.Dataset
}

// New creates a Store over kv. It does not write anything; call Initialize.
func New(kv KV, opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Defaults == nil {
		opts.Defaults = seed.Default
	}
	return &Store{kv: kv, now: opts.Now, defaults: opts.Defaults}
}

// Now returns the store clock reading
func (s *Store) Now() time.Time {
	return s.now()
}

// Initialize writes the default dataset into every collection whose key is
// absent. Collections that already exist, even empty ones, are left alone.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.defaults(s.now())
	values := map[string]interface{}{
		KeyBranches:    data.Branches,
		KeyPastors:     data.Pastors,
		KeyEvents:      data.Events,
		KeyChurchInfo:  data.ChurchInfo,
		KeyHighlights:  data.Highlights,
		KeyTestimonies: data.Testimonies,
	}

	for _, key := range CollectionKeys {
		_, exists, err := s.kv.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if exists {
			continue
		}
		raw, err := json.Marshal(values[key])
		if err != nil {
			return fmt.Errorf("failed to encode default %s: %w", key, err)
		}
		if err := s.kv.Set(key, raw); err != nil {
			return fmt.Errorf("failed to write default %s: %w", key, err)
		}
		logger.Info().Str("collection", key).Msg("Seeded local collection with default data")
	}
	return nil
}

// Reset removes every collection key. A following Initialize restores the defaults.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range CollectionKeys {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}

// Dump returns the raw JSON of every present collection
func (s *Store) Dump() (map[string]json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]json.RawMessage, len(CollectionKeys))
	for _, key := range CollectionKeys {
		raw, ok, err := s.kv.Get(key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if ok {
			out[key] = json.RawMessage(raw)
		}
	}
	return out, nil
}

// collection describes how one entity slice is stored.
type collection[T any] struct {
	key      string
	notFound error
	idOf     func(*T) int64
	setID    func(*T, int64)
	strip    func(*T) // drops joined relations before persisting
}

var (
	branchCollection = collection[models.Branch]{
		key:      KeyBranches,
		notFound: apperrors.ErrBranchNotFound,
		idOf:     func(b *models.Branch) int64 { return b.ID },
		setID:    func(b *models.Branch, id int64) { b.ID = id },
		strip:    func(b *models.Branch) { b.Pastors, b.Events = nil, nil },
	}
	pastorCollection = collection[models.Pastor]{
		key:      KeyPastors,
		notFound: apperrors.ErrPastorNotFound,
		idOf:     func(p *models.Pastor) int64 { return p.ID },
		setID:    func(p *models.Pastor, id int64) { p.ID = id },
		strip:    func(p *models.Pastor) { p.Branch = nil },
	}
	eventCollection = collection[models.Event]{
		key:      KeyEvents,
		notFound: apperrors.ErrEventNotFound,
		idOf:     func(e *models.Event) int64 { return e.ID },
		setID:    func(e *models.Event, id int64) { e.ID = id },
		strip:    func(e *models.Event) { e.Branch, e.BranchName = nil, nil },
	}
	highlightCollection = collection[models.Highlight]{
		key:      KeyHighlights,
		notFound: apperrors.ErrHighlightNotFound,
		idOf:     func(h *models.Highlight) int64 { return h.ID },
		setID:    func(h *models.Highlight, id int64) { h.ID = id },
	}
	testimonyCollection = collection[models.Testimony]{
		key:      KeyTestimonies,
		notFound: apperrors.ErrTestimonyNotFound,
		idOf:     func(t *models.Testimony) int64 { return t.ID },
		setID:    func(t *models.Testimony, id int64) { t.ID = id },
	}
)

// load decodes a collection. Dates revive through time.Time's JSON decoding.
// An absent key is an empty collection.
func load[T any](kv KV, c collection[T]) ([]*T, error) {
	raw, ok, err := kv.Get(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}
	if !ok || len(raw) == 0 {
		return []*T{}, nil
	}
	var decoded []*T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	items := make([]*T, 0, len(decoded))
	for _, it := range decoded {
		if it != nil {
			items = append(items, it)
		}
	}
	return items, nil
}

func save[T any](kv KV, c collection[T], items []*T) error {
	if c.strip != nil {
		for _, it := range items {
			c.strip(it)
		}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := kv.Set(c.key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}
	return nil
}

func indexOf[T any](c collection[T], items []*T, id int64) int {
	for i, it := range items {
		if c.idOf(it) == id {
			return i
		}
	}
	return -1
}

// nextID is one more than the largest id present, 1 for an empty collection.
func nextID[T any](c collection[T], items []*T) int64 {
	var max int64
	for _, it := range items {
		if id := c.idOf(it); id > max {
			max = id
		}
	}
	return max + 1
}

func getAll[T any](s *Store, c collection[T]) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load(s.kv, c)
}

func getOne[T any](s *Store, c collection[T], id int64) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := load(s.kv, c)
	if err != nil {
		return nil, err
	}
	idx := indexOf(c, items, id)
	if idx < 0 {
		return nil, c.notFound
	}
	return items[idx], nil
}

// insert appends a copy of item under a freshly assigned id.
func insert[T any](s *Store, c collection[T], item *T, assign func(items []*T, now time.Time) int64, stamp func(*T, time.Time)) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := load(s.kv, c)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cp := *item
	if assign == nil {
		c.setID(&cp, nextID(c, items))
	} else {
		c.setID(&cp, assign(items, now))
	}
	if stamp != nil {
		stamp(&cp, now)
	}

	items = append(items, &cp)
	if err := save(s.kv, c, items); err != nil {
		return nil, err
	}
	return &cp, nil
}

// replace overwrites the record with id by a copy of item, keeping the id.
// merge may carry fields over from the stored record.
func replace[T any](s *Store, c collection[T], id int64, item *T, merge func(stored, next *T, now time.Time)) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := load(s.kv, c)
	if err != nil {
		return nil, err
	}
	idx := indexOf(c, items, id)
	if idx < 0 {
		return nil, c.notFound
	}

	cp := *item
	c.setID(&cp, id)
	if merge != nil {
		merge(items[idx], &cp, s.now())
	}
	items[idx] = &cp

	if err := save(s.kv, c, items); err != nil {
		return nil, err
	}
	return &cp, nil
}

// remove deletes the record with id, keeping the others in order.
func remove[T any](s *Store, c collection[T], id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := load(s.kv, c)
	if err != nil {
		return err
	}
	idx := indexOf(c, items, id)
	if idx < 0 {
		return c.notFound
	}
	items = append(items[:idx], items[idx+1:]...)
	return save(s.kv, c, items)
}

func stampUpdated(now time.Time) *time.Time {
	t := now
	return &t
}

// Branches

func (s *Store) GetBranches() ([]*models.Branch, error) {
	return getAll(s, branchCollection)
}

func (s *Store) GetBranch(id int64) (*models.Branch, error) {
	return getOne(s, branchCollection, id)
}

func (s *Store) AddBranch(b *models.Branch) (*models.Branch, error) {
	return insert(s, branchCollection, b, nil, nil)
}

func (s *Store) UpdateBranch(id int64, b *models.Branch) (*models.Branch, error) {
	return replace(s, branchCollection, id, b, nil)
}

func (s *Store) DeleteBranch(id int64) error {
	return remove(s, branchCollection, id)
}

// PurgeBranch removes a branch and makes its events church-wide in one
// critical section. allow sees the branch's pastors and events and may
// refuse the purge. It returns the number of detached events.
func (s *Store) PurgeBranch(id int64, allow func(pastors []*models.Pastor, events []*models.Event) error) (detached int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	branches, err := load(s.kv, branchCollection)
	if err != nil {
		return 0, err
	}
	idx := indexOf(branchCollection, branches, id)
	if idx < 0 {
		return 0, branchCollection.notFound
	}
	pastors, err := load(s.kv, pastorCollection)
	if err != nil {
		return 0, err
	}
	events, err := load(s.kv, eventCollection)
	if err != nil {
		return 0, err
	}

	var branchPastors []*models.Pastor
	for _, p := range pastors {
		if p.BranchID == id {
			branchPastors = append(branchPastors, p)
		}
	}
	var branchEvents []*models.Event
	for _, e := range events {
		if e.BranchID != nil && *e.BranchID == id {
			branchEvents = append(branchEvents, e)
		}
	}
	if allow != nil {
		if err := allow(branchPastors, branchEvents); err != nil {
			return 0, err
		}
	}

	if len(branchEvents) > 0 {
		var previous []byte
		previous, _, err = s.kv.Get(KeyEvents)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", KeyEvents, err)
		}
		now := s.now()
		for _, e := range branchEvents {
			e.BranchID = nil
			e.UpdatedAt = stampUpdated(now)
		}
		if err = save(s.kv, eventCollection, events); err != nil {
			return 0, err
		}
		defer func() {
			if err != nil {
				// put the events back so the branch keeps them
				if restoreErr := s.kv.Set(KeyEvents, previous); restoreErr != nil {
					logger.Error().Err(restoreErr).Int64("branchID", id).Msg("Failed to restore events after aborted branch purge")
				}
			}
		}()
	}

	branches = append(branches[:idx], branches[idx+1:]...)
	if err = save(s.kv, branchCollection, branches); err != nil {
		return 0, err
	}
	return len(branchEvents), nil
}

// Pastors

func (s *Store) GetPastors() ([]*models.Pastor, error) {
	return getAll(s, pastorCollection)
}

func (s *Store) GetPastor(id int64) (*models.Pastor, error) {
	return getOne(s, pastorCollection, id)
}

func (s *Store) AddPastor(p *models.Pastor) (*models.Pastor, error) {
	return insert(s, pastorCollection, p, nil, nil)
}

func (s *Store) UpdatePastor(id int64, p *models.Pastor) (*models.Pastor, error) {
	return replace(s, pastorCollection, id, p, nil)
}

func (s *Store) DeletePastor(id int64) error {
	return remove(s, pastorCollection, id)
}

// Events

func (s *Store) GetEvents() ([]*models.Event, error) {
	return getAll(s, eventCollection)
}

func (s *Store) GetEvent(id int64) (*models.Event, error) {
	return getOne(s, eventCollection, id)
}

// AddEvent stores a new event stamped with createdAt
func (s *Store) AddEvent(e *models.Event) (*models.Event, error) {
	return insert(s, eventCollection, e, nil, func(e *models.Event, now time.Time) {
		e.CreatedAt = now
		e.UpdatedAt = nil
	})
}

// UpdateEvent replaces an event, keeping its createdAt and stamping updatedAt
func (s *Store) UpdateEvent(id int64, e *models.Event) (*models.Event, error) {
	return replace(s, eventCollection, id, e, func(stored, next *models.Event, now time.Time) {
		next.CreatedAt = stored.CreatedAt
		next.UpdatedAt = stampUpdated(now)
	})
}

func (s *Store) DeleteEvent(id int64) error {
	return remove(s, eventCollection, id)
}

// Highlights

func (s *Store) GetHighlights() ([]*models.Highlight, error) {
	return getAll(s, highlightCollection)
}

func (s *Store) GetHighlight(id int64) (*models.Highlight, error) {
	return getOne(s, highlightCollection, id)
}

// AddHighlight stores a new highlight stamped with createdAt
func (s *Store) AddHighlight(h *models.Highlight) (*models.Highlight, error) {
	return insert(s, highlightCollection, h, nil, func(h *models.Highlight, now time.Time) {
		h.CreatedAt = now
		h.UpdatedAt = nil
	})
}

// UpdateHighlight replaces a highlight, keeping its createdAt and stamping updatedAt
func (s *Store) UpdateHighlight(id int64, h *models.Highlight) (*models.Highlight, error) {
	return replace(s, highlightCollection, id, h, func(stored, next *models.Highlight, now time.Time) {
		next.CreatedAt = stored.CreatedAt
		next.UpdatedAt = stampUpdated(now)
	})
}

func (s *Store) DeleteHighlight(id int64) error {
	return remove(s, highlightCollection, id)
}

// Testimonies

func (s *Store) GetTestimonies() ([]*models.Testimony, error) {
	return getAll(s, testimonyCollection)
}

func (s *Store) GetTestimony(id int64) (*models.Testimony, error) {
	return getOne(s, testimonyCollection, id)
}

// AddTestimony stores a testimony under a Unix-millisecond id, bumped
// past any id already taken, and stamps createdAt.
func (s *Store) AddTestimony(t *models.Testimony) (*models.Testimony, error) {
	return insert(s, testimonyCollection, t, timestampID, func(t *models.Testimony, now time.Time) {
		t.CreatedAt = now
		t.UpdatedAt = nil
	})
}

func timestampID(items []*models.Testimony, now time.Time) int64 {
	taken := make(map[int64]struct{}, len(items))
	for _, it := range items {
		taken[it.ID] = struct{}{}
	}
	id := now.UnixMilli()
	if id < 1 {
		id = 1
	}
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id++
	}
}

// UpdateTestimony merges patch into the stored testimony and stamps updatedAt
func (s *Store) UpdateTestimony(id int64, patch models.TestimonyPatch) (*models.Testimony, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := load(s.kv, testimonyCollection)
	if err != nil {
		return nil, err
	}
	idx := indexOf(testimonyCollection, items, id)
	if idx < 0 {
		return nil, testimonyCollection.notFound
	}

	patch.Apply(items[idx])
	items[idx].UpdatedAt = stampUpdated(s.now())

	if err := save(s.kv, testimonyCollection, items); err != nil {
		return nil, err
	}
	updated := *items[idx]
	return &updated, nil
}

func (s *Store) DeleteTestimony(id int64) error {
	return remove(s, testimonyCollection, id)
}

// Church info

// GetChurchInfo returns the singleton church info
func (s *Store) GetChurchInfo() (*models.ChurchInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok, err := s.kv.Get(KeyChurchInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", KeyChurchInfo, err)
	}
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, apperrors.ErrChurchInfoNotFound
	}
	info := &models.ChurchInfo{}
	if err := json.Unmarshal(raw, info); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", KeyChurchInfo, err)
	}
	return info, nil
}

// UpdateChurchInfo replaces the church info and stamps updatedAt. A zero id
// keeps the stored id, or 1 when nothing is stored yet.
func (s *Store) UpdateChurchInfo(info *models.ChurchInfo) (*models.ChurchInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *info
	if cp.ID == 0 {
		cp.ID = 1
		if raw, ok, err := s.kv.Get(KeyChurchInfo); err == nil && ok {
			var stored models.ChurchInfo
			if json.Unmarshal(raw, &stored) == nil && stored.ID != 0 {
				cp.ID = stored.ID
			}
		}
	}
	cp.UpdatedAt = s.now()

	raw, err := json.Marshal(&cp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", KeyChurchInfo, err)
	}
	if err := s.kv.Set(KeyChurchInfo, raw); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", KeyChurchInfo, err)
	}
	return &cp, nil
}
