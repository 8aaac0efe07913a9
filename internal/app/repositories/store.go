package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/campulist/campulist/internal/app/models"
	"github.com/google/uuid"
)

// Clock returns the current instant. Tests inject a deterministic one.
type Clock func() time.Time

// Dataset is the full contents of a store, used for seeding and export.
type Dataset struct {
	Campuses     []models.Campus      `yaml:"campuses"`
	Users        []models.User        `yaml:"users"`
	Posts        []models.Post        `yaml:"posts"`
	ChatThreads  []models.ChatThread  `yaml:"chat_threads"`
	ChatMessages []models.ChatMessage `yaml:"chat_messages"`
	Reports      []models.Report      `yaml:"reports"`
}

// collection keeps records in insertion order with an id index.
type collection[T any] struct {
	items []*T
	index map[string]*T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{index: make(map[string]*T)}
}

func (c *collection[T]) get(id string) *T {
	return c.index[id]
}

func (c *collection[T]) prepend(id string, item *T) {
	c.items = append([]*T{item}, c.items...)
	c.index[id] = item
}

func (c *collection[T]) append(id string, item *T) {
	c.items = append(c.items, item)
	c.index[id] = item
}

// Store is the in-memory arena that owns every entity. All access goes
// through View or Update, which hold the store lock for the whole callback,
// so a read-then-mutate sequence inside one Update is atomic.
type Store struct {
	mu    sync.RWMutex
	clock Clock
	newID func() string

	campuses *collection[models.Campus]
	users    *collection[models.User]
	posts    *collection[models.Post]
	threads  *collection[models.ChatThread]
	messages *collection[models.ChatMessage]
	reports  *collection[models.Report]
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces the wall clock.
func WithClock(clock Clock) StoreOption {
	return func(s *Store) { s.clock = clock }
}

// WithIDGenerator replaces uuid.NewString for new record ids.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		clock:    func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		campuses: newCollection[models.Campus](),
		users:    newCollection[models.User](),
		posts:    newCollection[models.Post](),
		threads:  newCollection[models.ChatThread](),
		messages: newCollection[models.ChatMessage](),
		reports:  newCollection[models.Report](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load appends every record of ds in order. Duplicate ids are rejected.
func (s *Store) Load(ds Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range ds.Campuses {
		c := ds.Campuses[i]
		if err := loadInto(s.campuses, c.ID, &c, "campus"); err != nil {
			return err
		}
	}
	for i := range ds.Users {
		u := ds.Users[i].Clone()
		if err := loadInto(s.users, u.ID, u, "user"); err != nil {
			return err
		}
	}
	for i := range ds.Posts {
		p := ds.Posts[i].Clone()
		if err := loadInto(s.posts, p.ID, p, "post"); err != nil {
			return err
		}
	}
	for i := range ds.ChatThreads {
		t := ds.ChatThreads[i].Clone()
		if err := loadInto(s.threads, t.ID, t, "chat thread"); err != nil {
			return err
		}
	}
	for i := range ds.ChatMessages {
		m := ds.ChatMessages[i].Clone()
		if err := loadInto(s.messages, m.ID, m, "chat message"); err != nil {
			return err
		}
	}
	for i := range ds.Reports {
		r := ds.Reports[i].Clone()
		if err := loadInto(s.reports, r.ID, r, "report"); err != nil {
			return err
		}
	}
	return nil
}

func loadInto[T any](c *collection[T], id string, item *T, kind string) error {
	if id == "" {
		return fmt.Errorf("%s without id", kind)
	}
	if c.get(id) != nil {
		return fmt.Errorf("duplicate %s id %q", kind, id)
	}
	c.append(id, item)
	return nil
}

// Snapshot copies the current contents, soft-deleted records included.
func (s *Store) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ds Dataset
	for _, c := range s.campuses.items {
		ds.Campuses = append(ds.Campuses, *c)
	}
	for _, u := range s.users.items {
		ds.Users = append(ds.Users, *u.Clone())
	}
	for _, p := range s.posts.items {
		ds.Posts = append(ds.Posts, *p.Clone())
	}
	for _, t := range s.threads.items {
		ds.ChatThreads = append(ds.ChatThreads, *t.Clone())
	}
	for _, m := range s.messages.items {
		ds.ChatMessages = append(ds.ChatMessages, *m.Clone())
	}
	for _, r := range s.reports.items {
		ds.Reports = append(ds.Reports, *r.Clone())
	}
	return ds
}

// View runs fn under the read lock.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{store: s, now: s.clock()})
}

// Update runs fn under the write lock. Every repository mutation happens here.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{store: s, now: s.clock(), writable: true})
}

// Tx is the view of the arena handed to View and Update callbacks. Pointers
// obtained from a Tx must not escape the callback; callers return clones.
type Tx struct {
	store    *Store
	now      time.Time
	writable bool
}

// Now is fixed for the lifetime of the transaction.
func (tx *Tx) Now() time.Time { return tx.now }

// NewID returns a fresh record id.
func (tx *Tx) NewID() string { return tx.store.newID() }

func (tx *Tx) mustWrite() {
	if !tx.writable {
		panic("repositories: write in read-only transaction")
	}
}

func (tx *Tx) Campus(id string) *models.Campus { return tx.store.campuses.get(id) }
func (tx *Tx) Campuses() []*models.Campus { return tx.store.campuses.items }
func (tx *Tx) User(id string) *models.User { return tx.store.users.get(id) }
func (tx *Tx) Users() []*models.User { return tx.store.users.items }
func (tx *Tx) Post(id string) *models.Post { return tx.store.posts.get(id) }
func (tx *Tx) Posts() []*models.Post { return tx.store.posts.items }
func (tx *Tx) Thread(id string) *models.ChatThread { return tx.store.threads.get(id) }
func (tx *Tx) Threads() []*models.ChatThread { return tx.store.threads.items }
func (tx *Tx) Messages() []*models.ChatMessage { return tx.store.messages.items }
func (tx *Tx) Report(id string) *models.Report { return tx.store.reports.get(id) }
func (tx *Tx) Reports() []*models.Report { return tx.store.reports.items }

// InsertPost puts p at the front of the collection.
func (tx *Tx) InsertPost(p *models.Post) {
	tx.mustWrite()
	tx.store.posts.prepend(p.ID, p)
}

// InsertThread puts t at the front of the collection.
func (tx *Tx) InsertThread(t *models.ChatThread) {
	tx.mustWrite()
	tx.store.threads.prepend(t.ID, t)
}

// AppendMessage adds m at the end, keeping messages in send order.
func (tx *Tx) AppendMessage(m *models.ChatMessage) {
	tx.mustWrite()
	tx.store.messages.append(m.ID, m)
}

// InsertReport puts r at the front of the collection.
func (tx *Tx) InsertReport(r *models.Report) {
	tx.mustWrite()
	tx.store.reports.prepend(r.ID, r)
}
