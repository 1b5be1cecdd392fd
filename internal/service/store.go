package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/skillswap/skillswap/internal/domain"
)

// maxGuardPasses bounds guard re-evaluation after one action
const maxGuardPasses = 4

// Action discrete state transition dispatched through Store
type Action interface {
	Name() string
	// Apply mutates tx.State. Returning an error discards every change made so far.
	Apply(tx *Tx) error
}

// Commit describes one committed action, delivered to subscribers in order
type Commit struct {
	Action    string
	Slices    []domain.Slice
	State     *domain.AppState // read-only
	Redirects []domain.Page
}

// Subscriber observes committed actions (persistence, push, metrics)
type Subscriber interface {
	OnCommit(c *Commit)
}

// SubscriberFunc adapts a function to Subscriber
type SubscriberFunc func(c *Commit)

// OnCommit calls f(c)
func (f SubscriberFunc) OnCommit(c *Commit) { f(c) }

// Options business rules applied by actions
type Options struct {
	MinPasswordLength int
	MaxImageBytes     int64
}

// DefaultOptions rules of the original registration and profile forms
func DefaultOptions() Options {
	return Options{MinPasswordLength: 6, MaxImageBytes: 2 << 20}
}

// Outcome result of a dispatched action
type Outcome struct {
	Page      domain.Page
	Redirects []domain.Page
	Result    interface{}
}

// Tx working copy of the state for one action
type Tx struct {
	State *domain.AppState

	now   time.Time
	newID func(prefix string) string
	opts  Options
	log   zerolog.Logger
	dirty domain.SliceSet

	result    interface{}
	redirects []domain.Page
}

// Now action timestamp in epoch milliseconds
func (tx *Tx) Now() int64 {
	return tx.now.UnixMilli()
}

// NewID returns a fresh id with the given prefix
func (tx *Tx) NewID(prefix string) string {
	return tx.newID(prefix)
}

// Touch marks slices for persistence
func (tx *Tx) Touch(slices ...domain.Slice) {
	tx.dirty.Add(slices...)
}

// SetPage navigates to p
func (tx *Tx) SetPage(p domain.Page) {
	if tx.State.Page != p {
		tx.State.Page = p
	}
	tx.Touch(domain.SliceCurrentPage)
}

// SetResult attaches an action-specific result to the outcome
func (tx *Tx) SetResult(v interface{}) {
	tx.result = v
}

// Store owns the application state and serializes every transition.
type Store struct {
	mu          sync.Mutex
	state       *domain.AppState
	subscribers []Subscriber
	opts        Options
	clock       func() time.Time
	newID       func(prefix string) string
	log         zerolog.Logger
	restored    *Commit
}

// StoreOption customizes a Store
type StoreOption func(*Store)

// WithClock replaces time.Now
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) { s.clock = clock }
}

// WithIDGenerator replaces the uuid based id generator
func WithIDGenerator(gen func(prefix string) string) StoreOption {
	return func(s *Store) { s.newID = gen }
}

// WithOptions sets the business rules
func WithOptions(opts Options) StoreOption {
	return func(s *Store) { s.opts = opts }
}

// WithLogger sets the store logger
func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// NewStore creates a Store around initial (usually StateRepository.Load()).
// The guard is evaluated once so that a restored state is consistent.
func NewStore(initial *domain.AppState, opts ...StoreOption) *Store {
	if initial == nil {
		initial = domain.NewAppState()
	}
	s := &Store{
		state: initial,
		opts:  DefaultOptions(),
		clock: time.Now,
		newID: func(prefix string) string { return prefix + "-" + uuid.NewString() },
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	tx := s.begin()
	settle(tx)
	s.state = tx.State
	s.restored = &Commit{Action: "restore", Slices: tx.dirty.Ordered(), State: s.state, Redirects: tx.redirects}
	return s
}

// Flush delivers the changes made by the guard while restoring to the subscribers
// registered so far. Later calls are no-ops.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restored == nil {
		return
	}
	c := s.restored
	s.restored = nil
	if len(c.Slices) == 0 {
		return
	}
	for _, sub := range s.subscribers {
		sub.OnCommit(c)
	}
}

// Subscribe registers sub for every following commit
func (s *Store) Subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// Snapshot returns the current committed state. Callers must not mutate it.
func (s *Store) Snapshot() *domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a, runs the navigation guard and notifies subscribers.
// On error the state is left untouched.
func (s *Store) Dispatch(a Action) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.begin()
	if err := a.Apply(tx); err != nil {
		actionsTotal.WithLabelValues(a.Name(), "rejected").Inc()
		s.log.Debug().Err(err).Str("action", a.Name()).Msg("action rejected")
		return nil, err
	}
	settle(tx)

	s.state = tx.State
	actionsTotal.WithLabelValues(a.Name(), "ok").Inc()
	for _, p := range tx.redirects {
		guardRedirectsTotal.WithLabelValues(p.String()).Inc()
	}

	commit := &Commit{
		Action:    a.Name(),
		Slices:    tx.dirty.Ordered(),
		State:     s.state,
		Redirects: tx.redirects,
	}
	for _, sub := range s.subscribers {
		sub.OnCommit(commit)
	}

	s.log.Debug().
		Str("action", a.Name()).
		Str("page", s.state.Page.String()).
		Int("slices", len(commit.Slices)).
		Msg("action committed")

	return &Outcome{Page: s.state.Page, Redirects: tx.redirects, Result: tx.result}, nil
}

func (s *Store) begin() *Tx {
	return &Tx{
		State: s.state.Clone(),
		now:   s.clock(),
		newID: s.newID,
		opts:  s.opts,
		log:   s.log,
		dirty: domain.SliceSet{},
	}
}

// settle re-evaluates the guard until it neither redirects nor produces effects.
func settle(tx *Tx) {
	for i := 0; i < maxGuardPasses; i++ {
		page, effects := Guard(tx.State)
		changed := false
		for _, e := range effects {
			if applyEffect(tx, e) {
				changed = true
			}
		}
		if page != tx.State.Page {
			tx.SetPage(page)
			tx.redirects = append(tx.redirects, page)
			changed = true
		}
		if !changed {
			return
		}
	}
	tx.log.Warn().Str("page", tx.State.Page.String()).Msg("navigation guard did not settle")
}
