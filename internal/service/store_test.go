package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/skillswap/skillswap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store with a clock that advances one second per action
// and sequential ids ("user-1", "msg-2", ...).
func newTestStore(initial *domain.AppState, opts ...StoreOption) *Store {
	now := time.UnixMilli(1_700_000_000_000)
	seq := 0
	base := []StoreOption{
		WithClock(func() time.Time {
			now = now.Add(time.Second)
			return now
		}),
		WithIDGenerator(func(prefix string) string {
			seq++
			return fmt.Sprintf("%s-%d", prefix, seq)
		}),
	}
	return NewStore(initial, append(base, opts...)...)
}

// seedState alice and bob with one service each, carol without services.
func seedState() *domain.AppState {
	st := domain.NewAppState()
	st.Users = []domain.User{
		{ID: "u-alice", FullName: "Alice Souza", Email: "alice@example.com", Password: "secret1", City: "Recife", Profession: "Yoga Teacher"},
		{ID: "u-bob", FullName: "Bob Lima", Email: "bob@example.com", Password: "secret2", City: "São Paulo", Profession: "Accountant"},
		{ID: "u-carol", FullName: "Carol Dias", Email: "carol@example.com", Password: "", City: "recife", Profession: "Developer"},
	}
	st.Services = []domain.Service{
		{ID: "s-yoga", UserID: "u-alice", ServiceName: "Yoga Lessons", Description: "Morning classes", Category: domain.ServiceCategories[0], OfferedByFullName: "Alice Souza", OfferedByProfession: "Yoga Teacher"},
		{ID: "s-tax", UserID: "u-bob", ServiceName: "Tax Filing", Description: "Annual declaration", Category: domain.ServiceCategories[6], OfferedByFullName: "Bob Lima", OfferedByProfession: "Accountant"},
	}
	return st
}

func loginAs(t *testing.T, s *Store, email, password string) {
	t.Helper()
	_, err := s.Dispatch(Login{Email: email, Password: password})
	require.NoError(t, err)
}

type recordingSubscriber struct {
	commits []*Commit
}

func (r *recordingSubscriber) OnCommit(c *Commit) {
	r.commits = append(r.commits, c)
}

type failingAction struct{}

func (failingAction) Name() string { return "failing" }

func (failingAction) Apply(tx *Tx) error {
	tx.State.Users = append(tx.State.Users, domain.User{ID: "ghost", Email: "ghost@example.com"})
	tx.Touch(domain.SliceUsers)
	tx.SetPage(domain.PageHowItWorks)
	return errors.New("boom")
}

func TestStore_RejectedActionLeavesStateUntouched(t *testing.T) {
	s := newTestStore(seedState())
	sub := &recordingSubscriber{}
	s.Subscribe(sub)
	before := s.Snapshot()

	outcome, err := s.Dispatch(failingAction{})

	assert.Error(t, err)
	assert.Nil(t, outcome)
	assert.Same(t, before, s.Snapshot())
	assert.Len(t, s.Snapshot().Users, 3)
	assert.Equal(t, domain.PageLanding, s.Snapshot().Page)
	assert.Empty(t, sub.commits)
}

func TestStore_CommitReportsTouchedSlices(t *testing.T) {
	s := newTestStore(seedState())
	sub := &recordingSubscriber{}
	s.Subscribe(sub)

	outcome, err := s.Dispatch(Login{Email: "alice@example.com", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, domain.PageDashboard, outcome.Page)
	assert.Equal(t, "u-alice", outcome.Result)
	require.Len(t, sub.commits, 1)
	assert.Equal(t, "login", sub.commits[0].Action)
	assert.Equal(t, []domain.Slice{domain.SliceCurrentPage, domain.SliceCurrentUser}, sub.commits[0].Slices)
}

func TestStore_SnapshotsAreIndependent(t *testing.T) {
	s := newTestStore(seedState())
	first := s.Snapshot()

	loginAs(t, s, "alice@example.com", "secret1")

	assert.Nil(t, first.CurrentUser)
	assert.NotNil(t, s.Snapshot().CurrentUser)
}

func TestStore_RestoreRedirectIsFlushed(t *testing.T) {
	st := seedState()
	st.Page = domain.PageChat
	st.ActiveChatSessionID = "u-alice_u-bob"

	s := newTestStore(st)
	sub := &recordingSubscriber{}
	s.Subscribe(sub)

	assert.Equal(t, domain.PageLogin, s.Snapshot().Page)
	assert.Empty(t, s.Snapshot().ActiveChatSessionID)

	s.Flush()
	s.Flush()

	require.Len(t, sub.commits, 1)
	assert.Equal(t, "restore", sub.commits[0].Action)
	assert.Contains(t, sub.commits[0].Slices, domain.SliceCurrentPage)
	assert.Contains(t, sub.commits[0].Slices, domain.SliceActiveChatSessionID)
}

func TestStore_NilInitialState(t *testing.T) {
	s := NewStore(nil)
	assert.Equal(t, domain.PageLanding, s.Snapshot().Page)
	assert.Empty(t, s.Snapshot().Users)
}
