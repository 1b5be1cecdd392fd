package service

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Load() *domain.AppState {
	args := m.Called()
	return args.Get(0).(*domain.AppState)
}

func (m *MockStateRepository) Save(st *domain.AppState, slices []domain.Slice) error {
	args := m.Called(st, slices)
	return args.Error(0)
}

func TestPersistenceSubscriber_SavesTouchedSlices(t *testing.T) {
	repo := new(MockStateRepository)
	repo.On("Save", mock.Anything, []domain.Slice{domain.SliceCurrentPage, domain.SliceCurrentUser}).Return(nil)

	s := newTestStore(seedState())
	s.Subscribe(NewPersistenceSubscriber(repo, zerolog.Nop()))
	loginAs(t, s, "alice@example.com", "secret1")

	repo.AssertExpectations(t)
}

func TestPersistenceSubscriber_FailureKeepsCommit(t *testing.T) {
	repo := new(MockStateRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	s := newTestStore(seedState())
	s.Subscribe(NewPersistenceSubscriber(repo, zerolog.Nop()))
	loginAs(t, s, "alice@example.com", "secret1")

	assert.NotNil(t, s.Snapshot().CurrentUser)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestPersistenceSubscriber_SkipsEmptyCommits(t *testing.T) {
	repo := new(MockStateRepository)
	sub := NewPersistenceSubscriber(repo, zerolog.Nop())

	sub.OnCommit(&Commit{Action: "noop", State: domain.NewAppState()})

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPersistence_RestartRestoresSession(t *testing.T) {
	kv := repository.NewMemoryKV()
	repo := repository.NewStateRepository(kv, zerolog.Nop())
	require.NoError(t, repo.Save(seedState(), domain.AllSlices))

	s := newTestStore(repo.Load())
	s.Subscribe(NewPersistenceSubscriber(repo, zerolog.Nop()))
	loginAs(t, s, "alice@example.com", "secret1")
	_, err := s.Dispatch(StartConversation{ReceiverID: "u-bob", ServiceID: "s-tax", Text: "Hi Bob"})
	require.NoError(t, err)

	restarted := newTestStore(repository.NewStateRepository(kv, zerolog.Nop()).Load())
	snap := restarted.Snapshot()
	assert.Equal(t, domain.PageChat, snap.Page)
	assert.Equal(t, "u-alice", snap.CurrentUser.ID)
	assert.Equal(t, "u-alice_u-bob", snap.ActiveChatSessionID)
	assert.Len(t, snap.ChatMessages, 1)
}
