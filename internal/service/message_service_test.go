package service

import (
	"testing"

	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSessionID_OrderIndependent(t *testing.T) {
	pairs := [][2]string{
		{"u-alice", "u-bob"},
		{"user-9", "user-10"},
		{"b", "a"},
		{"same", "same"},
	}
	for _, p := range pairs {
		assert.Equal(t, ChatSessionID(p[0], p[1]), ChatSessionID(p[1], p[0]))
	}
	assert.Equal(t, "u-alice_u-bob", ChatSessionID("u-bob", "u-alice"))
}

func TestStartConversation_ReusesSessionFromEitherSide(t *testing.T) {
	s := newTestStore(seedState())
	loginAs(t, s, "alice@example.com", "secret1")
	out, err := s.Dispatch(StartConversation{ReceiverID: "u-bob", ServiceID: "s-tax", Text: "Hi Bob"})
	require.NoError(t, err)
	first := out.Result.(string)

	_, err = s.Dispatch(Logout{})
	require.NoError(t, err)
	loginAs(t, s, "bob@example.com", "secret2")
	out, err = s.Dispatch(StartConversation{ReceiverID: "u-alice", ServiceID: "s-yoga", Text: "Hi Alice"})
	require.NoError(t, err)

	assert.Equal(t, first, out.Result)
	snap := s.Snapshot()
	require.Len(t, snap.ChatSessions, 1)
	assert.Equal(t, "s-tax", snap.ChatSessions[0].ServiceID)
	assert.Len(t, snap.ChatMessages, 2)
}

func TestStartConversation_Rejections(t *testing.T) {
	s := newTestStore(seedState())

	_, err := s.Dispatch(StartConversation{ReceiverID: "u-bob", Text: "hi"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	loginAs(t, s, "alice@example.com", "secret1")

	_, err = s.Dispatch(StartConversation{ReceiverID: "u-bob", Text: "   "})
	assert.ErrorIs(t, err, common.ErrEmptyMessage)

	_, err = s.Dispatch(StartConversation{ReceiverID: "u-alice", Text: "me"})
	assert.ErrorIs(t, err, common.ErrSelfContact)

	_, err = s.Dispatch(StartConversation{ReceiverID: "u-ghost", Text: "boo"})
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.Empty(t, s.Snapshot().ChatSessions)
	assert.Empty(t, s.Snapshot().ChatMessages)
}

func openChat(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(seedState())
	loginAs(t, s, "alice@example.com", "secret1")
	_, err := s.Dispatch(StartConversation{ReceiverID: "u-bob", ServiceID: "s-tax", Text: "Hi Bob"})
	require.NoError(t, err)
	return s
}

func TestSendMessage_Text(t *testing.T) {
	s := openChat(t)

	out, err := s.Dispatch(SendMessage{Text: "  are you there?  "})

	require.NoError(t, err)
	res := out.Result.(SendResult)
	assert.True(t, res.Sent)
	msgs := SessionMessages(s.Snapshot().ChatMessages, "u-alice_u-bob")
	require.Len(t, msgs, 2)
	assert.Equal(t, "are you there?", msgs[1].Text)
	assert.Equal(t, "u-bob", msgs[1].ReceiverID)
	assert.Equal(t, res.MessageID, msgs[1].ID)
}

func TestSendMessage_AudioOnly(t *testing.T) {
	s := openChat(t)

	_, err := s.Dispatch(SendMessage{Audio: &domain.AudioPayload{DataURL: "data:audio/webm;base64,AAAA", MIMEType: "audio/webm"}})

	require.NoError(t, err)
	msgs := s.Snapshot().ChatMessages
	last := msgs[len(msgs)-1]
	assert.True(t, last.HasAudio())
	assert.Equal(t, "audio/webm", last.AudioType)
	assert.Empty(t, last.Text)
}

func TestSendMessage_NeverAppendsEmpty(t *testing.T) {
	s := openChat(t)
	before := len(s.Snapshot().ChatMessages)

	_, err := s.Dispatch(SendMessage{Text: "\t "})
	assert.ErrorIs(t, err, common.ErrEmptyMessage)
	_, err = s.Dispatch(SendMessage{Audio: &domain.AudioPayload{}})
	assert.ErrorIs(t, err, common.ErrEmptyMessage)

	assert.Len(t, s.Snapshot().ChatMessages, before)
}

func TestSendMessage_NoActiveChatIsNoop(t *testing.T) {
	s := newTestStore(seedState())
	loginAs(t, s, "alice@example.com", "secret1")

	out, err := s.Dispatch(SendMessage{Text: "hello?"})

	require.NoError(t, err)
	assert.False(t, out.Result.(SendResult).Sent)
	assert.Empty(t, s.Snapshot().ChatMessages)
}

func TestSendMessage_NonParticipantIsNoop(t *testing.T) {
	st := seedState()
	st.ChatSessions = []domain.ChatSession{{ID: "u-alice_u-bob", ParticipantIDs: []string{"u-alice", "u-bob"}}}
	st.CurrentUser = &st.Users[2]
	st.Page = domain.PageDashboard
	st.ActiveChatSessionID = "u-alice_u-bob"
	s := newTestStore(st)

	out, err := s.Dispatch(SendMessage{Text: "intruder"})

	require.NoError(t, err)
	assert.False(t, out.Result.(SendResult).Sent)
	assert.Empty(t, s.Snapshot().ChatMessages)

	_, err = s.Dispatch(Navigate{Page: domain.PageChat})
	require.NoError(t, err)
	assert.Equal(t, domain.PageDashboard, s.Snapshot().Page)
	assert.Empty(t, s.Snapshot().ActiveChatSessionID)
}

func TestOtherParticipant(t *testing.T) {
	session := &domain.ChatSession{ID: "u-alice_u-bob", ParticipantIDs: []string{"u-alice", "u-bob"}}

	other, ok := OtherParticipant(session, "u-alice")
	assert.True(t, ok)
	assert.Equal(t, "u-bob", other)

	_, ok = OtherParticipant(session, "u-carol")
	assert.False(t, ok)
}

func TestSendMessage_TimestampsMonotonic(t *testing.T) {
	s := openChat(t)
	for _, text := range []string{"one", "two", "three"} {
		_, err := s.Dispatch(SendMessage{Text: text})
		require.NoError(t, err)
	}

	snap := s.Snapshot()
	session, ok := snap.FindSession("u-alice_u-bob")
	require.True(t, ok)
	msgs := SessionMessages(snap.ChatMessages, session.ID)
	for i, m := range msgs {
		assert.GreaterOrEqual(t, session.LastMessageTimestamp, m.Timestamp)
		if i > 0 {
			assert.GreaterOrEqual(t, m.Timestamp, msgs[i-1].Timestamp)
		}
	}
	assert.Equal(t, msgs[len(msgs)-1].Timestamp, session.LastMessageTimestamp)
}

func TestViewingChatMarksOnlyThatSessionRead(t *testing.T) {
	st := seedState()
	st.ChatSessions = []domain.ChatSession{
		{ID: "u-alice_u-bob", ParticipantIDs: []string{"u-alice", "u-bob"}, LastMessageTimestamp: 10},
		{ID: "u-bob_u-carol", ParticipantIDs: []string{"u-bob", "u-carol"}, LastMessageTimestamp: 20},
	}
	st.ChatMessages = []domain.ChatMessage{
		{ID: "m1", ChatSessionID: "u-alice_u-bob", SenderID: "u-alice", ReceiverID: "u-bob", Timestamp: 5},
		{ID: "m2", ChatSessionID: "u-alice_u-bob", SenderID: "u-alice", ReceiverID: "u-bob", Timestamp: 10},
		{ID: "m3", ChatSessionID: "u-bob_u-carol", SenderID: "u-carol", ReceiverID: "u-bob", Timestamp: 20},
		{ID: "m4", ChatSessionID: "u-alice_u-bob", SenderID: "u-bob", ReceiverID: "u-alice", Timestamp: 7},
	}
	s := newTestStore(st)
	loginAs(t, s, "bob@example.com", "secret2")
	require.Equal(t, 3, UnreadCount(s.Snapshot().ChatMessages, "u-bob"))

	_, err := s.Dispatch(OpenRelevantChat{})
	require.NoError(t, err)
	assert.Equal(t, "u-bob_u-carol", s.Snapshot().ActiveChatSessionID)
	assert.Equal(t, 2, UnreadCount(s.Snapshot().ChatMessages, "u-bob"))

	_, err = s.Dispatch(OpenRelevantChat{})
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, "u-alice_u-bob", snap.ActiveChatSessionID)
	assert.Equal(t, domain.PageChat, snap.Page)
	assert.Equal(t, 0, UnreadCount(snap.ChatMessages, "u-bob"))
	assert.Equal(t, 1, UnreadCount(snap.ChatMessages, "u-alice"))
}

func TestOpenRelevantChat(t *testing.T) {
	t.Run("no conversations", func(t *testing.T) {
		s := newTestStore(seedState())
		loginAs(t, s, "alice@example.com", "secret1")
		_, err := s.Dispatch(OpenRelevantChat{})
		assert.ErrorIs(t, err, common.ErrNoConversations)
		assert.Equal(t, domain.PageDashboard, s.Snapshot().Page)
	})

	t.Run("falls back to most recent session", func(t *testing.T) {
		st := seedState()
		st.ChatSessions = []domain.ChatSession{
			{ID: "u-alice_u-bob", ParticipantIDs: []string{"u-alice", "u-bob"}, LastMessageTimestamp: 10},
			{ID: "u-alice_u-carol", ParticipantIDs: []string{"u-alice", "u-carol"}, LastMessageTimestamp: 30},
		}
		got, ok := RelevantChat(st, "u-alice")
		assert.True(t, ok)
		assert.Equal(t, "u-alice_u-carol", got)
	})

	t.Run("logged out", func(t *testing.T) {
		s := newTestStore(seedState())
		out, err := s.Dispatch(OpenRelevantChat{})
		require.NoError(t, err)
		assert.Equal(t, domain.PageLogin, out.Page)
	})
}

func TestUserSessions_NewestFirst(t *testing.T) {
	sessions := []domain.ChatSession{
		{ID: "a", ParticipantIDs: []string{"u1", "u2"}, LastMessageTimestamp: 1},
		{ID: "b", ParticipantIDs: []string{"u1", "u3"}, LastMessageTimestamp: 3},
		{ID: "c", ParticipantIDs: []string{"u2", "u3"}, LastMessageTimestamp: 5},
	}
	got := UserSessions(sessions, "u1")
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}
