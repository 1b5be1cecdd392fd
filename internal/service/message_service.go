package service

import (
	"sort"
	"strings"

	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
)

// ChatSessionIDSeparator joins the sorted participant ids of a session
const ChatSessionIDSeparator = "_"

// ChatSessionID derives the session id of a pair; the argument order does not matter.
func ChatSessionID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, ChatSessionIDSeparator)
}

// OtherParticipant returns the participant of session that is not userID.
// It reports false when userID does not take part in session.
func OtherParticipant(session *domain.ChatSession, userID string) (string, bool) {
	if !session.HasParticipant(userID) {
		return "", false
	}
	for _, id := range session.ParticipantIDs {
		if id != userID {
			return id, true
		}
	}
	return "", false
}

// UnreadCount counts the messages addressed to userID that were not read yet.
func UnreadCount(messages []domain.ChatMessage, userID string) int {
	n := 0
	for i := range messages {
		if messages[i].ReceiverID == userID && !messages[i].Read {
			n++
		}
	}
	return n
}

// UnreadCountInSession is UnreadCount restricted to one session.
func UnreadCountInSession(messages []domain.ChatMessage, sessionID, userID string) int {
	n := 0
	for i := range messages {
		m := &messages[i]
		if m.ChatSessionID == sessionID && m.ReceiverID == userID && !m.Read {
			n++
		}
	}
	return n
}

// HasUnreadInSession reports whether userID has unread messages in sessionID.
func HasUnreadInSession(messages []domain.ChatMessage, sessionID, userID string) bool {
	for i := range messages {
		m := &messages[i]
		if m.ChatSessionID == sessionID && m.ReceiverID == userID && !m.Read {
			return true
		}
	}
	return false
}

// MarkSessionRead flips every unread message of sessionID addressed to userID and
// returns how many changed.
func MarkSessionRead(tx *Tx, sessionID, userID string) int {
	n := 0
	msgs := tx.State.ChatMessages
	for i := range msgs {
		if msgs[i].ChatSessionID == sessionID && msgs[i].ReceiverID == userID && !msgs[i].Read {
			msgs[i].Read = true
			n++
		}
	}
	if n > 0 {
		tx.Touch(domain.SliceChatMessages)
	}
	return n
}

// SessionMessages returns the messages of sessionID in chronological order.
func SessionMessages(messages []domain.ChatMessage, sessionID string) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0)
	for i := range messages {
		if messages[i].ChatSessionID == sessionID {
			out = append(out, messages[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// UserSessions returns the sessions userID takes part in, most recently updated first.
func UserSessions(sessions []domain.ChatSession, userID string) []domain.ChatSession {
	out := make([]domain.ChatSession, 0)
	for i := range sessions {
		if sessions[i].HasParticipant(userID) {
			out = append(out, sessions[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTimestamp > out[j].LastMessageTimestamp
	})
	return out
}

// RelevantChat picks the chat to open for userID: the session of the newest unread
// message, else the most recently updated session.
func RelevantChat(st *domain.AppState, userID string) (string, bool) {
	var newest *domain.ChatMessage
	for i := range st.ChatMessages {
		m := &st.ChatMessages[i]
		if m.ReceiverID != userID || m.Read {
			continue
		}
		if newest == nil || m.Timestamp > newest.Timestamp {
			newest = m
		}
	}
	if newest != nil {
		return newest.ChatSessionID, true
	}

	if sessions := UserSessions(st.ChatSessions, userID); len(sessions) > 0 {
		return sessions[0].ID, true
	}
	return "", false
}

// upsertSession creates the session of the pair or bumps its timestamp.
func upsertSession(tx *Tx, senderID, receiverID, serviceID string, now int64) string {
	id := ChatSessionID(senderID, receiverID)
	if session, ok := tx.State.FindSession(id); ok {
		session.LastMessageTimestamp = now
	} else {
		ids := []string{senderID, receiverID}
		sort.Strings(ids)
		tx.State.ChatSessions = append(tx.State.ChatSessions, domain.ChatSession{
			ID:                   id,
			ParticipantIDs:       ids,
			LastMessageTimestamp: now,
			ServiceID:            serviceID,
		})
	}
	tx.Touch(domain.SliceChatSessions)
	return id
}

func appendMessage(tx *Tx, msg domain.ChatMessage) {
	tx.State.ChatMessages = append(tx.State.ChatMessages, msg)
	tx.Touch(domain.SliceChatMessages)

	kind := "text"
	if msg.AudioDataURL != "" {
		kind = "audio"
	}
	messagesTotal.WithLabelValues(kind).Inc()
}

// StartConversation sends the first message of the contact flow and opens the chat.
type StartConversation struct {
	ReceiverID string
	ServiceID  string
	Text       string
}

func (a StartConversation) Name() string { return "start_conversation" }

func (a StartConversation) Apply(tx *Tx) error {
	st := tx.State
	sender := st.CurrentUser
	if sender == nil {
		return common.ErrUnauthorized
	}
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return common.ErrEmptyMessage
	}
	if a.ReceiverID == sender.ID {
		return common.ErrSelfContact
	}
	if _, ok := st.FindUser(a.ReceiverID); !ok {
		return common.ErrNotFound
	}

	now := tx.Now()
	sessionID := upsertSession(tx, sender.ID, a.ReceiverID, a.ServiceID, now)
	appendMessage(tx, domain.ChatMessage{
		ID:            tx.NewID("msg"),
		ChatSessionID: sessionID,
		SenderID:      sender.ID,
		ReceiverID:    a.ReceiverID,
		Text:          text,
		Timestamp:     now,
	})

	st.ActiveChatSessionID = sessionID
	tx.Touch(domain.SliceActiveChatSessionID)
	tx.SetPage(domain.PageChat)
	tx.SetResult(sessionID)
	return nil
}

// SendResult outcome of SendMessage
type SendResult struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"message_id,omitempty"`
}

// SendMessage appends a text and/or audio message to the active chat.
// Missing sender, session or counterpart make it a silent no-op.
type SendMessage struct {
	Text  string
	Audio *domain.AudioPayload
}

func (a SendMessage) Name() string { return "send_message" }

func (a SendMessage) Apply(tx *Tx) error {
	st := tx.State
	tx.SetResult(SendResult{})
	if st.CurrentUser == nil || st.ActiveChatSessionID == "" {
		return nil
	}
	session, ok := st.FindSession(st.ActiveChatSessionID)
	if !ok {
		return nil
	}
	receiverID, ok := OtherParticipant(session, st.CurrentUser.ID)
	if !ok {
		return nil
	}

	text := strings.TrimSpace(a.Text)
	if text == "" && a.Audio.IsEmpty() {
		tx.log.Warn().Str("session_id", session.ID).Msg("refusing to send a message without text or audio")
		return common.ErrEmptyMessage
	}

	now := tx.Now()
	msg := domain.ChatMessage{
		ID:            tx.NewID("msg"),
		ChatSessionID: session.ID,
		SenderID:      st.CurrentUser.ID,
		ReceiverID:    receiverID,
		Text:          text,
		Timestamp:     now,
	}
	if !a.Audio.IsEmpty() {
		msg.AudioDataURL = a.Audio.DataURL
		msg.AudioType = a.Audio.MIMEType
	}
	appendMessage(tx, msg)

	session.LastMessageTimestamp = now
	tx.Touch(domain.SliceChatSessions)
	tx.SetResult(SendResult{Sent: true, MessageID: msg.ID})
	return nil
}

// OpenRelevantChat opens the most relevant conversation of the current user.
// Returns common.ErrNoConversations, without navigating, when there is none.
type OpenRelevantChat struct{}

func (OpenRelevantChat) Name() string { return "open_relevant_chat" }

func (OpenRelevantChat) Apply(tx *Tx) error {
	st := tx.State
	if st.CurrentUser == nil {
		tx.SetPage(domain.PageLogin)
		return nil
	}
	sessionID, ok := RelevantChat(st, st.CurrentUser.ID)
	if !ok {
		return common.ErrNoConversations
	}
	st.ActiveChatSessionID = sessionID
	tx.Touch(domain.SliceActiveChatSessionID)
	tx.SetPage(domain.PageChat)
	tx.SetResult(sessionID)
	return nil
}
