package domain

import "strings"

// ChatSession two-party conversation. ID is derived from the sorted participant ids.
type ChatSession struct {
	ID                   string   `json:"id"`
	ParticipantIDs       []string `json:"participantIds"`
	LastMessageTimestamp int64    `json:"lastMessageTimestamp"`
	ServiceID            string   `json:"serviceId,omitempty"`
}

// HasParticipant reports whether userID takes part in the session.
func (s *ChatSession) HasParticipant(userID string) bool {
	for _, id := range s.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ChatMessage single text or audio message. Timestamps are epoch milliseconds.
type ChatMessage struct {
	ID            string `json:"id"`
	ChatSessionID string `json:"chatSessionId"`
	SenderID      string `json:"senderId"`
	ReceiverID    string `json:"receiverId"`
	Text          string `json:"text,omitempty"`
	Timestamp     int64  `json:"timestamp"`
	Read          bool   `json:"read"`
	AudioDataURL  string `json:"audioDataUrl,omitempty"`
	AudioType     string `json:"audioType,omitempty"`
}

// HasAudio reports whether the message carries a playable audio payload.
func (m *ChatMessage) HasAudio() bool {
	return m.AudioDataURL != "" && m.AudioType != ""
}

// AudioPayload encoded recording attached to a message
type AudioPayload struct {
	DataURL  string `json:"data_url"`
	MIMEType string `json:"type"`
}

// IsEmpty reports whether the payload has no data.
func (a *AudioPayload) IsEmpty() bool {
	return a == nil || strings.TrimSpace(a.DataURL) == ""
}

// StartConversationRequest first message sent from the contact flow
type StartConversationRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	ServiceID  string `json:"service_id" binding:"required"`
	Text       string `json:"text"`
}

// SendMessageRequest text message for the active chat
type SendMessageRequest struct {
	Text string `json:"text"`
}
