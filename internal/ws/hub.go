package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/service"
)

// Event types
const (
	EventStateChanged = "state_changed"
	EventUnreadCount  = "unread_count"
)

// Event represents a real-time event sent via WebSocket
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// StateChanged payload of EventStateChanged
type StateChanged struct {
	Action              string   `json:"action"`
	Page                string   `json:"page"`
	Redirects           []string `json:"redirects,omitempty"`
	CurrentUserID       string   `json:"current_user_id,omitempty"`
	ActiveChatSessionID string   `json:"active_chat_session_id,omitempty"`
	UnreadCount         int      `json:"unread_count"`
}

// UnreadCount payload of EventUnreadCount
type UnreadCount struct {
	Count int `json:"count"`
}

// Hub manages WebSocket clients and pushes state changes to them.
// Events describe the store of this process and never leave it.
type Hub struct {
	// Registered clients grouped by member ID ("" for visitors)
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *targetedEvent

	mu     sync.RWMutex
	log    zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

type targetedEvent struct {
	// MemberID empty means every client
	MemberID string
	Event    *Event
}

// NewHub creates a new Hub
func NewHub(log zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *targetedEvent, 256),
		log:        log,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.memberID] == nil {
				h.clients[client.memberID] = make(map[*Client]bool)
			}
			h.clients[client.memberID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Event)
			if err != nil {
				h.log.Warn().Err(err).Str("type", msg.Event.Type).Msg("failed to encode ws event")
				continue
			}
			h.mu.Lock()
			for memberID, clients := range h.clients {
				if msg.MemberID != "" && memberID != msg.MemberID {
					continue
				}
				for client := range clients {
					select {
					case client.send <- data:
					default:
						h.remove(client)
					}
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

// remove drops client; callers hold h.mu
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.memberID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.memberID)
	}
}

// ClientCount number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

// SendToMember sends an event to the clients of memberID, or to every client when
// memberID is empty. Events are dropped when the hub is saturated.
func (h *Hub) SendToMember(memberID string, event *Event) {
	ev := &targetedEvent{MemberID: memberID, Event: event}
	select {
	case h.broadcast <- ev:
	default:
		h.log.Warn().Str("type", event.Type).Msg("ws hub saturated, event dropped")
	}
}

// OnCommit pushes the committed state to connected views
func (h *Hub) OnCommit(c *service.Commit) {
	st := c.State
	changed := StateChanged{
		Action:              c.Action,
		Page:                st.Page.String(),
		ActiveChatSessionID: st.ActiveChatSessionID,
	}
	for _, p := range c.Redirects {
		changed.Redirects = append(changed.Redirects, p.String())
	}
	if st.CurrentUser != nil {
		changed.CurrentUserID = st.CurrentUser.ID
		changed.UnreadCount = service.UnreadCount(st.ChatMessages, st.CurrentUser.ID)
	}
	h.SendToMember("", &Event{Type: EventStateChanged, Payload: changed})

	if !touched(c.Slices, domain.SliceChatMessages) {
		return
	}
	for _, memberID := range h.members() {
		if memberID == "" {
			continue
		}
		h.SendToMember(memberID, &Event{
			Type:    EventUnreadCount,
			Payload: UnreadCount{Count: service.UnreadCount(st.ChatMessages, memberID)},
		})
	}
}

func (h *Hub) members() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

func touched(slices []domain.Slice, s domain.Slice) bool {
	for _, sl := range slices {
		if sl == s {
			return true
		}
	}
	return false
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
