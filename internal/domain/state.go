package domain

// AppState canonical application state.
//
// Empty strings stand for "no value" in the nullable id slices. ContactTargetUser and
// ContactTargetService are page-scoped and never persisted.
type AppState struct {
	Page                 Page
	Users                []User
	Services             []Service
	CurrentUser          *User
	ActiveChatSessionID  string
	ChatSessions         []ChatSession
	ChatMessages         []ChatMessage
	ViewingUserProfileID string
	Filters              FilterCriteria

	ContactTargetUser    *User
	ContactTargetService *Service
}

// NewAppState returns the state of a first launch.
func NewAppState() *AppState {
	return &AppState{
		Page:         PageLanding,
		Users:        []User{},
		Services:     []Service{},
		ChatSessions: []ChatSession{},
		ChatMessages: []ChatMessage{},
	}
}

// Clone returns a deep copy that can be mutated without affecting s.
func (s *AppState) Clone() *AppState {
	c := *s
	c.Users = append([]User(nil), s.Users...)
	c.Services = append([]Service(nil), s.Services...)
	c.ChatMessages = append([]ChatMessage(nil), s.ChatMessages...)
	c.ChatSessions = make([]ChatSession, len(s.ChatSessions))
	for i, cs := range s.ChatSessions {
		cs.ParticipantIDs = append([]string(nil), cs.ParticipantIDs...)
		c.ChatSessions[i] = cs
	}
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		c.CurrentUser = &u
	}
	if s.ContactTargetUser != nil {
		u := *s.ContactTargetUser
		c.ContactTargetUser = &u
	}
	if s.ContactTargetService != nil {
		svc := *s.ContactTargetService
		c.ContactTargetService = &svc
	}
	return &c
}

// FindUser returns the user with the given id.
func (s *AppState) FindUser(id string) (*User, bool) {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i], true
		}
	}
	return nil, false
}

// FindUserByEmail returns the user with the given email (exact match).
func (s *AppState) FindUserByEmail(email string) (*User, bool) {
	for i := range s.Users {
		if s.Users[i].Email == email {
			return &s.Users[i], true
		}
	}
	return nil, false
}

// FindService returns the service with the given id.
func (s *AppState) FindService(id string) (*Service, bool) {
	for i := range s.Services {
		if s.Services[i].ID == id {
			return &s.Services[i], true
		}
	}
	return nil, false
}

// FindSession returns the chat session with the given id.
func (s *AppState) FindSession(id string) (*ChatSession, bool) {
	for i := range s.ChatSessions {
		if s.ChatSessions[i].ID == id {
			return &s.ChatSessions[i], true
		}
	}
	return nil, false
}

// IsAuthenticated reports whether a user is logged in.
func (s *AppState) IsAuthenticated() bool {
	return s.CurrentUser != nil
}
