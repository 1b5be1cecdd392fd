package handler

import (
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/service"
)

// UserView member as shown to views; passwords never leave the engine
type UserView struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city"`
	Profession string `json:"profession"`
	ImageURL   string `json:"image_url"`
}

func newUserView(u *domain.User) *UserView {
	if u == nil {
		return nil
	}
	image := u.UserProfileImageURL
	if image == "" {
		image = domain.AvatarURL(u.FullName)
	}
	return &UserView{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Address:    u.Address,
		City:       u.City,
		Profession: u.Profession,
		ImageURL:   image,
	}
}

// ContactView target of the contact flow
type ContactView struct {
	User    *UserView       `json:"user"`
	Service *domain.Service `json:"service"`
}

// StateView what the current page needs to render
type StateView struct {
	Page                 string                `json:"page"`
	Redirects            []string              `json:"redirects,omitempty"`
	CurrentUser          *UserView             `json:"current_user"`
	UnreadCount          int                   `json:"unread_count"`
	ActiveChatSessionID  string                `json:"active_chat_session_id,omitempty"`
	ViewingUserProfileID string                `json:"viewing_user_profile_id,omitempty"`
	Contact              *ContactView          `json:"contact,omitempty"`
	Filters              domain.FilterCriteria `json:"filters"`
	Result               interface{}           `json:"result,omitempty"`
}

func newStateView(st *domain.AppState, outcome *service.Outcome) StateView {
	v := StateView{
		Page:                 st.Page.String(),
		CurrentUser:          newUserView(st.CurrentUser),
		ActiveChatSessionID:  st.ActiveChatSessionID,
		ViewingUserProfileID: st.ViewingUserProfileID,
		Filters:              st.Filters,
	}
	if st.CurrentUser != nil {
		v.UnreadCount = service.UnreadCount(st.ChatMessages, st.CurrentUser.ID)
	}
	if st.Page == domain.PageContactFlow && st.ContactTargetUser != nil {
		v.Contact = &ContactView{User: newUserView(st.ContactTargetUser), Service: st.ContactTargetService}
	}
	if outcome != nil {
		for _, p := range outcome.Redirects {
			v.Redirects = append(v.Redirects, p.String())
		}
		if err, ok := outcome.Result.(error); !ok || err == nil {
			v.Result = outcome.Result
		}
	}
	return v
}

// MessageView chat message with the sender side resolved for the viewer
type MessageView struct {
	domain.ChatMessage
	Mine bool `json:"mine"`
}

// ChatView active conversation
type ChatView struct {
	SessionID   string          `json:"session_id"`
	Counterpart *UserView       `json:"counterpart"`
	Service     *domain.Service `json:"service,omitempty"`
	Messages    []MessageView   `json:"messages"`
	Recording   bool            `json:"recording"`
}

// ProfileView member profile with the services it offers
type ProfileView struct {
	User     *UserView        `json:"user"`
	Services []domain.Service `json:"services"`
	IsOwn    bool             `json:"is_own"`
}
