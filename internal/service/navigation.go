package service

import (
	"fmt"

	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
)

var errInvalidPage = fmt.Errorf("%w: unknown page", common.ErrInvalidInput)

// EffectKind side effect requested by the navigation guard
type EffectKind int

const (
	// EffectClearContext drops contact target, active chat and viewed profile.
	EffectClearContext EffectKind = iota
	// EffectMarkRead marks the active session's messages to the current user as read.
	EffectMarkRead
	// EffectClearChat drops an active chat the current user cannot open.
	EffectClearChat
)

// Effect guard side effect
type Effect struct {
	Kind      EffectKind
	SessionID string
	UserID    string
}

// Guard decides which page may be shown for st and which side effects entering it
// triggers. It is pure; Store applies the result after every action.
func Guard(st *domain.AppState) (domain.Page, []Effect) {
	page := st.Page
	if !page.Valid() {
		return domain.PageLanding, nil
	}

	if page.IsProtected() && st.CurrentUser == nil {
		return domain.PageLogin, []Effect{{Kind: EffectClearContext}}
	}
	if page.IsAuthForm() && st.CurrentUser != nil {
		return domain.PageDashboard, nil
	}

	switch page {
	case domain.PageContactFlow:
		if _, _, ok := resolveContactTarget(st); !ok {
			return domain.PageDashboard, nil
		}
	case domain.PageUserProfile:
		if st.ViewingUserProfileID == "" {
			return domain.PageDashboard, nil
		}
		if _, ok := st.FindUser(st.ViewingUserProfileID); !ok {
			return domain.PageDashboard, nil
		}
	case domain.PageChat:
		session, ok := st.FindSession(st.ActiveChatSessionID)
		if st.ActiveChatSessionID == "" {
			return domain.PageDashboard, nil
		}
		if !ok || !session.HasParticipant(st.CurrentUser.ID) {
			return domain.PageDashboard, []Effect{{Kind: EffectClearChat}}
		}
		if HasUnreadInSession(st.ChatMessages, session.ID, st.CurrentUser.ID) {
			return page, []Effect{{Kind: EffectMarkRead, SessionID: session.ID, UserID: st.CurrentUser.ID}}
		}
	}
	return page, nil
}

// applyEffect applies e to tx and reports whether anything changed.
func applyEffect(tx *Tx, e Effect) bool {
	switch e.Kind {
	case EffectClearContext:
		return clearPageContext(tx)
	case EffectMarkRead:
		return MarkSessionRead(tx, e.SessionID, e.UserID) > 0
	case EffectClearChat:
		if tx.State.ActiveChatSessionID == "" {
			return false
		}
		tx.State.ActiveChatSessionID = ""
		tx.Touch(domain.SliceActiveChatSessionID)
		return true
	}
	return false
}

func clearPageContext(tx *Tx) bool {
	st := tx.State
	changed := st.ContactTargetUser != nil || st.ContactTargetService != nil ||
		st.ActiveChatSessionID != "" || st.ViewingUserProfileID != ""
	st.ContactTargetUser = nil
	st.ContactTargetService = nil
	if st.ActiveChatSessionID != "" {
		st.ActiveChatSessionID = ""
		tx.Touch(domain.SliceActiveChatSessionID)
	}
	if st.ViewingUserProfileID != "" {
		st.ViewingUserProfileID = ""
		tx.Touch(domain.SliceViewingUserProfileID)
	}
	return changed
}

func resolveContactTarget(st *domain.AppState) (*domain.User, *domain.Service, bool) {
	if st.ContactTargetUser == nil || st.ContactTargetService == nil {
		return nil, nil, false
	}
	user, ok := st.FindUser(st.ContactTargetUser.ID)
	if !ok {
		return nil, nil, false
	}
	svc, ok := st.FindService(st.ContactTargetService.ID)
	if !ok || svc.UserID != user.ID {
		return nil, nil, false
	}
	return user, svc, true
}

// Navigate moves to Page; the guard decides whether it is reachable.
type Navigate struct {
	Page domain.Page
}

func (a Navigate) Name() string { return "navigate" }

func (a Navigate) Apply(tx *Tx) error {
	if !a.Page.Valid() {
		return errInvalidPage
	}
	tx.SetPage(a.Page)
	return nil
}

// NavigateHome returns to the landing page and resets every dashboard filter.
type NavigateHome struct{}

func (NavigateHome) Name() string { return "navigate_home" }

func (NavigateHome) Apply(tx *Tx) error {
	tx.State.Filters = domain.FilterCriteria{}
	tx.Touch(domain.FilterSlices...)
	tx.SetPage(domain.PageLanding)
	return nil
}

// ViewProfile opens a member profile; an empty UserID means the current user.
type ViewProfile struct {
	UserID string
}

func (a ViewProfile) Name() string { return "view_profile" }

func (a ViewProfile) Apply(tx *Tx) error {
	st := tx.State
	if st.CurrentUser == nil {
		tx.SetPage(domain.PageLogin)
		return nil
	}
	target := a.UserID
	if target == "" {
		target = st.CurrentUser.ID
	}
	if _, ok := st.FindUser(target); !ok {
		tx.log.Warn().Str("user_id", target).Msg("profile to view not found")
		tx.SetPage(domain.PageDashboard)
		return nil
	}
	st.ViewingUserProfileID = target
	tx.Touch(domain.SliceViewingUserProfileID)
	tx.SetPage(domain.PageUserProfile)
	return nil
}
