package service

import (
	"fmt"
	"strings"

	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
)

// AddUserWithService appends a new member together with the service offered at
// sign-up. Emails are compared case-sensitively.
func AddUserWithService(st *domain.AppState, user domain.User, svc domain.Service) error {
	if _, exists := st.FindUserByEmail(user.Email); exists {
		return common.ErrDuplicateEmail
	}
	st.Users = append(st.Users, user)
	st.Services = append(st.Services, svc)
	return nil
}

// Authenticate returns the member whose email and password match. Accounts without
// a password accept an empty password. The two failure causes are not told apart.
func Authenticate(users []domain.User, email, password string) (*domain.User, bool) {
	for i := range users {
		u := &users[i]
		if u.Email != email {
			continue
		}
		if u.Password == password {
			return u, true
		}
		return nil, false
	}
	return nil, false
}

// RegisterUser validates the sign-up form, creates the member and its service and
// sends the visitor to the login page.
type RegisterUser struct {
	Form domain.RegistrationForm
}

func (a RegisterUser) Name() string { return "register_user" }

func (a RegisterUser) Apply(tx *Tx) error {
	f := a.Form
	if f.MissingRequired() {
		return fmt.Errorf("%w: missing required registration fields", common.ErrInvalidInput)
	}
	if f.Password != f.ConfirmPassword {
		return common.ErrPasswordMismatch
	}
	if len([]rune(f.Password)) < tx.opts.MinPasswordLength {
		return common.ErrPasswordTooShort
	}
	if !domain.IsKnownCategory(f.ServiceCategory) {
		return common.ErrUnknownCategory
	}

	userID := tx.NewID("user")
	image := domain.SeedImageURL(userID)
	user := domain.User{
		ID:                  userID,
		FullName:            f.FullName,
		Email:               f.Email,
		Password:            f.Password,
		Address:             f.Address,
		City:                f.City,
		Profession:          f.Profession,
		UserProfileImageURL: image,
	}
	svc := domain.Service{
		ID:                  tx.NewID("service"),
		UserID:              userID,
		ServiceName:         f.ServiceName,
		Description:         f.ServiceDescription,
		Category:            f.ServiceCategory,
		OfferedByFullName:   f.FullName,
		OfferedByProfession: f.Profession,
		UserProfileImageURL: image,
	}
	if err := AddUserWithService(tx.State, user, svc); err != nil {
		return err
	}
	tx.Touch(domain.SliceUsers, domain.SliceServices)
	tx.SetPage(domain.PageLogin)
	tx.SetResult(user.ID)
	registrationsTotal.Inc()
	return nil
}

// Login authenticates and opens the dashboard.
type Login struct {
	Email    string
	Password string
}

func (a Login) Name() string { return "login" }

func (a Login) Apply(tx *Tx) error {
	if strings.TrimSpace(a.Email) == "" {
		return fmt.Errorf("%w: email is required", common.ErrInvalidInput)
	}
	user, ok := Authenticate(tx.State.Users, a.Email, a.Password)
	if !ok {
		loginsTotal.WithLabelValues("failed").Inc()
		return common.ErrInvalidCredentials
	}
	u := *user
	tx.State.CurrentUser = &u
	tx.Touch(domain.SliceCurrentUser)
	tx.SetPage(domain.PageDashboard)
	tx.SetResult(u.ID)
	loginsTotal.WithLabelValues("ok").Inc()
	return nil
}

// Logout drops the session, every page context and every filter.
type Logout struct{}

func (Logout) Name() string { return "logout" }

func (Logout) Apply(tx *Tx) error {
	st := tx.State
	st.CurrentUser = nil
	st.ActiveChatSessionID = ""
	st.ContactTargetUser = nil
	st.ContactTargetService = nil
	st.ViewingUserProfileID = ""
	st.Filters = domain.FilterCriteria{}
	tx.Touch(domain.SliceCurrentUser, domain.SliceActiveChatSessionID, domain.SliceViewingUserProfileID)
	tx.Touch(domain.FilterSlices...)
	tx.SetPage(domain.PageLanding)
	return nil
}
