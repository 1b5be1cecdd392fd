package domain

import "strings"

// User registered member
//
// JSON field names follow the persisted slice format so that exported browser
// state can be imported as-is.
type User struct {
	ID                  string `json:"id"`
	FullName            string `json:"fullName"`
	Email               string `json:"email"`
	Password            string `json:"password,omitempty"`
	Address             string `json:"address"`
	City                string `json:"city"`
	Profession          string `json:"profession"`
	UserProfileImageURL string `json:"userProfileImageUrl,omitempty"`
}

// IsPasswordless reports whether the account predates mandatory passwords.
func (u *User) IsPasswordless() bool {
	return u.Password == ""
}

// ProfilePatch carries the profile fields a member may change. Nil fields are left untouched.
type ProfilePatch struct {
	FullName   *string `json:"full_name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Password   *string `json:"password"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	Profession *string `json:"profession"`
}

// Apply merges the patch into u and, when newImage is non-empty, replaces the profile image.
func (p *ProfilePatch) Apply(u *User, newImage string) {
	if p != nil {
		if p.FullName != nil {
			u.FullName = *p.FullName
		}
		if p.Email != nil {
			u.Email = *p.Email
		}
		if p.Password != nil {
			u.Password = *p.Password
		}
		if p.Address != nil {
			u.Address = *p.Address
		}
		if p.City != nil {
			u.City = *p.City
		}
		if p.Profession != nil {
			u.Profession = *p.Profession
		}
	}
	if newImage != "" {
		u.UserProfileImageURL = newImage
	}
}

// RegistrationForm sign-up form submitted by the registration view
type RegistrationForm struct {
	FullName           string `json:"full_name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	ConfirmPassword    string `json:"confirm_password"`
	Address            string `json:"address"`
	City               string `json:"city"`
	Profession         string `json:"profession"`
	ServiceName        string `json:"service_name"`
	ServiceDescription string `json:"service_description"`
	ServiceCategory    string `json:"service_category"`
}

// MissingRequired reports whether any mandatory registration field is blank.
func (f *RegistrationForm) MissingRequired() bool {
	for _, v := range []string{
		f.FullName, f.Email, f.Password, f.Profession,
		f.ServiceName, f.ServiceDescription, f.ServiceCategory,
	} {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// LoginRequest login form
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

// AvatarURL returns the generated avatar for a member without a profile image.
func AvatarURL(fullName string) string {
	name := strings.Join(strings.Fields(fullName), "+")
	return "https://ui-avatars.com/api/?name=" + name + "&background=random&color=fff"
}

// SeedImageURL returns the placeholder image assigned at registration.
func SeedImageURL(userID string) string {
	return "https://picsum.photos/seed/" + userID + "/100/100"
}
