package domain

import "strings"

// Page view currently rendered. Persisted as its ordinal.
type Page int

const (
	PageLanding Page = iota
	PageRegistration
	PageLogin
	PageDashboard
	PageContactFlow
	PageChat
	PageUserProfile
	PageHowItWorks
)

var pageNames = map[Page]string{
	PageLanding:      "landing",
	PageRegistration: "registration",
	PageLogin:        "login",
	PageDashboard:    "dashboard",
	PageContactFlow:  "contact",
	PageChat:         "chat",
	PageUserProfile:  "profile",
	PageHowItWorks:   "how_it_works",
}

func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether p is a known page.
func (p Page) Valid() bool {
	_, ok := pageNames[p]
	return ok
}

// IsProtected reports whether the page requires a logged-in user.
func (p Page) IsProtected() bool {
	switch p {
	case PageDashboard, PageContactFlow, PageChat, PageUserProfile:
		return true
	}
	return false
}

// IsAuthForm reports whether the page is the login or registration form.
func (p Page) IsAuthForm() bool {
	return p == PageLogin || p == PageRegistration
}

// ParsePage resolves a page name as produced by String.
func ParsePage(name string) (Page, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range pageNames {
		if n == name {
			return p, true
		}
	}
	return PageLanding, false
}
