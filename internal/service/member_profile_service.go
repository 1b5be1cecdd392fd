package service

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ValidateProfileImage checks that dataURL is a base64 JPEG/PNG/GIF/WebP data URI of
// at most maxBytes decoded bytes (0 disables the size check).
func ValidateProfileImage(dataURL string, maxBytes int64) error {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return common.ErrInvalidImage
	}
	mime := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	known := false
	for _, t := range allowedImageTypes {
		if mime == t {
			known = true
			break
		}
	}
	if !known {
		return common.ErrInvalidImage
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return common.ErrInvalidImage
	}
	if maxBytes > 0 && int64(len(decoded)) > maxBytes {
		return common.ErrImageTooLarge
	}
	return nil
}

// UpdateUserProfile merges patch (and newImage when set) into the member and keeps the
// session copy and the member's services in sync. Callers get atomicity from Tx.
func UpdateUserProfile(tx *Tx, userID string, patch *domain.ProfilePatch, newImage string) error {
	st := tx.State
	user, ok := st.FindUser(userID)
	if !ok {
		return common.ErrNotFound
	}
	if newImage != "" {
		if err := ValidateProfileImage(newImage, tx.opts.MaxImageBytes); err != nil {
			return err
		}
	}

	updated := *user
	patch.Apply(&updated, newImage)
	if strings.TrimSpace(updated.FullName) == "" || strings.TrimSpace(updated.Email) == "" ||
		strings.TrimSpace(updated.Profession) == "" {
		return fmt.Errorf("%w: full name, email and profession are required", common.ErrInvalidInput)
	}
	if other, exists := st.FindUserByEmail(updated.Email); exists && other.ID != userID {
		return common.ErrDuplicateEmail
	}

	*user = updated
	tx.Touch(domain.SliceUsers)

	if st.CurrentUser != nil && st.CurrentUser.ID == userID {
		u := updated
		st.CurrentUser = &u
		tx.Touch(domain.SliceCurrentUser)
	}

	for i := range st.Services {
		svc := &st.Services[i]
		if svc.UserID != userID {
			continue
		}
		if newImage != "" {
			svc.UserProfileImageURL = newImage
		}
		if patch != nil && patch.FullName != nil && *patch.FullName != "" {
			svc.OfferedByFullName = *patch.FullName
		}
		if patch != nil && patch.Profession != nil && *patch.Profession != "" {
			svc.OfferedByProfession = *patch.Profession
		}
		tx.Touch(domain.SliceServices)
	}
	return nil
}

// UpdateProfile profile edit of UserID
type UpdateProfile struct {
	UserID   string
	Patch    *domain.ProfilePatch
	NewImage string
}

func (a UpdateProfile) Name() string { return "update_profile" }

func (a UpdateProfile) Apply(tx *Tx) error {
	if tx.State.CurrentUser == nil {
		return common.ErrUnauthorized
	}
	return UpdateUserProfile(tx, a.UserID, a.Patch, a.NewImage)
}

// StartContact opens the contact flow for a service of another member.
type StartContact struct {
	UserID    string
	ServiceID string
}

func (a StartContact) Name() string { return "start_contact" }

func (a StartContact) Apply(tx *Tx) error {
	st := tx.State
	if st.CurrentUser == nil {
		tx.SetPage(domain.PageLogin)
		tx.SetResult(common.ErrUnauthorized)
		return nil
	}
	user, ok := st.FindUser(a.UserID)
	if !ok {
		return common.ErrNotFound
	}
	svc, ok := st.FindService(a.ServiceID)
	if !ok || svc.UserID != user.ID {
		return common.ErrNotFound
	}
	u, s := *user, *svc
	st.ContactTargetUser = &u
	st.ContactTargetService = &s
	tx.SetPage(domain.PageContactFlow)
	return nil
}
