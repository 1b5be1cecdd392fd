package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/skillswap/skillswap/internal/domain"
)

// StateRepository maps AppState slices onto KVStore keys
type StateRepository interface {
	// Load never fails: unreadable or malformed slices fall back to their default.
	Load() *domain.AppState
	Save(st *domain.AppState, slices []domain.Slice) error
}

type stateRepository struct {
	kv  KVStore
	log zerolog.Logger
}

// NewStateRepository creates a StateRepository over kv
func NewStateRepository(kv KVStore, log zerolog.Logger) StateRepository {
	return &stateRepository{kv: kv, log: log}
}

func (r *stateRepository) Load() *domain.AppState {
	st := domain.NewAppState()

	var page int
	if r.read(domain.SliceCurrentPage, &page) && domain.Page(page).Valid() {
		st.Page = domain.Page(page)
	}

	var users []domain.User
	if r.read(domain.SliceUsers, &users) && users != nil {
		st.Users = users
	}
	var services []domain.Service
	if r.read(domain.SliceServices, &services) && services != nil {
		st.Services = services
	}
	var current *domain.User
	if r.read(domain.SliceCurrentUser, &current) {
		st.CurrentUser = current
	}
	var sessions []domain.ChatSession
	if r.read(domain.SliceChatSessions, &sessions) && sessions != nil {
		st.ChatSessions = sessions
	}
	var messages []domain.ChatMessage
	if r.read(domain.SliceChatMessages, &messages) && messages != nil {
		st.ChatMessages = messages
	}

	st.ActiveChatSessionID = r.readString(domain.SliceActiveChatSessionID)
	st.ViewingUserProfileID = r.readString(domain.SliceViewingUserProfileID)
	st.Filters = domain.FilterCriteria{
		Category:   r.readString(domain.SliceCategoryFilter),
		SearchText: r.readString(domain.SliceSearchTextFilter),
		Profession: r.readString(domain.SliceProfessionFilter),
		City:       r.readString(domain.SliceCityFilter),
	}
	return st
}

// read decodes slice into dest and reports whether a usable value was found.
func (r *stateRepository) read(slice domain.Slice, dest interface{}) bool {
	data, found, err := r.kv.Read(string(slice))
	if err != nil {
		r.log.Warn().Err(err).Str("key", string(slice)).Msg("state slice read failed, using default")
		return false
	}
	if !found || len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		r.log.Warn().Err(err).Str("key", string(slice)).Msg("state slice malformed, using default")
		return false
	}
	return true
}

func (r *stateRepository) readString(slice domain.Slice) string {
	var v *string
	if !r.read(slice, &v) || v == nil {
		return ""
	}
	return *v
}

func (r *stateRepository) Save(st *domain.AppState, slices []domain.Slice) error {
	var errs []error
	for _, slice := range slices {
		data, err := json.Marshal(sliceValue(st, slice))
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", slice, err))
			continue
		}
		if err := r.kv.Write(string(slice), data); err != nil {
			r.log.Warn().Err(err).Str("key", string(slice)).Msg("state slice write failed")
			errs = append(errs, fmt.Errorf("write %s: %w", slice, err))
		}
	}
	return errors.Join(errs...)
}

// sliceValue returns the JSON shape of one slice; empty ids are stored as null.
func sliceValue(st *domain.AppState, slice domain.Slice) interface{} {
	switch slice {
	case domain.SliceCurrentPage:
		return int(st.Page)
	case domain.SliceUsers:
		return st.Users
	case domain.SliceServices:
		return st.Services
	case domain.SliceCurrentUser:
		return st.CurrentUser
	case domain.SliceActiveChatSessionID:
		return nullable(st.ActiveChatSessionID)
	case domain.SliceChatSessions:
		return st.ChatSessions
	case domain.SliceChatMessages:
		return st.ChatMessages
	case domain.SliceViewingUserProfileID:
		return nullable(st.ViewingUserProfileID)
	case domain.SliceCategoryFilter:
		return st.Filters.Category
	case domain.SliceSearchTextFilter:
		return st.Filters.SearchText
	case domain.SliceProfessionFilter:
		return st.Filters.Profession
	case domain.SliceCityFilter:
		return st.Filters.City
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
