package domain

// Slice independently persisted part of AppState
type Slice string

const (
	SliceCurrentPage          Slice = "skillswap_currentPage"
	SliceUsers                Slice = "skillswap_users"
	SliceServices             Slice = "skillswap_services"
	SliceCurrentUser          Slice = "skillswap_currentUser"
	SliceActiveChatSessionID  Slice = "skillswap_activeChatSessionId"
	SliceChatSessions         Slice = "skillswap_chatSessions"
	SliceChatMessages         Slice = "skillswap_chatMessages"
	SliceViewingUserProfileID Slice = "skillswap_viewingUserProfileId"
	SliceCategoryFilter       Slice = "skillswap_selectedCategoryFilter"
	SliceSearchTextFilter     Slice = "skillswap_searchTextFilter"
	SliceProfessionFilter     Slice = "skillswap_professionSearchText"
	SliceCityFilter           Slice = "skillswap_citySearchText"
)

// AllSlices every persisted slice in load order
var AllSlices = []Slice{
	SliceCurrentPage,
	SliceUsers,
	SliceServices,
	SliceCurrentUser,
	SliceActiveChatSessionID,
	SliceChatSessions,
	SliceChatMessages,
	SliceViewingUserProfileID,
	SliceCategoryFilter,
	SliceSearchTextFilter,
	SliceProfessionFilter,
	SliceCityFilter,
}

// FilterSlices the four dashboard filter slices
var FilterSlices = []Slice{
	SliceCategoryFilter,
	SliceSearchTextFilter,
	SliceProfessionFilter,
	SliceCityFilter,
}

// SliceSet set of slices touched by an action
type SliceSet map[Slice]struct{}

// Add marks the slices as touched.
func (s SliceSet) Add(slices ...Slice) {
	for _, sl := range slices {
		s[sl] = struct{}{}
	}
}

// Has reports whether sl was touched.
func (s SliceSet) Has(sl Slice) bool {
	_, ok := s[sl]
	return ok
}

// Ordered returns the touched slices in AllSlices order.
func (s SliceSet) Ordered() []Slice {
	out := make([]Slice, 0, len(s))
	for _, sl := range AllSlices {
		if s.Has(sl) {
			out = append(out, sl)
		}
	}
	return out
}
