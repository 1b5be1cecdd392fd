package service

import (
	"sort"
	"strings"

	"github.com/skillswap/skillswap/internal/domain"
)

// FilterServices returns the services viewerID may discover that satisfy every
// active criterion. Text matching is a case-insensitive substring search.
func FilterServices(services []domain.Service, users []domain.User, viewerID string, c domain.FilterCriteria) []domain.Service {
	search := strings.ToLower(c.SearchText)
	profession := strings.ToLower(c.Profession)
	city := strings.ToLower(c.City)

	var cities map[string]string
	if city != "" {
		cities = make(map[string]string, len(users))
		for i := range users {
			cities[users[i].ID] = strings.ToLower(users[i].City)
		}
	}

	out := make([]domain.Service, 0, len(services))
	for _, svc := range services {
		if svc.UserID == viewerID {
			continue
		}
		if c.Category != "" && svc.Category != c.Category {
			continue
		}
		if search != "" && !matchesSearch(&svc, search) {
			continue
		}
		if profession != "" && !strings.Contains(strings.ToLower(svc.OfferedByProfession), profession) {
			continue
		}
		if city != "" {
			ownerCity, ok := cities[svc.UserID]
			if !ok || !strings.Contains(ownerCity, city) {
				continue
			}
		}
		out = append(out, svc)
	}
	return out
}

func matchesSearch(svc *domain.Service, needle string) bool {
	for _, field := range []string{
		svc.ServiceName,
		svc.Description,
		svc.OfferedByFullName,
		svc.Category,
		svc.OfferedByProfession,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// AvailableCategories distinct categories of the services not owned by viewerID, sorted.
func AvailableCategories(services []domain.Service, viewerID string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, svc := range services {
		if svc.UserID == viewerID {
			continue
		}
		if _, ok := seen[svc.Category]; ok {
			continue
		}
		seen[svc.Category] = struct{}{}
		out = append(out, svc.Category)
	}
	sort.Strings(out)
	return out
}

// SetFilters updates the dashboard filters named in Patch.
type SetFilters struct {
	Patch domain.FilterPatch
}

func (a SetFilters) Name() string { return "set_filters" }

func (a SetFilters) Apply(tx *Tx) error {
	f := &tx.State.Filters
	if a.Patch.Category != nil {
		f.Category = *a.Patch.Category
		tx.Touch(domain.SliceCategoryFilter)
	}
	if a.Patch.SearchText != nil {
		f.SearchText = *a.Patch.SearchText
		tx.Touch(domain.SliceSearchTextFilter)
	}
	if a.Patch.Profession != nil {
		f.Profession = *a.Patch.Profession
		tx.Touch(domain.SliceProfessionFilter)
	}
	if a.Patch.City != nil {
		f.City = *a.Patch.City
		tx.Touch(domain.SliceCityFilter)
	}
	return nil
}
