package domain

// Service skill offering owned by exactly one user.
//
// OfferedByFullName, OfferedByProfession and UserProfileImageURL are denormalized
// copies of the owner's profile and must follow every profile edit.
type Service struct {
	ID                  string `json:"id"`
	UserID              string `json:"userId"`
	ServiceName         string `json:"serviceName"`
	Description         string `json:"description"`
	Category            string `json:"category"`
	OfferedByFullName   string `json:"offeredByFullName"`
	OfferedByProfession string `json:"offeredByProfession"`
	UserProfileImageURL string `json:"userProfileImageUrl,omitempty"`
}

// ServiceCategories fixed category list offered at registration
var ServiceCategories = []string{
	"🩺 Saúde e Bem-estar",
	"💇 Beleza e Estética",
	"🏗️ Construção e Reformas",
	"🧹 Serviços Domésticos e Limpeza",
	"💻 Tecnologia e Informática",
	"📚 Educação e Aulas",
	"🧾 Serviços Administrativos e Financeiros",
	"🚚 Transporte e Logística",
	"🐶 Serviços para Pets",
	"📸 Eventos e Entretenimento",
	"🏡 Serviços Imobiliários",
}

// IsKnownCategory reports whether category is one of ServiceCategories.
func IsKnownCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}

// FilterCriteria dashboard filters. Empty fields are inactive.
type FilterCriteria struct {
	Category   string `json:"category"`
	SearchText string `json:"search_text"`
	Profession string `json:"profession"`
	City       string `json:"city"`
}

// IsZero reports whether no filter is active.
func (f FilterCriteria) IsZero() bool {
	return f == FilterCriteria{}
}

// FilterPatch partial filter update; nil fields keep their current value.
type FilterPatch struct {
	Category   *string `json:"category"`
	SearchText *string `json:"search_text"`
	Profession *string `json:"profession"`
	City       *string `json:"city"`
}
