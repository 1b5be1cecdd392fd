package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/skillswap/skillswap/internal/common"
	"github.com/skillswap/skillswap/internal/domain"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/stretchr/testify/suite"
)

// SkillSwapScenarioSuite walks two members through sign-up, contact, chat and
// profile edits against a persisted store.
type SkillSwapScenarioSuite struct {
	suite.Suite
	kv    repository.KVStore
	store *Store
	alice string
	bob   string
}

func (s *SkillSwapScenarioSuite) SetupTest() {
	s.kv = repository.NewMemoryKV()
	repo := repository.NewStateRepository(s.kv, zerolog.Nop())
	s.store = newTestStore(repo.Load())
	s.store.Subscribe(NewPersistenceSubscriber(repo, zerolog.Nop()))
	s.store.Flush()

	s.alice = s.register("Alice Souza", "alice@example.com", "Yoga Teacher", "Recife", "Yoga Lessons", "🩺 Saúde e Bem-estar")
	s.bob = s.register("Bob Lima", "bob@example.com", "Accountant", "Olinda", "Tax Filing", "🧾 Serviços Administrativos e Financeiros")
}

func (s *SkillSwapScenarioSuite) register(name, email, profession, city, service, category string) string {
	out, err := s.store.Dispatch(RegisterUser{Form: domain.RegistrationForm{
		FullName:           name,
		Email:              email,
		Password:           "secret123",
		ConfirmPassword:    "secret123",
		City:               city,
		Profession:         profession,
		ServiceName:        service,
		ServiceDescription: service + " for everyone",
		ServiceCategory:    category,
	}})
	s.Require().NoError(err)
	s.Equal(domain.PageLogin, out.Page)
	return out.Result.(string)
}

func (s *SkillSwapScenarioSuite) login(email string) {
	if s.store.Snapshot().CurrentUser != nil {
		_, err := s.store.Dispatch(Logout{})
		s.Require().NoError(err)
	}
	_, err := s.store.Dispatch(Login{Email: email, Password: "secret123"})
	s.Require().NoError(err)
}

func (s *SkillSwapScenarioSuite) serviceOf(userID string) domain.Service {
	for _, svc := range s.store.Snapshot().Services {
		if svc.UserID == userID {
			return svc
		}
	}
	s.FailNow("service not found", userID)
	return domain.Service{}
}

func (s *SkillSwapScenarioSuite) TestRegistrationRedirectsToLogin() {
	snap := s.store.Snapshot()
	s.Len(snap.Users, 2)
	s.Equal(domain.PageLogin, snap.Page)
	s.Equal("Yoga Lessons", s.serviceOf(s.alice).ServiceName)
}

func (s *SkillSwapScenarioSuite) TestDuplicateEmailRejected() {
	before := s.store.Snapshot()
	_, err := s.store.Dispatch(RegisterUser{Form: domain.RegistrationForm{
		FullName: "Other Alice", Email: "alice@example.com", Password: "secret123", ConfirmPassword: "secret123",
		Profession: "Chef", ServiceName: "Cooking", ServiceDescription: "Pasta", ServiceCategory: domain.ServiceCategories[3],
	}})
	s.ErrorIs(err, common.ErrDuplicateEmail)
	s.Same(before, s.store.Snapshot())
	s.Len(s.store.Snapshot().Users, 2)
}

func (s *SkillSwapScenarioSuite) TestContactAndChatRoundTrip() {
	s.login("alice@example.com")
	tax := s.serviceOf(s.bob)
	_, err := s.store.Dispatch(StartContact{UserID: s.bob, ServiceID: tax.ID})
	s.Require().NoError(err)
	out, err := s.store.Dispatch(StartConversation{ReceiverID: s.bob, ServiceID: tax.ID, Text: "Hi Bob"})
	s.Require().NoError(err)

	sessionID := ChatSessionID(s.alice, s.bob)
	s.Equal(sessionID, out.Result)
	s.Equal(1, UnreadCount(s.store.Snapshot().ChatMessages, s.bob))

	s.login("bob@example.com")
	_, err = s.store.Dispatch(OpenRelevantChat{})
	s.Require().NoError(err)

	snap := s.store.Snapshot()
	s.Equal(domain.PageChat, snap.Page)
	s.Equal(sessionID, snap.ActiveChatSessionID)
	s.True(snap.ChatMessages[0].Read)
	s.Equal(0, UnreadCountInSession(snap.ChatMessages, sessionID, s.alice))
	s.Equal(0, UnreadCountInSession(snap.ChatMessages, sessionID, s.bob))

	reloaded := repository.NewStateRepository(s.kv, zerolog.Nop()).Load()
	s.True(reloaded.ChatMessages[0].Read)
}

func (s *SkillSwapScenarioSuite) TestProfessionEditPropagates() {
	s.login("alice@example.com")
	profession := "Wellness Coach"
	_, err := s.store.Dispatch(UpdateProfile{UserID: s.alice, Patch: &domain.ProfilePatch{Profession: &profession}})
	s.Require().NoError(err)

	s.Equal("Wellness Coach", s.serviceOf(s.alice).OfferedByProfession)
	s.Equal("Accountant", s.serviceOf(s.bob).OfferedByProfession)
}

func (s *SkillSwapScenarioSuite) TestDashboardFilter() {
	carol := s.register("Carol Dias", "carol@example.com", "Developer", "recife", "Websites", techCategory)
	s.register("Dan Reis", "dan@example.com", "Developer", "Natal", "Apps", techCategory)
	s.login("alice@example.com")

	category, city := techCategory, "Recife"
	_, err := s.store.Dispatch(SetFilters{Patch: domain.FilterPatch{Category: &category, City: &city}})
	s.Require().NoError(err)

	snap := s.store.Snapshot()
	got := FilterServices(snap.Services, snap.Users, snap.CurrentUser.ID, snap.Filters)
	s.Require().Len(got, 1)
	s.Equal(carol, got[0].UserID)
}

func TestSkillSwapScenarioSuite(t *testing.T) {
	suite.Run(t, new(SkillSwapScenarioSuite))
}
