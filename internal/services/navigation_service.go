package services

import (
	"sync"

	"mindzy/internal/models"
)

type navState struct {
	current       models.Screen
	selectedEvent string
}

// NavigationService tracks which screen each device is on. There is no
// history stack; Back follows the fixed per-screen wiring.
type NavigationService struct {
	events *EventService

	mu     sync.Mutex
	states map[string]*navState
}

func NewNavigationService(events *EventService) *NavigationService {
	return &NavigationService{events: events, states: map[string]*navState{}}
}

func (s *NavigationService) state(deviceID string) *navState {
	st, ok := s.states[deviceID]
	if !ok {
		st = &navState{current: models.ScreenHome}
		s.states[deviceID] = st
	}
	return st
}

func (st *navState) view() *models.NavigationState {
	return &models.NavigationState{
		Current:       st.current,
		SelectedEvent: st.selectedEvent,
		ShowBottomNav: st.current != models.ScreenPsychologists,
	}
}

func (s *NavigationService) Current(deviceID string) *models.NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(deviceID).view()
}

func (s *NavigationService) Navigate(deviceID string, to models.Screen) (*models.NavigationState, error) {
	if !models.IsValidScreen(to) {
		return nil, ErrInvalidScreen
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(deviceID)
	if (to == models.ScreenEventDetail || to == models.ScreenPayment) && st.selectedEvent == "" {
		return nil, ErrNoEventSelected
	}
	st.current = to
	return st.view(), nil
}

// SelectEvent remembers the event and opens its detail screen.
func (s *NavigationService) SelectEvent(deviceID, eventID string) (*models.NavigationState, error) {
	if s.events != nil {
		if _, err := s.events.Get(deviceID, eventID); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(deviceID)
	st.selectedEvent = eventID
	st.current = models.ScreenEventDetail
	return st.view(), nil
}

// backTargets holds the explicit back wiring; anything else returns home.
// Leaving payment lands where a finished payment does, on rewards.
var backTargets = map[models.Screen]models.Screen{
	models.ScreenEventDetail:   models.ScreenRewards,
	models.ScreenPayment:       models.ScreenRewards,
	models.ScreenPsychologists: models.ScreenProfile,
}

func (s *NavigationService) Back(deviceID string) *models.NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(deviceID)
	to, ok := backTargets[st.current]
	if !ok {
		to = models.ScreenHome
	}
	st.current = to
	return st.view()
}
