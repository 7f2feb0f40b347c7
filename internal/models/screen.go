package models

type Screen string

const (
	ScreenHome          Screen = "home"
	ScreenChat          Screen = "chat"
	ScreenTasks         Screen = "tasks"
	ScreenRewards       Screen = "rewards"
	ScreenProfile       Screen = "profile"
	ScreenPsychologists Screen = "psychologists"
	ScreenEvents        Screen = "events"
	ScreenEventDetail   Screen = "event-detail"
	ScreenPayment       Screen = "payment"
)

// Screens lists every navigable screen.
var Screens = []Screen{
	ScreenHome, ScreenChat, ScreenTasks, ScreenRewards, ScreenProfile,
	ScreenPsychologists, ScreenEvents, ScreenEventDetail, ScreenPayment,
}

func IsValidScreen(s Screen) bool {
	for _, known := range Screens {
		if s == known {
			return true
		}
	}
	return false
}

// NavigationState is what the client renders.
type NavigationState struct {
	Current       Screen `json:"current"`
	SelectedEvent string `json:"selectedEvent,omitempty"`
	ShowBottomNav bool   `json:"showBottomNav"`
}
