package models

type LoginRequest struct {
	UserName      string `json:"user_name" binding:"required"`
	Password      string `json:"password"`
	AcceptedTerms bool   `json:"accepted_terms"`
}

// Profile is the summary shown on the home and profile screens.
type Profile struct {
	UserName        string `json:"userName"`
	TermsAccepted   bool   `json:"termsAccepted"`
	Coins           int    `json:"coins"`
	PendingTasks    int    `json:"pendingTasks"`
	CompletedTasks  int    `json:"completedTasks"`
	PotentialReward int    `json:"potentialReward"`
	TelegramLinked  bool   `json:"telegramLinked"`
}

type Psychologist struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Specialty    string  `json:"specialty"`
	Rating       float64 `json:"rating"`
	Reviews      int     `json:"reviews"`
	Experience   string  `json:"experience"`
	Location     string  `json:"location"`
	Availability string  `json:"availability"`
	Price        int     `json:"price"`
	Image        string  `json:"image"`
	Status       string  `json:"status"`   // online | offline
	Modality     string  `json:"modality"` // virtual | presencial | hibrida
}
