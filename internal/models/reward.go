package models

// DefaultRewardIcon is used when a reward is created without a glyph.
const DefaultRewardIcon = "🎁"

// Reward is a purchasable catalog entry priced in coins.
type Reward struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cost  int    `json:"cost"`
	Icon  string `json:"icon"`
}

// RedeemQuote previews a redemption without applying it.
type RedeemQuote struct {
	Reward     Reward `json:"reward"`
	Balance    int    `json:"balance"`
	Affordable bool   `json:"affordable"`
	Remaining  int    `json:"remaining"`
}

// RedeemResult is the outcome of a confirmed redemption.
type RedeemResult struct {
	Title     string `json:"title"`
	Spent     int    `json:"spent"`
	Remaining int    `json:"remaining"`
}
