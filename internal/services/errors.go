package services

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrTermsNotAccepted  = errors.New("terms and conditions must be accepted")
	ErrTaskNotFound      = errors.New("task not found")
	ErrRewardNotFound    = errors.New("reward not found")
	ErrInsufficientCoins = errors.New("not enough coins for this reward")

	ErrEmptyMessage     = errors.New("message text is required")
	ErrQuotaExhausted   = errors.New("message limit reached for this session")
	ErrAwaitingResponse = errors.New("a reply is still pending")
	ErrSessionNotFound  = errors.New("chat session not found")

	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyPurchased  = errors.New("ticket already purchased")
	ErrCheckoutNotFound  = errors.New("checkout not found")
	ErrPaymentInProgress = errors.New("another payment for this event is processing")

	ErrInvalidScreen   = errors.New("unknown screen")
	ErrNoEventSelected = errors.New("no event selected")
)
