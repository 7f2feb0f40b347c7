package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a ticketed campus event.
type Event struct {
	ID             string          `json:"id"`
	Titulo         string          `json:"titulo"`
	Descripcion    string          `json:"descripcion"`
	Fecha          string          `json:"fecha"` // YYYY-MM-DD
	Precio         decimal.Decimal `json:"precio"`
	Importancia    int             `json:"importancia"` // 1..5
	RachaRequerida int             `json:"rachaRequerida"`
	Categoria      string          `json:"categoria"`
	Comprado       bool            `json:"comprado,omitempty"`
}

type SortCriterion string

const (
	SortByPrice  SortCriterion = "precio"
	SortByDate   SortCriterion = "fecha"
	SortByRating SortCriterion = "importancia"
)

// ParseSortCriterion accepts the catalog field names and their English aliases.
func ParseSortCriterion(s string) (SortCriterion, bool) {
	switch s {
	case "precio", "price":
		return SortByPrice, true
	case "fecha", "date":
		return SortByDate, true
	case "importancia", "rating":
		return SortByRating, true
	}
	return "", false
}

type CheckoutStatus string

const (
	CheckoutAwaitingPayment CheckoutStatus = "awaiting-payment"
	CheckoutProcessing      CheckoutStatus = "processing"
	CheckoutConfirmed       CheckoutStatus = "confirmed"
)

// Checkout is a mock payment for one event.
type Checkout struct {
	ID          string          `json:"id"`
	EventID     string          `json:"eventId"`
	Amount      decimal.Decimal `json:"amount"`
	Status      CheckoutStatus  `json:"status"`
	Email       string          `json:"email,omitempty"`
	TicketPath  string          `json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
	ConfirmedAt *time.Time      `json:"confirmedAt,omitempty"`
}
