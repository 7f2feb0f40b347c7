package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mindzy/internal/models"
)

// DefaultPaymentDelay is how long a mock payment stays in processing.
const DefaultPaymentDelay = 2 * time.Second

func DefaultEvents() []models.Event {
	return []models.Event{
		{
			ID:             "1",
			Titulo:         "Fiesta de Bienvenida FIEC",
			Descripcion:    "Música en vivo, snacks y el mejor ambiente para iniciar el semestre con energía.",
			Fecha:          "2026-03-15",
			Precio:         decimal.RequireFromString("10.00"),
			Importancia:    5,
			RachaRequerida: 15,
			Categoria:      "Social",
			Comprado:       true,
		},
		{
			ID:             "2",
			Titulo:         "Bingo Universitario",
			Descripcion:    "Participa por laptops, tablets y bonos de cafetería mientras te relajas.",
			Fecha:          "2026-02-10",
			Precio:         decimal.RequireFromString("5.00"),
			Importancia:    4,
			RachaRequerida: 10,
			Categoria:      "Premios",
		},
		{
			ID:             "3",
			Titulo:         "Torneo E-Sports: FIFA 26",
			Descripcion:    "Demuestra quién es el mejor en la cancha virtual. ¡Premios en efectivo!",
			Fecha:          "2026-02-25",
			Precio:         decimal.RequireFromString("7.50"),
			Importancia:    3,
			RachaRequerida: 12,
			Categoria:      "Deportes",
		},
	}
}

// TicketIssuer produces (and optionally delivers) the ticket of a confirmed
// checkout, returning the stored file path.
type TicketIssuer interface {
	Issue(ctx context.Context, ev models.Event, co models.Checkout) (string, error)
}

type checkoutEntry struct {
	deviceID string
	co       models.Checkout
}

// EventService keeps one catalog per device in memory. Purchases last for
// the process lifetime and are not written to the device store.
type EventService struct {
	delay  time.Duration
	issuer TicketIssuer
	now    func() time.Time
	after  func(time.Duration, func())

	mu        sync.Mutex
	catalogs  map[string][]models.Event
	checkouts map[string]*checkoutEntry
}

func NewEventService(delay time.Duration, issuer TicketIssuer) *EventService {
	if delay < 0 {
		delay = DefaultPaymentDelay
	}
	return &EventService{
		delay:     delay,
		issuer:    issuer,
		now:       time.Now,
		after:     func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		catalogs:  map[string][]models.Event{},
		checkouts: map[string]*checkoutEntry{},
	}
}

// catalog must be called with s.mu held.
func (s *EventService) catalog(deviceID string) []models.Event {
	c, ok := s.catalogs[deviceID]
	if !ok {
		c = DefaultEvents()
		s.catalogs[deviceID] = c
	}
	return c
}

func (s *EventService) List(deviceID string) []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Event{}, s.catalog(deviceID)...)
}

func (s *EventService) Get(deviceID, id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.catalog(deviceID) {
		if ev.ID == id {
			ev := ev
			return &ev, nil
		}
	}
	return nil, ErrEventNotFound
}

// Sort reorders the device's catalog in place and returns the new order:
// price and date ascending, rating descending. The sort is stable, so
// applying the same criterion twice changes nothing.
func (s *EventService) Sort(deviceID string, criterion models.SortCriterion) ([]models.Event, error) {
	var less func(a, b models.Event) bool
	switch criterion {
	case models.SortByPrice:
		less = func(a, b models.Event) bool { return a.Precio.LessThan(b.Precio) }
	case models.SortByDate:
		less = func(a, b models.Event) bool { return a.Fecha < b.Fecha }
	case models.SortByRating:
		less = func(a, b models.Event) bool { return a.Importancia > b.Importancia }
	default:
		return nil, fmt.Errorf("%w: sort by precio|fecha|importancia", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.catalog(deviceID)
	sort.SliceStable(c, func(i, j int) bool { return less(c[i], c[j]) })
	return append([]models.Event{}, c...), nil
}

// StartCheckout opens a payment for an event not yet purchased.
func (s *EventService) StartCheckout(deviceID, eventID, email string) (*models.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ev *models.Event
	for i, e := range s.catalog(deviceID) {
		if e.ID == eventID {
			ev = &s.catalogs[deviceID][i]
			break
		}
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	if ev.Comprado {
		return nil, ErrAlreadyPurchased
	}
	co := models.Checkout{
		ID:        uuid.NewString(),
		EventID:   ev.ID,
		Amount:    ev.Precio,
		Status:    models.CheckoutAwaitingPayment,
		Email:     strings.TrimSpace(email),
		CreatedAt: s.now(),
	}
	s.checkouts[co.ID] = &checkoutEntry{deviceID: deviceID, co: co}
	log.Printf("[event][checkout][start] device=%s event=%s checkout=%s", deviceID, ev.ID, co.ID)
	return &co, nil
}

func (s *EventService) entry(deviceID, checkoutID string) (*checkoutEntry, error) {
	e, ok := s.checkouts[checkoutID]
	if !ok || e.deviceID != deviceID {
		return nil, ErrCheckoutNotFound
	}
	return e, nil
}

func (s *EventService) GetCheckout(deviceID, checkoutID string) (*models.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entry(deviceID, checkoutID)
	if err != nil {
		return nil, err
	}
	co := e.co
	return &co, nil
}

// Pay moves an awaiting checkout to processing and schedules confirmation.
// Paying a checkout that is already processing or confirmed is inert. Only
// one checkout per event may be processing at a time.
func (s *EventService) Pay(deviceID, checkoutID string) (*models.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entry(deviceID, checkoutID)
	if err != nil {
		return nil, err
	}
	if e.co.Status != models.CheckoutAwaitingPayment {
		co := e.co
		return &co, nil
	}
	for _, ev := range s.catalog(deviceID) {
		if ev.ID == e.co.EventID && ev.Comprado {
			return nil, ErrAlreadyPurchased
		}
	}
	for id, other := range s.checkouts {
		if id != checkoutID && other.deviceID == deviceID &&
			other.co.EventID == e.co.EventID && other.co.Status == models.CheckoutProcessing {
			return nil, ErrPaymentInProgress
		}
	}
	e.co.Status = models.CheckoutProcessing
	s.after(s.delay, func() { s.confirm(checkoutID) })
	log.Printf("[event][checkout][pay] device=%s checkout=%s delay=%s", deviceID, checkoutID, s.delay)
	co := e.co
	return &co, nil
}

func (s *EventService) confirm(checkoutID string) {
	s.mu.Lock()
	e, ok := s.checkouts[checkoutID]
	if !ok || e.co.Status != models.CheckoutProcessing {
		s.mu.Unlock()
		return
	}
	c := s.catalog(e.deviceID)
	idx := -1
	for i := range c {
		if c[i].ID == e.co.EventID {
			idx = i
		}
	}
	// a purchase is final; a late checkout for the same event never confirms
	if idx < 0 || c[idx].Comprado {
		e.co.Status = models.CheckoutAwaitingPayment
		s.mu.Unlock()
		log.Printf("[event][checkout][skip] device=%s checkout=%s event=%s already purchased",
			e.deviceID, checkoutID, e.co.EventID)
		return
	}
	now := s.now()
	e.co.Status = models.CheckoutConfirmed
	e.co.ConfirmedAt = &now
	c[idx].Comprado = true
	ev := c[idx]
	co := e.co
	s.mu.Unlock()
	log.Printf("[event][checkout][confirmed] device=%s checkout=%s event=%s", e.deviceID, checkoutID, co.EventID)

	if s.issuer == nil {
		return
	}
	path, err := s.issuer.Issue(context.Background(), ev, co)
	if err != nil {
		log.Printf("[event][ticket][err] checkout=%s: %v", checkoutID, err)
		return
	}
	s.mu.Lock()
	e.co.TicketPath = path
	s.mu.Unlock()
}

// TicketPath returns the generated ticket of a confirmed checkout.
func (s *EventService) TicketPath(deviceID, checkoutID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entry(deviceID, checkoutID)
	if err != nil {
		return "", err
	}
	if e.co.Status != models.CheckoutConfirmed || e.co.TicketPath == "" {
		return "", ErrCheckoutNotFound
	}
	return e.co.TicketPath, nil
}
