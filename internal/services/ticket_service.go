package services

import (
	"context"
	"fmt"
	"log"

	"mindzy/internal/models"
	"mindzy/internal/pdf"
)

// ticketService renders the ticket PDF and mails it when the buyer left an
// email and SMTP is configured.
type ticketService struct {
	gen   pdf.Generator
	email EmailService
}

func NewTicketService(gen pdf.Generator, email EmailService) TicketIssuer {
	return &ticketService{gen: gen, email: email}
}

func (s *ticketService) Issue(_ context.Context, ev models.Event, co models.Checkout) (string, error) {
	data := pdf.TicketData{
		CheckoutID:  co.ID,
		EventID:     ev.ID,
		Title:       ev.Titulo,
		Description: ev.Descripcion,
		Date:        ev.Fecha,
		Category:    ev.Categoria,
		Amount:      co.Amount.StringFixed(2),
	}
	if co.ConfirmedAt != nil {
		data.ConfirmedAt = *co.ConfirmedAt
	}
	path, err := s.gen.GenerateTicket(data)
	if err != nil {
		return "", fmt.Errorf("generate ticket: %w", err)
	}
	log.Printf("[ticket][pdf][ok] checkout=%s path=%s", co.ID, path)

	if s.email == nil || co.Email == "" {
		return path, nil
	}
	if err := s.email.SendTicket(co.Email, ev, co, path); err != nil {
		// the ticket exists even if delivery failed
		log.Printf("[ticket][email][err] checkout=%s to=%s: %v", co.ID, co.Email, err)
		return path, nil
	}
	log.Printf("[ticket][email][ok] checkout=%s to=%s", co.ID, co.Email)
	return path, nil
}
