package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindzy/internal/models"
	"mindzy/internal/pdf"
)

type fakeGenerator struct {
	got pdf.TicketData
	err error
}

func (f *fakeGenerator) GenerateTicket(data pdf.TicketData) (string, error) {
	f.got = data
	return "/files/ticket_" + data.CheckoutID + ".pdf", f.err
}

type fakeEmail struct {
	to   []string
	err  error
	path string
}

func (f *fakeEmail) SendTicket(email string, _ models.Event, _ models.Checkout, pdfPath string) error {
	f.to = append(f.to, email)
	f.path = pdfPath
	return f.err
}

func TestTicketService_Issue(t *testing.T) {
	ev := DefaultEvents()[2]
	co := models.Checkout{ID: "co-1", EventID: ev.ID, Amount: decimal.RequireFromString("7.5"), Email: "ana@example.com"}

	t.Run("renders and mails", func(t *testing.T) {
		gen, mail := &fakeGenerator{}, &fakeEmail{}
		path, err := NewTicketService(gen, mail).Issue(context.Background(), ev, co)
		require.NoError(t, err)
		assert.Equal(t, "/files/ticket_co-1.pdf", path)
		assert.Equal(t, "7.50", gen.got.Amount)
		assert.Equal(t, ev.Titulo, gen.got.Title)
		assert.Equal(t, []string{"ana@example.com"}, mail.to)
		assert.Equal(t, path, mail.path)
	})

	t.Run("mail failure keeps the ticket", func(t *testing.T) {
		mail := &fakeEmail{err: errors.New("smtp down")}
		path, err := NewTicketService(&fakeGenerator{}, mail).Issue(context.Background(), ev, co)
		require.NoError(t, err)
		assert.NotEmpty(t, path)
	})

	t.Run("no email given", func(t *testing.T) {
		mail := &fakeEmail{}
		noEmail := co
		noEmail.Email = ""
		_, err := NewTicketService(&fakeGenerator{}, mail).Issue(context.Background(), ev, noEmail)
		require.NoError(t, err)
		assert.Empty(t, mail.to)
	})

	t.Run("render failure", func(t *testing.T) {
		_, err := NewTicketService(&fakeGenerator{err: errors.New("disk full")}, nil).Issue(context.Background(), ev, co)
		assert.Error(t, err)
	})
}
