package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator is the ticket renderer (handy to fake in tests).
type Generator interface {
	GenerateTicket(data TicketData) (string, error)
}

// TicketGenerator writes event tickets under RootDir.
type TicketGenerator struct {
	RootDir  string // e.g. "./files"
	FontPath string // TTF with Latin-1 coverage; empty falls back to Helvetica
	fontName string
	utf8     bool
}

type TicketData struct {
	CheckoutID  string
	EventID     string
	Title       string
	Description string
	Date        string
	Category    string
	Amount      string
	ConfirmedAt time.Time
	Filename    string // base name only; generated when empty
}

func NewTicketGenerator(rootDir, fontPath string) *TicketGenerator {
	g := &TicketGenerator{RootDir: filepath.Clean(rootDir), FontPath: fontPath, fontName: "Helvetica"}
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err == nil {
			g.fontName = "DejaVu"
			g.utf8 = true
		}
	}
	return g
}

func (g *TicketGenerator) GenerateTicket(data TicketData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("ticket_%s.pdf", data.CheckoutID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	tr := func(s string) string { return s }
	if g.utf8 {
		pdf.AddUTF8Font(g.fontName, "", g.FontPath)
		pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetTitle(tr("Entrada "+data.Title), g.utf8)
	pdf.SetAuthor("Mindzy", false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, tr("ENTRADA"), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("EVENTO #%s026", data.EventID)), "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.SetFont(g.fontName, "B", 14)
	pdf.MultiCell(0, 7, tr(data.Title), "", "L", false)
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5, tr(data.Description), "", "L", false)
	pdf.Ln(2)
	g.hr(pdf)

	g.kvLine(pdf, tr("Fecha"), tr(data.Date))
	g.kvLine(pdf, tr("Categoría"), tr(data.Category))
	g.kvLine(pdf, tr("Total"), "$"+data.Amount)
	g.kvLine(pdf, tr("Código"), data.CheckoutID)
	g.kvLine(pdf, tr("Confirmado"), data.ConfirmedAt.Format("02.01.2006 15:04"))
	g.hr(pdf)

	pdf.SetFont(g.fontName, "", 8)
	pdf.MultiCell(0, 4, tr("Simulación con fines académicos. No se realizó ningún cobro real."), "", "C", false)

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *TicketGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 10)
	pdf.CellFormat(35, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *TicketGenerator) hr(pdf *gofpdf.Fpdf) {
	w, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(left, y, w-right, y)
	pdf.SetY(y + 2)
}

func (g *TicketGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename)
	return filepath.Join(g.RootDir, filename), nil
}
