package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"travelapp/internal/domain"
	"travelapp/internal/domain/models"
	"travelapp/internal/utils"
)

// DocsService renders the train e-ticket PDF for a PNR.
type DocsService struct {
	Bookings  BookingService
	RequestID string
}

// TrainETicket returns the PDF and its filename. Only the booking's owner may
// fetch it; anyone else gets NotFound.
func (s DocsService) TrainETicket(ctx context.Context, pnr string, userID int64) ([]byte, string, error) {
	b, err := s.Bookings.GetTrainByPNR(ctx, pnr)
	if err != nil {
		return nil, "", err
	}
	if b.UserID != userID {
		return nil, "", domain.NotFoundError{Resource: "booking"}
	}
	utils.LogEvent(s.RequestID, "docs", "train_eticket", "pnr="+b.PNR)
	return buildTrainETicketPDF(b)
}

func buildTrainETicketPDF(b models.TrainBooking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+b.PNR, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRAIN E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "PNR: "+b.PNR)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger     : %s", safe(b.PassengerName, "-")),
		fmt.Sprintf("Train         : %s (%s)", safe(b.TrainName, "-"), safe(b.TrainID, "-")),
		fmt.Sprintf("Route         : %s -> %s", safe(b.FromStation, "-"), safe(b.ToStation, "-")),
		fmt.Sprintf("Journey date  : %s", safe(travelDay(b.TravelDate), "-")),
		fmt.Sprintf("Fare          : %s", utils.FormatINR(b.Price)),
		fmt.Sprintf("Status        : %s", safe(b.Status, domain.BookingConfirmed)),
		fmt.Sprintf("Booked at     : %s", bookedAt(b.CreatedAt)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Carry a valid photo ID matching the passenger name. This e-ticket is valid for one passenger.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ETICKET_%s_%s.pdf", b.PNR, safeFilenamePart(b.PassengerName))
	return buf.Bytes(), filename, nil
}

func travelDay(date string) string {
	d, err := utils.ParseDate(date)
	if err != nil {
		return date
	}
	return d.Format("Mon, 02 Jan 2006")
}

func bookedAt(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
