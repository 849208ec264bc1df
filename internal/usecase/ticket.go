package usecase

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type ticketSeat struct {
	RowLabel   string
	SeatNumber int
}

type ticketContext struct {
	BookingID     string
	ShowID        string
	MovieTitle    string
	StartsAt      time.Time
	CustomerEmail string
	Seats         []ticketSeat
}

type ticketEmailArtifact struct {
	Subject            string
	Text               string
	HTML               string
	AttachmentFilename string
	AttachmentBase64   string
	QRPayload          string
}

type ticketQRPayload struct {
	BookingID     string   `json:"bookingId"`
	ShowID        string   `json:"showId"`
	MovieTitle    string   `json:"movieTitle"`
	StartsAt      string   `json:"startsAt"`
	CustomerEmail string   `json:"customerEmail"`
	Seats         []string `json:"seats"`
}

func seatLabels(seats []ticketSeat) []string {
	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = fmt.Sprintf("%s%d", seat.RowLabel, seat.SeatNumber)
	}
	return labels
}

// buildTicketQRPayload produces a deterministic JSON payload that downstream
// scanners encode into the entry QR code.
func buildTicketQRPayload(context ticketContext) (string, error) {
	payload, err := json.Marshal(ticketQRPayload{
		BookingID:     context.BookingID,
		ShowID:        context.ShowID,
		MovieTitle:    context.MovieTitle,
		StartsAt:      context.StartsAt.UTC().Format(time.RFC3339),
		CustomerEmail: context.CustomerEmail,
		Seats:         seatLabels(context.Seats),
	})
	if err != nil {
		return "", fmt.Errorf("marshal ticket qr payload: %w", err)
	}
	return string(payload), nil
}

// buildTicketEmailArtifact assembles subject, body and a lightweight PDF-style
// attachment for the booking ticket email.
func buildTicketEmailArtifact(context ticketContext) (*ticketEmailArtifact, error) {
	qrPayload, err := buildTicketQRPayload(context)
	if err != nil {
		return nil, err
	}

	labels := strings.Join(seatLabels(context.Seats), ", ")
	startsAt := context.StartsAt.UTC().Format(time.RFC3339)

	attachment := strings.Join([]string{
		"%PDF-1.4",
		"Movie Ticket",
		"Booking ID: " + context.BookingID,
		"Show ID: " + context.ShowID,
		"Movie: " + context.MovieTitle,
		"Starts At: " + startsAt,
		"Customer: " + context.CustomerEmail,
		"Seats: " + labels,
		"QR Payload: " + qrPayload,
		"%%EOF",
	}, "\n")

	return &ticketEmailArtifact{
		Subject: "Your ticket for " + context.MovieTitle,
		Text: strings.Join([]string{
			"Booking confirmed: " + context.BookingID,
			"Movie: " + context.MovieTitle,
			"Showtime: " + startsAt,
			"Seats: " + labels,
			"Your ticket attachment includes QR payload for entry and food pickup.",
		}, "\n"),
		HTML: strings.Join([]string{
			"<p>Booking confirmed: <strong>" + context.BookingID + "</strong></p>",
			"<p>Movie: <strong>" + context.MovieTitle + "</strong></p>",
			"<p>Showtime: <strong>" + startsAt + "</strong></p>",
			"<p>Seats: <strong>" + labels + "</strong></p>",
			"<p>Ticket attachment includes QR payload for entry and food pickup.</p>",
		}, ""),
		AttachmentFilename: "ticket-" + context.BookingID + ".pdf",
		AttachmentBase64:   base64.StdEncoding.EncodeToString([]byte(attachment)),
		QRPayload:          qrPayload,
	}, nil
}
