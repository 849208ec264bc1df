package usecase

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTicketContext() ticketContext {
	return ticketContext{
		BookingID:     "b-123",
		ShowID:        "s-456",
		MovieTitle:    "Interstellar",
		StartsAt:      time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC),
		CustomerEmail: "jane@example.com",
		Seats: []ticketSeat{
			{RowLabel: "A", SeatNumber: 1},
			{RowLabel: "A", SeatNumber: 2},
		},
	}
}

func TestBuildTicketQRPayload_Deterministic(t *testing.T) {
	context := sampleTicketContext()

	first, err := buildTicketQRPayload(context)
	require.NoError(t, err)
	second, err := buildTicketQRPayload(context)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.JSONEq(t, `{
		"bookingId": "b-123",
		"showId": "s-456",
		"movieTitle": "Interstellar",
		"startsAt": "2026-03-14T19:30:00Z",
		"customerEmail": "jane@example.com",
		"seats": ["A1", "A2"]
	}`, first)
}

func TestBuildTicketEmailArtifact(t *testing.T) {
	artifact, err := buildTicketEmailArtifact(sampleTicketContext())
	require.NoError(t, err)

	assert.Equal(t, "Your ticket for Interstellar", artifact.Subject)
	assert.Contains(t, artifact.Text, "Booking confirmed: b-123")
	assert.Contains(t, artifact.Text, "Seats: A1, A2")
	assert.Contains(t, artifact.HTML, "<strong>b-123</strong>")
	assert.Equal(t, "ticket-b-123.pdf", artifact.AttachmentFilename)

	decoded, err := base64.StdEncoding.DecodeString(artifact.AttachmentBase64)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "%PDF-1.4")
	assert.Contains(t, string(decoded), "QR Payload: "+artifact.QRPayload)
}
