package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yadoya/internal/domains/booking/model"
	"yadoya/internal/domains/booking/model/dto"
)

func TestCreateBookingRequest_ValidateStay(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
	}{
		{name: "valid stay", checkIn: "2026-10-01", checkOut: "2026-10-03", wantErr: false},
		{name: "checkout equals checkin", checkIn: "2026-10-01", checkOut: "2026-10-01", wantErr: true},
		{name: "checkout before checkin", checkIn: "2026-10-03", checkOut: "2026-10-01", wantErr: true},
		{name: "malformed checkin", checkIn: "not-a-date", checkOut: "2026-10-01", wantErr: true},
		{name: "malformed checkout", checkIn: "2026-10-01", checkOut: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateBookingRequest{CheckIn: tt.checkIn, CheckOut: tt.checkOut}

			err := req.ValidateStay()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	req := dto.CreateBookingRequest{
		RoomID:   2,
		Name:     "Sato Hanako",
		Email:    "hanako@example.com",
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-03",
	}

	booking := req.ToModel(now)

	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, 1, booking.Guests, "guests default to one")
	assert.Equal(t, now.Format(time.RFC3339), booking.CreatedAt)
	assert.Empty(t, booking.UpdatedAt)
}

func TestUpdateBookingRequest_ApplyTo(t *testing.T) {
	now := time.Date(2026, 9, 2, 9, 30, 0, 0, time.UTC)

	booking := &model.Booking{
		Name:     "Sato Hanako",
		Email:    "hanako@example.com",
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-03",
		Guests:   2,
		Status:   model.StatusPending,
	}

	status := model.StatusConfirmed
	guests := 3

	req := dto.UpdateBookingRequest{Status: &status, Guests: &guests}
	req.ApplyTo(booking, now)

	assert.Equal(t, model.StatusConfirmed, booking.Status)
	assert.Equal(t, 3, booking.Guests)
	assert.Equal(t, "Sato Hanako", booking.Name, "unset fields stay untouched")
	require.NotEmpty(t, booking.UpdatedAt)
	assert.Equal(t, now.Format(time.RFC3339), booking.UpdatedAt)
}
