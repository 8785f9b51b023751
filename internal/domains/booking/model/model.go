package model

import (
	"yadoya/internal/store/jsonstore"
)

const (
	EntityName = "booking"
)

// Booking status enum as stored in bookings.json.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

var Statuses = []string{StatusPending, StatusConfirmed, StatusCancelled}

// Booking is a stay request kept for the guest ledger. Actual payment
// and calendar blocking happen on the external marketplace, so a
// booking never locks a room here.
type Booking struct {
	jsonstore.Model
	RoomID    int    `json:"room_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Guests    int    `json:"guests"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
