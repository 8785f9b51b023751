package dto

import (
	"time"

	"yadoya/internal/domains/booking/model"
	"yadoya/shared"
	"yadoya/shared/constant"
	"yadoya/shared/failure"
)

type CreateBookingRequest struct {
	RoomID   int    `json:"room_id" validate:"required,gte=1"`
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests" validate:"omitempty,gte=1,lte=50"`
}

// ValidateStay rejects stays whose check-out does not fall after the
// check-in. Field formats are already covered by the struct tags.
func (req *CreateBookingRequest) ValidateStay() error {
	return ValidateStayRange(req.CheckIn, req.CheckOut)
}

// ValidateStayRange checks a check-in/check-out pair, also used on
// updates after the patch is merged into the stored record.
func ValidateStayRange(checkInDate, checkOutDate string) error {
	checkIn, err := time.Parse(constant.DateOnlyFormat, checkInDate)
	if err != nil {
		return failure.BadRequestFromString("check_in must be a valid date") //nolint:wrapcheck
	}

	checkOut, err := time.Parse(constant.DateOnlyFormat, checkOutDate)
	if err != nil {
		return failure.BadRequestFromString("check_out must be a valid date") //nolint:wrapcheck
	}

	if !checkIn.Before(checkOut) {
		return failure.BadRequestFromString("check_out must be after check_in") //nolint:wrapcheck
	}

	return nil
}

func (req *CreateBookingRequest) ToModel(now time.Time) *model.Booking {
	guests := req.Guests
	if guests == 0 {
		guests = 1
	}

	return &model.Booking{
		RoomID:    req.RoomID,
		Name:      req.Name,
		Email:     req.Email,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    guests,
		Status:    model.StatusPending,
		CreatedAt: now.Format(constant.DateFormat),
	}
}

// UpdateBookingRequest carries a typed partial update: nil fields leave
// the stored value untouched.
type UpdateBookingRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Email    *string `json:"email" validate:"omitempty,email,max=320"`
	CheckIn  *string `json:"check_in" validate:"omitempty,datetime=2006-01-02"`
	CheckOut *string `json:"check_out" validate:"omitempty,datetime=2006-01-02"`
	Guests   *int    `json:"guests" validate:"omitempty,gte=1,lte=50"`
	Status   *string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
}

// ApplyTo merges the set fields into the stored record and stamps the
// modification time.
func (req *UpdateBookingRequest) ApplyTo(booking *model.Booking, now time.Time) {
	if req.Name != nil {
		booking.Name = *req.Name
	}
	if req.Email != nil {
		booking.Email = *req.Email
	}
	if req.CheckIn != nil {
		booking.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		booking.CheckOut = *req.CheckOut
	}
	if req.Guests != nil {
		booking.Guests = *req.Guests
	}
	if req.Status != nil {
		booking.Status = *req.Status
	}

	booking.UpdatedAt = now.Format(constant.DateFormat)
}

type BookingResponse struct {
	ID        int    `json:"id"`
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

func (res *BookingResponse) FromModel(booking *model.Booking) {
	res.ID = booking.ID
	res.RoomID = booking.RoomID
	res.Name = booking.Name
	res.Email = booking.Email
	res.CheckIn = booking.CheckIn
	res.CheckOut = booking.CheckOut
	res.Guests = booking.Guests
	res.Status = booking.Status
	res.CreatedAt = booking.CreatedAt
	res.UpdatedAt = booking.UpdatedAt
}

type GetBookingsResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

func (res *GetBookingsResponse) FromModels(bookings []*model.Booking, total, limit int) {
	res.Bookings = make([]BookingResponse, 0, len(bookings))

	for _, booking := range bookings {
		item := BookingResponse{}
		item.FromModel(booking)
		res.Bookings = append(res.Bookings, item)
	}

	res.Total = total
	res.TotalPages = shared.CalculateTotalPage(total, limit)
}
