package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yadoya/infras/otel"
	"yadoya/internal/domains/booking/model/dto"
	"yadoya/internal/domains/booking/service"
	"yadoya/shared"
	"yadoya/shared/constant"
	gDto "yadoya/shared/dto"
	"yadoya/shared/failure"
	"yadoya/shared/validator"
	"yadoya/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the public booking routes.
func (handler *Handler) Router(router chi.Router) {
	router.Post("/bookings", handler.CreateBooking)
}

// AdminRouter registers the booking management routes.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
	router.Get("/rooms/{id}/bookings", handler.GetBookingsByRoom)
}

// CreateBooking records a stay request.
// @Summary Create a booking
// @Description Record a stay request. Payment and calendar blocking happen on the external marketplace.
// @Tags Booking
// @Accept json
// @Produce json
// @Param booking body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	var req dto.CreateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings retrieves bookings with pagination.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Router /v1/admin/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingsByRoom lists the bookings recorded for one room.
// @Summary Get bookings for a room
// @Tags Booking
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Bookings for the room"
// @Failure 400 {object} response.Error
// @Router /v1/admin/rooms/{id}/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookingsByRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingsByRoom")
	defer scope.End()

	roomID, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetByRoom(ctx, roomID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings by room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// UpdateBooking updates an existing booking by its ID.
// @Summary Update a booking by ID
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param booking body dto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} response.Message "Booking updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var req dto.UpdateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Booking updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// DeleteBooking deletes a booking by its ID.
// @Summary Delete a booking by ID
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 400 {object} response.Error
// @Router /v1/admin/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Booking deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

func pathID(r *http.Request) (int, error) {
	id, err := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		return 0, failure.BadRequestFromString("invalid id parameter") //nolint:wrapcheck
	}

	return id, nil
}
