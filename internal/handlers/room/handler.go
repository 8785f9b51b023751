package room

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yadoya/infras/otel"
	"yadoya/internal/domains/room/model/dto"
	"yadoya/internal/domains/room/service"
	"yadoya/shared"
	"yadoya/shared/constant"
	gDto "yadoya/shared/dto"
	"yadoya/shared/failure"
	"yadoya/shared/locale"
	"yadoya/shared/validator"
	"yadoya/transport/http/middleware"
	"yadoya/transport/http/response"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the public room routes.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/featured", handler.GetFeaturedRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Get("/{id}/book", handler.BookRoom)
	})
}

// AdminRouter registers the room management routes.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

// GetRooms retrieves rooms with pagination and localized copy.
// @Summary Get all rooms
// @Description Retrieve all rooms with pagination. Text fields are localized via the lang query parameter.
// @Tags Room
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param lang query string false "Locale code (ja, en, zh)"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	localeCode := middleware.LocaleFromContext(ctx, locale.Japanese)

	rooms, err := handler.service.GetAll(ctx, queryParams, localeCode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetFeaturedRooms retrieves the rooms shown on the homepage.
// @Summary Get featured rooms
// @Description Retrieve the available rooms highlighted on the homepage, up to the configured count.
// @Tags Room
// @Produce json
// @Param lang query string false "Locale code (ja, en, zh)"
// @Success 200 {object} response.Data[[]dto.RoomResponse] "Featured rooms"
// @Failure 500 {object} response.Error
// @Router /v1/rooms/featured [get]
func (handler *Handler) GetFeaturedRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeaturedRooms")
	defer scope.End()

	localeCode := middleware.LocaleFromContext(ctx, locale.Japanese)

	rooms, err := handler.service.GetFeatured(ctx, localeCode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get featured rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Featured rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Description Retrieve a room by its unique identifier.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param lang query string false "Locale code (ja, en, zh)"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	localeCode := middleware.LocaleFromContext(ctx, locale.Japanese)

	room, err := handler.service.Get(ctx, id, localeCode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// BookRoom redirects the guest to the room's external booking page.
// @Summary Redirect to external booking page
// @Description Booking is handled by an external marketplace; this redirects to the room's listing there.
// @Tags Room
// @Param id path int true "Room ID"
// @Success 302
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/book [get]
func (handler *Handler) BookRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookRoom")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	url, err := handler.service.ReferralURL(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve booking referral")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking referral issued")

	http.Redirect(w, r, url, http.StatusFound)
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a new room with the provided details.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Room name"
// @Param price formData number false "Nightly price"
// @Param capacity formData integer false "Room capacity"
// @Param status formData string false "Room status"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Data[dto.RoomResponse] "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateRoomRequest{
		Name:          request.FormValue("name"),
		Description:   request.FormValue("description"),
		Status:        request.FormValue("status"),
		NameJA:        request.FormValue("name_ja"),
		NameEN:        request.FormValue("name_en"),
		NameZH:        request.FormValue("name_zh"),
		DescriptionJA: request.FormValue("description_ja"),
		DescriptionEN: request.FormValue("description_en"),
		DescriptionZH: request.FormValue("description_zh"),
		AirbnbURL:     request.FormValue("airbnb_url"),
		AddressJA:     request.FormValue("address_ja"),
		AddressEN:     request.FormValue("address_en"),
		AddressZH:     request.FormValue("address_zh"),
		PermitNumber:  request.FormValue("permit_number"),
	}

	if priceStr := request.FormValue("price"); priceStr != "" {
		if p, err := strconv.ParseFloat(priceStr, 64); err == nil {
			req.Price = p
		}
	}

	if capStr := request.FormValue("capacity"); capStr != "" {
		if c, err := shared.ConvertStringToInt(capStr); err == nil {
			req.Capacity = c
		}
	}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Room created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Description Update the details of an existing room. Omitted fields keep their stored value.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Room ID"
// @Param name formData string false "Room name"
// @Param price formData number false "Nightly price"
// @Param capacity formData integer false "Room capacity"
// @Param status formData string false "Room status"
// @Param image formData file false "Room image"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateRoomRequest{}

	setString := func(field string, target **string) {
		if values, ok := r.MultipartForm.Value[field]; ok && len(values) > 0 {
			*target = &values[0]
		}
	}

	setString("name", &req.Name)
	setString("description", &req.Description)
	setString("status", &req.Status)
	setString("name_ja", &req.NameJA)
	setString("name_en", &req.NameEN)
	setString("name_zh", &req.NameZH)
	setString("description_ja", &req.DescriptionJA)
	setString("description_en", &req.DescriptionEN)
	setString("description_zh", &req.DescriptionZH)
	setString("airbnb_url", &req.AirbnbURL)
	setString("address_ja", &req.AddressJA)
	setString("address_en", &req.AddressEN)
	setString("address_zh", &req.AddressZH)
	setString("permit_number", &req.PermitNumber)

	if priceStr := r.FormValue("price"); priceStr != "" {
		if p, err := strconv.ParseFloat(priceStr, 64); err == nil {
			req.Price = &p
		}
	}

	if capStr := r.FormValue("capacity"); capStr != "" {
		if c, err := shared.ConvertStringToInt(capStr); err == nil {
			req.Capacity = &c
		}
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Room updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Description Delete a room using its unique identifier.
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 400 {object} response.Error
// @Router /v1/admin/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Room deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

func pathID(r *http.Request) (int, error) {
	id, err := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		return 0, failure.BadRequestFromString("invalid id parameter") //nolint:wrapcheck
	}

	return id, nil
}
