package message

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yadoya/infras/otel"
	"yadoya/internal/domains/message/model/dto"
	"yadoya/internal/domains/message/service"
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
	service service.Message
	otel    otel.Otel
}

func New(service service.Message, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the public contact-form route.
func (handler *Handler) Router(router chi.Router) {
	router.Post("/messages", handler.CreateMessage)
}

// AdminRouter registers the message management routes.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/messages", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMessages)
		routerGroup.Get("/{id}", handler.GetMessageByID)
		routerGroup.Post("/{id}/reply", handler.ReplyMessage)
		routerGroup.Delete("/{id}", handler.DeleteMessage)
	})
}

// CreateMessage records a contact-form submission.
// @Summary Submit a contact message
// @Tags Message
// @Accept json
// @Produce json
// @Param message body dto.CreateMessageRequest true "Message details"
// @Success 201 {object} response.Data[dto.MessageResponse] "Message recorded"
// @Failure 400 {object} response.Error
// @Router /v1/messages [post]
func (handler *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMessage")
	defer scope.End()

	var req dto.CreateMessageRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create message")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Message created successfully")

	response.WithJSON(w, http.StatusCreated, message)
}

// GetMessages retrieves contact messages with pagination.
// @Summary Get all messages
// @Tags Message
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param lang query string false "Locale code (ja, en, zh)"
// @Success 200 {object} response.Data[dto.GetMessagesResponse] "List of messages"
// @Failure 500 {object} response.Error
// @Router /v1/admin/messages [get]
// @Security BearerAuth
func (handler *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	localeCode := middleware.LocaleFromContext(ctx, locale.Japanese)

	messages, err := handler.service.GetAll(ctx, queryParams, localeCode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get messages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Messages retrieved successfully")

	response.WithJSON(w, http.StatusOK, messages)
}

// GetMessageByID retrieves a message by its ID.
// @Summary Get a message by ID
// @Tags Message
// @Produce json
// @Param id path int true "Message ID"
// @Param lang query string false "Locale code (ja, en, zh)"
// @Success 200 {object} response.Data[dto.MessageResponse] "Message details"
// @Failure 404 {object} response.Error
// @Router /v1/admin/messages/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMessageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessageByID")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	localeCode := middleware.LocaleFromContext(ctx, locale.Japanese)

	message, err := handler.service.Get(ctx, id, localeCode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get message by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Message retrieved successfully")

	response.WithJSON(w, http.StatusOK, message)
}

// ReplyMessage records the operator's reply to a message.
// @Summary Reply to a message
// @Description Store the reply text and mark the message as answered.
// @Tags Message
// @Accept json
// @Produce json
// @Param id path int true "Message ID"
// @Param reply body dto.ReplyMessageRequest true "Reply text per locale"
// @Success 200 {object} response.Message "Reply recorded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/messages/{id}/reply [post]
// @Security BearerAuth
func (handler *Handler) ReplyMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplyMessage")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var req dto.ReplyMessageRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reply(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reply to message")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Message replied successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Reply recorded successfully")
}

// DeleteMessage deletes a message by its ID.
// @Summary Delete a message by ID
// @Tags Message
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} response.Message "Message deleted successfully"
// @Failure 400 {object} response.Error
// @Router /v1/admin/messages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMessage")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete message")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Message deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Message deleted successfully")
}

func pathID(r *http.Request) (int, error) {
	id, err := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		return 0, failure.BadRequestFromString("invalid id parameter") //nolint:wrapcheck
	}

	return id, nil
}
