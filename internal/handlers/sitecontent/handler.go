package sitecontent

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yadoya/infras/otel"
	"yadoya/internal/domains/sitecontent/model/dto"
	"yadoya/internal/domains/sitecontent/service"
	"yadoya/shared"
	"yadoya/shared/constant"
	"yadoya/shared/failure"
	"yadoya/shared/locale"
	"yadoya/shared/validator"
	"yadoya/transport/http/middleware"
	"yadoya/transport/http/response"
)

type Handler struct {
	service service.SiteContent
	otel    otel.Otel
}

func New(service service.SiteContent, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the public content routes.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/contents", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetContents)
		routerGroup.Get("/{key}", handler.GetContentByKey)
	})
	router.Get("/home", handler.GetHomeContent)
}

// AdminRouter registers the content management routes.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/contents", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContent)
		routerGroup.Patch("/{id}", handler.UpdateContent)
		routerGroup.Put("/key/{key}", handler.UpdateContentByKey)
		routerGroup.Delete("/{id}", handler.DeleteContent)
	})
	router.Put("/home", handler.ReplaceHomeContent)
}

// GetContents retrieves every content block.
// @Summary Get all site content blocks
// @Tags SiteContent
// @Produce json
// @Param lang query string false "Locale code (ja, en, zh)"
// @Success 200 {object} response.Data[dto.GetSiteContentsResponse] "Content blocks"
// @Failure 500 {object} response.Error
// @Router /v1/contents [get]
func (handler *Handler) GetContents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContents")
	defer scope.End()

	localeCode := middleware.LocaleFromContext(ctx, locale.Japanese)

	contents, err := handler.service.GetAll(ctx, localeCode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get site contents")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Site contents retrieved successfully")

	response.WithJSON(w, http.StatusOK, contents)
}

// GetContentByKey retrieves a content block by its stable key.
// @Summary Get a site content block by key
// @Tags SiteContent
// @Produce json
// @Param key path string true "Content key"
// @Param lang query string false "Locale code (ja, en, zh)"
// @Success 200 {object} response.Data[dto.SiteContentResponse] "Content block"
// @Failure 404 {object} response.Error
// @Router /v1/contents/{key} [get]
func (handler *Handler) GetContentByKey(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContentByKey")
	defer scope.End()

	key := chi.URLParam(r, "key")
	localeCode := middleware.LocaleFromContext(ctx, locale.Japanese)

	content, err := handler.service.GetByKey(ctx, key, localeCode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get site content by key")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Site content retrieved successfully")

	response.WithJSON(w, http.StatusOK, content)
}

// GetHomeContent serves the homepage copy document.
// @Summary Get homepage content
// @Tags SiteContent
// @Produce json
// @Success 200 {object} response.Data[dto.HomeContentResponse] "Homepage content"
// @Failure 500 {object} response.Error
// @Router /v1/home [get]
func (handler *Handler) GetHomeContent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHomeContent")
	defer scope.End()

	content, err := handler.service.GetHomeContent(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get home content")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Home content retrieved successfully")

	response.WithJSON(w, http.StatusOK, content)
}

// CreateContent adds a new content block.
// @Summary Create a site content block
// @Tags SiteContent
// @Accept json
// @Produce json
// @Param content body dto.CreateSiteContentRequest true "Content block"
// @Success 201 {object} response.Data[dto.SiteContentResponse] "Content created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/contents [post]
// @Security BearerAuth
func (handler *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContent")
	defer scope.End()

	var req dto.CreateSiteContentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	content, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create site content")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Site content created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, content)
}

// UpdateContent updates a content block by its ID.
// @Summary Update a site content block by ID
// @Description Update a content block. The id and key never change.
// @Tags SiteContent
// @Accept json
// @Produce json
// @Param id path int true "Content ID"
// @Param content body dto.UpdateSiteContentRequest true "Fields to update"
// @Success 200 {object} response.Message "Content updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/contents/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContent")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var req dto.UpdateSiteContentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update site content")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Site content updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Content updated successfully")
}

// UpdateContentByKey updates a content block addressed by key.
// @Summary Update a site content block by key
// @Tags SiteContent
// @Accept json
// @Produce json
// @Param key path string true "Content key"
// @Param content body dto.UpdateSiteContentRequest true "Fields to update"
// @Success 200 {object} response.Message "Content updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/contents/key/{key} [put]
// @Security BearerAuth
func (handler *Handler) UpdateContentByKey(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContentByKey")
	defer scope.End()

	key := chi.URLParam(r, "key")

	var req dto.UpdateSiteContentRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateByKey(ctx, key, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update site content by key")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Site content updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Content updated successfully")
}

// DeleteContent deletes a content block by its ID.
// @Summary Delete a site content block by ID
// @Tags SiteContent
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} response.Message "Content deleted successfully"
// @Failure 400 {object} response.Error
// @Router /v1/admin/contents/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContent")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete site content")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Site content deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Content deleted successfully")
}

// ReplaceHomeContent overwrites the homepage copy document.
// @Summary Replace homepage content
// @Description Replace the homepage copy document with the submitted JSON. A malformed payload leaves the live document untouched.
// @Tags SiteContent
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Home content replaced"
// @Failure 400 {object} response.Error
// @Router /v1/admin/home [put]
// @Security BearerAuth
func (handler *Handler) ReplaceHomeContent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplaceHomeContent")
	defer scope.End()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequest(err))

		return
	}

	if err := handler.service.ReplaceHomeContent(ctx, raw); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to replace home content")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Home content replaced successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Home content replaced successfully")
}

func pathID(r *http.Request) (int, error) {
	id, err := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		return 0, failure.BadRequestFromString("invalid id parameter") //nolint:wrapcheck
	}

	return id, nil
}
