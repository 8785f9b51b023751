package news

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yadoya/infras/otel"
	"yadoya/internal/domains/news/model/dto"
	"yadoya/internal/domains/news/service"
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
	service service.News
	otel    otel.Otel
}

func New(service service.News, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the public news feed routes.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/news", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPublishedNews)
		routerGroup.Get("/{id}", handler.GetNewsByID)
	})
}

// AdminRouter registers the news management routes.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/news", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNews)
		routerGroup.Post("/", handler.CreateNews)
		routerGroup.Patch("/{id}", handler.UpdateNews)
		routerGroup.Delete("/{id}", handler.DeleteNews)
	})
}

// GetPublishedNews retrieves the published news feed.
// @Summary Get published news
// @Tags News
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param lang query string false "Locale code (ja, en, zh)"
// @Success 200 {object} response.Data[dto.GetNewsResponse] "Published news"
// @Failure 500 {object} response.Error
// @Router /v1/news [get]
func (handler *Handler) GetPublishedNews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublishedNews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	localeCode := middleware.LocaleFromContext(ctx, locale.Japanese)

	news, err := handler.service.GetPublished(ctx, queryParams, localeCode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get published news")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Published news retrieved successfully")

	response.WithJSON(w, http.StatusOK, news)
}

// GetNews retrieves every article including unpublished ones.
// @Summary Get all news
// @Tags News
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param lang query string false "Locale code (ja, en, zh)"
// @Success 200 {object} response.Data[dto.GetNewsResponse] "All news"
// @Failure 500 {object} response.Error
// @Router /v1/admin/news [get]
// @Security BearerAuth
func (handler *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	localeCode := middleware.LocaleFromContext(ctx, locale.Japanese)

	news, err := handler.service.GetAll(ctx, queryParams, localeCode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get news")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("News retrieved successfully")

	response.WithJSON(w, http.StatusOK, news)
}

// GetNewsByID retrieves an article by its ID.
// @Summary Get a news article by ID
// @Tags News
// @Produce json
// @Param id path int true "News ID"
// @Param lang query string false "Locale code (ja, en, zh)"
// @Success 200 {object} response.Data[dto.NewsResponse] "News details"
// @Failure 404 {object} response.Error
// @Router /v1/news/{id} [get]
func (handler *Handler) GetNewsByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNewsByID")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	localeCode := middleware.LocaleFromContext(ctx, locale.Japanese)

	news, err := handler.service.Get(ctx, id, localeCode)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get news by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("News retrieved successfully")

	response.WithJSON(w, http.StatusOK, news)
}

// CreateNews publishes a new article.
// @Summary Create a news article
// @Tags News
// @Accept json
// @Produce json
// @Param news body dto.CreateNewsRequest true "Article content"
// @Success 201 {object} response.Data[dto.NewsResponse] "News created"
// @Failure 400 {object} response.Error
// @Router /v1/admin/news [post]
// @Security BearerAuth
func (handler *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateNews")
	defer scope.End()

	var req dto.CreateNewsRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	news, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create news")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("News created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, news)
}

// UpdateNews updates an article by its ID.
// @Summary Update a news article by ID
// @Tags News
// @Accept json
// @Produce json
// @Param id path int true "News ID"
// @Param news body dto.UpdateNewsRequest true "Fields to update"
// @Success 200 {object} response.Message "News updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/news/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateNews")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var req dto.UpdateNewsRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update news")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("News updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "News updated successfully")
}

// DeleteNews deletes an article by its ID.
// @Summary Delete a news article by ID
// @Tags News
// @Produce json
// @Param id path int true "News ID"
// @Success 200 {object} response.Message "News deleted successfully"
// @Failure 400 {object} response.Error
// @Router /v1/admin/news/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteNews")
	defer scope.End()

	id, err := pathID(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete news")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("News deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "News deleted successfully")
}

func pathID(r *http.Request) (int, error) {
	id, err := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		return 0, failure.BadRequestFromString("invalid id parameter") //nolint:wrapcheck
	}

	return id, nil
}
