package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"yadoya/config"
	"yadoya/infras/otel"
	"yadoya/internal/domains/news/model"
	"yadoya/internal/domains/news/model/dto"
	"yadoya/internal/domains/news/repository"
	"yadoya/shared"
	"yadoya/shared/cache"
	"yadoya/shared/constant"
	gDto "yadoya/shared/dto"
	"yadoya/shared/failure"
)

const (
	cacheGetNews          = "news:get"
	cacheGetPublishedNews = "news:published"
)

type News interface {
	Create(ctx context.Context, req dto.CreateNewsRequest) (dto.NewsResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, localeCode string) (dto.GetNewsResponse, error)
	GetPublished(ctx context.Context, params gDto.QueryParams, localeCode string) (dto.GetNewsResponse, error)
	Get(ctx context.Context, id int, localeCode string) (dto.NewsResponse, error)
	Update(ctx context.Context, id int, req dto.UpdateNewsRequest) error
	Delete(ctx context.Context, id int) error
}

type serviceImpl struct {
	repo  repository.News
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.News, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) News {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateNewsRequest) (res dto.NewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".news.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	news, err := s.repo.Insert(ctx, req.ToModel(time.Now()))
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	res.FromModel(news, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, localeCode string) (res dto.GetNewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".news.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	news, err := s.repo.GetAll(ctx)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	total := len(news)
	from, to := params.Slice(total)
	res.FromModels(news[from:to], localeCode, total, params.Limit)

	return res, nil
}

// GetPublished serves the public news feed and is the hot path, so the
// page goes through the cache.
func (s *serviceImpl) GetPublished(ctx context.Context, params gDto.QueryParams, localeCode string) (res dto.GetNewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".news.GetPublished")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPublishedNews, localeCode, strconv.Itoa(params.Page), strconv.Itoa(params.Limit))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for published news")

		return res, nil
	}

	news, err := s.repo.GetPublished(ctx)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	total := len(news)
	from, to := params.Slice(total)
	res.FromModels(news[from:to], localeCode, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save published news to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int, localeCode string) (res dto.NewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".news.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	news, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return res, failure.NotFound("news not found") //nolint:wrapcheck
	}

	res.FromModel(news, localeCode)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int, req dto.UpdateNewsRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".news.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	found, err := s.repo.Update(ctx, id, func(news *model.News) {
		req.ApplyTo(news)
	})
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return failure.NotFound("news not found") //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".news.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Delete(ctx, id); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	return nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetPublishedNews)
		shared.InvalidateCaches(c, s.cache, cacheGetNews)
	}()
}
