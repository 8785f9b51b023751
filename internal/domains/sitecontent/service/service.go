package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"yadoya/config"
	"yadoya/infras/otel"
	"yadoya/internal/domains/sitecontent/model"
	"yadoya/internal/domains/sitecontent/model/dto"
	"yadoya/internal/domains/sitecontent/repository"
	"yadoya/shared"
	"yadoya/shared/cache"
	"yadoya/shared/constant"
	"yadoya/shared/failure"
)

const (
	cacheGetSiteContent = "sitecontent:get"
	cacheHomeContent    = "sitecontent:home"
)

type SiteContent interface {
	Create(ctx context.Context, req dto.CreateSiteContentRequest) (dto.SiteContentResponse, error)
	GetAll(ctx context.Context, localeCode string) (dto.GetSiteContentsResponse, error)
	Get(ctx context.Context, id int, localeCode string) (dto.SiteContentResponse, error)
	GetByKey(ctx context.Context, key, localeCode string) (dto.SiteContentResponse, error)
	Update(ctx context.Context, id int, req dto.UpdateSiteContentRequest) error
	UpdateByKey(ctx context.Context, key string, req dto.UpdateSiteContentRequest) error
	Delete(ctx context.Context, id int) error
	GetHomeContent(ctx context.Context) (dto.HomeContentResponse, error)
	ReplaceHomeContent(ctx context.Context, raw []byte) error
}

type serviceImpl struct {
	repo  repository.SiteContent
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.SiteContent, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) SiteContent {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSiteContentRequest) (res dto.SiteContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitecontent.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, found, err := s.repo.GetByKey(ctx, req.Key)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if found {
		return res, failure.Conflict("site content key already exists") //nolint:wrapcheck
	}

	content, err := s.repo.Insert(ctx, req.ToModel())
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	res.FromModel(content, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, localeCode string) (res dto.GetSiteContentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitecontent.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	contents, err := s.repo.GetAll(ctx)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	res.FromModels(contents, localeCode)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int, localeCode string) (res dto.SiteContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitecontent.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	content, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return res, failure.NotFound("site content not found") //nolint:wrapcheck
	}

	res.FromModel(content, localeCode)

	return res, nil
}

func (s *serviceImpl) GetByKey(ctx context.Context, key, localeCode string) (res dto.SiteContentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitecontent.GetByKey")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSiteContent, key, localeCode)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for site content")

		return res, nil
	}

	content, found, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return res, failure.NotFound("site content not found") //nolint:wrapcheck
	}

	res.FromModel(content, localeCode)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save site content to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int, req dto.UpdateSiteContentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitecontent.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	found, err := s.repo.Update(ctx, id, func(content *model.SiteContent) {
		key := content.Key
		req.ApplyTo(content)
		content.Key = key
	})
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return failure.NotFound("site content not found") //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	return nil
}

func (s *serviceImpl) UpdateByKey(ctx context.Context, key string, req dto.UpdateSiteContentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitecontent.UpdateByKey")
	defer scope.End()
	defer scope.TraceIfError(err)

	found, err := s.repo.UpdateByKey(ctx, key, func(content *model.SiteContent) {
		req.ApplyTo(content)
	})
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return failure.NotFound("site content not found") //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitecontent.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Delete(ctx, id); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	return nil
}

// GetHomeContent loads the homepage copy document. A missing file is an
// empty document, not an error.
func (s *serviceImpl) GetHomeContent(ctx context.Context) (res dto.HomeContentResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitecontent.GetHomeContent")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.Content = map[string]any{}

	data, err := os.ReadFile(s.homeContentPath())
	if os.IsNotExist(err) {
		return res, nil
	}
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if err := json.Unmarshal(data, &res.Content); err != nil {
		return res, failure.InternalError(fmt.Errorf("corrupt home content file: %w", err)) //nolint:wrapcheck
	}

	return res, nil
}

// ReplaceHomeContent overwrites the homepage copy document. The payload
// is parsed before anything touches disk so a malformed submission
// leaves the live document intact.
func (s *serviceImpl) ReplaceHomeContent(ctx context.Context, raw []byte) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sitecontent.ReplaceHomeContent")
	defer scope.End()
	defer scope.TraceIfError(err)

	content := map[string]any{}
	if err := json.Unmarshal(raw, &content); err != nil {
		return failure.BadRequest(fmt.Errorf("invalid home content payload: %w", err)) //nolint:wrapcheck
	}

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	path := s.homeContentPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if err := os.Rename(tmp, path); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	return nil
}

// HomeContentPath returns the homepage copy document location below the
// static asset root.
func HomeContentPath(cfg *config.Config) string {
	return filepath.Join(cfg.Data.StaticDir, "data", constant.FileHomeContent)
}

func (s *serviceImpl) homeContentPath() string {
	return HomeContentPath(s.cfg)
}

func (s *serviceImpl) invalidateCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetSiteContent)
		shared.InvalidateCaches(c, s.cache, cacheHomeContent)
	}()
}
