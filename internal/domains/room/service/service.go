package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"yadoya/config"
	"yadoya/infras/otel"
	"yadoya/internal/domains/room/model"
	"yadoya/internal/domains/room/model/dto"
	"yadoya/internal/domains/room/repository"
	"yadoya/shared"
	"yadoya/shared/cache"
	"yadoya/shared/constant"
	gDto "yadoya/shared/dto"
	"yadoya/shared/failure"
)

const (
	cacheGetRoom      = "room:get"
	cacheGetAllRoom   = "room:gets"
	cacheFeaturedRoom = "room:featured"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, localeCode string) (dto.GetRoomsResponse, error)
	GetFeatured(ctx context.Context, localeCode string) ([]dto.RoomResponse, error)
	Get(ctx context.Context, id int, localeCode string) (dto.RoomResponse, error)
	Update(ctx context.Context, id int, req dto.UpdateRoomRequest) error
	Delete(ctx context.Context, id int) error
	ReferralURL(ctx context.Context, id int) (string, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	imagePath := constant.Empty
	if req.Image != nil {
		imagePath, err = s.saveImage(req.ImageFile, req.Image, "room_new")
		if err != nil {
			log.Error().Err(err).Msg("failed to store room image")

			return res, failure.InternalError(err) //nolint:wrapcheck
		}
	}

	room, err := s.repo.Insert(ctx, req.ToModel(imagePath))
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	res.FromModel(room, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, localeCode string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllRoom, localeCode, strconv.Itoa(params.Page), strconv.Itoa(params.Limit))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	rooms, err := s.repo.GetAll(ctx)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	total := len(rooms)
	from, to := params.Slice(total)
	res.FromModels(rooms[from:to], localeCode, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

// GetFeatured returns the homepage strip: the first available rooms, up
// to the configured count.
func (s *serviceImpl) GetFeatured(ctx context.Context, localeCode string) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetFeatured")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheFeaturedRoom, localeCode)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for featured rooms")

		return res, nil
	}

	rooms, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, failure.InternalError(err) //nolint:wrapcheck
	}

	res = make([]dto.RoomResponse, 0, s.cfg.Data.FeaturedRooms)
	for _, room := range rooms {
		if room.Status != model.StatusAvailable {
			continue
		}

		item := dto.RoomResponse{}
		item.FromModel(room, localeCode)
		res = append(res, item)

		if len(res) == s.cfg.Data.FeaturedRooms {
			break
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save featured rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int, localeCode string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, strconv.Itoa(id), localeCode)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	res.FromModel(room, localeCode)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int, req dto.UpdateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	imagePath := constant.Empty
	if req.Image != nil {
		imagePath, err = s.saveImage(req.ImageFile, req.Image, fmt.Sprintf("room_%d", id))
		if err != nil {
			log.Error().Err(err).Msg("failed to store room image")

			return failure.InternalError(err) //nolint:wrapcheck
		}
	}

	found, err := s.repo.Update(ctx, id, func(room *model.Room) {
		req.ApplyTo(room)

		if imagePath != constant.Empty {
			room.Image = imagePath
		}
	})
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return failure.NotFound("room not found") //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	return nil
}

// Delete removes the room. Bookings referencing it are left alone, the
// admin screens surface them as orphaned.
func (s *serviceImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Delete(ctx, id); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	return nil
}

// ReferralURL resolves the external marketplace page a booking request
// is redirected to.
func (s *serviceImpl) ReferralURL(ctx context.Context, id int) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.ReferralURL")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return constant.Empty, failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return constant.Empty, failure.NotFound("room not found") //nolint:wrapcheck
	}

	if room.AirbnbURL == constant.Empty {
		return constant.Empty, failure.NotFound("room has no external booking page") //nolint:wrapcheck
	}

	return room.AirbnbURL, nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheGetRoom)
		shared.InvalidateCaches(c, s.cache, cacheFeaturedRoom)
	}()
}

// saveImage writes an uploaded room image below the static asset root
// and returns its path relative to that root.
func (s *serviceImpl) saveImage(file multipart.File, header *multipart.FileHeader, prefix string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read uploaded image: %w", err)
	}

	ext := filepath.Ext(header.Filename)
	name := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString()[:8], ext)

	dir := filepath.Join(s.cfg.Data.StaticDir, constant.RoomImageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return constant.Empty, fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return constant.Empty, fmt.Errorf("failed to write uploaded image: %w", err)
	}

	return path.Join(constant.RoomImageDir, name), nil
}
