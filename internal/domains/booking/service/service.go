package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"yadoya/config"
	"yadoya/infras/otel"
	"yadoya/internal/domains/booking/model"
	"yadoya/internal/domains/booking/model/dto"
	"yadoya/internal/domains/booking/repository"
	roomRepository "yadoya/internal/domains/room/repository"
	"yadoya/shared"
	"yadoya/shared/cache"
	"yadoya/shared/constant"
	gDto "yadoya/shared/dto"
	"yadoya/shared/failure"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id int) (dto.BookingResponse, error)
	GetByRoom(ctx context.Context, roomID int) ([]dto.BookingResponse, error)
	Update(ctx context.Context, id int, req dto.UpdateBookingRequest) error
	Delete(ctx context.Context, id int) error
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepository.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = req.ValidateStay(); err != nil {
		return res, err
	}

	_, found, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	booking, err := s.repo.Insert(ctx, req.ToModel(time.Now()))
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllBooking, strconv.Itoa(params.Page), strconv.Itoa(params.Limit))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	total := len(bookings)
	from, to := params.Slice(total)
	res.FromModels(bookings[from:to], total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetByRoom(ctx context.Context, roomID int) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.repo.GetByRoomID(ctx, roomID)
	if err != nil {
		return nil, failure.InternalError(err) //nolint:wrapcheck
	}

	res = make([]dto.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		item := dto.BookingResponse{}
		item.FromModel(booking)
		res = append(res, item)
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id int, req dto.UpdateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	// Merge the patch into a copy first so a date change cannot leave a
	// stored stay with check-out on or before check-in.
	merged := *booking
	req.ApplyTo(&merged, time.Now())

	if err = dto.ValidateStayRange(merged.CheckIn, merged.CheckOut); err != nil {
		return err
	}

	found, err = s.repo.Update(ctx, id, func(booking *model.Booking) {
		req.ApplyTo(booking, time.Now())
	})
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return failure.NotFound("booking not found") //nolint:wrapcheck
	}

	s.invalidateCaches(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
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

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheGetBooking)
	}()
}
