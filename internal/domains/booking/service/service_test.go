package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yadoya/config"
	"yadoya/infras/otel/mocks"
	"yadoya/internal/domains/booking/model"
	"yadoya/internal/domains/booking/model/dto"
	"yadoya/internal/domains/booking/repository"
	"yadoya/internal/domains/booking/service"
	roomModel "yadoya/internal/domains/room/model"
	roomRepository "yadoya/internal/domains/room/repository"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/cache"
	gDto "yadoya/shared/dto"
	"yadoya/shared/failure"
)

func newTestService(t *testing.T) (service.Booking, roomRepository.Room) {
	t.Helper()

	dir := t.TempDir()
	mockOtel := mocks.NewOtel()

	store, err := jsonstore.NewAt(dir, mockOtel)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})

	cfg := &config.Config{}
	cfg.Data.Dir = dir
	cfg.Cache.TTL = 60

	roomRepo := roomRepository.New(store)
	svc := service.New(repository.New(store), roomRepo, cfg, cache.NewRedisCache(client, mockOtel), mockOtel)

	return svc, roomRepo
}

func createRoom(t *testing.T, roomRepo roomRepository.Room) *roomModel.Room {
	t.Helper()

	room, err := roomRepo.Insert(context.Background(), &roomModel.Room{
		Name:   "Garden Annex",
		Price:  12000,
		Status: roomModel.StatusAvailable,
	})
	require.NoError(t, err)

	return room
}

func validRequest(roomID int) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:   roomID,
		Name:     "Sato Hanako",
		Email:    "hanako@example.com",
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-03",
		Guests:   2,
	}
}

func TestBookingService_Create(t *testing.T) {
	svc, roomRepo := newTestService(t)
	ctx := context.Background()

	room := createRoom(t, roomRepo)

	res, err := svc.Create(ctx, validRequest(room.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, res.ID)
	assert.Equal(t, room.ID, res.RoomID)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.NotEmpty(t, res.CreatedAt)
}

func TestBookingService_CreateUnknownRoom(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), validRequest(999))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_CreateInvalidStay(t *testing.T) {
	svc, roomRepo := newTestService(t)

	room := createRoom(t, roomRepo)

	req := validRequest(room.ID)
	req.CheckOut = req.CheckIn

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBookingService_GetAllPaginates(t *testing.T) {
	svc, roomRepo := newTestService(t)
	ctx := context.Background()

	room := createRoom(t, roomRepo)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, validRequest(room.ID))
		require.NoError(t, err)
	}

	res, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages)
}

func TestBookingService_GetByRoom(t *testing.T) {
	svc, roomRepo := newTestService(t)
	ctx := context.Background()

	first := createRoom(t, roomRepo)
	second := createRoom(t, roomRepo)

	_, err := svc.Create(ctx, validRequest(first.ID))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validRequest(second.ID))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validRequest(second.ID))
	require.NoError(t, err)

	bookings, err := svc.GetByRoom(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	empty, err := svc.GetByRoom(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	svc, roomRepo := newTestService(t)
	ctx := context.Background()

	room := createRoom(t, roomRepo)

	created, err := svc.Create(ctx, validRequest(room.ID))
	require.NoError(t, err)

	status := model.StatusConfirmed
	require.NoError(t, svc.Update(ctx, created.ID, dto.UpdateBookingRequest{Status: &status}))

	updated, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, updated.Status)
	assert.NotEmpty(t, updated.UpdatedAt)
	assert.Equal(t, "Sato Hanako", updated.Name, "unset fields stay untouched")
}

func TestBookingService_UpdateRejectsInvertedStay(t *testing.T) {
	svc, roomRepo := newTestService(t)
	ctx := context.Background()

	room := createRoom(t, roomRepo)

	created, err := svc.Create(ctx, validRequest(room.ID))
	require.NoError(t, err)

	t.Run("checkout moved before checkin", func(t *testing.T) {
		checkOut := "2026-09-30"
		err := svc.Update(ctx, created.ID, dto.UpdateBookingRequest{CheckOut: &checkOut})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("checkin moved past checkout", func(t *testing.T) {
		checkIn := "2026-10-05"
		err := svc.Update(ctx, created.ID, dto.UpdateBookingRequest{CheckIn: &checkIn})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("stored stay is untouched after a rejected patch", func(t *testing.T) {
		booking, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "2026-10-01", booking.CheckIn)
		assert.Equal(t, "2026-10-03", booking.CheckOut)
	})

	t.Run("consistent shift is accepted", func(t *testing.T) {
		checkIn := "2026-10-02"
		checkOut := "2026-10-04"
		require.NoError(t, svc.Update(ctx, created.ID, dto.UpdateBookingRequest{CheckIn: &checkIn, CheckOut: &checkOut}))

		booking, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "2026-10-02", booking.CheckIn)
		assert.Equal(t, "2026-10-04", booking.CheckOut)
	})
}

func TestBookingService_UpdateMissing(t *testing.T) {
	svc, _ := newTestService(t)

	status := model.StatusCancelled
	err := svc.Update(context.Background(), 999, dto.UpdateBookingRequest{Status: &status})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_Delete(t *testing.T) {
	svc, roomRepo := newTestService(t)
	ctx := context.Background()

	room := createRoom(t, roomRepo)

	created, err := svc.Create(ctx, validRequest(room.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.Error(t, err)
}
