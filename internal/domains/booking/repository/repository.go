package repository

import (
	"context"

	"yadoya/internal/domains/booking/model"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/constant"
)

type Booking interface {
	Insert(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	GetAll(ctx context.Context) ([]*model.Booking, error)
	GetByID(ctx context.Context, id int) (*model.Booking, bool, error)
	GetByRoomID(ctx context.Context, roomID int) ([]*model.Booking, error)
	Update(ctx context.Context, id int, apply func(*model.Booking)) (bool, error)
	Delete(ctx context.Context, id int) error
}

type repositoryImpl struct {
	jsonstore.Collection[*model.Booking]
}

func New(store *jsonstore.Store) Booking {
	return &repositoryImpl{
		Collection: jsonstore.NewCollection[*model.Booking](store, model.EntityName, constant.FileBookings),
	}
}

func (r *repositoryImpl) GetByRoomID(ctx context.Context, roomID int) ([]*model.Booking, error) {
	return r.Filter(ctx, func(booking *model.Booking) bool {
		return booking.RoomID == roomID
	})
}
