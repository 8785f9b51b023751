package repository

import (
	"context"

	"yadoya/internal/domains/room/model"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/constant"
)

type Room interface {
	Insert(ctx context.Context, room *model.Room) (*model.Room, error)
	GetAll(ctx context.Context) ([]*model.Room, error)
	GetByID(ctx context.Context, id int) (*model.Room, bool, error)
	Update(ctx context.Context, id int, apply func(*model.Room)) (bool, error)
	Delete(ctx context.Context, id int) error
}

type repositoryImpl struct {
	jsonstore.Collection[*model.Room]
}

func New(store *jsonstore.Store) Room {
	return &repositoryImpl{
		Collection: jsonstore.NewCollection[*model.Room](store, model.EntityName, constant.FileRooms),
	}
}
