package repository

import (
	"context"

	"yadoya/internal/domains/message/model"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/constant"
)

type Message interface {
	Insert(ctx context.Context, message *model.Message) (*model.Message, error)
	GetAll(ctx context.Context) ([]*model.Message, error)
	GetByID(ctx context.Context, id int) (*model.Message, bool, error)
	Update(ctx context.Context, id int, apply func(*model.Message)) (bool, error)
	Delete(ctx context.Context, id int) error
}

type repositoryImpl struct {
	jsonstore.Collection[*model.Message]
}

func New(store *jsonstore.Store) Message {
	return &repositoryImpl{
		Collection: jsonstore.NewCollection[*model.Message](store, model.EntityName, constant.FileMessages),
	}
}
