package repository

import (
	"context"

	"yadoya/internal/domains/news/model"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/constant"
)

type News interface {
	Insert(ctx context.Context, news *model.News) (*model.News, error)
	GetAll(ctx context.Context) ([]*model.News, error)
	GetPublished(ctx context.Context) ([]*model.News, error)
	GetByID(ctx context.Context, id int) (*model.News, bool, error)
	Update(ctx context.Context, id int, apply func(*model.News)) (bool, error)
	Delete(ctx context.Context, id int) error
}

type repositoryImpl struct {
	jsonstore.Collection[*model.News]
}

func New(store *jsonstore.Store) News {
	return &repositoryImpl{
		Collection: jsonstore.NewCollection[*model.News](store, model.EntityName, constant.FileNews),
	}
}

func (r *repositoryImpl) GetPublished(ctx context.Context) ([]*model.News, error) {
	return r.Filter(ctx, func(news *model.News) bool {
		return news.IsPublished
	})
}
