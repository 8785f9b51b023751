package repository

import (
	"context"

	"yadoya/internal/domains/sitecontent/model"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/constant"
)

type SiteContent interface {
	Insert(ctx context.Context, content *model.SiteContent) (*model.SiteContent, error)
	GetAll(ctx context.Context) ([]*model.SiteContent, error)
	GetByID(ctx context.Context, id int) (*model.SiteContent, bool, error)
	GetByKey(ctx context.Context, key string) (*model.SiteContent, bool, error)
	Update(ctx context.Context, id int, apply func(*model.SiteContent)) (bool, error)
	UpdateByKey(ctx context.Context, key string, apply func(*model.SiteContent)) (bool, error)
	Delete(ctx context.Context, id int) error
}

type repositoryImpl struct {
	jsonstore.Collection[*model.SiteContent]
}

func New(store *jsonstore.Store) SiteContent {
	return &repositoryImpl{
		Collection: jsonstore.NewCollection[*model.SiteContent](store, model.EntityName, constant.FileSiteContent),
	}
}

func (r *repositoryImpl) GetByKey(ctx context.Context, key string) (*model.SiteContent, bool, error) {
	return r.Find(ctx, func(content *model.SiteContent) bool {
		return content.Key == key
	})
}

// UpdateByKey applies the mutation to the block carrying the key. The
// key itself is restored afterwards, it is as immutable as the id.
func (r *repositoryImpl) UpdateByKey(ctx context.Context, key string, apply func(*model.SiteContent)) (bool, error) {
	return r.UpdateWhere(ctx, func(content *model.SiteContent) bool {
		return content.Key == key
	}, func(content *model.SiteContent) {
		apply(content)
		content.Key = key
	})
}
