package repository

import (
	"context"

	"yadoya/internal/domains/admin/model"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/constant"
)

type Admin interface {
	Insert(ctx context.Context, admin *model.Admin) (*model.Admin, error)
	GetAll(ctx context.Context) ([]*model.Admin, error)
	GetByID(ctx context.Context, id int) (*model.Admin, bool, error)
	GetByUsername(ctx context.Context, username string) (*model.Admin, bool, error)
	Update(ctx context.Context, id int, apply func(*model.Admin)) (bool, error)
	Delete(ctx context.Context, id int) error
}

type repositoryImpl struct {
	jsonstore.Collection[*model.Admin]
}

func New(store *jsonstore.Store) Admin {
	return &repositoryImpl{
		Collection: jsonstore.NewCollection[*model.Admin](store, model.EntityName, constant.FileAdmins),
	}
}

func (r *repositoryImpl) GetByUsername(ctx context.Context, username string) (*model.Admin, bool, error) {
	return r.Find(ctx, func(admin *model.Admin) bool {
		return admin.Username == username
	})
}
