package service

import (
	"context"
	"time"

	"yadoya/config"
	"yadoya/infras/otel"
	"yadoya/internal/domains/message/model"
	"yadoya/internal/domains/message/model/dto"
	"yadoya/internal/domains/message/repository"
	"yadoya/shared/constant"
	gDto "yadoya/shared/dto"
	"yadoya/shared/failure"
)

type Message interface {
	Create(ctx context.Context, req dto.CreateMessageRequest) (dto.MessageResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, localeCode string) (dto.GetMessagesResponse, error)
	Get(ctx context.Context, id int, localeCode string) (dto.MessageResponse, error)
	Reply(ctx context.Context, id int, req dto.ReplyMessageRequest) error
	Delete(ctx context.Context, id int) error
}

type serviceImpl struct {
	repo repository.Message
	cfg  *config.Config
	otel otel.Otel
}

// Messages are operator-facing and low-traffic, so they go uncached.
func New(repo repository.Message, cfg *config.Config, otel otel.Otel) Message {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMessageRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".message.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	message, err := s.repo.Insert(ctx, req.ToModel(time.Now()))
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	res.FromModel(message, constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, localeCode string) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".message.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	messages, err := s.repo.GetAll(ctx)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	total := len(messages)
	from, to := params.Slice(total)
	res.FromModels(messages[from:to], localeCode, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int, localeCode string) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".message.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	message, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return res, failure.NotFound("message not found") //nolint:wrapcheck
	}

	res.FromModel(message, localeCode)

	return res, nil
}

func (s *serviceImpl) Reply(ctx context.Context, id int, req dto.ReplyMessageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".message.Reply")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return failure.BadRequestFromString("reply text is required in at least one language") //nolint:wrapcheck
	}

	found, err := s.repo.Update(ctx, id, func(message *model.Message) {
		req.ApplyTo(message, time.Now())
	})
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return failure.NotFound("message not found") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".message.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Delete(ctx, id); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	return nil
}
