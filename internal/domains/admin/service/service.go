package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"yadoya/config"
	"yadoya/infras/jwt"
	"yadoya/infras/otel"
	"yadoya/internal/domains/admin/model"
	"yadoya/internal/domains/admin/model/dto"
	"yadoya/internal/domains/admin/repository"
	"yadoya/shared/constant"
	"yadoya/shared/failure"
	"yadoya/shared/password"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, username string, req dto.ChangePasswordRequest) error
	CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (dto.AdminResponse, error)
	GetAdmins(ctx context.Context) (dto.GetAdminsResponse, error)
	DeleteAdmin(ctx context.Context, id int) error
	GetUsers(ctx context.Context) (dto.GetUsersResponse, error)
	AddUser(ctx context.Context, req dto.CreateUserRequest) error
	UpdateUserPassword(ctx context.Context, username string, req dto.UpdateUserPasswordRequest) error
	DeleteUser(ctx context.Context, username string) error
}

type serviceImpl struct {
	repo       repository.Admin
	users      repository.Users
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(repo repository.Admin, users repository.Users, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		repo:       repo,
		users:      users,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, found, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		log.Warn().Str("username", req.Username).Msg("login attempt with unknown username")

		return res, failure.BadRequestFromString("invalid username or password") //nolint:wrapcheck
	}

	if err := password.Verify(req.Password, admin.PasswordHash); err != nil {
		log.Warn().Str("username", req.Username).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString("invalid username or password") //nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(strconv.Itoa(admin.ID), admin.Username)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") //nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, username string, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, found, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return failure.NotFound("admin not found") //nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, admin.PasswordHash); err != nil {
		return failure.BadRequestFromString("current password is incorrect") //nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return failure.InternalError(err) //nolint:wrapcheck
	}

	found, err = s.repo.Update(ctx, admin.ID, func(admin *model.Admin) {
		admin.PasswordHash = hashedPassword
	})
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return failure.NotFound("admin not found") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.CreateAdmin")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, found, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	if found {
		return res, failure.Conflict("username already exists") //nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	admin, err := s.repo.Insert(ctx, req.ToModel(hashedPassword))
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	res.FromModel(admin)

	return res, nil
}

func (s *serviceImpl) GetAdmins(ctx context.Context) (res dto.GetAdminsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.GetAdmins")
	defer scope.End()
	defer scope.TraceIfError(err)

	admins, err := s.repo.GetAll(ctx)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	res.FromModels(admins)

	return res, nil
}

func (s *serviceImpl) DeleteAdmin(ctx context.Context, id int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.DeleteAdmin")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.Delete(ctx, id); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) GetUsers(ctx context.Context) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.GetUsers")
	defer scope.End()
	defer scope.TraceIfError(err)

	users, err := s.users.List(ctx)
	if err != nil {
		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	res.FromModels(users)

	return res, nil
}

func (s *serviceImpl) AddUser(ctx context.Context, req dto.CreateUserRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.AddUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return failure.InternalError(err) //nolint:wrapcheck
	}

	added, err := s.users.Add(ctx, model.User{Username: req.Username, PasswordHash: hashedPassword})
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !added {
		return failure.Conflict("username already exists") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) UpdateUserPassword(ctx context.Context, username string, req dto.UpdateUserPasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.UpdateUserPassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return failure.InternalError(err) //nolint:wrapcheck
	}

	found, err := s.users.UpdatePassword(ctx, username, hashedPassword)
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	if !found {
		return failure.NotFound("user not found") //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) DeleteUser(ctx context.Context, username string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.DeleteUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.users.Delete(ctx, username); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	return nil
}
