package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"yadoya/config"
	"yadoya/infras/jwt"
	jwtMocks "yadoya/infras/jwt/mocks"
	"yadoya/infras/otel/mocks"
	"yadoya/internal/domains/admin/model"
	"yadoya/internal/domains/admin/model/dto"
	"yadoya/internal/domains/admin/repository"
	"yadoya/internal/domains/admin/service"
	"yadoya/internal/store/jsonstore"
	"yadoya/shared/password"
)

func newTestService(t *testing.T, mockJWT jwt.JWT) (service.Auth, repository.Admin, repository.Users) {
	t.Helper()

	dir := t.TempDir()
	mockOtel := mocks.NewOtel()

	store, err := jsonstore.NewAt(dir, mockOtel)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Data.Dir = dir
	cfg.Data.UsersFile = filepath.Join(dir, "users.json")

	adminRepo := repository.New(store)
	usersRepo := repository.NewUsers(cfg, mockOtel)

	return service.New(adminRepo, usersRepo, cfg, mockOtel, mockJWT), adminRepo, usersRepo
}

func seedAdmin(t *testing.T, repo repository.Admin, username, plaintext string) *model.Admin {
	t.Helper()

	hash, err := password.Hash(plaintext)
	require.NoError(t, err)

	admin, err := repo.Insert(context.Background(), &model.Admin{Username: username, PasswordHash: hash})
	require.NoError(t, err)

	return admin
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc, adminRepo, _ := newTestService(t, mockJWT)

	seedAdmin(t, adminRepo, "keeper", "correct horse")

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: "keeper", Password: "correct horse"},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), "keeper").
					Return(&jwt.TokenPair{
						AccessToken:  "access-token",
						RefreshToken: "refresh-token",
					}, nil)
			},
			wantErr: false,
		},
		{
			name:      "unknown username",
			req:       dto.LoginRequest{Username: "nobody", Password: "correct horse"},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "wrong password",
			req:       dto.LoginRequest{Username: "keeper", Password: "wrong"},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Username: "keeper", Password: "correct horse"},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), "keeper").
					Return(nil, errors.New("token generation failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc, _, _ := newTestService(t, mockJWT)

	t.Run("successful refresh", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("valid-refresh-token").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		result, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"})
		assert.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("invalid-refresh-token").
			Return(nil, errors.New("invalid token"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "invalid-refresh-token"})
		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc, adminRepo, _ := newTestService(t, mockJWT)

	seedAdmin(t, adminRepo, "keeper", "old password")

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), "keeper", dto.ChangePasswordRequest{
			CurrentPassword: "not the old one",
			NewPassword:     "brand new pass",
		})
		assert.Error(t, err)
	})

	t.Run("unknown admin", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), "nobody", dto.ChangePasswordRequest{
			CurrentPassword: "old password",
			NewPassword:     "brand new pass",
		})
		assert.Error(t, err)
	})

	t.Run("successful change", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), "keeper", dto.ChangePasswordRequest{
			CurrentPassword: "old password",
			NewPassword:     "brand new pass",
		})
		require.NoError(t, err)

		admin, found, err := adminRepo.GetByUsername(context.Background(), "keeper")
		require.NoError(t, err)
		require.True(t, found)
		assert.NoError(t, password.Verify("brand new pass", admin.PasswordHash))
	})
}

func TestAuthService_CreateAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc, adminRepo, _ := newTestService(t, mockJWT)

	seedAdmin(t, adminRepo, "keeper", "pass")

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.CreateAdmin(context.Background(), dto.CreateAdminRequest{Username: "keeper", Password: "whatever1"})
		assert.Error(t, err)
	})

	t.Run("new admin gets next id", func(t *testing.T) {
		created, err := svc.CreateAdmin(context.Background(), dto.CreateAdminRequest{Username: "second", Password: "whatever1"})
		require.NoError(t, err)
		assert.Equal(t, 2, created.ID)
		assert.Equal(t, "second", created.Username)
	})
}

func TestAuthService_UserAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc, _, _ := newTestService(t, mockJWT)
	ctx := context.Background()

	require.NoError(t, svc.AddUser(ctx, dto.CreateUserRequest{Username: "legacy", Password: "password1"}))

	t.Run("duplicate user", func(t *testing.T) {
		err := svc.AddUser(ctx, dto.CreateUserRequest{Username: "legacy", Password: "password2"})
		assert.Error(t, err)
	})

	t.Run("list users", func(t *testing.T) {
		users, err := svc.GetUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, users.Total)
		assert.Equal(t, "legacy", users.Users[0].Username)
	})

	t.Run("update password of missing user", func(t *testing.T) {
		err := svc.UpdateUserPassword(ctx, "nobody", dto.UpdateUserPasswordRequest{Password: "password3"})
		assert.Error(t, err)
	})

	t.Run("update and delete", func(t *testing.T) {
		require.NoError(t, svc.UpdateUserPassword(ctx, "legacy", dto.UpdateUserPasswordRequest{Password: "password3"}))
		require.NoError(t, svc.DeleteUser(ctx, "legacy"))

		users, err := svc.GetUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, users.Total)
	})
}
