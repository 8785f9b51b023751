package dto

import (
	"yadoya/infras/jwt"
	"yadoya/internal/domains/admin/model"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

func (req *CreateAdminRequest) ToModel(hashedPassword string) *model.Admin {
	return &model.Admin{
		Username:     req.Username,
		PasswordHash: hashedPassword,
	}
}

type AdminResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

func (res *AdminResponse) FromModel(admin *model.Admin) {
	res.ID = admin.ID
	res.Username = admin.Username
}

type GetAdminsResponse struct {
	Admins []AdminResponse `json:"admins"`
	Total  int             `json:"total"`
}

func (res *GetAdminsResponse) FromModels(admins []*model.Admin) {
	res.Admins = make([]AdminResponse, 0, len(admins))

	for _, admin := range admins {
		item := AdminResponse{}
		item.FromModel(admin)
		res.Admins = append(res.Admins, item)
	}

	res.Total = len(admins)
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type UserResponse struct {
	Username string `json:"username"`
}

type GetUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

func (res *GetUsersResponse) FromModels(users []model.User) {
	res.Users = make([]UserResponse, 0, len(users))

	for _, user := range users {
		res.Users = append(res.Users, UserResponse{Username: user.Username})
	}

	res.Total = len(users)
}
