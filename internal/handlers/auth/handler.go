package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yadoya/infras/otel"
	"yadoya/internal/domains/admin/model/dto"
	"yadoya/internal/domains/admin/service"
	"yadoya/shared"
	"yadoya/shared/constant"
	"yadoya/shared/failure"
	"yadoya/shared/validator"
	"yadoya/transport/http/response"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers the routes reachable without a token.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/auth", func(routerGroup chi.Router) {
		routerGroup.Post("/login", handler.Login)
		routerGroup.Post("/refresh", handler.RefreshToken)
	})
}

// AdminRouter registers the account management routes.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Post("/auth/change-password", handler.ChangePassword)
	router.Route("/admins", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAdmins)
		routerGroup.Post("/", handler.CreateAdmin)
		routerGroup.Delete("/{id}", handler.DeleteAdmin)
	})
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Post("/", handler.AddUser)
		routerGroup.Put("/{username}/password", handler.UpdateUserPassword)
		routerGroup.Delete("/{username}", handler.DeleteUser)
	})
}

// Login exchanges credentials for a token pair.
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} response.Data[dto.LoginResponse] "Token pair"
// @Failure 400 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	tokens, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("login failed")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged in successfully")

	response.WithJSON(w, http.StatusOK, tokens)
}

// RefreshToken issues a fresh token pair from a refresh token.
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse] "New token pair"
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	tokens, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("token refresh failed")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tokens refreshed successfully")

	response.WithJSON(w, http.StatusOK, tokens)
}

// ChangePassword updates the password of the authenticated admin.
// @Summary Change own password
// @Tags Auth
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} response.Message "Password changed successfully"
// @Failure 400 {object} response.Error
// @Router /v1/admin/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	username, ok := ctx.Value(constant.ContextKeyUsername).(string)
	if !ok || username == constant.Empty {
		response.WithError(w, failure.Unauthorized("missing authenticated user"))

		return
	}

	var req dto.ChangePasswordRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ChangePassword(ctx, username, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change password")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Password changed successfully by user " + username)

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}

// GetAdmins lists the admin accounts.
// @Summary Get all admins
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[dto.GetAdminsResponse] "List of admins"
// @Failure 500 {object} response.Error
// @Router /v1/admin/admins [get]
// @Security BearerAuth
func (handler *Handler) GetAdmins(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdmins")
	defer scope.End()

	admins, err := handler.service.GetAdmins(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admins")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admins retrieved successfully")

	response.WithJSON(w, http.StatusOK, admins)
}

// CreateAdmin registers a new admin account.
// @Summary Create an admin
// @Tags Auth
// @Accept json
// @Produce json
// @Param admin body dto.CreateAdminRequest true "Admin credentials"
// @Success 201 {object} response.Data[dto.AdminResponse] "Admin created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/admins [post]
// @Security BearerAuth
func (handler *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAdmin")
	defer scope.End()

	var req dto.CreateAdminRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	admin, err := handler.service.CreateAdmin(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create admin")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Admin created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, admin)
}

// DeleteAdmin deletes an admin account by its ID.
// @Summary Delete an admin by ID
// @Tags Auth
// @Produce json
// @Param id path int true "Admin ID"
// @Success 200 {object} response.Message "Admin deleted successfully"
// @Failure 400 {object} response.Error
// @Router /v1/admin/admins/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAdmin")
	defer scope.End()

	id, err := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequestFromString("invalid id parameter"))

		return
	}

	if err := handler.service.DeleteAdmin(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete admin")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Admin deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Admin deleted successfully")
}

// GetUsers lists the legacy user accounts.
// @Summary Get all users
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[dto.GetUsersResponse] "List of users"
// @Failure 500 {object} response.Error
// @Router /v1/admin/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	users, err := handler.service.GetUsers(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Users retrieved successfully")

	response.WithJSON(w, http.StatusOK, users)
}

// AddUser registers a new user account.
// @Summary Create a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User credentials"
// @Success 201 {object} response.Message "User created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/users [post]
// @Security BearerAuth
func (handler *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddUser")
	defer scope.End()

	var req dto.CreateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AddUser(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add user")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("User created successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "User created successfully")
}

// UpdateUserPassword resets the password of a user account.
// @Summary Update a user's password
// @Tags Auth
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param password body dto.UpdateUserPasswordRequest true "New password"
// @Success 200 {object} response.Message "Password updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/users/{username}/password [put]
// @Security BearerAuth
func (handler *Handler) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUserPassword")
	defer scope.End()

	username := chi.URLParam(r, "username")

	var req dto.UpdateUserPasswordRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateUserPassword(ctx, username, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update user password")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("User password updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Password updated successfully")
}

// DeleteUser deletes a user account by username.
// @Summary Delete a user
// @Tags Auth
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} response.Message "User deleted successfully"
// @Failure 500 {object} response.Error
// @Router /v1/admin/users/{username} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	username := chi.URLParam(r, "username")

	if err := handler.service.DeleteUser(ctx, username); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete user")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("User deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}
