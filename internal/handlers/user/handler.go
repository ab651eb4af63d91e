package user

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/user/model"
	"guesthouse/internal/domains/user/model/dto"
	"guesthouse/internal/domains/user/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryLastLoginFrom = "last_login_from"
	queryLastLoginTo   = "last_login_to"
)

var sortableColumns = []string{constant.FieldCreatedAt, model.FieldEmail, model.FieldFullName, model.FieldLevel, model.FieldLastLogin}

// Handler exposes staff account management. Guests sign up through /auth/register instead.
type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(users chi.Router) {
		users.Post("/", handler.CreateUser)
		users.Get("/", handler.GetUsers)
		users.Get("/{id}", handler.GetUserByID)
		users.Patch("/{id}", handler.UpdateUser)
		users.Delete("/{id}", handler.DeleteUser)
	})
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// listFilters reads the email, name, level, active and last login filters of GetUsers.
func listFilters(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()

	lastLogin, err := shared.DateRangeFilters(query, model.TableName, model.FieldLastLogin, queryLastLoginFrom, queryLastLoginTo)
	if err != nil {
		return gDto.FilterGroup{}, err
	}

	like := func(field string) gDto.Filter {
		return gDto.Filter{Field: field, Operator: gDto.FilterOperatorLike, Value: query.Get(field), Table: model.TableName}
	}

	active := shared.ConvertStringToBool(query.Get(model.FieldActive))

	filterGroup := gDto.NewFilterGroup(lastLogin...)
	filterGroup.
		AddWhen(query.Get(model.FieldEmail) != "", like(model.FieldEmail)).
		AddWhen(query.Get(model.FieldFullName) != "", like(model.FieldFullName)).
		AddWhen(query.Get(model.FieldLevel) != "", gDto.Filter{
			Field:    model.FieldLevel,
			Operator: gDto.FilterOperatorEq,
			Value:    query.Get(model.FieldLevel),
			Table:    model.TableName,
		}).
		AddWhen(active != nil, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    active,
			Table:    model.TableName,
		})

	return filterGroup, nil
}

// CreateUser handles the creation of a staff account.
// @Summary Create a new user
// @Description Superadmins create admin and superadmin accounts, admins only plain users.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Create User Request"
// @Success 201 {object} response.Message "User created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	var req dto.CreateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid create user request")

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		fail(w, scope, err, "failed to create user")

		return
	}

	response.WithMessage(w, http.StatusCreated, "User created successfully")
}

// GetUsers lists accounts.
// @Summary Get all users
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Email contains"
// @Param full_name query string false "Full name contains"
// @Param level query string false "Exact level"
// @Param active query boolean false "Active flag"
// @Param last_login_from query string false "Last login on or after (YYYY-MM-DD)"
// @Param last_login_to query string false "Last login on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetUsersResponse] "List of users"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	filterGroup, err := listFilters(r)
	if err != nil {
		fail(w, scope, err, "invalid user filters")

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ApplySort(constant.DefaultValueSortBy, constant.DefaultValueSortDir, sortableColumns...)

	users, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		fail(w, scope, err, "failed to get users")

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

// GetUserByID
// @Summary Get a user by ID
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse] "User details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	user, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get user")

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateUser applies a partial update; omitted fields keep their value.
// @Summary Update a user by ID
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Update User Request"
// @Success 200 {object} response.Message "User updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	var req dto.UpdateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid update user request")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to update user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User updated successfully")
}

// DeleteUser
// @Summary Delete a user by ID
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message "User deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to delete user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}
