package guest

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/guest/model"
	"guesthouse/internal/domains/guest/model/dto"
	"guesthouse/internal/domains/guest/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryCreatedFrom = "created_from"
	queryCreatedTo   = "created_to"
)

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/guests", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetGuests)
		routerGroup.Get("/me", handler.GetMyProfile)
		routerGroup.Put("/me", handler.UpsertMyProfile)
		routerGroup.Get("/{id}", handler.GetGuestByID)
	})
}

// UpsertMyProfile creates or replaces the guest profile of the signed-in user.
// @Summary Create or update own guest profile
// @Description The phone number is normalised to E.164. Email defaults to the account email.
// @Tags Guest
// @Accept json
// @Produce json
// @Param request body dto.UpsertGuestRequest true "Guest profile"
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest profile"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests/me [put]
// @Security BearerAuth
func (handler *Handler) UpsertMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertMyProfile")
	defer scope.End()

	req := dto.UpsertGuestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upsert(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save guest profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest profile saved")

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyProfile returns the guest profile of the signed-in user.
// @Summary Get own guest profile
// @Tags Guest
// @Produce json
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest profile"
// @Failure 404 {object} response.Error
// @Router /v1/guests/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyProfile")
	defer scope.End()

	res, err := handler.service.Mine(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own guest profile")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetGuests lists guest profiles.
// @Summary List guests
// @Description Staff only. Filter by email, phone, country and creation date range.
// @Tags Guest
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Email contains"
// @Param phone_number query string false "Phone number contains"
// @Param country query string false "ISO country code"
// @Param created_from query string false "Created on or after (YYYY-MM-DD)"
// @Param created_to query string false "Created on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetGuestsResponse] "List of guests"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guests [get]
// @Security BearerAuth
func (handler *Handler) GetGuests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ApplySort(constant.DefaultValueSortBy, constant.DefaultValueSortDir,
		constant.FieldCreatedAt, model.FieldLastName, model.FieldEmail, model.FieldCountry)

	query := r.URL.Query()
	email := query.Get(model.FieldEmail)
	phone := query.Get(model.FieldPhoneNumber)
	country := query.Get(model.FieldCountry)

	filterGroup := gDto.NewFilterGroup()
	filterGroup.
		AddWhen(email != "", gDto.Filter{Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: email, Table: model.TableName}).
		AddWhen(phone != "", gDto.Filter{Field: model.FieldPhoneNumber, Operator: gDto.FilterOperatorLike, Value: phone, Table: model.TableName}).
		AddWhen(country != "", gDto.Filter{Field: model.FieldCountry, Operator: gDto.FilterOperatorEq, Value: country, Table: model.TableName})

	createdRange, err := shared.DateRangeFilters(query, model.TableName, constant.FieldCreatedAt, queryCreatedFrom, queryCreatedTo)
	if err != nil {
		response.WithError(w, err)

		return
	}

	filterGroup.Add(createdRange...)

	guests, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guests)
}

// GetGuestByID returns one guest profile.
// @Summary Get a guest by ID
// @Tags Guest
// @Produce json
// @Param id path string true "Guest ID"
// @Success 200 {object} response.Data[dto.GuestResponse] "Guest profile"
// @Failure 404 {object} response.Error
// @Router /v1/guests/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGuestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuestByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
