package amenity

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/amenity/model"
	"guesthouse/internal/domains/amenity/model/dto"
	"guesthouse/internal/domains/amenity/service"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Amenity
	otel    otel.Otel
}

func New(service service.Amenity, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/amenities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAmenity)
		routerGroup.Get("/", handler.GetAmenities)
		routerGroup.Get("/{id}", handler.GetAmenityByID)
		routerGroup.Patch("/{id}", handler.UpdateAmenity)
		routerGroup.Delete("/{id}", handler.DeleteAmenity)
	})
}

// CreateAmenity adds an amenity.
// @Summary Create an amenity
// @Tags Amenity
// @Accept json
// @Produce json
// @Param request body dto.CreateAmenityRequest true "Amenity"
// @Success 201 {object} response.Data[dto.AmenityResponse] "Created amenity"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/amenities [post]
// @Security BearerAuth
func (handler *Handler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAmenity")
	defer scope.End()

	req := dto.CreateAmenityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create amenity")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Amenity created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetAmenities lists amenities.
// @Summary List amenities
// @Tags Amenity
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Name contains"
// @Success 200 {object} response.Data[dto.GetAmenitiesResponse] "List of amenities"
// @Router /v1/amenities [get]
func (handler *Handler) GetAmenities(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAmenities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ApplySort(model.FieldName, gDto.SortDirAsc, model.FieldName, constant.FieldCreatedAt)

	name := r.URL.Query().Get(model.FieldName)

	filterGroup := gDto.NewFilterGroup()
	filterGroup.AddWhen(name != "", gDto.Filter{
		Field:    model.FieldName,
		Operator: gDto.FilterOperatorLike,
		Value:    name,
		Table:    model.TableName,
	})

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get amenities")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAmenityByID returns one amenity.
// @Summary Get an amenity
// @Tags Amenity
// @Produce json
// @Param id path string true "Amenity ID"
// @Success 200 {object} response.Data[dto.AmenityResponse] "Amenity"
// @Failure 404 {object} response.Error
// @Router /v1/amenities/{id} [get]
func (handler *Handler) GetAmenityByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAmenityByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get amenity")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateAmenity renames an amenity.
// @Summary Update an amenity
// @Tags Amenity
// @Accept json
// @Produce json
// @Param id path string true "Amenity ID"
// @Param request body dto.UpdateAmenityRequest true "Amenity"
// @Success 200 {object} response.Message "Amenity updated successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/amenities/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAmenity")
	defer scope.End()

	req := dto.UpdateAmenityRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update amenity")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Amenity updated successfully")
}

// DeleteAmenity removes an amenity and its room links.
// @Summary Delete an amenity
// @Tags Amenity
// @Produce json
// @Param id path string true "Amenity ID"
// @Success 200 {object} response.Message "Amenity deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/amenities/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAmenity")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete amenity")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Amenity deleted successfully")
}
