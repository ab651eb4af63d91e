package specialoffer

import (
	"net/http"

	"guesthouse/infras/otel"
	roomOfferModel "guesthouse/internal/domains/roomoffer/model"
	roomOfferService "guesthouse/internal/domains/roomoffer/service"
	"guesthouse/internal/domains/specialoffer/model"
	"guesthouse/internal/domains/specialoffer/model/dto"
	"guesthouse/internal/domains/specialoffer/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	formTitle            = "title"
	formShortDescription = "short_description"
	formFullDescription  = "full_description"
	formPrice            = "price"
	formIsActive         = "is_active"
	formImage            = "image"
)

type Handler struct {
	service    service.SpecialOffer
	roomOffers roomOfferService.RoomOffer
	otel       otel.Otel
}

func New(service service.SpecialOffer, roomOffers roomOfferService.RoomOffer, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		roomOffers: roomOffers,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/special-offers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSpecialOffer)
		routerGroup.Get("/", handler.GetSpecialOffers)
		routerGroup.Get("/{id}", handler.GetSpecialOfferByID)
		routerGroup.Patch("/{id}", handler.UpdateSpecialOffer)
		routerGroup.Delete("/{id}", handler.DeleteSpecialOffer)
		routerGroup.Get("/{id}/rooms", handler.GetOfferRooms)
	})
}

// formPriceValue reads the optional price field. An absent field leaves the price untouched.
func formPriceValue(r *http.Request) (*decimal.Decimal, error) {
	value := r.FormValue(formPrice)
	if value == "" {
		return nil, nil //nolint:nilnil
	}

	price, err := shared.ConvertStringToDecimal(value)
	if err != nil {
		return nil, err
	}

	return &price, nil
}

// CreateSpecialOffer creates an offer from a multipart form.
// @Summary Create a special offer
// @Tags SpecialOffer
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param short_description formData string true "Short description"
// @Param full_description formData string true "Full description"
// @Param price formData number false "Price"
// @Param is_active formData boolean false "Active"
// @Param image formData file true "Image"
// @Success 201 {object} response.Data[dto.SpecialOfferResponse] "Created special offer"
// @Failure 400 {object} response.Error
// @Router /v1/special-offers [post]
// @Security BearerAuth
func (handler *Handler) CreateSpecialOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSpecialOffer")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	price, err := formPriceValue(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.CreateSpecialOfferRequest{
		Title:            r.FormValue(formTitle),
		ShortDescription: r.FormValue(formShortDescription),
		FullDescription:  r.FormValue(formFullDescription),
		Price:            price,
		IsActive:         shared.ConvertStringToBool(r.FormValue(formIsActive)),
	}

	if file, fileHeader, err := r.FormFile(formImage); err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create special offer")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Special offer created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetSpecialOffers lists offers. Only active offers are listed for the public.
// @Summary List special offers
// @Tags SpecialOffer
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Title contains"
// @Param is_active query bool false "Active flag (staff only)"
// @Success 200 {object} response.Data[dto.GetSpecialOffersResponse] "List of special offers"
// @Router /v1/special-offers [get]
func (handler *Handler) GetSpecialOffers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpecialOffers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ApplySort(constant.FieldCreatedAt, gDto.SortDirDesc, constant.FieldCreatedAt, model.FieldTitle, model.FieldPrice)

	query := r.URL.Query()
	title := query.Get(model.FieldTitle)
	active := shared.ConvertStringToBool(query.Get(model.FieldIsActive))

	filterGroup := gDto.NewFilterGroup()
	filterGroup.AddWhen(title != "", gDto.Filter{
		Field:    model.FieldTitle,
		Operator: gDto.FilterOperatorLike,
		Value:    title,
		Table:    model.TableName,
	})

	if active != nil {
		filterGroup.Add(gDto.Filter{
			ArgName:  "is_active_param",
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get special offers")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetSpecialOfferByID returns one offer.
// @Summary Get a special offer
// @Tags SpecialOffer
// @Produce json
// @Param id path string true "Special offer ID"
// @Success 200 {object} response.Data[dto.SpecialOfferResponse] "Special offer"
// @Failure 404 {object} response.Error
// @Router /v1/special-offers/{id} [get]
func (handler *Handler) GetSpecialOfferByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpecialOfferByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get special offer")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateSpecialOffer changes an offer; a new image replaces the stored one.
// @Summary Update a special offer
// @Tags SpecialOffer
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Special offer ID"
// @Param title formData string false "Title"
// @Param short_description formData string false "Short description"
// @Param full_description formData string false "Full description"
// @Param price formData number false "Price"
// @Param is_active formData boolean false "Active"
// @Param image formData file false "Image"
// @Success 200 {object} response.Message "Special offer updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/special-offers/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSpecialOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSpecialOffer")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	price, err := formPriceValue(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpdateSpecialOfferRequest{
		Title:            r.FormValue(formTitle),
		ShortDescription: r.FormValue(formShortDescription),
		FullDescription:  r.FormValue(formFullDescription),
		Price:            price,
		IsActive:         shared.ConvertStringToBool(r.FormValue(formIsActive)),
	}

	if file, fileHeader, err := r.FormFile(formImage); err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update special offer")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Special offer updated successfully")
}

// DeleteSpecialOffer removes an offer, its room applications and its image.
// @Summary Delete a special offer
// @Tags SpecialOffer
// @Produce json
// @Param id path string true "Special offer ID"
// @Success 200 {object} response.Message "Special offer deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/special-offers/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSpecialOffer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSpecialOffer")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete special offer")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Special offer deleted successfully")
}

// GetOfferRooms lists the rooms an offer is applied to.
// @Summary List room applications of a special offer
// @Tags SpecialOffer
// @Produce json
// @Param id path string true "Special offer ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.OfferRoomsResponse] "Room applications"
// @Router /v1/special-offers/{id}/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetOfferRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOfferRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ApplySort(roomOfferModel.FieldStartDate, gDto.SortDirAsc,
		roomOfferModel.FieldStartDate, roomOfferModel.FieldEndDate, roomOfferModel.FieldDiscountPercentage)

	res, err := handler.roomOffers.ListByOffer(ctx, chi.URLParam(r, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get offer rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
