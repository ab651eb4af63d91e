package slider

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/slider/model"
	"guesthouse/internal/domains/slider/model/dto"
	"guesthouse/internal/domains/slider/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formTitle       = "title"
	formDescription = "description"
	formPosition    = "position"
	formIsActive    = "is_active"
	formImage       = "image"
)

type Handler struct {
	service service.Slider
	otel    otel.Otel
}

func New(service service.Slider, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/slides", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSlide)
		routerGroup.Get("/", handler.GetSlides)
		routerGroup.Get("/{id}", handler.GetSlideByID)
		routerGroup.Patch("/{id}", handler.UpdateSlide)
		routerGroup.Delete("/{id}", handler.DeleteSlide)
	})
}

// CreateSlide uploads a slider image.
// @Summary Create a slide
// @Tags Slider
// @Accept multipart/form-data
// @Produce json
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param position formData int false "Position"
// @Param is_active formData boolean false "Active"
// @Param image formData file true "Image"
// @Success 201 {object} response.Data[dto.SliderImageResponse] "Created slide"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/slides [post]
// @Security BearerAuth
func (handler *Handler) CreateSlide(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSlide")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, err)

		return
	}

	req := dto.CreateSliderImageRequest{
		Title:       request.FormValue(formTitle),
		Description: request.FormValue(formDescription),
		IsActive:    shared.ConvertStringToBool(request.FormValue(formIsActive)),
	}

	if value := request.FormValue(formPosition); value != "" {
		position, err := shared.ConvertStringToInt(value)
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		req.Position = position
	}

	if file, fileHeader, err := request.FormFile(formImage); err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create slide")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Slide created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetSlides lists slides ordered by position, then newest first.
// @Summary Get all slides
// @Description Public callers only get active slides.
// @Tags Slider
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param title query string false "Filter by title"
// @Success 200 {object} response.Data[dto.GetSliderImagesResponse] "List of slides"
// @Failure 500 {object} response.Error
// @Router /v1/slides [get]
func (handler *Handler) GetSlides(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlides")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	title := r.URL.Query().Get(model.FieldTitle)

	filterGroup := gDto.NewFilterGroup()
	filterGroup.AddWhen(title != "", gDto.Filter{
		Field:    model.FieldTitle,
		Operator: gDto.FilterOperatorLike,
		Value:    title,
		Table:    model.TableName,
	})

	slides, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slides")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slides)
}

// GetSlideByID returns one slide.
// @Summary Get a slide
// @Tags Slider
// @Produce json
// @Param id path string true "Slide ID"
// @Success 200 {object} response.Data[dto.SliderImageResponse] "Slide"
// @Failure 404 {object} response.Error
// @Router /v1/slides/{id} [get]
func (handler *Handler) GetSlideByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlideByID")
	defer scope.End()

	slide, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slide")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slide)
}

// UpdateSlide changes a slide; a new image replaces the stored one.
// @Summary Update a slide
// @Tags Slider
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Slide ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param position formData int false "Position"
// @Param is_active formData boolean false "Active"
// @Param image formData file false "Image"
// @Success 200 {object} response.Message "Slide updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/slides/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSlide")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	req := dto.UpdateSliderImageRequest{
		Title:       r.FormValue(formTitle),
		Description: r.FormValue(formDescription),
		IsActive:    shared.ConvertStringToBool(r.FormValue(formIsActive)),
	}

	if value := r.FormValue(formPosition); value != "" {
		position, err := shared.ConvertStringToInt(value)
		if err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		req.Position = &position
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
		log.Error().Err(err).Msg("failed to update slide")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Slide updated successfully")
}

// DeleteSlide removes a slide and its image.
// @Summary Delete a slide
// @Tags Slider
// @Produce json
// @Param id path string true "Slide ID"
// @Success 200 {object} response.Message "Slide deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/slides/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSlide")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete slide")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Slide deleted successfully")
}
