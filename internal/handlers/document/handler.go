package document

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/document/model"
	"guesthouse/internal/domains/document/model/dto"
	"guesthouse/internal/domains/document/service"
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
	formFileType    = "file_type"
	formIsPublic    = "is_public"
	formFile        = "file"

	queryUploadedFrom = "uploaded_from"
	queryUploadedTo   = "uploaded_to"
)

var relations = []string{model.FieldRoomID, model.FieldGuestID, model.FieldBookingID, model.FieldPaymentID}

type Handler struct {
	service service.Document
	otel    otel.Otel
}

func New(service service.Document, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/documents", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UploadDocument)
		routerGroup.Get("/", handler.GetDocuments)
		routerGroup.Get("/{id}", handler.GetDocumentByID)
		routerGroup.Patch("/{id}", handler.UpdateDocument)
		routerGroup.Delete("/{id}", handler.DeleteDocument)
	})
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

// UploadDocument stores a file and its metadata.
// @Summary Upload a document
// @Tags Document
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param file_type formData string false "Type" Enums(contract, receipt, passport, id_card, photo, plan, certificate, statement, other)
// @Param room_id formData string false "Room ID"
// @Param guest_id formData string false "Guest ID"
// @Param booking_id formData string false "Booking ID"
// @Param payment_id formData string false "Payment ID"
// @Param is_public formData boolean false "Visible to everyone"
// @Param file formData file true "File"
// @Success 201 {object} response.Data[dto.DocumentResponse] "Uploaded document"
// @Failure 400 {object} response.Error
// @Router /v1/documents [post]
// @Security BearerAuth
func (handler *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadDocument")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	req := dto.UploadDocumentRequest{
		Title:       r.FormValue(formTitle),
		Description: r.FormValue(formDescription),
		FileType:    r.FormValue(formFileType),
		RoomID:      optionalString(r.FormValue(model.FieldRoomID)),
		GuestID:     optionalString(r.FormValue(model.FieldGuestID)),
		BookingID:   optionalString(r.FormValue(model.FieldBookingID)),
		PaymentID:   optionalString(r.FormValue(model.FieldPaymentID)),
		IsPublic:    shared.ConvertStringToBool(r.FormValue(formIsPublic)),
	}

	if file, fileHeader, err := r.FormFile(formFile); err == nil {
		req.File = fileHeader
		req.FileData = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload document")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Document uploaded")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetDocuments lists documents, newest upload first.
// @Summary List documents
// @Description Non-staff callers see public documents and their own uploads.
// @Tags Document
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Title contains"
// @Param file_type query string false "Type"
// @Param room_id query string false "Room ID"
// @Param guest_id query string false "Guest ID"
// @Param booking_id query string false "Booking ID"
// @Param payment_id query string false "Payment ID"
// @Param uploaded_from query string false "Uploaded on or after (YYYY-MM-DD)"
// @Param uploaded_to query string false "Uploaded on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetDocumentsResponse] "List of documents"
// @Failure 400 {object} response.Error
// @Router /v1/documents [get]
func (handler *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocuments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ApplySort(model.FieldUploadedAt, gDto.SortDirDesc, model.FieldUploadedAt, model.FieldTitle, model.FieldFileType)

	query := r.URL.Query()

	dateFilters, err := shared.DateRangeFilters(query, model.TableName, model.FieldUploadedAt, queryUploadedFrom, queryUploadedTo)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	title := query.Get(model.FieldTitle)
	fileType := query.Get(model.FieldFileType)

	filterGroup := gDto.NewFilterGroup(dateFilters...)
	filterGroup.AddWhen(title != "", gDto.Filter{
		Field:    model.FieldTitle,
		Operator: gDto.FilterOperatorLike,
		Value:    title,
		Table:    model.TableName,
	})
	filterGroup.AddWhen(fileType != "", gDto.Filter{
		Field:    model.FieldFileType,
		Operator: gDto.FilterOperatorEq,
		Value:    fileType,
		Table:    model.TableName,
	})

	for _, field := range relations {
		value := query.Get(field)
		filterGroup.AddWhen(value != "", gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get documents")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDocumentByID returns one document.
// @Summary Get a document
// @Tags Document
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Data[dto.DocumentResponse] "Document"
// @Failure 404 {object} response.Error
// @Router /v1/documents/{id} [get]
func (handler *Handler) GetDocumentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDocumentByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get document")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateDocument changes document metadata.
// @Summary Update a document
// @Tags Document
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body dto.UpdateDocumentRequest true "Fields to change"
// @Success 200 {object} response.Message "Document updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/documents/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDocument")
	defer scope.End()

	req := dto.UpdateDocumentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update document")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Document updated successfully")
}

// DeleteDocument removes a document and its stored file.
// @Summary Delete a document
// @Tags Document
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Message "Document deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/documents/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDocument")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete document")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Document deleted successfully")
}
