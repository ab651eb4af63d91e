package payment

import (
	"net/http"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/payment/model"
	"guesthouse/internal/domains/payment/model/dto"
	"guesthouse/internal/domains/payment/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryPaidFrom = "paid_from"
	queryPaidTo   = "paid_to"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePayment)
		routerGroup.Get("/", handler.GetPayments)
		routerGroup.Get("/booking/{id}", handler.GetBookingPayments)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
		routerGroup.Patch("/{id}", handler.UpdatePayment)
		routerGroup.Delete("/{id}", handler.DeletePayment)
	})
}

// CreatePayment records a payment against a booking.
// @Summary Create a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Payment"
// @Success 201 {object} response.Data[dto.PaymentResponse] "Created payment"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/payments [post]
// @Security BearerAuth
func (handler *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePayment")
	defer scope.End()

	req := dto.CreatePaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetPayments lists payments.
// @Summary List payments
// @Description Staff only. Filter by booking, status, method and payment date range.
// @Tags Payment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Booking ID"
// @Param status query string false "Status" Enums(pending, completed, failed, refunded)
// @Param payment_method query string false "Method" Enums(card, cash, transfer)
// @Param paid_from query string false "Paid on or after (YYYY-MM-DD)"
// @Param paid_to query string false "Paid on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "List of payments"
// @Failure 400 {object} response.Error
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.ApplySort(model.FieldPaymentDate, gDto.SortDirDesc,
		model.FieldPaymentDate, model.FieldAmount, constant.FieldCreatedAt)

	query := r.URL.Query()
	bookingID := query.Get(model.FieldBookingID)
	status := query.Get(model.FieldStatus)
	method := query.Get(model.FieldPaymentMethod)

	dateFilters, err := shared.DateRangeFilters(query, model.TableName, model.FieldPaymentDate, queryPaidFrom, queryPaidTo)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	filterGroup := gDto.NewFilterGroup(dateFilters...)
	filterGroup.AddWhen(bookingID != "", gDto.Filter{
		Field:    model.FieldBookingID,
		Operator: gDto.FilterOperatorEq,
		Value:    bookingID,
		Table:    model.TableName,
	})
	filterGroup.AddWhen(status != "", gDto.Filter{
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    status,
		Table:    model.TableName,
	})
	filterGroup.AddWhen(method != "", gDto.Filter{
		Field:    model.FieldPaymentMethod,
		Operator: gDto.FilterOperatorEq,
		Value:    method,
		Table:    model.TableName,
	})

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingPayments lists the payments of one booking.
// @Summary List payments of a booking
// @Description Guests see payments of their own bookings only.
// @Tags Payment
// @Produce json
// @Param id path string true "Booking ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "List of payments"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payments/booking/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.ByBooking(ctx, chi.URLParam(r, constant.RequestParamID), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetPaymentByID returns one payment.
// @Summary Get a payment
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment"
// @Failure 404 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdatePayment changes a payment.
// @Summary Update a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body dto.UpdatePaymentRequest true "Fields to change"
// @Success 200 {object} response.Message "Payment updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePayment")
	defer scope.End()

	req := dto.UpdatePaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update payment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Payment updated successfully")
}

// DeletePayment removes a payment.
// @Summary Delete a payment
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Message "Payment deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/payments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePayment")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete payment")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Payment deleted successfully")
}
