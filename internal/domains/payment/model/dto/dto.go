package dto

import (
	"guesthouse/internal/domains/payment/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	msgAmountNotPositive = "amount must be greater than zero"
	msgNothingToUpdate   = "nothing to update"
)

type CreatePaymentRequest struct {
	BookingID     string          `json:"booking_id"     validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount"         swaggertype:"number"`
	PaymentDate   string          `json:"payment_date"   validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=card cash transfer"`
	Status        string          `json:"status"         validate:"omitempty,oneof=pending completed failed refunded"`
}

// ToModel checks the amount and defaults the date to today and the status to pending.
func (r *CreatePaymentRequest) ToModel(username string) (model.Payment, error) {
	if !r.Amount.IsPositive() {
		return model.Payment{}, failure.BadRequestFromString(msgAmountNotPositive)
	}

	paymentDate := timezone.Today()

	if r.PaymentDate != "" {
		date, err := shared.ParseDate(r.PaymentDate)
		if err != nil {
			return model.Payment{}, err
		}

		paymentDate = date
	}

	status := model.StatusPending
	if r.Status != "" {
		status = r.Status
	}

	return model.Payment{
		ID:            uuid.NewString(),
		BookingID:     r.BookingID,
		Amount:        r.Amount.Round(2),
		PaymentDate:   paymentDate,
		PaymentMethod: r.PaymentMethod,
		Status:        status,
		Metadata:      gModel.NewMetadata(username, timezone.Now()),
	}, nil
}

type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount"         swaggertype:"number"`
	PaymentDate   string           `json:"payment_date"   validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string           `json:"payment_method" validate:"omitempty,oneof=card cash transfer"`
	Status        string           `json:"status"         validate:"omitempty,oneof=pending completed failed refunded"`
}

// Fields returns the columns to change.
func (r *UpdatePaymentRequest) Fields(username string) (map[string]any, error) {
	if r.Amount == nil && r.PaymentDate == "" && r.PaymentMethod == "" && r.Status == "" {
		return nil, failure.BadRequestFromString(msgNothingToUpdate)
	}

	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}

	if r.Amount != nil {
		if !r.Amount.IsPositive() {
			return nil, failure.BadRequestFromString(msgAmountNotPositive)
		}

		fields[model.FieldAmount] = r.Amount.Round(2)
	}

	if r.PaymentDate != "" {
		date, err := shared.ParseDate(r.PaymentDate)
		if err != nil {
			return nil, err
		}

		fields[model.FieldPaymentDate] = date.Format(constant.DateOnlyFormat)
	}

	if r.PaymentMethod != "" {
		fields[model.FieldPaymentMethod] = r.PaymentMethod
	}

	if r.Status != "" {
		fields[model.FieldStatus] = r.Status
	}

	return fields, nil
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	BookingID     string          `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"         swaggertype:"string"`
	PaymentDate   string          `json:"payment_date"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(m model.Payment) {
	r.ID = m.ID
	r.BookingID = m.BookingID
	r.Amount = m.Amount
	r.PaymentDate = m.PaymentDate.Format(constant.DateOnlyFormat)
	r.PaymentMethod = m.PaymentMethod
	r.Status = m.Status
	r.Metadata.FromModel(m.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, m := range models {
		r.Payments[i].FromModel(m)
	}
}
