package model

import (
	"time"

	"guesthouse/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldAmount        = "amount"
	FieldPaymentDate   = "payment_date"
	FieldPaymentMethod = "payment_method"
	FieldStatus        = "status"

	MethodCard     = "card"
	MethodCash     = "cash"
	MethodTransfer = "transfer"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

type Payment struct {
	ID            string          `db:"id"`
	BookingID     string          `db:"booking_id"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentDate   time.Time       `db:"payment_date"`
	PaymentMethod string          `db:"payment_method"`
	Status        string          `db:"status"`
	model.Metadata
}
