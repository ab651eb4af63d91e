package dto

import (
	"time"

	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	RoomID      string `json:"room_id"      validate:"required,uuid"`
	CheckIn     string `json:"check_in"     validate:"required,datetime=2006-01-02"`
	CheckOut    string `json:"check_out"    validate:"required,datetime=2006-01-02"`
	GuestsCount int    `json:"guests_count" validate:"required,min=1"`
}

// Stay parses the requested dates. check_out must be after check_in.
func (r *CreateBookingRequest) Stay() (checkIn, checkOut time.Time, err error) {
	return ParseStay(r.CheckIn, r.CheckOut)
}

func (r *CreateBookingRequest) ToModel(guestID, username string, checkIn, checkOut time.Time, total decimal.Decimal) model.Booking {
	return model.Booking{
		ID:          uuid.NewString(),
		GuestID:     guestID,
		RoomID:      r.RoomID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Status:      model.StatusPending,
		GuestsCount: r.GuestsCount,
		TotalPrice:  total,
		Metadata:    gModel.NewMetadata(username, timezone.Now()),
	}
}

// ModifyBookingRequest changes the stay of a booking. Omitted fields keep their current value.
type ModifyBookingRequest struct {
	CheckIn     string `json:"check_in"     validate:"omitempty,datetime=2006-01-02"`
	CheckOut    string `json:"check_out"    validate:"omitempty,datetime=2006-01-02"`
	GuestsCount *int   `json:"guests_count" validate:"omitempty,min=1"`
}

// Merge applies the request on top of current.
func (r *ModifyBookingRequest) Merge(current model.Booking) (model.Booking, error) {
	if r.CheckIn == "" && r.CheckOut == "" && r.GuestsCount == nil {
		return current, failure.BadRequestFromString("nothing to modify")
	}

	checkIn := current.CheckIn.Format(constant.DateOnlyFormat)
	if r.CheckIn != "" {
		checkIn = r.CheckIn
	}

	checkOut := current.CheckOut.Format(constant.DateOnlyFormat)
	if r.CheckOut != "" {
		checkOut = r.CheckOut
	}

	in, out, err := ParseStay(checkIn, checkOut)
	if err != nil {
		return current, err
	}

	current.CheckIn, current.CheckOut = in, out

	if r.GuestsCount != nil {
		current.GuestsCount = *r.GuestsCount
	}

	return current, nil
}

// ParseStay parses a check-in/check-out pair and rejects stays without a night.
func ParseStay(checkInValue, checkOutValue string) (checkIn, checkOut time.Time, err error) {
	if checkIn, err = shared.ParseDate(checkInValue); err != nil {
		return checkIn, checkOut, err
	}

	if checkOut, err = shared.ParseDate(checkOutValue); err != nil {
		return checkIn, checkOut, err
	}

	if model.Nights(checkIn, checkOut) <= 0 {
		return checkIn, checkOut, failure.BadRequestFromString("check_out must be after check_in")
	}

	return checkIn, checkOut, nil
}

type BookingResponse struct {
	ID          string          `json:"id"`
	GuestID     string          `json:"guest_id"`
	RoomID      string          `json:"room_id"`
	RoomNumber  string          `json:"room_number"`
	CheckIn     string          `json:"check_in"`
	CheckOut    string          `json:"check_out"`
	Nights      int             `json:"nights"`
	Status      string          `json:"status"`
	GuestsCount int             `json:"guests_count"`
	TotalPrice  decimal.Decimal `json:"total_price"  swaggertype:"string"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.GuestID = m.GuestID
	r.RoomID = m.RoomID
	r.RoomNumber = m.RoomNumber
	r.CheckIn = m.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = m.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = m.Nights()
	r.Status = m.Status
	r.GuestsCount = m.GuestsCount
	r.TotalPrice = m.TotalPrice
	r.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
