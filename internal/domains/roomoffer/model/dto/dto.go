package dto

import (
	"time"

	"guesthouse/internal/domains/roomoffer/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ApplyOfferRequest struct {
	RoomID             string          `json:"room_id"             validate:"required,uuid"`
	SpecialOfferID     string          `json:"special_offer_id"    validate:"required,uuid"`
	StartDate          string          `json:"start_date"          validate:"required,datetime=2006-01-02"`
	EndDate            string          `json:"end_date"            validate:"required,datetime=2006-01-02"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" swaggertype:"number"`
	IsActive           *bool           `json:"is_active"`
}

// ToModel parses and checks the window and discount.
func (r *ApplyOfferRequest) ToModel(username string) (model.RoomSpecialOffer, error) {
	start, end, err := parseWindow(r.StartDate, r.EndDate)
	if err != nil {
		return model.RoomSpecialOffer{}, err
	}

	if err := CheckDiscount(r.DiscountPercentage); err != nil {
		return model.RoomSpecialOffer{}, err
	}

	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	return model.RoomSpecialOffer{
		ID:                 uuid.NewString(),
		RoomID:             r.RoomID,
		SpecialOfferID:     r.SpecialOfferID,
		StartDate:          start,
		EndDate:            end,
		DiscountPercentage: r.DiscountPercentage,
		IsActive:           active,
		Metadata:           gModel.NewMetadata(username, timezone.Now()),
	}, nil
}

// UpdateRoomOfferRequest changes the window, the discount or the active flag of an application.
type UpdateRoomOfferRequest struct {
	StartDate          string           `json:"start_date"          validate:"omitempty,datetime=2006-01-02"`
	EndDate            string           `json:"end_date"            validate:"omitempty,datetime=2006-01-02"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage" swaggertype:"number"`
	IsActive           *bool            `json:"is_active"`
}

// Apply merges the request into current and returns the changed columns.
func (r *UpdateRoomOfferRequest) Apply(current model.RoomSpecialOffer, username string) (map[string]any, error) {
	start := current.StartDate.Format(constant.DateOnlyFormat)
	if r.StartDate != "" {
		start = r.StartDate
	}

	end := current.EndDate.Format(constant.DateOnlyFormat)
	if r.EndDate != "" {
		end = r.EndDate
	}

	startDate, endDate, err := parseWindow(start, end)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		model.FieldStartDate:     startDate,
		model.FieldEndDate:       endDate,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}

	if r.DiscountPercentage != nil {
		if err := CheckDiscount(*r.DiscountPercentage); err != nil {
			return nil, err
		}

		fields[model.FieldDiscountPercentage] = *r.DiscountPercentage
	}

	if r.IsActive != nil {
		fields[model.FieldIsActive] = *r.IsActive
	}

	return fields, nil
}

func parseWindow(startValue, endValue string) (start, end time.Time, err error) {
	if start, err = shared.ParseDate(startValue); err != nil {
		return start, end, err
	}

	if end, err = shared.ParseDate(endValue); err != nil {
		return start, end, err
	}

	if end.Before(start) {
		return start, end, failure.BadRequestFromString("end_date must not be before start_date")
	}

	return start, end, nil
}

// CheckDiscount rejects percentages outside 0..100.
func CheckDiscount(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(model.MaxDiscount) {
		return failure.BadRequestFromString("discount_percentage must be between 0 and 100")
	}

	return nil
}

type RoomOfferResponse struct {
	ID                 string          `json:"id"`
	RoomID             string          `json:"room_id"`
	RoomNumber         string          `json:"room_number"`
	SpecialOfferID     string          `json:"special_offer_id"`
	OfferTitle         string          `json:"offer_title"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" swaggertype:"string"`
	IsActive           bool            `json:"is_active"`
	gDto.Metadata
}

func (r *RoomOfferResponse) FromModel(m model.RoomSpecialOffer) {
	r.ID = m.ID
	r.RoomID = m.RoomID
	r.RoomNumber = m.RoomNumber
	r.SpecialOfferID = m.SpecialOfferID
	r.OfferTitle = m.OfferTitle
	r.StartDate = m.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = m.EndDate.Format(constant.DateOnlyFormat)
	r.DiscountPercentage = m.DiscountPercentage
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

func FromModels(models []model.RoomSpecialOffer) []RoomOfferResponse {
	res := make([]RoomOfferResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

type GetRoomOffersResponse struct {
	RoomOffers []RoomOfferResponse `json:"room_offers"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetRoomOffersResponse) FromModels(models []model.RoomSpecialOffer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.RoomOffers = FromModels(models)
}
