package dto

import (
	"mime/multipart"
	"strings"

	"guesthouse/internal/domains/room/model"
	roomOfferDto "guesthouse/internal/domains/roomoffer/model/dto"
	"guesthouse/shared"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	RoomNumber    string                `json:"room_number"     validate:"required,max=10"`
	RoomType      string                `json:"room_type"       validate:"required,max=50"`
	PricePerNight *decimal.Decimal      `json:"price_per_night" validate:"required"                                                              swaggertype:"number"`
	MaxOccupancy  int                   `json:"max_occupancy"   validate:"required,min=1"`
	IsAvailable   *bool                 `json:"is_available"`
	Photo         *multipart.FileHeader `json:"photo"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	PhotoFile     multipart.File        `json:"-"`
	FloorPlan     *multipart.FileHeader `json:"floor_plan"      validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	FloorPlanFile multipart.File        `json:"-"`
}

// Check enforces the rules the validator tags cannot express.
func (r *CreateRoomRequest) Check() error {
	return checkPrice(r.PricePerNight)
}

func (r *CreateRoomRequest) ToModel(username, photoURL, floorPlanURL string) model.Room {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}

	return model.Room{
		ID:            uuid.NewString(),
		RoomNumber:    strings.TrimSpace(r.RoomNumber),
		RoomType:      strings.TrimSpace(r.RoomType),
		PricePerNight: r.PricePerNight.Round(2),
		MaxOccupancy:  r.MaxOccupancy,
		IsAvailable:   available,
		Photo:         photoURL,
		FloorPlan:     floorPlanURL,
		Metadata:      gModel.NewMetadata(username, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	RoomNumber    string                `db:"room_number"     json:"room_number"     validate:"omitempty,max=10"`
	RoomType      string                `db:"room_type"       json:"room_type"       validate:"omitempty,max=50"`
	PricePerNight *decimal.Decimal      `db:"price_per_night" json:"price_per_night" swaggertype:"number"`
	MaxOccupancy  *int                  `db:"max_occupancy"   json:"max_occupancy"   validate:"omitempty,min=1"`
	IsAvailable   *bool                 `db:"is_available"    json:"is_available"`
	Photo         *multipart.FileHeader `json:"photo"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	PhotoFile     multipart.File        `json:"-"`
	FloorPlan     *multipart.FileHeader `json:"floor_plan"    validate:"omitempty,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=5"`
	FloorPlanFile multipart.File        `json:"-"`
}

func (r *UpdateRoomRequest) Check() error {
	if r.PricePerNight == nil {
		return nil
	}

	return checkPrice(r.PricePerNight)
}

func checkPrice(price *decimal.Decimal) error {
	if price == nil || price.IsNegative() {
		return failure.BadRequestFromString("price_per_night must be zero or more")
	}

	return nil
}

type RoomResponse struct {
	ID            string          `json:"id"`
	RoomNumber    string          `json:"room_number"`
	RoomType      string          `json:"room_type"`
	PricePerNight decimal.Decimal `json:"price_per_night" swaggertype:"string"`
	MaxOccupancy  int             `json:"max_occupancy"`
	IsAvailable   bool            `json:"is_available"`
	Photo         string          `json:"photo"`
	FloorPlan     string          `json:"floor_plan"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(m model.Room) {
	r.ID = m.ID
	r.RoomNumber = m.RoomNumber
	r.RoomType = m.RoomType
	r.PricePerNight = m.PricePerNight
	r.MaxOccupancy = m.MaxOccupancy
	r.IsAvailable = m.IsAvailable
	r.Photo = m.Photo
	r.FloorPlan = m.FloorPlan
	r.Metadata.FromModel(m.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, m := range models {
		r.Rooms[i].FromModel(m)
	}
}

// PricingResponse is the nightly price of a room on a date after the best special offer.
type PricingResponse struct {
	RoomID             string                          `json:"room_id"`
	Date               string                          `json:"date"`
	BasePrice          decimal.Decimal                 `json:"base_price"          swaggertype:"string"`
	DiscountPercentage decimal.Decimal                 `json:"discount_percentage" swaggertype:"string"`
	FinalPrice         decimal.Decimal                 `json:"final_price"         swaggertype:"string"`
	Offer              *roomOfferDto.RoomOfferResponse `json:"offer"`
}
