package dto

import (
	"mime/multipart"
	"strings"

	roomOfferDto "guesthouse/internal/domains/roomoffer/model/dto"
	"guesthouse/internal/domains/specialoffer/model"
	"guesthouse/shared"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateSpecialOfferRequest struct {
	Title            string                `json:"title"             validate:"required,max=200"`
	ShortDescription string                `json:"short_description" validate:"required"`
	FullDescription  string                `json:"full_description"  validate:"required"`
	Price            *decimal.Decimal      `json:"price"`
	IsActive         *bool                 `json:"is_active"`
	Image            *multipart.FileHeader `json:"image"             validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile        multipart.File        `json:"-"`
}

func (r *CreateSpecialOfferRequest) ToModel(username, imageURL string) model.SpecialOffer {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	offer := model.SpecialOffer{
		ID:               uuid.NewString(),
		Title:            strings.TrimSpace(r.Title),
		Image:            imageURL,
		ShortDescription: r.ShortDescription,
		FullDescription:  r.FullDescription,
		IsActive:         active,
		Metadata:         gModel.NewMetadata(username, timezone.Now()),
	}

	if r.Price != nil {
		offer.Price = decimal.NewNullDecimal(*r.Price)
	}

	return offer
}

type UpdateSpecialOfferRequest struct {
	Title            string                `db:"title"             json:"title"             validate:"omitempty,max=200"`
	ShortDescription string                `db:"short_description" json:"short_description"`
	FullDescription  string                `db:"full_description"  json:"full_description"`
	Price            *decimal.Decimal      `db:"price"             json:"price"`
	IsActive         *bool                 `db:"is_active"         json:"is_active"`
	Image            *multipart.FileHeader `json:"image"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile        multipart.File        `json:"-"`
}

type SpecialOfferResponse struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Image            string              `json:"image"`
	ShortDescription string              `json:"short_description"`
	FullDescription  string              `json:"full_description"`
	Price            decimal.NullDecimal `json:"price"             swaggertype:"string"`
	IsActive         bool                `json:"is_active"`
	gDto.Metadata
}

func (r *SpecialOfferResponse) FromModel(m model.SpecialOffer) {
	r.ID = m.ID
	r.Title = m.Title
	r.Image = m.Image
	r.ShortDescription = m.ShortDescription
	r.FullDescription = m.FullDescription
	r.Price = m.Price
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

type GetSpecialOffersResponse struct {
	SpecialOffers []SpecialOfferResponse `json:"special_offers"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetSpecialOffersResponse) FromModels(models []model.SpecialOffer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.SpecialOffers = make([]SpecialOfferResponse, len(models))
	for i, m := range models {
		r.SpecialOffers[i].FromModel(m)
	}
}

// OfferRoomsResponse pages through the rooms an offer is applied to.
type OfferRoomsResponse = roomOfferDto.GetRoomOffersResponse
