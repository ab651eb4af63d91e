package dto

import (
	"mime/multipart"
	"strings"

	"guesthouse/internal/domains/slider/model"
	"guesthouse/shared"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

type CreateSliderImageRequest struct {
	Title       string                `json:"title"       validate:"omitempty,max=200"`
	Description string                `json:"description"`
	Position    int                   `json:"position"    validate:"min=0"`
	IsActive    *bool                 `json:"is_active"`
	Image       *multipart.FileHeader `json:"image"       swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateSliderImageRequest) ToModel(user, imageURL string) model.SliderImage {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.SliderImage{
		ID:          uuid.NewString(),
		Image:       imageURL,
		Title:       strings.TrimSpace(c.Title),
		Description: c.Description,
		Position:    c.Position,
		IsActive:    active,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateSliderImageRequest struct {
	Title       string                `db:"title"       json:"title"       validate:"omitempty,max=200"`
	Description string                `db:"description" json:"description"`
	Position    *int                  `db:"position"    json:"position"    validate:"omitempty,min=0"`
	IsActive    *bool                 `db:"is_active"   json:"is_active"`
	Image       *multipart.FileHeader `json:"image"     swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile   multipart.File        `json:"-"`
}

type SliderImageResponse struct {
	ID          string `json:"id"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	IsActive    bool   `json:"is_active"`
	gDto.Metadata
}

func (r *SliderImageResponse) FromModel(model model.SliderImage) {
	r.ID = model.ID
	r.Image = model.Image
	r.Title = model.Title
	r.Description = model.Description
	r.Position = model.Position
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetSliderImagesResponse struct {
	Slides    []SliderImageResponse `json:"slides"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (r *GetSliderImagesResponse) FromModels(models []model.SliderImage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Slides = make([]SliderImageResponse, len(models))
	for i, m := range models {
		r.Slides[i].FromModel(m)
	}
}
