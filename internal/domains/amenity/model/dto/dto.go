package dto

import (
	"slices"
	"strings"

	"guesthouse/internal/domains/amenity/model"
	"guesthouse/shared"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

type CreateAmenityRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func (r *CreateAmenityRequest) ToModel(username string) model.Amenity {
	return model.Amenity{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Metadata: gModel.NewMetadata(username, timezone.Now()),
	}
}

type UpdateAmenityRequest struct {
	Name string `db:"name" json:"name" validate:"required,min=1,max=100"`
}

// SetRoomAmenitiesRequest replaces the whole amenity set of a room. An empty list clears it.
type SetRoomAmenitiesRequest struct {
	AmenityIDs []string `json:"amenity_ids" validate:"omitempty,dive,uuid"`
}

// Unique returns the requested ids without duplicates, in request order.
func (r *SetRoomAmenitiesRequest) Unique() []string {
	ids := make([]string, 0, len(r.AmenityIDs))

	for _, id := range r.AmenityIDs {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	return ids
}

type AmenityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (r *AmenityResponse) FromModel(m model.Amenity) {
	r.ID = m.ID
	r.Name = m.Name
	r.Metadata.FromModel(m.Metadata)
}

func FromModels(models []model.Amenity) []AmenityResponse {
	res := make([]AmenityResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}

type GetAmenitiesResponse struct {
	Amenities []AmenityResponse `json:"amenities"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetAmenitiesResponse) FromModels(models []model.Amenity, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Amenities = FromModels(models)
}
