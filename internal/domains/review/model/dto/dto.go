package dto

import (
	"strings"
	"time"

	"guesthouse/internal/domains/review/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

const (
	SortRating = "rating"
	SortOldest = "oldest"
	SortNewest = "newest"

	msgNothingToUpdate = "nothing to update"
)

type CreateReviewRequest struct {
	RoomID  string `json:"room_id" validate:"required,uuid"`
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

func (r *CreateReviewRequest) ToModel(guestID, username string) model.Review {
	now := timezone.Now()

	return model.Review{
		ID:         uuid.NewString(),
		RoomID:     r.RoomID,
		GuestID:    guestID,
		Rating:     r.Rating,
		Comment:    strings.TrimSpace(r.Comment),
		ReviewDate: now,
		Metadata:   gModel.NewMetadata(username, now),
	}
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"  validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// Fields returns the columns to change. Only rating and comment are editable.
func (r *UpdateReviewRequest) Fields(username string) (map[string]any, error) {
	if r.Rating == nil && r.Comment == nil {
		return nil, failure.BadRequestFromString(msgNothingToUpdate)
	}

	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}

	if r.Rating != nil {
		fields[model.FieldRating] = *r.Rating
	}

	if r.Comment != nil {
		fields[model.FieldComment] = strings.TrimSpace(*r.Comment)
	}

	return fields, nil
}

// ApplySort translates the sort query value. Unknown values fall back to newest first.
func ApplySort(params *gDto.QueryParams, sort string) {
	switch sort {
	case SortRating:
		params.SortBy, params.SortDir = model.SortByRating, gDto.SortDirDesc
	case SortOldest:
		params.SortBy, params.SortDir = model.FieldReviewDate, gDto.SortDirAsc
	default:
		params.SortBy, params.SortDir = model.FieldReviewDate, gDto.SortDirDesc
	}
}

type ReviewResponse struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	RoomNumber string `json:"room_number"`
	GuestID    string `json:"guest_id"`
	GuestName  string `json:"guest_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	ReviewDate string `json:"review_date"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(m model.Review) {
	r.ID = m.ID
	r.RoomID = m.RoomID
	r.RoomNumber = m.RoomNumber
	r.GuestID = m.GuestID
	r.GuestName = strings.TrimSpace(m.GuestName())
	r.Rating = m.Rating
	r.Comment = m.Comment
	r.ReviewDate = m.ReviewDate.Format(time.RFC3339)
	r.Metadata.FromModel(m.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, m := range models {
		r.Reviews[i].FromModel(m)
	}
}
