package dto_test

import (
	"net/http"
	"testing"

	"guesthouse/internal/domains/review/model"
	"guesthouse/internal/domains/review/model/dto"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestCreateReviewRequest_ToModel(t *testing.T) {
	req := dto.CreateReviewRequest{RoomID: "room-1", Rating: 4, Comment: "  quiet and clean  "}

	review := req.ToModel("guest-1", "guest@example.com")

	assert.NotEmpty(t, review.ID)
	assert.Equal(t, "guest-1", review.GuestID)
	assert.Equal(t, "quiet and clean", review.Comment)
	assert.False(t, review.ReviewDate.IsZero())
	assert.Equal(t, "guest@example.com", review.CreatedBy)
}

func TestUpdateReviewRequest_Fields(t *testing.T) {
	rating := 5

	fields, err := (&dto.UpdateReviewRequest{Rating: &rating}).Fields("guest@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 5, fields[model.FieldRating])
	assert.NotContains(t, fields, model.FieldComment)

	_, err = (&dto.UpdateReviewRequest{}).Fields("guest@example.com")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestApplySort(t *testing.T) {
	tests := []struct {
		sort    string
		wantBy  string
		wantDir string
	}{
		{sort: dto.SortRating, wantBy: model.SortByRating, wantDir: gDto.SortDirDesc},
		{sort: dto.SortOldest, wantBy: model.FieldReviewDate, wantDir: gDto.SortDirAsc},
		{sort: dto.SortNewest, wantBy: model.FieldReviewDate, wantDir: gDto.SortDirDesc},
		{sort: "random", wantBy: model.FieldReviewDate, wantDir: gDto.SortDirDesc},
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			params := gDto.QueryParams{SortBy: "password", SortDir: gDto.SortDirAsc}

			dto.ApplySort(&params, tt.sort)

			assert.Equal(t, tt.wantBy, params.SortBy)
			assert.Equal(t, tt.wantDir, params.SortDir)
		})
	}
}

func TestReviewResponse_FromModel(t *testing.T) {
	res := dto.ReviewResponse{}
	res.FromModel(model.Review{ID: "r-1", Rating: 3, GuestFirstName: "Ada", GuestLastName: "Lovelace"})

	assert.Equal(t, "Ada Lovelace", res.GuestName)
	assert.Equal(t, 3, res.Rating)
}
