package repository

import (
	"guesthouse/internal/domains/review/model"
	gDto "guesthouse/shared/dto"
)

func OfRoom(roomID string) gDto.Filter {
	return gDto.Filter{
		ArgName:  "review_room_id",
		Field:    model.FieldRoomID,
		Operator: gDto.FilterOperatorEq,
		Value:    roomID,
		Table:    model.TableName,
	}
}

func OfGuest(guestID string) gDto.Filter {
	return gDto.Filter{
		ArgName:  "review_guest_id",
		Field:    model.FieldGuestID,
		Operator: gDto.FilterOperatorEq,
		Value:    guestID,
		Table:    model.TableName,
	}
}

func RatingAtLeast(rating int) gDto.Filter {
	return gDto.Filter{
		ArgName:  "min_rating",
		Field:    model.FieldRating,
		Operator: gDto.FilterOperatorGreaterEq,
		Value:    rating,
		Table:    model.TableName,
	}
}

func RatingAtMost(rating int) gDto.Filter {
	return gDto.Filter{
		ArgName:  "max_rating",
		Field:    model.FieldRating,
		Operator: gDto.FilterOperatorLessEq,
		Value:    rating,
		Table:    model.TableName,
	}
}
