package model

import (
	"time"

	"guesthouse/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID         = "id"
	FieldRoomID     = "room_id"
	FieldGuestID    = "guest_id"
	FieldRating     = "rating"
	FieldComment    = "comment"
	FieldReviewDate = "review_date"

	MinRating = 1
	MaxRating = 5

	// SortByRating orders by rating and breaks ties with the newest review.
	SortByRating = TableName + "." + FieldRating + " DESC, " + TableName + "." + FieldReviewDate
)

type Review struct {
	ID             string    `db:"id"`
	RoomID         string    `db:"room_id"`
	GuestID        string    `db:"guest_id"`
	Rating         int       `db:"rating"`
	Comment        string    `db:"comment"`
	ReviewDate     time.Time `db:"review_date"`
	RoomNumber     string    `db:"room_number"      table:"rooms"  column:"room_number"`
	GuestFirstName string    `db:"guest_first_name" table:"guests" column:"first_name"`
	GuestLastName  string    `db:"guest_last_name"  table:"guests" column:"last_name"`
	model.Metadata
}

func (Review) GetJoinQuery() string {
	return "INNER JOIN rooms ON rooms.id = reviews.room_id INNER JOIN guests ON guests.id = reviews.guest_id"
}

func (r Review) GuestName() string {
	return r.GuestFirstName + " " + r.GuestLastName
}
