package model

import (
	"guesthouse/shared/model"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID          = "id"
	FieldUserID      = "user_id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
	FieldCountry     = "country"
)

// Guest is the contact profile of a user who books rooms.
type Guest struct {
	ID          string  `db:"id"`
	UserID      string  `db:"user_id"`
	FirstName   string  `db:"first_name"`
	LastName    string  `db:"last_name"`
	Email       string  `db:"email"`
	PhoneNumber string  `db:"phone_number"`
	Country     *string `db:"country"`
	model.Metadata
}

func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
