package model

import (
	"guesthouse/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldMaxOccupancy  = "max_occupancy"
	FieldIsAvailable   = "is_available"
	FieldPhoto         = "photo"
	FieldFloorPlan     = "floor_plan"

	PhotoDirectory     = "rooms/photos"
	FloorPlanDirectory = "rooms/floor_plans"
)

type Room struct {
	ID            string          `db:"id"`
	RoomNumber    string          `db:"room_number"`
	RoomType      string          `db:"room_type"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	MaxOccupancy  int             `db:"max_occupancy"`
	IsAvailable   bool            `db:"is_available"`
	Photo         string          `db:"photo"`
	FloorPlan     string          `db:"floor_plan"`
	model.Metadata
}

// Fits reports whether guests people may stay in the room.
func (r Room) Fits(guests int) bool {
	return guests > 0 && guests <= r.MaxOccupancy
}
