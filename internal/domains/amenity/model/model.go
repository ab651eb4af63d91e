package model

import (
	"guesthouse/shared/model"
)

const (
	TableName  = "amenities"
	EntityName = "amenity"

	FieldID   = "id"
	FieldName = "name"

	TableRoomAmenities = "room_amenities"
	EntityRoomAmenity  = "room_amenity"
	FieldRoomID        = "room_id"
	FieldAmenityID     = "amenity_id"
)

type Amenity struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}

// RoomAmenity links a room to one of its amenities.
type RoomAmenity struct {
	RoomID    string `db:"room_id"`
	AmenityID string `db:"amenity_id"`
}
