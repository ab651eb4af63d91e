package model

import "guesthouse/shared/model"

const (
	TableName  = "slider_images"
	EntityName = "slider_image"

	FieldID          = "id"
	FieldImage       = "image"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPosition    = "position"
	FieldIsActive    = "is_active"

	ImageDirectory = "slider"

	// SortByPosition lists slides by position, newest first within the same position.
	SortByPosition = TableName + "." + FieldPosition + " ASC, " + TableName + ".created_at"
)

type SliderImage struct {
	ID          string `db:"id"`
	Image       string `db:"image"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Position    int    `db:"position"`
	IsActive    bool   `db:"is_active"`
	model.Metadata
}
