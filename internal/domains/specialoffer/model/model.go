package model

import (
	"guesthouse/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "special_offers"
	EntityName = "special_offer"

	FieldID       = "id"
	FieldTitle    = "title"
	FieldImage    = "image"
	FieldIsActive = "is_active"
	FieldPrice    = "price"

	// ImageDirectory is the S3 directory offer images are stored under.
	ImageDirectory = "special_offers"
)

type SpecialOffer struct {
	ID               string              `db:"id"`
	Title            string              `db:"title"`
	Image            string              `db:"image"`
	ShortDescription string              `db:"short_description"`
	FullDescription  string              `db:"full_description"`
	Price            decimal.NullDecimal `db:"price"`
	IsActive         bool                `db:"is_active"`
	model.Metadata
}
