package dto

import (
	"strings"

	"guesthouse/internal/domains/guest/model"
	"guesthouse/shared"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"

	"github.com/google/uuid"
)

type UpsertGuestRequest struct {
	FirstName   string  `json:"first_name"        validate:"required,min=1,max=100"`
	LastName    string  `json:"last_name"         validate:"required,min=1,max=100"`
	Email       string  `json:"email,omitempty"   validate:"omitempty,email,max=255"`
	PhoneNumber string  `json:"phone_number"      validate:"required,max=32"`
	Country     *string `json:"country,omitempty" validate:"omitempty,iso3166_1_alpha2"`
}

// Normalize upper-cases the country code and falls back to the account email.
func (r *UpsertGuestRequest) Normalize(accountEmail string) {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		r.Email = strings.ToLower(accountEmail)
	}

	if r.Country != nil {
		country := strings.ToUpper(strings.TrimSpace(*r.Country))
		r.Country = &country
	}
}

func (r *UpsertGuestRequest) Region() string {
	if r.Country == nil {
		return ""
	}

	return *r.Country
}

func (r *UpsertGuestRequest) ToModel(userID, username string) model.Guest {
	return model.Guest{
		ID:          uuid.NewString(),
		UserID:      userID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Country:     r.Country,
		Metadata:    gModel.NewMetadata(username, timezone.Now()),
	}
}

// UpdateFields feeds TransformFields.
type UpdateFields struct {
	FirstName   string  `db:"first_name"`
	LastName    string  `db:"last_name"`
	Email       string  `db:"email"`
	PhoneNumber string  `db:"phone_number"`
	Country     *string `db:"country"`
}

func (r *UpsertGuestRequest) ToUpdateFields() UpdateFields {
	return UpdateFields{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Country:     r.Country,
	}
}

type GuestResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Country     *string `json:"country,omitempty"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(m model.Guest) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.FirstName = m.FirstName
	r.LastName = m.LastName
	r.FullName = m.FullName()
	r.Email = m.Email
	r.PhoneNumber = m.PhoneNumber
	r.Country = m.Country
	r.Metadata.FromModel(m.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, m := range models {
		r.Guests[i].FromModel(m)
	}
}
