package dto

import (
	"mime/multipart"
	"strings"
	"time"

	"guesthouse/internal/domains/document/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"

	"github.com/google/uuid"
)

type UploadDocumentRequest struct {
	Title       string                `json:"title"       validate:"required,max=200"`
	Description string                `json:"description"`
	FileType    string                `json:"file_type"   validate:"omitempty,oneof=contract receipt passport id_card photo plan certificate statement other"`
	RoomID      *string               `json:"room_id"     validate:"omitempty,uuid"`
	GuestID     *string               `json:"guest_id"    validate:"omitempty,uuid"`
	BookingID   *string               `json:"booking_id"  validate:"omitempty,uuid"`
	PaymentID   *string               `json:"payment_id"  validate:"omitempty,uuid"`
	IsPublic    *bool                 `json:"is_public"`
	File        *multipart.FileHeader `json:"file"        swaggerignore:"true" validate:"required"`
	FileData    multipart.File        `json:"-"`
}

// ToModel records the uploaded file. uploaderID is empty for system uploads.
func (r *UploadDocumentRequest) ToModel(uploaderID, username, fileURL string, now time.Time) model.Document {
	doc := model.Document{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		File:        fileURL,
		FileType:    model.TypeOther,
		FileName:    r.File.Filename,
		FileSize:    r.File.Size,
		ContentType: r.File.Header.Get(constant.RequestHeaderContentType),
		RoomID:      r.RoomID,
		GuestID:     r.GuestID,
		BookingID:   r.BookingID,
		PaymentID:   r.PaymentID,
		UploadedAt:  now,
		Metadata:    gModel.NewMetadata(username, now),
	}

	if r.FileType != "" {
		doc.FileType = r.FileType
	}

	if r.IsPublic != nil {
		doc.IsPublic = *r.IsPublic
	}

	if uploaderID != "" {
		doc.UploadedBy = &uploaderID
	}

	return doc
}

// UpdateDocumentRequest changes metadata only; the stored file is immutable.
type UpdateDocumentRequest struct {
	Title       string  `db:"title"       json:"title"       validate:"omitempty,max=200"`
	Description string  `db:"description" json:"description"`
	FileType    string  `db:"file_type"   json:"file_type"   validate:"omitempty,oneof=contract receipt passport id_card photo plan certificate statement other"`
	RoomID      *string `db:"room_id"     json:"room_id"     validate:"omitempty,uuid"`
	GuestID     *string `db:"guest_id"    json:"guest_id"    validate:"omitempty,uuid"`
	BookingID   *string `db:"booking_id"  json:"booking_id"  validate:"omitempty,uuid"`
	PaymentID   *string `db:"payment_id"  json:"payment_id"  validate:"omitempty,uuid"`
	IsPublic    *bool   `db:"is_public"   json:"is_public"`
}

type DocumentResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	File        string  `json:"file"`
	FileType    string  `json:"file_type"`
	FileName    string  `json:"file_name"`
	FileSize    int64   `json:"file_size"`
	Size        string  `json:"size"`
	Extension   string  `json:"extension"`
	ContentType string  `json:"content_type"`
	IsImage     bool    `json:"is_image"`
	IsPDF       bool    `json:"is_pdf"`
	RoomID      *string `json:"room_id"`
	GuestID     *string `json:"guest_id"`
	BookingID   *string `json:"booking_id"`
	PaymentID   *string `json:"payment_id"`
	IsPublic    bool    `json:"is_public"`
	UploadedBy  *string `json:"uploaded_by"`
	UploadedAt  string  `json:"uploaded_at"`
	gDto.Metadata
}

func (r *DocumentResponse) FromModel(m model.Document) {
	r.ID = m.ID
	r.Title = m.Title
	r.Description = m.Description
	r.File = m.File
	r.FileType = m.FileType
	r.FileName = m.FileName
	r.FileSize = m.FileSize
	r.Size = model.HumanSize(m.FileSize)
	r.Extension = m.Extension()
	r.ContentType = m.ContentType
	r.IsImage = m.IsImage()
	r.IsPDF = m.IsPDF()
	r.RoomID = m.RoomID
	r.GuestID = m.GuestID
	r.BookingID = m.BookingID
	r.PaymentID = m.PaymentID
	r.IsPublic = m.IsPublic
	r.UploadedBy = m.UploadedBy
	r.UploadedAt = m.UploadedAt.Format(time.RFC3339)
	r.Metadata.FromModel(m.Metadata)
}

type GetDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetDocumentsResponse) FromModels(models []model.Document, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Documents = make([]DocumentResponse, len(models))
	for i, m := range models {
		r.Documents[i].FromModel(m)
	}
}
