package model

import (
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"guesthouse/shared/model"
)

const (
	TableName  = "documents"
	EntityName = "document"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldFile        = "file"
	FieldFileType    = "file_type"
	FieldFileName    = "file_name"
	FieldRoomID      = "room_id"
	FieldGuestID     = "guest_id"
	FieldBookingID   = "booking_id"
	FieldPaymentID   = "payment_id"
	FieldIsPublic    = "is_public"
	FieldUploadedBy  = "uploaded_by"
	FieldUploadedAt  = "uploaded_at"

	TypeContract    = "contract"
	TypeReceipt     = "receipt"
	TypePassport    = "passport"
	TypeIDCard      = "id_card"
	TypePhoto       = "photo"
	TypePlan        = "plan"
	TypeCertificate = "certificate"
	TypeStatement   = "statement"
	TypeOther       = "other"

	extensionPDF = "pdf"
)

var (
	imageExtensions = []string{"jpg", "jpeg", "png", "gif", "bmp", "webp"}
	sizeUnits       = []string{"B", "KB", "MB", "GB"}
)

type Document struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	File        string    `db:"file"`
	FileType    string    `db:"file_type"`
	FileName    string    `db:"file_name"`
	FileSize    int64     `db:"file_size"`
	ContentType string    `db:"content_type"`
	RoomID      *string   `db:"room_id"`
	GuestID     *string   `db:"guest_id"`
	BookingID   *string   `db:"booking_id"`
	PaymentID   *string   `db:"payment_id"`
	IsPublic    bool      `db:"is_public"`
	UploadedBy  *string   `db:"uploaded_by"`
	UploadedAt  time.Time `db:"uploaded_at"`
	model.Metadata
}

// Directory is the S3 directory of files uploaded at t: documents/YYYY/MM/DD.
func Directory(t time.Time) string {
	return path.Join("documents", t.Format("2006"), t.Format("01"), t.Format("02"))
}

// Extension is the lower-cased file extension without the dot.
func (d Document) Extension() string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(d.FileName)), ".")
}

func (d Document) IsImage() bool {
	return slices.Contains(imageExtensions, d.Extension())
}

func (d Document) IsPDF() bool {
	return d.Extension() == extensionPDF
}

// OwnedBy reports whether userID uploaded the document.
func (d Document) OwnedBy(userID string) bool {
	return userID != "" && d.UploadedBy != nil && *d.UploadedBy == userID
}

// HumanSize formats a byte count with one decimal, e.g. "1.5 KB".
func HumanSize(size int64) string {
	value := float64(size)

	for _, unit := range sizeUnits {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}

		value /= 1024
	}

	return fmt.Sprintf("%.1f TB", value)
}
