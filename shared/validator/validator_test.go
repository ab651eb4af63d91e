package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"guesthouse/shared/failure"
	"guesthouse/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stayRequest struct {
	Email    string `json:"email"           validate:"required,email"`
	Guests   int    `json:"guests_count"    validate:"gte=1,lte=6"`
	RoomType string `json:"room_type"       validate:"oneof=single double suite"`
	CheckIn  int    `json:"check_in"        validate:"required"`
	CheckOut int    `json:"check_out"       validate:"required,gtfield=CheckIn"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,phone"`
}

func validStay() stayRequest {
	return stayRequest{Email: "anna@guesthouse.test", Guests: 2, RoomType: "double", CheckIn: 1, CheckOut: 3}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *stayRequest)
		wantMsg string
	}{
		{name: "valid", mutate: func(*stayRequest) {}},
		{name: "valid phone", mutate: func(r *stayRequest) { r.Phone = "+7 912 345-67-89" }},
		{name: "bad email", mutate: func(r *stayRequest) { r.Email = "anna" }, wantMsg: "email must be a valid email address"},
		{name: "too many guests", mutate: func(r *stayRequest) { r.Guests = 7 }, wantMsg: "guests_count must be less than or equal to 6"},
		{name: "unknown room type", mutate: func(r *stayRequest) { r.RoomType = "loft" }, wantMsg: "room_type must be one of single double suite"},
		{name: "check out before check in", mutate: func(r *stayRequest) { r.CheckOut = 1 }, wantMsg: "check_out must be after check_in"},
		{name: "bad phone", mutate: func(r *stayRequest) { r.Phone = "12" }, wantMsg: "phone must be a valid phone number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestValidateStruct_ListsEveryField(t *testing.T) {
	err := validator.ValidateStruct(&stayRequest{})

	assert.EqualError(t, err, strings.Join([]string{
		"email is required",
		"guests_count must be greater than or equal to 1",
		"room_type must be one of single double suite",
		"check_in is required",
		"check_out is required",
	}, "; "))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"email":"anna@guesthouse.test","guests_count":2,"room_type":"suite","check_in":1,"check_out":2}`},
		{name: "fails validation", body: `{"email":"anna@guesthouse.test","guests_count":0,"room_type":"suite","check_in":1,"check_out":2}`, wantErr: true},
		{name: "malformed", body: `{"email":}`, wantErr: true},
		{name: "wrong type", body: `{"guests_count":"two"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req stayRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		field   any
		tag     string
		wantErr bool
	}{
		{field: "+44 20 7946 0958", tag: "phone"},
		{field: "020 7946 0958", tag: "phone=GB"},
		{field: "call me maybe", tag: "phone", wantErr: true},
		{field: "", tag: "empty"},
		{field: "x", tag: "empty", wantErr: true},
		{field: 4, tag: "gte=1,lte=5"},
		{field: 6, tag: "gte=1,lte=5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			assert.Equal(t, tt.wantErr, err != nil, "%v %s: %v", tt.field, tt.tag, err)
		})
	}
}

type uploadForm struct {
	Photo *multipart.FileHeader `form:"photo" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func upload(contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)

	return &multipart.FileHeader{Filename: "room-101.png", Header: header, Size: size}
}

func TestUploadValidation(t *testing.T) {
	tests := []struct {
		name    string
		photo   *multipart.FileHeader
		wantMsg string
	}{
		{name: "png within limit", photo: upload("image/png", 512*1024)},
		{name: "jpeg at the limit", photo: upload("image/jpeg", 1024*1024)},
		{name: "pdf rejected", photo: upload("application/pdf", 1024), wantMsg: "photo must be one of the types image/png image/jpeg"},
		{name: "too large", photo: upload("image/png", 1024*1024+1), wantMsg: "photo must not exceed 1 MB"},
		{name: "missing", wantMsg: "photo is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&uploadForm{Photo: tt.photo})

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		region  string
		want    string
		wantErr bool
	}{
		{name: "e164 passthrough", phone: "+442079460958", want: "+442079460958"},
		{name: "spaces trimmed", phone: "  +44 20 7946 0958 ", want: "+442079460958"},
		{name: "national with region", phone: "020 7946 0958", region: "GB", want: "+442079460958"},
		{name: "national with default region", phone: "8 912 345-67-89", want: "+79123456789"},
		{name: "too short", phone: "+44 12", wantErr: true},
		{name: "not a number", phone: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.NormalizePhone(tt.phone, tt.region)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
