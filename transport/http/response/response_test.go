package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "failure keeps its message",
			err:      failure.Conflict("room is already booked for these dates"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"room is already booked for these dates"}`,
		},
		{
			name:     "wrapped failure",
			err:      errors.Join(errors.New("outer"), failure.NotFound("booking not found")),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"booking not found"}`,
		},
		{
			name:     "internal error is masked",
			err:      errors.New("pq: password authentication failed"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
		})
	}
}

func TestWithJSONAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusOK, map[string]int{"total": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"total":3}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.WithMessage(rec, http.StatusCreated, "created")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"created"}`, rec.Body.String())
}

func TestWithPDF(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithPDF(rec, "monthly-2025-03.pdf", []byte("%PDF-1.3"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContentTypePDF, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Contains(t, rec.Header().Get(constant.RequestHeaderDisposition), `"monthly-2025-03.pdf"`)
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}
