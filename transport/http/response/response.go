package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/logger"

	"github.com/rs/zerolog/log"
)

// Envelopes written by the API. Exactly one of data, error or message is present.
type (
	Data[T any] struct {
		Data *T `json:"data,omitempty"`
	}

	Error struct {
		Error *string `json:"error,omitempty"`
	}

	Message struct {
		Message *string `json:"message,omitempty"`
	}
)

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError maps err to its status code. Only Failure messages reach the client; anything else
// is logged and answered with a generic 500.
func WithError(writer http.ResponseWriter, err error) {
	var (
		fail *failure.Failure
		msg  string
	)

	if errors.As(err, &fail) {
		msg = fail.Message
	} else {
		log.Error().Err(err).Msg("unhandled error")

		msg = http.StatusText(http.StatusInternalServerError)
	}

	write(writer, failure.GetCode(err), Error{Error: &msg})
}

// WithPDF sends body as a downloadable attachment.
func WithPDF(writer http.ResponseWriter, fileName string, body []byte) {
	header := writer.Header()
	header.Set(constant.RequestHeaderContentType, constant.ContentTypePDF)
	header.Set(constant.RequestHeaderDisposition, "attachment; filename="+strconv.Quote(fileName))
	header.Set("Content-Length", strconv.Itoa(len(body)))

	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
