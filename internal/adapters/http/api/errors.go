package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/floww/internal/adapters/mq/queue"
	"github.com/okian/floww/internal/adapters/repository"
	"github.com/okian/floww/internal/domain/forms"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
)

// Error codes carried in the response envelope.
const (
	codeBadRequest       = "bad_request"
	codeInvalidForm      = "invalid_form"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeBackpressure     = "backpressure"
	codeUnavailable      = "unavailable"
	codeInternal         = "internal_error"
)

// wrap annotates err with the handler operation.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// classify maps a service error to a status code, an envelope code and
// the message shown to clients. The message is the sentinel's text so the
// wrapped chain stays in the logs.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound, codeNotFound, ErrNotFound.Error()
	case errors.Is(err, forms.ErrInvalidForm):
		return http.StatusBadRequest, codeInvalidForm, forms.ErrInvalidForm.Error()
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, codeBadRequest, ErrBadRequest.Error()
	case errors.Is(err, queue.ErrBackpressure):
		return http.StatusTooManyRequests, codeBackpressure, queue.ErrBackpressure.Error()
	case errors.Is(err, queue.ErrQueueClosed):
		return http.StatusServiceUnavailable, codeUnavailable, queue.ErrQueueClosed.Error()
	default:
		return http.StatusInternalServerError, codeInternal, http.StatusText(http.StatusInternalServerError)
	}
}
