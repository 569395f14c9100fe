package errutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[CoreStatus]int{
		StatusBadRequest:          http.StatusBadRequest,
		StatusValidationFailed:    http.StatusBadRequest,
		StatusUnauthorized:        http.StatusUnauthorized,
		StatusForbidden:           http.StatusForbidden,
		StatusNotFound:            http.StatusNotFound,
		StatusConflict:            http.StatusConflict,
		StatusUnprocessableEntity: http.StatusUnprocessableEntity,
		StatusTooManyRequests:     http.StatusTooManyRequests,
		StatusInternal:            http.StatusInternalServerError,
		StatusUnknown:             http.StatusInternalServerError,
	}

	for status, want := range cases {
		require.Equal(t, want, status.HTTPStatus(), "status %s", status)
	}
}

func TestBaseErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("failed to query voucher", cause)

	var be BaseError
	require.ErrorAs(t, err, &be)
	require.Equal(t, StatusInternal, be.Code)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "connection refused")
}

func TestBaseErrorWithoutCause(t *testing.T) {
	err := NotFound("order not found", nil)

	var be BaseError
	require.ErrorAs(t, err, &be)
	require.Equal(t, "[NOT_FOUND] order not found", err.Error())
	require.Nil(t, be.Unwrap())
}

func TestBaseErrorDetails(t *testing.T) {
	err := BadRequest("invalid input", nil, WithDetails(Detail{Field: "value", Message: "must be > 0"}))

	var be BaseError
	require.ErrorAs(t, err, &be)
	require.Len(t, be.Details, 1)
	require.Equal(t, "value", be.Details[0].Field)
}
