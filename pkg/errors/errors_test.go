package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	base := errors.New("boom")
	appErr := Internal(base)

	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.ErrorIs(t, appErr, base)
}

func TestEmptyCart(t *testing.T) {
	err := EmptyCart()

	assert.Equal(t, "EMPTY_CART", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestMissingAddress(t *testing.T) {
	err := MissingAddress()

	assert.Equal(t, "MISSING_ADDRESS", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.ErrorIs(t, err, ErrMissingAddress)
}

func TestSubmissionFailed_PreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := SubmissionFailed(cause)

	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.ErrorIs(t, err, ErrSubmission)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("cart", "sess-1")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("busy")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInput("bad")))
}

func TestHTTPStatus_WrappedSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("finalize: %w", ErrEmptyCart), http.StatusBadRequest},
		{fmt.Errorf("finalize: %w", ErrMissingAddress), http.StatusBadRequest},
		{fmt.Errorf("submit: %w", ErrSubmission), http.StatusBadGateway},
		{fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "get cart")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "get cart")
}
