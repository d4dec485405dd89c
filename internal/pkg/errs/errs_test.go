package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"campusdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	err := errs.NewObjectNotFoundError("order", "8f1c")

	assert.Equal(t, "object not found: order 8f1c", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	withCause := errs.NewObjectNotFoundErrorWithCause("robot", 7, errors.New("connection reset"))
	assert.Equal(t, "object not found: robot 7 (cause: connection reset)", withCause.Error())
	assert.Equal(t, errs.ErrObjectNotFound, withCause.Unwrap())

	wrapped := fmt.Errorf("loading robot: %w", errs.NewObjectNotFoundError("robot", "r-1"))
	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "robot", notFound.ParamName)
	require.ErrorIs(t, wrapped, errs.ErrObjectNotFound)
}

func TestValueErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("status"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: status",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("uuid", errors.New("bad length")),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: uuid (cause: bad length)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("package_type"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: package_type",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("image", errors.New("no multipart form")),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: image (cause: no multipart form)",
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("name length", 51, 1, 50),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is out of range: name length is 51, want 1..50",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("image size", 0, 1, 10, errors.New("empty upload")),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is out of range: image size is 0, want 1..10 (cause: empty upload)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, errors.Join(errors.New("other"), tt.err), tt.sentinel)
		})
	}
}

func TestValuesAreKeptOnOneLine(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("username length", "evil\nINFO forged entry", 1, 150)

	assert.NotContains(t, err.Error(), "\n")
	assert.Contains(t, err.Error(), "evil INFO forged entry")

	notFound := errs.NewObjectNotFoundError("user", "a\r\nb")
	assert.Equal(t, "object not found: user a  b", notFound.Error())
}
