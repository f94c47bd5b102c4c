package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/openshelf/openshelf-server/internal/errors"
)

type genreForm struct {
	Name string `form:"name" validate:"required,min=3,max=100"`
}

func TestValidate_Success(t *testing.T) {
	v := New()

	err := v.Validate(genreForm{Name: "Fantasy"})
	assert.NoError(t, err)
}

func TestValidate_TooShort(t *testing.T) {
	v := New()

	err := v.Validate(genreForm{Name: "ab"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "name", fields[0].Field)
	assert.Equal(t, "must be at least 3 characters", fields[0].Message)
}

func TestValidate_Required(t *testing.T) {
	v := New()

	err := v.Validate(genreForm{})
	require.Error(t, err)

	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "is required", fields[0].Message)
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(domainerrors.NotFound("nope")))
	assert.Nil(t, FieldErrors(nil))
}
