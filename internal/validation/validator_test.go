package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/ElenaBalahnina123/BookDiary/internal/errors"
)

type sampleInput struct {
	Title  string `json:"title" validate:"required,max=10"`
	Rating int    `json:"rating" validate:"gte=0,lte=10"`
}

func TestValidatePasses(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(sampleInput{Title: "ok", Rating: 5}))
}

func TestValidateReturnsDomainError(t *testing.T) {
	v := New()

	err := v.Validate(sampleInput{Title: "", Rating: 11})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["title"])
	assert.Equal(t, "must be less than or equal to 10", details["rating"])
}

func TestValidateUsesJSONTagNames(t *testing.T) {
	v := New()

	type renamed struct {
		InternalName string `json:"display_name,omitempty" validate:"required"`
	}

	err := v.Validate(renamed{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "display_name")
	assert.NotContains(t, details, "InternalName")
}

func TestValidateMaxLength(t *testing.T) {
	v := New()

	err := v.Validate(sampleInput{Title: "far too long for the limit", Rating: 5})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	details := domainErr.Details.(map[string]string)
	assert.Equal(t, "must not exceed 10 characters", details["title"])
}
