package util

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	TimeSlot string `validate:"datetime=15:04"`
	Platform string `validate:"oneof=twitter instagram"`
}

func TestValidateDTO(t *testing.T) {
	assert.NoError(t, ValidateDTO(&sample{TimeSlot: "09:30", Platform: "twitter"}))

	err := ValidateDTO(&sample{TimeSlot: "9.30", Platform: "twitter"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TimeSlot")
	var ve validator.ValidationErrors
	assert.True(t, errors.As(err, &ve))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	for _, raw := range []string{"", "0", "-1", "abc"} {
		_, ok = ParseID(raw)
		assert.False(t, ok, raw)
	}
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("IMAGE/JPEG"))
	assert.False(t, IsImage("application/pdf"))
}
