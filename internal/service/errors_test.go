package service

import (
	"Postdeck/internal/pkg/lifecycle"
	"Postdeck/internal/pkg/schedule"
	"Postdeck/internal/repository"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		code int
		ok   bool
	}{
		{errors.Wrapf(lifecycle.ErrIllegalTransition, "approve from posted"), 422, true},
		{errors.Wrap(schedule.ErrInvalidSchedule, "past"), 422, true},
		{lifecycle.ErrInvalidSource, 422, true},
		{repository.ErrNotFound, 404, true},
		{errors.Wrapf(repository.ErrConcurrentModification, "id %d", 3), 409, true},
		{ErrParamInvalid, 400, true},
		{errors.New("db down"), 500, false},
	}
	for _, tc := range cases {
		code, ok := CodeOf(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.Equal(t, tc.ok, ok)
	}
}
