package service

import (
	"Postdeck/internal/api/dto"
	"Postdeck/internal/model"
	"Postdeck/internal/repository"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleRepo struct {
	items  []*model.PostingSchedule
	nextID uint64
}

func (r *fakeScheduleRepo) ListSchedules(context.Context) ([]*model.PostingSchedule, error) {
	return r.items, nil
}

func (r *fakeScheduleRepo) CreateSchedule(_ context.Context, s *model.PostingSchedule) error {
	r.nextID++
	s.ID = r.nextID
	r.items = append(r.items, s)
	return nil
}

func (r *fakeScheduleRepo) DeleteSchedule(_ context.Context, id uint64) error {
	for i, s := range r.items {
		if s.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func TestPostingSchedules(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewPostingScheduleService(repo)
	ctx := context.Background()

	inactive := false
	created, err := svc.CreateSchedule(ctx, &dto.CreatePostingScheduleDTO{Platform: "twitter", TimeSlot: "09:30", Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID)
	assert.Equal(t, "daily", created.Frequency)
	assert.False(t, created.Active)

	_, err = svc.CreateSchedule(ctx, &dto.CreatePostingScheduleDTO{Platform: "instagram", TimeSlot: "18:00", Frequency: "weekdays"})
	require.NoError(t, err)

	list, err := svc.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[1].Active)
	assert.Equal(t, "weekdays", list[1].Frequency)

	require.NoError(t, svc.DeleteSchedule(ctx, 1))
	assert.True(t, errors.Is(svc.DeleteSchedule(ctx, 1), ErrNotFound))
}
