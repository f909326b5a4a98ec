package service

import (
	"Postdeck/internal/api/dto"
	"Postdeck/internal/model"
	"Postdeck/internal/pkg/consts"
	"Postdeck/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type PostingScheduleService interface {
	ListSchedules(ctx context.Context) ([]*dto.PostingScheduleDTO, error)
	CreateSchedule(ctx context.Context, req *dto.CreatePostingScheduleDTO) (*dto.PostingScheduleDTO, error)
	DeleteSchedule(ctx context.Context, id uint64) error
}

type postingScheduleServiceImpl struct {
	scheduleRepo repository.PostingScheduleRepo
}

func NewPostingScheduleService(scheduleRepo repository.PostingScheduleRepo) PostingScheduleService {
	return &postingScheduleServiceImpl{
		scheduleRepo: scheduleRepo,
	}
}

func (s *postingScheduleServiceImpl) ListSchedules(ctx context.Context) ([]*dto.PostingScheduleDTO, error) {
	schedules, err := s.scheduleRepo.ListSchedules(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.PostingScheduleDTO, 0, len(schedules))
	if err = copier.Copy(&items, &schedules); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *postingScheduleServiceImpl) CreateSchedule(ctx context.Context, req *dto.CreatePostingScheduleDTO) (*dto.PostingScheduleDTO, error) {
	schedule := &model.PostingSchedule{
		Platform:  req.Platform,
		TimeSlot:  req.TimeSlot,
		Frequency: req.Frequency,
		Active:    true,
	}
	if schedule.Frequency == "" {
		schedule.Frequency = consts.FrequencyDaily
	}
	if req.Active != nil {
		schedule.Active = *req.Active
	}
	if err := s.scheduleRepo.CreateSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	item := &dto.PostingScheduleDTO{}
	_ = copier.Copy(item, schedule)
	return item, nil
}

func (s *postingScheduleServiceImpl) DeleteSchedule(ctx context.Context, id uint64) error {
	return s.scheduleRepo.DeleteSchedule(ctx, id)
}
