package repository

import (
	"Postdeck/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostingScheduleRepo interface {
	ListSchedules(ctx context.Context) ([]*model.PostingSchedule, error)
	CreateSchedule(ctx context.Context, schedule *model.PostingSchedule) error
	DeleteSchedule(ctx context.Context, id uint64) error
}

type PostingScheduleRepoImpl struct {
	db *gorm.DB
}

func NewPostingScheduleRepo(db *gorm.DB) PostingScheduleRepo {
	return &PostingScheduleRepoImpl{
		db: db,
	}
}

func (s *PostingScheduleRepoImpl) ListSchedules(ctx context.Context) ([]*model.PostingSchedule, error) {
	var schedules []*model.PostingSchedule
	if err := s.db.WithContext(ctx).Order("platform").Order("time_slot").Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (s *PostingScheduleRepoImpl) CreateSchedule(ctx context.Context, schedule *model.PostingSchedule) error {
	return s.db.WithContext(ctx).Create(schedule).Error
}

func (s *PostingScheduleRepoImpl) DeleteSchedule(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.PostingSchedule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
