package repository

import (
	"Postdeck/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type InstagramPostRepo interface {
	ListInstagramPosts(ctx context.Context, filter ListFilter) ([]*model.InstagramPost, error)
	GetInstagramPost(ctx context.Context, id uint64) (*model.InstagramPost, error)
	SaveInstagramPost(ctx context.Context, post *model.InstagramPost) (*model.InstagramPost, error)
	DeleteInstagramPost(ctx context.Context, id uint64) error
}

type InstagramPostRepoImpl struct {
	db *gorm.DB
}

func NewInstagramPostRepo(db *gorm.DB) InstagramPostRepo {
	return &InstagramPostRepoImpl{
		db: db,
	}
}

func (s *InstagramPostRepoImpl) ListInstagramPosts(ctx context.Context, filter ListFilter) ([]*model.InstagramPost, error) {
	var posts []*model.InstagramPost
	err := filter.apply(s.db.WithContext(ctx)).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *InstagramPostRepoImpl) GetInstagramPost(ctx context.Context, id uint64) (*model.InstagramPost, error) {
	var post model.InstagramPost
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (s *InstagramPostRepoImpl) SaveInstagramPost(ctx context.Context, post *model.InstagramPost) (*model.InstagramPost, error) {
	saved := post.Clone()
	if saved.ID == 0 {
		saved.Version = 1
		if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
			return nil, err
		}
		return saved, nil
	}

	saved.Version = post.Version + 1
	saved.UpdatedAt = time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&model.InstagramPost{}).
		Where("id = ? AND version = ?", post.ID, post.Version).
		Updates(map[string]interface{}{
			"source_tweet_id": saved.SourceTweetID,
			"caption":         saved.Caption,
			"image_url":       saved.ImageURL,
			"status":          string(saved.Status),
			"posted_time":     saved.PostedTime,
			"instagram_id":    saved.InstagramID,
			"version":         saved.Version,
			"updated_at":      saved.UpdatedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, missOrConflict(ctx, s.db, &model.InstagramPost{}, post.ID)
	}
	return saved, nil
}

func (s *InstagramPostRepoImpl) DeleteInstagramPost(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.InstagramPost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
