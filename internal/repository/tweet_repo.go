package repository

import (
	"Postdeck/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// TweetRepo 推文存储，SaveTweet 以版本号做条件更新
type TweetRepo interface {
	ListTweets(ctx context.Context, filter ListFilter) ([]*model.Tweet, error)
	GetTweet(ctx context.Context, id uint64) (*model.Tweet, error)
	SaveTweet(ctx context.Context, tweet *model.Tweet) (*model.Tweet, error)
	CreateTweets(ctx context.Context, tweets []*model.Tweet) error
	DeleteTweet(ctx context.Context, id uint64) error
}

type TweetRepoImpl struct {
	db *gorm.DB
}

func NewTweetRepo(db *gorm.DB) TweetRepo {
	return &TweetRepoImpl{
		db: db,
	}
}

func (s *TweetRepoImpl) ListTweets(ctx context.Context, filter ListFilter) ([]*model.Tweet, error) {
	var tweets []*model.Tweet
	err := filter.apply(s.db.WithContext(ctx)).Find(&tweets).Error
	if err != nil {
		return nil, err
	}
	return tweets, nil
}

func (s *TweetRepoImpl) GetTweet(ctx context.Context, id uint64) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := s.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &tweet, nil
}

// SaveTweet ID 为 0 时新建，否则按 (id, version) 条件更新并递增版本号
func (s *TweetRepoImpl) SaveTweet(ctx context.Context, tweet *model.Tweet) (*model.Tweet, error) {
	saved := tweet.Clone()
	if saved.ID == 0 {
		saved.Version = 1
		if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
			return nil, err
		}
		return saved, nil
	}

	saved.Version = tweet.Version + 1
	saved.UpdatedAt = time.Now().UTC()
	res := s.db.WithContext(ctx).Model(&model.Tweet{}).
		Where("id = ? AND version = ?", tweet.ID, tweet.Version).
		Updates(map[string]interface{}{
			"content":        saved.Content,
			"ai_source":      saved.AISource,
			"status":         string(saved.Status),
			"scheduled_time": saved.ScheduledTime,
			"posted_time":    saved.PostedTime,
			"edited":         saved.Edited,
			"twitter_id":     saved.TwitterID,
			"version":        saved.Version,
			"updated_at":     saved.UpdatedAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, missOrConflict(ctx, s.db, &model.Tweet{}, tweet.ID)
	}
	return saved, nil
}

// CreateTweets 批量写入新草稿
func (s *TweetRepoImpl) CreateTweets(ctx context.Context, tweets []*model.Tweet) error {
	if len(tweets) == 0 {
		return nil
	}
	for _, t := range tweets {
		t.Version = 1
	}
	return s.db.WithContext(ctx).CreateInBatches(tweets, 100).Error
}

func (s *TweetRepoImpl) DeleteTweet(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.Tweet{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
