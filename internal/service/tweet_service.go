package service

import (
	"Postdeck/internal/api/dto"
	"Postdeck/internal/model"
	"Postdeck/internal/pkg/board"
	"Postdeck/internal/pkg/kafka"
	"Postdeck/internal/pkg/lifecycle"
	"Postdeck/internal/pkg/schedule"
	"Postdeck/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type TweetService interface {
	// ListTweets 按状态过滤，最新的在前
	ListTweets(ctx context.Context, query *dto.ListQueryDTO) ([]*dto.TweetDTO, error)
	// GetBoard 看板视图，failed 不出现
	GetBoard(ctx context.Context) (*dto.BoardDTO, error)
	GetTweet(ctx context.Context, id uint64) (*dto.TweetDTO, error)
	EditContent(ctx context.Context, id uint64, content string) (*dto.TweetDTO, error)
	Approve(ctx context.Context, id uint64) (*dto.TweetDTO, error)
	Schedule(ctx context.Context, id uint64, req *dto.ScheduleTweetDTO) (*dto.TweetDTO, error)
	Unschedule(ctx context.Context, id uint64) (*dto.TweetDTO, error)
	MarkPosted(ctx context.Context, id uint64, externalID string) (*dto.TweetDTO, error)
	MarkFailed(ctx context.Context, id uint64) (*dto.TweetDTO, error)
	DeleteTweet(ctx context.Context, id uint64) error
}

type tweetServiceImpl struct {
	tweetRepo  repository.TweetRepo
	engine     *lifecycle.Engine
	publisher  kafka.StatusPublisher
	maxRetries int
	now        func() time.Time
}

func NewTweetService(
	tweetRepo repository.TweetRepo,
	engine *lifecycle.Engine,
	publisher kafka.StatusPublisher,
	maxRetries int,
) TweetService {
	return &tweetServiceImpl{
		tweetRepo:  tweetRepo,
		engine:     engine,
		publisher:  publisher,
		maxRetries: maxRetries,
		now:        time.Now,
	}
}

func (s *tweetServiceImpl) ListTweets(ctx context.Context, query *dto.ListQueryDTO) ([]*dto.TweetDTO, error) {
	filter, err := listFilter(query, func(status string) bool {
		return model.TweetStatus(status).Valid()
	})
	if err != nil {
		return nil, err
	}
	tweets, err := s.tweetRepo.ListTweets(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toTweetDTOs(tweets), nil
}

func (s *tweetServiceImpl) GetBoard(ctx context.Context) (*dto.BoardDTO, error) {
	tweets, err := s.tweetRepo.ListTweets(ctx, repository.ListFilter{})
	if err != nil {
		return nil, err
	}
	b := board.Project(tweets)
	return &dto.BoardDTO{
		Pending:   toTweetDTOs(b.Pending),
		Approved:  toTweetDTOs(b.Approved),
		Scheduled: toTweetDTOs(b.Scheduled),
		Posted:    toTweetDTOs(b.Posted),
	}, nil
}

func (s *tweetServiceImpl) GetTweet(ctx context.Context, id uint64) (*dto.TweetDTO, error) {
	tweet, err := s.tweetRepo.GetTweet(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTweetDTO(tweet), nil
}

func (s *tweetServiceImpl) EditContent(ctx context.Context, id uint64, content string) (*dto.TweetDTO, error) {
	return s.mutate(ctx, id, func(t *model.Tweet, _ time.Time) (*model.Tweet, error) {
		return s.engine.EditContent(t, content)
	})
}

func (s *tweetServiceImpl) Approve(ctx context.Context, id uint64) (*dto.TweetDTO, error) {
	return s.mutate(ctx, id, func(t *model.Tweet, _ time.Time) (*model.Tweet, error) {
		return s.engine.Approve(t)
	})
}

// Schedule 先看状态再看时间：非 approved 的推文一律返回非法流转
func (s *tweetServiceImpl) Schedule(ctx context.Context, id uint64, req *dto.ScheduleTweetDTO) (*dto.TweetDTO, error) {
	return s.mutate(ctx, id, func(t *model.Tweet, now time.Time) (*model.Tweet, error) {
		if t.Status != model.TweetApproved {
			return s.engine.Schedule(t, time.Time{}, now)
		}
		at, err := scheduleCandidate(req, now)
		if err != nil {
			return nil, err
		}
		return s.engine.Schedule(t, at, now)
	})
}

func (s *tweetServiceImpl) Unschedule(ctx context.Context, id uint64) (*dto.TweetDTO, error) {
	return s.mutate(ctx, id, func(t *model.Tweet, _ time.Time) (*model.Tweet, error) {
		return s.engine.Unschedule(t)
	})
}

func (s *tweetServiceImpl) MarkPosted(ctx context.Context, id uint64, externalID string) (*dto.TweetDTO, error) {
	return s.mutate(ctx, id, func(t *model.Tweet, now time.Time) (*model.Tweet, error) {
		return s.engine.MarkPosted(t, externalID, now)
	})
}

func (s *tweetServiceImpl) MarkFailed(ctx context.Context, id uint64) (*dto.TweetDTO, error) {
	return s.mutate(ctx, id, func(t *model.Tweet, _ time.Time) (*model.Tweet, error) {
		return s.engine.MarkFailed(t)
	})
}

// DeleteTweet 不做状态限制，也不级联删除派生的 Instagram 帖子
func (s *tweetServiceImpl) DeleteTweet(ctx context.Context, id uint64) error {
	if err := s.tweetRepo.DeleteTweet(ctx, id); err != nil {
		return err
	}
	log.InfoContext(ctx, "推文已删除", "id", id)
	return nil
}

func (s *tweetServiceImpl) mutate(ctx context.Context, id uint64, change func(*model.Tweet, time.Time) (*model.Tweet, error)) (*dto.TweetDTO, error) {
	before, after, err := saveWithRetry(ctx, s.maxRetries,
		func() (*model.Tweet, error) { return s.tweetRepo.GetTweet(ctx, id) },
		func(current *model.Tweet) (*model.Tweet, error) { return change(current, s.now()) },
		func(next *model.Tweet) (*model.Tweet, error) { return s.tweetRepo.SaveTweet(ctx, next) },
	)
	if err != nil {
		return nil, err
	}
	if before.Status != after.Status {
		s.publisher.Publish(ctx, kafka.StatusEvent{
			Kind: kafka.KindTweet,
			ID:   after.ID,
			From: string(before.Status),
			To:   string(after.Status),
			At:   s.now().UTC(),
		})
	}
	return toTweetDTO(after), nil
}

// scheduleCandidate 解析请求中的候选发布时间，是否晚于当前时间由状态机校验
func scheduleCandidate(req *dto.ScheduleTweetDTO, now time.Time) (time.Time, error) {
	switch {
	case req == nil:
		return time.Time{}, ErrScheduleTimeRequired
	case req.ScheduledTime != nil:
		return *req.ScheduledTime, nil
	case req.OffsetHours != nil:
		return schedule.QuickOffset(now, *req.OffsetHours)
	case req.Date != "" && req.Time != "":
		return schedule.Parse(req.Date, req.Time, req.Timezone)
	}
	return time.Time{}, ErrScheduleTimeRequired
}

func toTweetDTO(t *model.Tweet) *dto.TweetDTO {
	item := &dto.TweetDTO{}
	_ = copier.Copy(item, t)
	return item
}

func toTweetDTOs(tweets []*model.Tweet) []*dto.TweetDTO {
	items := make([]*dto.TweetDTO, 0, len(tweets))
	for _, t := range tweets {
		items = append(items, toTweetDTO(t))
	}
	return items
}
