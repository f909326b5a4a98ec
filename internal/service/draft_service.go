package service

import (
	"Postdeck/internal/api/dto"
	"Postdeck/internal/model"
	"Postdeck/internal/pkg/consts"
	"Postdeck/internal/pkg/redis"
	"Postdeck/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultGenerateCount = 25
	MaxGenerateCount     = 100
	generationLockTTL    = 10 * time.Minute
)

// DraftWriter 按来源生成推文草稿
type DraftWriter interface {
	Sources() []string
	Generate(ctx context.Context, source string, count int) ([]string, error)
}

type DraftService interface {
	// GenerateDrafts 把 count 条草稿分摊给各个来源，结果以 pending 推文写入
	GenerateDrafts(ctx context.Context, count int) (*dto.GenerateResultDTO, error)
	// LastGeneration 上一次生成完成的时间，从未生成过时返回 nil
	LastGeneration(ctx context.Context) (*time.Time, error)
	Sources() []string
}

type draftServiceImpl struct {
	tweetRepo repository.TweetRepo
	writer    DraftWriter
	now       func() time.Time
}

func NewDraftService(tweetRepo repository.TweetRepo, writer DraftWriter) DraftService {
	return &draftServiceImpl{
		tweetRepo: tweetRepo,
		writer:    writer,
		now:       time.Now,
	}
}

func (s *draftServiceImpl) Sources() []string {
	return s.writer.Sources()
}

func (s *draftServiceImpl) GenerateDrafts(ctx context.Context, count int) (*dto.GenerateResultDTO, error) {
	if count <= 0 || count > MaxGenerateCount {
		return nil, ErrParamInvalid
	}
	sources := s.writer.Sources()
	if len(sources) == 0 {
		return nil, ErrNoDraftSource
	}

	token := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.DraftGenerationLock, token, generationLockTTL, 0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrGenerationRunning
	}
	defer func() {
		if err := redis.UnLock(context.WithoutCancel(ctx), consts.DraftGenerationLock, token); err != nil {
			log.WarnContext(ctx, "释放草稿生成锁失败", "err", err)
		}
	}()

	bySource := make(map[string]int, len(sources))
	var tweets []*model.Tweet
	attempted, failed := 0, 0
	for i, source := range sources {
		n := splitCount(count, len(sources), i)
		bySource[source] = 0
		if n == 0 {
			continue
		}
		attempted++
		drafts, err := s.writer.Generate(ctx, source, n)
		if err != nil {
			failed++
			log.ErrorContext(ctx, "草稿生成失败", "source", source, "err", err)
			continue
		}
		for _, content := range drafts {
			tweets = append(tweets, &model.Tweet{
				Content:  content,
				AISource: source,
				Status:   model.TweetPending,
			})
		}
		bySource[source] = len(drafts)
	}
	// 只统计真正分到份额的来源
	if failed == attempted {
		return nil, UnExpectedError
	}

	if err = s.tweetRepo.CreateTweets(ctx, tweets); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err = redis.SetValue(ctx, consts.LastGenerationKey, now.Format(time.RFC3339)); err != nil {
		log.WarnContext(ctx, "记录草稿生成时间失败", "err", err)
	}
	log.InfoContext(ctx, "草稿生成完成", "total", len(tweets), "by_source", bySource)

	return &dto.GenerateResultDTO{
		Message:         fmt.Sprintf("Generated %d tweets", len(tweets)),
		TweetsGenerated: len(tweets),
		BySource:        bySource,
		Timestamp:       now,
	}, nil
}

func (s *draftServiceImpl) LastGeneration(ctx context.Context) (*time.Time, error) {
	val, err := redis.GetValue(ctx, consts.LastGenerationKey)
	if err != nil || val == "" {
		return nil, err
	}
	at, err := time.Parse(time.RFC3339, val)
	if err != nil {
		log.WarnContext(ctx, "草稿生成时间格式错误", "value", val)
		return nil, nil
	}
	return &at, nil
}

// splitCount 均分，余数给排在前面的来源
func splitCount(total, parts, index int) int {
	n := total / parts
	if index < total%parts {
		n++
	}
	return n
}
