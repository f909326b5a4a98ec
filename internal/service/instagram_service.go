package service

import (
	"Postdeck/internal/api/dto"
	"Postdeck/internal/model"
	"Postdeck/internal/pkg/kafka"
	"Postdeck/internal/pkg/lifecycle"
	"Postdeck/internal/pkg/media"
	"Postdeck/internal/pkg/minio"
	"Postdeck/internal/repository"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type InstagramService interface {
	ListInstagramPosts(ctx context.Context, query *dto.ListQueryDTO) ([]*dto.InstagramPostDTO, error)
	GetInstagramPost(ctx context.Context, id uint64) (*dto.InstagramPostDTO, error)
	// CreateInstagramPost 独立创建，指定的来源推文必须存在
	CreateInstagramPost(ctx context.Context, req *dto.CreateInstagramPostDTO) (*dto.InstagramPostDTO, error)
	// DeriveFromTweet 由推文派生，推文不会被修改
	DeriveFromTweet(ctx context.Context, tweetID uint64) (*dto.InstagramPostDTO, error)
	EditCaption(ctx context.Context, id uint64, caption string) (*dto.InstagramPostDTO, error)
	Approve(ctx context.Context, id uint64) (*dto.InstagramPostDTO, error)
	MarkPosted(ctx context.Context, id uint64, externalID string) (*dto.InstagramPostDTO, error)
	MarkFailed(ctx context.Context, id uint64) (*dto.InstagramPostDTO, error)
	// AttachImage file 为空时从 sourceURL 拉取，统一裁剪为正方形 JPEG 后上传
	AttachImage(ctx context.Context, id uint64, file io.Reader, sourceURL string) (*dto.InstagramPostDTO, error)
	DeleteInstagramPost(ctx context.Context, id uint64) error
}

// ImageFetcher 拉取远程图片
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type instagramServiceImpl struct {
	postRepo   repository.InstagramPostRepo
	tweetRepo  repository.TweetRepo
	engine     *lifecycle.Engine
	publisher  kafka.StatusPublisher
	storage    minio.Storage
	fetcher    ImageFetcher
	maxRetries int
	now        func() time.Time
}

func NewInstagramService(
	postRepo repository.InstagramPostRepo,
	tweetRepo repository.TweetRepo,
	engine *lifecycle.Engine,
	publisher kafka.StatusPublisher,
	storage minio.Storage,
	fetcher ImageFetcher,
	maxRetries int,
) InstagramService {
	return &instagramServiceImpl{
		postRepo:   postRepo,
		tweetRepo:  tweetRepo,
		engine:     engine,
		publisher:  publisher,
		storage:    storage,
		fetcher:    fetcher,
		maxRetries: maxRetries,
		now:        time.Now,
	}
}

func (s *instagramServiceImpl) ListInstagramPosts(ctx context.Context, query *dto.ListQueryDTO) ([]*dto.InstagramPostDTO, error) {
	filter, err := listFilter(query, func(status string) bool {
		return model.InstagramStatus(status).Valid()
	})
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListInstagramPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.InstagramPostDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, toInstagramPostDTO(p))
	}
	return items, nil
}

func (s *instagramServiceImpl) GetInstagramPost(ctx context.Context, id uint64) (*dto.InstagramPostDTO, error) {
	post, err := s.postRepo.GetInstagramPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInstagramPostDTO(post), nil
}

func (s *instagramServiceImpl) CreateInstagramPost(ctx context.Context, req *dto.CreateInstagramPostDTO) (*dto.InstagramPostDTO, error) {
	post := &model.InstagramPost{
		Caption:  req.Caption,
		ImageURL: req.ImageURL,
		Status:   model.InstagramPending,
	}
	if req.SourceTweetID != nil {
		if _, err := s.sourceTweet(ctx, *req.SourceTweetID); err != nil {
			return nil, err
		}
		id := *req.SourceTweetID
		post.SourceTweetID = &id
	}
	saved, err := s.postRepo.SaveInstagramPost(ctx, post)
	if err != nil {
		return nil, err
	}
	return toInstagramPostDTO(saved), nil
}

func (s *instagramServiceImpl) DeriveFromTweet(ctx context.Context, tweetID uint64) (*dto.InstagramPostDTO, error) {
	tweet, err := s.sourceTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	post, err := lifecycle.DeriveInstagramPost(tweet)
	if err != nil {
		return nil, err
	}
	saved, err := s.postRepo.SaveInstagramPost(ctx, post)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "已由推文派生 Instagram 帖子", "tweet_id", tweetID, "post_id", saved.ID)
	return toInstagramPostDTO(saved), nil
}

func (s *instagramServiceImpl) EditCaption(ctx context.Context, id uint64, caption string) (*dto.InstagramPostDTO, error) {
	return s.mutate(ctx, id, func(p *model.InstagramPost, _ time.Time) (*model.InstagramPost, error) {
		return s.engine.EditCaption(p, caption)
	})
}

func (s *instagramServiceImpl) Approve(ctx context.Context, id uint64) (*dto.InstagramPostDTO, error) {
	return s.mutate(ctx, id, func(p *model.InstagramPost, _ time.Time) (*model.InstagramPost, error) {
		return s.engine.ApproveInstagram(p)
	})
}

func (s *instagramServiceImpl) MarkPosted(ctx context.Context, id uint64, externalID string) (*dto.InstagramPostDTO, error) {
	return s.mutate(ctx, id, func(p *model.InstagramPost, now time.Time) (*model.InstagramPost, error) {
		return s.engine.MarkInstagramPosted(p, externalID, now)
	})
}

func (s *instagramServiceImpl) MarkFailed(ctx context.Context, id uint64) (*dto.InstagramPostDTO, error) {
	return s.mutate(ctx, id, func(p *model.InstagramPost, _ time.Time) (*model.InstagramPost, error) {
		return s.engine.MarkInstagramFailed(p)
	})
}

func (s *instagramServiceImpl) AttachImage(ctx context.Context, id uint64, file io.Reader, sourceURL string) (*dto.InstagramPostDTO, error) {
	// 先确认帖子存在且允许修改图片，避免无效上传
	current, err := s.postRepo.GetInstagramPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err = s.engine.AttachImage(current, ""); err != nil {
		return nil, err
	}

	if file == nil {
		if sourceURL == "" {
			return nil, ErrImageRequired
		}
		raw, err := s.fetcher.Fetch(ctx, sourceURL)
		if err != nil {
			return nil, err
		}
		file = bytes.NewReader(raw)
	}

	squared, err := media.SquareJPEG(file)
	if err != nil {
		return nil, err
	}
	objectName := fmt.Sprintf("instagram/%d/%s.jpg", id, uuid.NewString())
	imageURL, err := s.storage.Upload(ctx, objectName, bytes.NewReader(squared), int64(len(squared)), media.ContentType)
	if err != nil {
		log.ErrorContext(ctx, "图片上传失败", "post_id", id, "err", err)
		return nil, UnExpectedError
	}

	result, err := s.mutate(ctx, id, func(p *model.InstagramPost, _ time.Time) (*model.InstagramPost, error) {
		return s.engine.AttachImage(p, imageURL)
	})
	if err != nil {
		// 保存失败时清理刚上传的对象
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), objectName); delErr != nil {
			log.WarnContext(ctx, "清理未引用的图片失败", "object", objectName, "err", delErr)
		}
		return nil, err
	}
	return result, nil
}

func (s *instagramServiceImpl) DeleteInstagramPost(ctx context.Context, id uint64) error {
	if err := s.postRepo.DeleteInstagramPost(ctx, id); err != nil {
		return err
	}
	log.InfoContext(ctx, "Instagram 帖子已删除", "id", id)
	return nil
}

// sourceTweet 来源推文不存在时返回 ErrInvalidSource
func (s *instagramServiceImpl) sourceTweet(ctx context.Context, tweetID uint64) (*model.Tweet, error) {
	tweet, err := s.tweetRepo.GetTweet(ctx, tweetID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidSource
	}
	return tweet, err
}

func (s *instagramServiceImpl) mutate(ctx context.Context, id uint64, change func(*model.InstagramPost, time.Time) (*model.InstagramPost, error)) (*dto.InstagramPostDTO, error) {
	before, after, err := saveWithRetry(ctx, s.maxRetries,
		func() (*model.InstagramPost, error) { return s.postRepo.GetInstagramPost(ctx, id) },
		func(current *model.InstagramPost) (*model.InstagramPost, error) { return change(current, s.now()) },
		func(next *model.InstagramPost) (*model.InstagramPost, error) {
			return s.postRepo.SaveInstagramPost(ctx, next)
		},
	)
	if err != nil {
		return nil, err
	}
	if before.Status != after.Status {
		s.publisher.Publish(ctx, kafka.StatusEvent{
			Kind: kafka.KindInstagram,
			ID:   after.ID,
			From: string(before.Status),
			To:   string(after.Status),
			At:   s.now().UTC(),
		})
	}
	return toInstagramPostDTO(after), nil
}

func toInstagramPostDTO(p *model.InstagramPost) *dto.InstagramPostDTO {
	item := &dto.InstagramPostDTO{}
	_ = copier.Copy(item, p)
	return item
}
