package wire

import (
	"Postdeck/internal/api"
	"Postdeck/internal/api/config"
	"Postdeck/internal/api/handler"
	"Postdeck/internal/job"
	"Postdeck/internal/pkg/cron"
	"Postdeck/internal/pkg/kafka"
	"Postdeck/internal/pkg/lifecycle"
	"Postdeck/internal/pkg/llm"
	"Postdeck/internal/pkg/media"
	"Postdeck/internal/pkg/minio"
	"Postdeck/internal/repository"
	"Postdeck/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router    *gin.Engine
	DB        *gorm.DB
	CronMgr   *cron.Manager
	Publisher kafka.StatusPublisher
}

func BuildApplication(db *gorm.DB, writer *llm.DraftWriter, cfg *config.Config) (*ApplicationContainer, error) {
	tweetRepo := repository.NewTweetRepo(db)
	instagramRepo := repository.NewInstagramPostRepo(db)
	scheduleRepo := repository.NewPostingScheduleRepo(db)

	engine := lifecycle.NewEngine(lifecycle.WithPostedEdits(cfg.Lifecycle.AllowPostedEdits))
	publisher, err := kafka.NewStatusPublisher(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	retries := cfg.Lifecycle.MaxSaveRetries

	tweetService := service.NewTweetService(tweetRepo, engine, publisher, retries)
	instagramService := service.NewInstagramService(
		instagramRepo, tweetRepo, engine, publisher,
		minio.ObjectStorage{}, media.NewFetcher(), retries,
	)
	draftService := service.NewDraftService(tweetRepo, writer)
	scheduleService := service.NewPostingScheduleService(scheduleRepo)
	configService := service.NewConfigService(cfg, draftService)

	handlers := &api.HandlersGroup{
		TweetHandler:           handler.NewTweetHandler(tweetService, draftService),
		InstagramHandler:       handler.NewInstagramHandler(instagramService),
		PostingScheduleHandler: handler.NewPostingScheduleHandler(scheduleService),
		ConfigHandler:          handler.NewConfigHandler(configService),
	}

	router := api.SetupRouter(handlers)

	draftJob := job.NewDraftGenerationJob(draftService, cfg.Drafts.TweetsPerDay)
	cronMgr := cron.NewCronManager(draftJob, cfg.Drafts.GenerationTime)

	return &ApplicationContainer{
		Router:    router,
		DB:        db,
		CronMgr:   cronMgr,
		Publisher: publisher,
	}, nil
}
