package job

import (
	"Postdeck/internal/pkg/logger"
	"Postdeck/internal/service"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const draftJobTimeout = 10 * time.Minute

// DraftGenerationJob 每日定时生成推文草稿
type DraftGenerationJob struct {
	draftSvc service.DraftService
	count    int
}

func NewDraftGenerationJob(draftSvc service.DraftService, count int) *DraftGenerationJob {
	if count <= 0 {
		count = service.DefaultGenerateCount
	}
	return &DraftGenerationJob{
		draftSvc: draftSvc,
		count:    min(count, service.MaxGenerateCount),
	}
}

func (s *DraftGenerationJob) Run() {
	traceID := "job-drafts-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), traceID), draftJobTimeout)
	defer cancel()

	log.InfoContext(ctx, "DraftGenerationJob start", "count", s.count)
	result, err := s.draftSvc.GenerateDrafts(ctx, s.count)
	if err != nil {
		if errors.Is(err, service.ErrGenerationRunning) {
			log.InfoContext(ctx, "DraftGenerationJob skipped, generation already running")
			return
		}
		log.ErrorContext(ctx, "DraftGenerationJob failed", "err", err)
		return
	}
	log.InfoContext(ctx, "DraftGenerationJob done",
		"total", result.TweetsGenerated,
		"by_source", result.BySource,
	)
}
