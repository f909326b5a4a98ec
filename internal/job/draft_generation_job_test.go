package job

import (
	"Postdeck/internal/api/dto"
	"Postdeck/internal/pkg/logger"
	"Postdeck/internal/service"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubDraftService struct {
	service.DraftService
	count   int
	traceID string
	err     error
}

func (s *stubDraftService) GenerateDrafts(ctx context.Context, count int) (*dto.GenerateResultDTO, error) {
	s.count = count
	s.traceID = logger.TraceID(ctx)
	if s.err != nil {
		return nil, s.err
	}
	return &dto.GenerateResultDTO{TweetsGenerated: count}, nil
}

func TestDraftGenerationJobRun(t *testing.T) {
	svc := &stubDraftService{}
	NewDraftGenerationJob(svc, 25).Run()

	assert.Equal(t, 25, svc.count)
	assert.True(t, strings.HasPrefix(svc.traceID, "job-drafts-"))
}

func TestDraftGenerationJobCount(t *testing.T) {
	assert.Equal(t, service.DefaultGenerateCount, NewDraftGenerationJob(&stubDraftService{}, 0).count)
	assert.Equal(t, service.MaxGenerateCount, NewDraftGenerationJob(&stubDraftService{}, 1000).count)
}

func TestDraftGenerationJobSwallowsErrors(t *testing.T) {
	svc := &stubDraftService{err: service.ErrGenerationRunning}
	assert.NotPanics(t, NewDraftGenerationJob(svc, 5).Run)
}
