package service

import (
	"Postdeck/internal/api/config"
	"Postdeck/internal/model"
	"Postdeck/internal/pkg/consts"
	"Postdeck/internal/pkg/redis"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	sources []string
	fail    map[string]error
	asked   map[string]int
}

func (w *fakeWriter) Sources() []string { return w.sources }

func (w *fakeWriter) Generate(_ context.Context, source string, count int) ([]string, error) {
	if w.asked == nil {
		w.asked = map[string]int{}
	}
	w.asked[source] = count
	if err := w.fail[source]; err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := range out {
		out[i] = fmt.Sprintf("%s draft %d", source, i+1)
	}
	return out, nil
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redis.Rdb.Close() })
	return mr
}

func newDraftSvc(repo *fakeTweetRepo, writer DraftWriter) *draftServiceImpl {
	svc := NewDraftService(repo, writer).(*draftServiceImpl)
	svc.now = clock
	return svc
}

func TestGenerateDraftsSplitsAcrossSources(t *testing.T) {
	mr := setupRedis(t)
	repo := newFakeTweetRepo()
	writer := &fakeWriter{sources: []string{model.AISourceChatGPT, model.AISourceClaude}}
	svc := newDraftSvc(repo, writer)

	res, err := svc.GenerateDrafts(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 25, res.TweetsGenerated)
	assert.Equal(t, map[string]int{"chatgpt": 13, "claude": 12}, res.BySource)
	assert.Equal(t, fixedNow, res.Timestamp)
	assert.Len(t, repo.tweets, 25)
	for _, tw := range repo.tweets {
		assert.Equal(t, model.TweetPending, tw.Status)
		assert.False(t, tw.Edited)
	}

	assert.False(t, mr.Exists(consts.DraftGenerationLock), "lock released")
	last, err := svc.LastGeneration(context.Background())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Equal(fixedNow))
}

func TestGenerateDraftsPartialFailure(t *testing.T) {
	setupRedis(t)
	repo := newFakeTweetRepo()
	writer := &fakeWriter{
		sources: []string{"chatgpt", "claude"},
		fail:    map[string]error{"claude": errors.New("rate limited")},
	}
	svc := newDraftSvc(repo, writer)

	res, err := svc.GenerateDrafts(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TweetsGenerated)
	assert.Equal(t, 0, res.BySource["claude"])
}

func TestGenerateDraftsAllSourcesFail(t *testing.T) {
	setupRedis(t)
	writer := &fakeWriter{
		sources: []string{"claude"},
		fail:    map[string]error{"claude": errors.New("down")},
	}
	_, err := newDraftSvc(newFakeTweetRepo(), writer).GenerateDrafts(context.Background(), 3)
	assert.True(t, errors.Is(err, UnExpectedError))
}

func TestGenerateDraftsOnlyCalledSourceFails(t *testing.T) {
	mr := setupRedis(t)
	repo := newFakeTweetRepo()
	writer := &fakeWriter{
		sources: []string{"chatgpt", "claude"},
		fail:    map[string]error{"chatgpt": errors.New("down")},
	}

	_, err := newDraftSvc(repo, writer).GenerateDrafts(context.Background(), 1)
	assert.True(t, errors.Is(err, UnExpectedError))
	assert.Equal(t, map[string]int{"chatgpt": 1}, writer.asked)
	assert.Empty(t, repo.tweets)
	assert.False(t, mr.Exists(consts.LastGenerationKey))
	assert.False(t, mr.Exists(consts.DraftGenerationLock))
}

func TestGenerateDraftsGuards(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	svc := newDraftSvc(newFakeTweetRepo(), &fakeWriter{sources: []string{"claude"}})
	_, err := svc.GenerateDrafts(ctx, 0)
	assert.True(t, errors.Is(err, ErrParamInvalid))
	_, err = svc.GenerateDrafts(ctx, MaxGenerateCount+1)
	assert.True(t, errors.Is(err, ErrParamInvalid))

	_, err = newDraftSvc(newFakeTweetRepo(), &fakeWriter{}).GenerateDrafts(ctx, 5)
	assert.True(t, errors.Is(err, ErrNoDraftSource))

	require.NoError(t, mr.Set(consts.DraftGenerationLock, "someone-else"))
	_, err = svc.GenerateDrafts(ctx, 5)
	assert.True(t, errors.Is(err, ErrGenerationRunning))
	got, _ := mr.Get(consts.DraftGenerationLock)
	assert.Equal(t, "someone-else", got)
}

func TestLastGenerationEmpty(t *testing.T) {
	setupRedis(t)
	last, err := newDraftSvc(newFakeTweetRepo(), &fakeWriter{}).LastGeneration(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestSplitCount(t *testing.T) {
	assert.Equal(t, 13, splitCount(25, 2, 0))
	assert.Equal(t, 12, splitCount(25, 2, 1))
	assert.Equal(t, 1, splitCount(1, 2, 0))
	assert.Equal(t, 0, splitCount(1, 2, 1))
}

func TestConfigService(t *testing.T) {
	setupRedis(t)
	cfg := &config.Config{Environment: "test", Drafts: config.DraftsConfig{GenerationTime: "07:30", TweetsPerDay: 10}}
	draftSvc := newDraftSvc(newFakeTweetRepo(), &fakeWriter{sources: []string{"claude"}})
	require.NoError(t, redis.SetValue(context.Background(), consts.LastGenerationKey, fixedNow.Add(-time.Hour).Format(time.RFC3339)))

	got, err := NewConfigService(cfg, draftSvc).GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test", got.Environment)
	assert.Equal(t, "07:30", got.GenerationTime)
	assert.Equal(t, 10, got.TweetsPerDay)
	assert.Equal(t, []string{"claude"}, got.Sources)
	require.NotNil(t, got.LastGeneration)
	assert.True(t, got.LastGeneration.Equal(fixedNow.Add(-time.Hour)))
}
