package lifecycle

import (
	"Postdeck/internal/model"
	"Postdeck/internal/pkg/schedule"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

var allTweetStatuses = []model.TweetStatus{
	model.TweetPending, model.TweetApproved, model.TweetScheduled, model.TweetPosted, model.TweetFailed,
}

func tweetIn(status model.TweetStatus) *model.Tweet {
	tw := &model.Tweet{ID: 1, Content: "draft", AISource: model.AISourceClaude, Status: status, Version: 3}
	if status == model.TweetScheduled {
		at := now.Add(time.Hour)
		tw.ScheduledTime = &at
	}
	return tw
}

func TestTweetScenarioApproveScheduleUnschedule(t *testing.T) {
	e := NewEngine()
	tw := tweetIn(model.TweetPending)

	approved, err := e.Approve(tw)
	require.NoError(t, err)
	assert.Equal(t, model.TweetApproved, approved.Status)
	assert.Equal(t, model.TweetPending, tw.Status, "input snapshot must not change")

	at := now.Add(3600 * time.Second)
	scheduled, err := e.Schedule(approved, at, now)
	require.NoError(t, err)
	assert.Equal(t, model.TweetScheduled, scheduled.Status)
	require.NotNil(t, scheduled.ScheduledTime)
	assert.True(t, scheduled.ScheduledTime.Equal(at))
	assert.Nil(t, approved.ScheduledTime)

	back, err := e.Unschedule(scheduled)
	require.NoError(t, err)
	assert.Equal(t, model.TweetApproved, back.Status)
	assert.Nil(t, back.ScheduledTime)
	assert.NotNil(t, scheduled.ScheduledTime)
	assert.Equal(t, 3, back.Version, "version is bumped by the store, not the engine")
}

func TestScheduleOnlyFromApprovedAndFuture(t *testing.T) {
	e := NewEngine()
	future := now.Add(time.Minute)

	for _, st := range allTweetStatuses {
		next, err := e.Schedule(tweetIn(st), future, now)
		if st == model.TweetApproved {
			require.NoError(t, err)
			assert.Equal(t, model.TweetScheduled, next.Status)
			continue
		}
		assert.True(t, errors.Is(err, ErrIllegalTransition), "status %s", st)
		assert.Nil(t, next)
	}

	_, err := e.Schedule(tweetIn(model.TweetApproved), now.Add(-10*time.Second), now)
	assert.True(t, errors.Is(err, schedule.ErrInvalidSchedule))
	_, err = e.Schedule(tweetIn(model.TweetApproved), now, now)
	assert.True(t, errors.Is(err, schedule.ErrInvalidSchedule))
}

func TestPendingScheduleIsIllegalEvenWithPastTime(t *testing.T) {
	_, err := NewEngine().Schedule(tweetIn(model.TweetPending), now.Add(-time.Hour), now)
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.False(t, errors.Is(err, schedule.ErrInvalidSchedule))
}

func TestTweetTransitionTable(t *testing.T) {
	e := NewEngine()
	legal := map[Op]map[model.TweetStatus]model.TweetStatus{
		OpApprove:    {model.TweetPending: model.TweetApproved},
		OpUnschedule: {model.TweetScheduled: model.TweetApproved},
		OpMarkPosted: {model.TweetApproved: model.TweetPosted, model.TweetScheduled: model.TweetPosted},
		OpMarkFailed: {
			model.TweetPending:   model.TweetFailed,
			model.TweetApproved:  model.TweetFailed,
			model.TweetScheduled: model.TweetFailed,
		},
	}
	apply := map[Op]func(*model.Tweet) (*model.Tweet, error){
		OpApprove:    e.Approve,
		OpUnschedule: e.Unschedule,
		OpMarkPosted: func(tw *model.Tweet) (*model.Tweet, error) { return e.MarkPosted(tw, "190001", now) },
		OpMarkFailed: e.MarkFailed,
	}

	for op, fn := range apply {
		for _, st := range allTweetStatuses {
			next, err := fn(tweetIn(st))
			want, ok := legal[op][st]
			if !ok {
				assert.True(t, errors.Is(err, ErrIllegalTransition), "%s from %s", op, st)
				continue
			}
			require.NoError(t, err, "%s from %s", op, st)
			assert.Equal(t, want, next.Status)
			assert.Equal(t, next.Status == model.TweetScheduled, next.ScheduledTime != nil)
		}
	}
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	e := NewEngine()
	for _, st := range []model.TweetStatus{model.TweetPosted, model.TweetFailed} {
		_, err := e.Approve(tweetIn(st))
		assert.True(t, errors.Is(err, ErrIllegalTransition))
		_, err = e.Unschedule(tweetIn(st))
		assert.True(t, errors.Is(err, ErrIllegalTransition))
		_, err = e.MarkPosted(tweetIn(st), "x", now)
		assert.True(t, errors.Is(err, ErrIllegalTransition))
		_, err = e.MarkFailed(tweetIn(st))
		assert.True(t, errors.Is(err, ErrIllegalTransition))
	}
}

func TestMarkPosted(t *testing.T) {
	next, err := NewEngine().MarkPosted(tweetIn(model.TweetScheduled), "190001", now)
	require.NoError(t, err)
	assert.Equal(t, model.TweetPosted, next.Status)
	require.NotNil(t, next.PostedTime)
	assert.True(t, next.PostedTime.Equal(now))
	require.NotNil(t, next.TwitterID)
	assert.Equal(t, "190001", *next.TwitterID)
	assert.Nil(t, next.ScheduledTime)

	next, err = NewEngine().MarkPosted(tweetIn(model.TweetApproved), "", now)
	require.NoError(t, err)
	assert.Nil(t, next.TwitterID)
}

func TestEditContent(t *testing.T) {
	e := NewEngine()
	tw := tweetIn(model.TweetApproved)

	same, err := e.EditContent(tw, "draft")
	require.NoError(t, err)
	assert.False(t, same.Edited)

	edited, err := e.EditContent(tw, "better draft")
	require.NoError(t, err)
	assert.True(t, edited.Edited)
	assert.Equal(t, "better draft", edited.Content)
	assert.False(t, tw.Edited)

	// 改回原文也不会清除 edited
	reverted, err := e.EditContent(edited, "draft")
	require.NoError(t, err)
	assert.True(t, reverted.Edited)

	again, err := e.EditContent(reverted, "draft")
	require.NoError(t, err)
	assert.True(t, again.Edited)
}

func TestEditContentPostedPolicy(t *testing.T) {
	_, err := NewEngine().EditContent(tweetIn(model.TweetPosted), "late fix")
	assert.True(t, errors.Is(err, ErrIllegalTransition))

	next, err := NewEngine(WithPostedEdits(true)).EditContent(tweetIn(model.TweetPosted), "late fix")
	require.NoError(t, err)
	assert.True(t, next.Edited)

	for _, st := range []model.TweetStatus{model.TweetPending, model.TweetScheduled, model.TweetFailed} {
		_, err = NewEngine().EditContent(tweetIn(st), "ok")
		assert.NoError(t, err, "status %s", st)
	}
}

func TestNilTweet(t *testing.T) {
	_, err := NewEngine().Approve(nil)
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	_, err = NewEngine().EditContent(nil, "x")
	assert.True(t, errors.Is(err, ErrIllegalTransition))
}
