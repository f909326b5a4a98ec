package lifecycle

import (
	"Postdeck/internal/model"
	"Postdeck/internal/pkg/schedule"
	"time"
)

// tweetTransition 推文状态表
// pending -> approved -> scheduled -> posted
// scheduled -> approved (取消排期)
// pending | approved | scheduled -> failed
// approved -> posted (立即发布)
func tweetTransition(from model.TweetStatus, op Op) (model.TweetStatus, bool) {
	switch op {
	case OpApprove:
		if from == model.TweetPending {
			return model.TweetApproved, true
		}
	case OpSchedule:
		if from == model.TweetApproved {
			return model.TweetScheduled, true
		}
	case OpUnschedule:
		if from == model.TweetScheduled {
			return model.TweetApproved, true
		}
	case OpMarkPosted:
		switch from {
		case model.TweetApproved, model.TweetScheduled:
			return model.TweetPosted, true
		}
	case OpMarkFailed:
		switch from {
		case model.TweetPending, model.TweetApproved, model.TweetScheduled:
			return model.TweetFailed, true
		}
	}
	return from, false
}

func (e *Engine) tweetStep(t *model.Tweet, op Op) (*model.Tweet, error) {
	if t == nil {
		return nil, illegal(op, "<nil>")
	}
	to, ok := tweetTransition(t.Status, op)
	if !ok {
		return nil, illegal(op, string(t.Status))
	}
	next := t.Clone()
	next.Status = to
	return next, nil
}

// Approve pending -> approved
func (e *Engine) Approve(t *model.Tweet) (*model.Tweet, error) {
	return e.tweetStep(t, OpApprove)
}

// Schedule approved -> scheduled，先校验状态，再校验时间
func (e *Engine) Schedule(t *model.Tweet, at, now time.Time) (*model.Tweet, error) {
	next, err := e.tweetStep(t, OpSchedule)
	if err != nil {
		return nil, err
	}
	when, err := schedule.Validate(at, now)
	if err != nil {
		return nil, err
	}
	next.ScheduledTime = &when
	return next, nil
}

// Unschedule scheduled -> approved，同时清空发布时间
func (e *Engine) Unschedule(t *model.Tweet) (*model.Tweet, error) {
	next, err := e.tweetStep(t, OpUnschedule)
	if err != nil {
		return nil, err
	}
	next.ScheduledTime = nil
	return next, nil
}

// EditContent 修改正文，内容第一次发生变化时标记 edited
func (e *Engine) EditContent(t *model.Tweet, content string) (*model.Tweet, error) {
	if t == nil {
		return nil, illegal(OpEdit, "<nil>")
	}
	if t.Status == model.TweetPosted && !e.allowPostedEdits {
		return nil, illegal(OpEdit, string(t.Status))
	}
	next := t.Clone()
	if content != t.Content {
		next.Edited = true
	}
	next.Content = content
	return next, nil
}

// MarkPosted 外部发布成功后回写
func (e *Engine) MarkPosted(t *model.Tweet, externalID string, now time.Time) (*model.Tweet, error) {
	next, err := e.tweetStep(t, OpMarkPosted)
	if err != nil {
		return nil, err
	}
	postedAt := now.UTC()
	next.PostedTime = &postedAt
	next.ScheduledTime = nil
	if externalID != "" {
		next.TwitterID = &externalID
	}
	return next, nil
}

// MarkFailed 外部发布失败后回写
func (e *Engine) MarkFailed(t *model.Tweet) (*model.Tweet, error) {
	next, err := e.tweetStep(t, OpMarkFailed)
	if err != nil {
		return nil, err
	}
	next.ScheduledTime = nil
	return next, nil
}
