package model

import (
	"time"
)

// TweetStatus 推文状态
type TweetStatus string

const (
	TweetPending   TweetStatus = "pending"
	TweetApproved  TweetStatus = "approved"
	TweetScheduled TweetStatus = "scheduled"
	TweetPosted    TweetStatus = "posted"
	TweetFailed    TweetStatus = "failed"
)

// Valid 是否为已知状态
func (s TweetStatus) Valid() bool {
	switch s {
	case TweetPending, TweetApproved, TweetScheduled, TweetPosted, TweetFailed:
		return true
	}
	return false
}

// 已知的 AI 来源，ai_source 字段本身不做限制
const (
	AISourceClaude  = "claude"
	AISourceChatGPT = "chatgpt"
)

type Tweet struct {
	ID            uint64      `gorm:"primaryKey" json:"id"`
	Content       string      `gorm:"type:text;not null" json:"content"`
	AISource      string      `gorm:"type:varchar(64);not null" json:"ai_source"`
	Status        TweetStatus `gorm:"type:varchar(16);not null;default:pending;index:idx_tweet_status" json:"status"`
	ScheduledTime *time.Time  `json:"scheduled_time"`
	PostedTime    *time.Time  `json:"posted_time"`
	Edited        bool        `gorm:"type:tinyint(1);not null;default:0" json:"edited"`
	TwitterID     *string     `gorm:"type:varchar(64)" json:"twitter_id"`
	Version       int         `gorm:"not null;default:1" json:"version"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (Tweet) TableName() string {
	return "tweets"
}

// Clone 返回一份独立的快照，指针字段也会复制
func (t *Tweet) Clone() *Tweet {
	if t == nil {
		return nil
	}
	c := *t
	c.ScheduledTime = cloneTime(t.ScheduledTime)
	c.PostedTime = cloneTime(t.PostedTime)
	if t.TwitterID != nil {
		id := *t.TwitterID
		c.TwitterID = &id
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
