package model

import (
	"time"
)

// InstagramStatus Instagram 帖子状态，没有 scheduled
type InstagramStatus string

const (
	InstagramPending  InstagramStatus = "pending"
	InstagramApproved InstagramStatus = "approved"
	InstagramPosted   InstagramStatus = "posted"
	InstagramFailed   InstagramStatus = "failed"
)

func (s InstagramStatus) Valid() bool {
	switch s {
	case InstagramPending, InstagramApproved, InstagramPosted, InstagramFailed:
		return true
	}
	return false
}

type InstagramPost struct {
	ID            uint64          `gorm:"primaryKey" json:"id"`
	SourceTweetID *uint64         `gorm:"index:idx_source_tweet_id" json:"source_tweet_id"` // 弱引用，不做外键约束
	Caption       string          `gorm:"type:text;not null" json:"caption"`
	ImageURL      string          `gorm:"type:varchar(512);not null;default:''" json:"image_url"`
	Status        InstagramStatus `gorm:"type:varchar(16);not null;default:pending;index:idx_instagram_status" json:"status"`
	PostedTime    *time.Time      `json:"posted_time"`
	InstagramID   *string         `gorm:"type:varchar(64)" json:"instagram_id"`
	Version       int             `gorm:"not null;default:1" json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (InstagramPost) TableName() string {
	return "instagram_posts"
}

func (p *InstagramPost) Clone() *InstagramPost {
	if p == nil {
		return nil
	}
	c := *p
	c.PostedTime = cloneTime(p.PostedTime)
	if p.SourceTweetID != nil {
		id := *p.SourceTweetID
		c.SourceTweetID = &id
	}
	if p.InstagramID != nil {
		id := *p.InstagramID
		c.InstagramID = &id
	}
	return &c
}
