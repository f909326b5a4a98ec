package dto

import "time"

type InstagramPostDTO struct {
	ID            uint64     `json:"id"`
	SourceTweetID *uint64    `json:"source_tweet_id"`
	Caption       string     `json:"caption"`
	ImageURL      string     `json:"image_url"`
	Status        string     `json:"status"`
	PostedTime    *time.Time `json:"posted_time"`
	InstagramID   *string    `json:"instagram_id"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CreateInstagramPostDTO struct {
	Caption       string  `json:"caption" binding:"required"`
	ImageURL      string  `json:"image_url" validate:"omitempty,url,max=512"`
	SourceTweetID *uint64 `json:"source_tweet_id"`
}

type EditCaptionDTO struct {
	Caption string `json:"caption" binding:"required"`
}

// AttachImageDTO 未上传文件时从 source_url 拉取
type AttachImageDTO struct {
	SourceURL string `form:"source_url" json:"source_url" validate:"omitempty,url"`
}
