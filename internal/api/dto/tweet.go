package dto

import "time"

type TweetDTO struct {
	ID            uint64     `json:"id"`
	Content       string     `json:"content"`
	AISource      string     `json:"ai_source"`
	Status        string     `json:"status"`
	ScheduledTime *time.Time `json:"scheduled_time"`
	PostedTime    *time.Time `json:"posted_time"`
	Edited        bool       `json:"edited"`
	TwitterID     *string    `json:"twitter_id"`
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ListQueryDTO 列表查询参数，limit 缺省为 100，0 表示不限制
type ListQueryDTO struct {
	Status string `form:"status"`
	Skip   int    `form:"skip" validate:"min=0"`
	Limit  *int   `form:"limit" validate:"omitempty,min=0"`
}

type EditTweetDTO struct {
	Content string `json:"content" binding:"required"`
}

// ScheduleTweetDTO 三种方式任选其一：scheduled_time / date+time(+timezone) / offset_hours
type ScheduleTweetDTO struct {
	ScheduledTime *time.Time `json:"scheduled_time"`
	Date          string     `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time          string     `json:"time" validate:"omitempty,datetime=15:04"`
	Timezone      string     `json:"timezone"`
	OffsetHours   *int       `json:"offset_hours"`
}

type MarkPostedDTO struct {
	ExternalID string `json:"external_id" validate:"max=64"`
}

type GenerateDraftsDTO struct {
	Count *int `json:"count" validate:"omitempty,min=1,max=100"`
}

type GenerateResultDTO struct {
	Message         string         `json:"message"`
	TweetsGenerated int            `json:"tweets_generated"`
	BySource        map[string]int `json:"by_source"`
	Timestamp       time.Time      `json:"timestamp"`
}

// BoardDTO 看板分组，failed 不出现在任何分组中
type BoardDTO struct {
	Pending   []*TweetDTO `json:"pending"`
	Approved  []*TweetDTO `json:"approved"`
	Scheduled []*TweetDTO `json:"scheduled"`
	Posted    []*TweetDTO `json:"posted"`
}
