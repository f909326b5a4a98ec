package dto

import "time"

// SystemConfigDTO 对外展示的运行配置
type SystemConfigDTO struct {
	Environment    string     `json:"environment"`
	GenerationTime string     `json:"content_generation_time"`
	TweetsPerDay   int        `json:"tweets_per_day"`
	Sources        []string   `json:"ai_sources"`
	LastGeneration *time.Time `json:"last_generation"`
}
