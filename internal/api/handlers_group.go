package api

import "Postdeck/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	TweetHandler           *handler.TweetHandler
	InstagramHandler       *handler.InstagramHandler
	PostingScheduleHandler *handler.PostingScheduleHandler
	ConfigHandler          *handler.ConfigHandler
}
