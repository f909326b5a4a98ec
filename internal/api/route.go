package api

import (
	"Postdeck/internal/api/middleware"
	"Postdeck/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})
	r.MaxMultipartMemory = 16 << 20

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		tweetGroup := apiGroup.Group("/tweets")
		{
			tweetGroup.GET("", group.TweetHandler.ListTweets)
			tweetGroup.GET("/board", group.TweetHandler.GetBoard)
			tweetGroup.POST("/generate", group.TweetHandler.GenerateDrafts)
			tweetGroup.GET("/:id", group.TweetHandler.GetTweet)
			tweetGroup.PATCH("/:id", group.TweetHandler.EditContent)
			tweetGroup.DELETE("/:id", group.TweetHandler.DeleteTweet)
			tweetGroup.POST("/:id/approve", group.TweetHandler.Approve)
			tweetGroup.POST("/:id/schedule", group.TweetHandler.Schedule)
			tweetGroup.POST("/:id/unschedule", group.TweetHandler.Unschedule)
			tweetGroup.POST("/:id/posted", group.TweetHandler.MarkPosted)
			tweetGroup.POST("/:id/failed", group.TweetHandler.MarkFailed)
		}

		instagramGroup := apiGroup.Group("/instagram")
		{
			instagramGroup.GET("", group.InstagramHandler.ListInstagramPosts)
			instagramGroup.POST("", group.InstagramHandler.CreateInstagramPost)
			instagramGroup.POST("/derive/:tweet_id", group.InstagramHandler.DeriveFromTweet)
			instagramGroup.GET("/:id", group.InstagramHandler.GetInstagramPost)
			instagramGroup.PATCH("/:id", group.InstagramHandler.EditCaption)
			instagramGroup.DELETE("/:id", group.InstagramHandler.DeleteInstagramPost)
			instagramGroup.POST("/:id/approve", group.InstagramHandler.Approve)
			instagramGroup.POST("/:id/posted", group.InstagramHandler.MarkPosted)
			instagramGroup.POST("/:id/failed", group.InstagramHandler.MarkFailed)
			instagramGroup.POST("/:id/image", group.InstagramHandler.AttachImage)
		}

		schedulerGroup := apiGroup.Group("/scheduler")
		{
			schedulerGroup.GET("", group.PostingScheduleHandler.ListSchedules)
			schedulerGroup.POST("", group.PostingScheduleHandler.CreateSchedule)
			schedulerGroup.DELETE("/:id", group.PostingScheduleHandler.DeleteSchedule)
		}

		apiGroup.GET("/config", group.ConfigHandler.GetConfig)
	}

	return r
}
