package handler

import (
	"Postdeck/internal/api/dto"
	"Postdeck/internal/pkg/response"
	"Postdeck/internal/pkg/util"
	"Postdeck/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetSvc service.TweetService
	draftSvc service.DraftService
}

func NewTweetHandler(tweetSvc service.TweetService, draftSvc service.DraftService) *TweetHandler {
	return &TweetHandler{
		tweetSvc: tweetSvc,
		draftSvc: draftSvc,
	}
}

// ListTweets ?status=&skip=&limit=
func (h *TweetHandler) ListTweets(c *gin.Context) {
	var query dto.ListQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	tweets, err := h.tweetSvc.ListTweets(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweets)
}

func (h *TweetHandler) GetBoard(c *gin.Context) {
	board, err := h.tweetSvc.GetBoard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, board)
}

func (h *TweetHandler) GetTweet(c *gin.Context) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	tweet, err := h.tweetSvc.GetTweet(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweet)
}

func (h *TweetHandler) EditContent(c *gin.Context) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.EditTweetDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	tweet, err := h.tweetSvc.EditContent(c.Request.Context(), id, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweet)
}

func (h *TweetHandler) Approve(c *gin.Context) {
	h.transition(c, h.tweetSvc.Approve)
}

func (h *TweetHandler) Unschedule(c *gin.Context) {
	h.transition(c, h.tweetSvc.Unschedule)
}

func (h *TweetHandler) MarkFailed(c *gin.Context) {
	h.transition(c, h.tweetSvc.MarkFailed)
}

func (h *TweetHandler) Schedule(c *gin.Context) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.ScheduleTweetDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	tweet, err := h.tweetSvc.Schedule(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweet)
}

// MarkPosted external_id 可选
func (h *TweetHandler) MarkPosted(c *gin.Context) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.MarkPostedDTO
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	tweet, err := h.tweetSvc.MarkPosted(c.Request.Context(), id, req.ExternalID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweet)
}

func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.tweetSvc.DeleteTweet(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GenerateDrafts 手动触发一次草稿生成，count 缺省为 25
func (h *TweetHandler) GenerateDrafts(c *gin.Context) {
	var req dto.GenerateDraftsDTO
	if err := bindOptionalJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	count := service.DefaultGenerateCount
	if req.Count != nil {
		count = *req.Count
	}

	result, err := h.draftSvc.GenerateDrafts(c.Request.Context(), count)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, result)
}

func (h *TweetHandler) transition(c *gin.Context, apply func(ctx context.Context, id uint64) (*dto.TweetDTO, error)) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	tweet, err := apply(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweet)
}
