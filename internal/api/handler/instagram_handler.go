package handler

import (
	"Postdeck/internal/api/dto"
	"Postdeck/internal/pkg/response"
	"Postdeck/internal/pkg/util"
	"Postdeck/internal/service"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type InstagramHandler struct {
	instagramSvc service.InstagramService
}

func NewInstagramHandler(instagramSvc service.InstagramService) *InstagramHandler {
	return &InstagramHandler{
		instagramSvc: instagramSvc,
	}
}

func (h *InstagramHandler) ListInstagramPosts(c *gin.Context) {
	var query dto.ListQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := h.instagramSvc.ListInstagramPosts(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (h *InstagramHandler) GetInstagramPost(c *gin.Context) {
	h.transition(c, h.instagramSvc.GetInstagramPost)
}

func (h *InstagramHandler) CreateInstagramPost(c *gin.Context) {
	var req dto.CreateInstagramPostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.instagramSvc.CreateInstagramPost(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, post)
}

func (h *InstagramHandler) DeriveFromTweet(c *gin.Context) {
	tweetID, ok := util.ParseID(c.Param("tweet_id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := h.instagramSvc.DeriveFromTweet(c.Request.Context(), tweetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, post)
}

func (h *InstagramHandler) EditCaption(c *gin.Context) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.EditCaptionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.instagramSvc.EditCaption(c.Request.Context(), id, req.Caption)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (h *InstagramHandler) Approve(c *gin.Context) {
	h.transition(c, h.instagramSvc.Approve)
}

func (h *InstagramHandler) MarkFailed(c *gin.Context) {
	h.transition(c, h.instagramSvc.MarkFailed)
}

func (h *InstagramHandler) MarkPosted(c *gin.Context) {
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

	post, err := h.instagramSvc.MarkPosted(c.Request.Context(), id, req.ExternalID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// AttachImage multipart 字段 file，或 source_url
func (h *InstagramHandler) AttachImage(c *gin.Context) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.AttachImageDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	var file io.Reader
	header, err := c.FormFile("file")
	switch {
	case err == nil:
		if !util.IsImage(header.Header.Get("Content-Type")) {
			response.Error(c, service.ErrInvalidImage)
			return
		}
		f, err := header.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer f.Close()
		file = f
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := h.instagramSvc.AttachImage(c.Request.Context(), id, file, req.SourceURL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (h *InstagramHandler) DeleteInstagramPost(c *gin.Context) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.instagramSvc.DeleteInstagramPost(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *InstagramHandler) transition(c *gin.Context, apply func(ctx context.Context, id uint64) (*dto.InstagramPostDTO, error)) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := apply(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}
