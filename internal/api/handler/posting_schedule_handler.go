package handler

import (
	"Postdeck/internal/api/dto"
	"Postdeck/internal/pkg/response"
	"Postdeck/internal/pkg/util"
	"Postdeck/internal/service"

	"github.com/gin-gonic/gin"
)

type PostingScheduleHandler struct {
	scheduleSvc service.PostingScheduleService
}

func NewPostingScheduleHandler(scheduleSvc service.PostingScheduleService) *PostingScheduleHandler {
	return &PostingScheduleHandler{
		scheduleSvc: scheduleSvc,
	}
}

func (h *PostingScheduleHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.scheduleSvc.ListSchedules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, schedules)
}

func (h *PostingScheduleHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreatePostingScheduleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	schedule, err := h.scheduleSvc.CreateSchedule(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, schedule)
}

func (h *PostingScheduleHandler) DeleteSchedule(c *gin.Context) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.scheduleSvc.DeleteSchedule(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
