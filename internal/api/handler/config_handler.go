package handler

import (
	"Postdeck/internal/pkg/response"
	"Postdeck/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	configSvc service.ConfigService
}

func NewConfigHandler(configSvc service.ConfigService) *ConfigHandler {
	return &ConfigHandler{
		configSvc: configSvc,
	}
}

func (h *ConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.configSvc.GetConfig(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cfg)
}
