package handler

import (
	"Postdeck/internal/pkg/util"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// bindOptionalJSON 请求体可以省略；chunked 请求没有 Content-Length，只能读到 EOF 才知道为空
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return util.ValidateDTO(obj)
}
