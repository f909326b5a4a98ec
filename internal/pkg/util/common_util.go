package util

import (
	"Postdeck/internal/pkg/consts"
	"strconv"
	"strings"
)

// ParseID 解析路径中的正整数 ID
func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// IsImage 根据 Content-Type 判断是否为图片
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), consts.MimePrefixImage+"/")
}
