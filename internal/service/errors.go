package service

import (
	"Postdeck/internal/pkg/lifecycle"
	"Postdeck/internal/pkg/media"
	"Postdeck/internal/pkg/schedule"
	"Postdeck/internal/repository"
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	UnprocessableEntity = 422
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrStatusInvalid        = errors.New("未知的状态")
	ErrScheduleTimeRequired = errors.New("缺少发布时间")
	ErrImageRequired        = errors.New("缺少图片")
	ErrGenerationRunning    = errors.New("草稿生成正在进行中")
	ErrNoDraftSource        = errors.New("未配置任何草稿来源")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

// 领域错误
var (
	ErrNotFound               = repository.ErrNotFound
	ErrConcurrentModification = repository.ErrConcurrentModification
	ErrIllegalTransition      = lifecycle.ErrIllegalTransition
	ErrInvalidSource          = lifecycle.ErrInvalidSource
	ErrInvalidSchedule        = schedule.ErrInvalidSchedule
	ErrInvalidImage           = media.ErrInvalidImage
)

var ErrorMap = map[error]int{
	ErrParamInvalid:           BadRequest,
	ErrStatusInvalid:          BadRequest,
	ErrScheduleTimeRequired:   BadRequest,
	ErrImageRequired:          BadRequest,
	ErrInvalidImage:           BadRequest,
	ErrNotFound:               NotFound,
	ErrConcurrentModification: Conflict,
	ErrGenerationRunning:      Conflict,
	ErrIllegalTransition:      UnprocessableEntity,
	ErrInvalidSource:          UnprocessableEntity,
	ErrInvalidSchedule:        UnprocessableEntity,
	ErrNoDraftSource:          ServiceUnavailable,
	UnExpectedError:           InternalServerError,
}

// CodeOf 沿错误链查找对应的状态码
func CodeOf(err error) (int, bool) {
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return InternalServerError, false
}
