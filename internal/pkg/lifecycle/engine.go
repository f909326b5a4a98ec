// Package lifecycle 推文与 Instagram 帖子的状态机。
//
// 所有操作都基于调用方读取到的快照，返回新的快照，不修改入参。
// 持久化与并发控制(版本号条件更新)由 repository 负责。
package lifecycle

import (
	"github.com/pkg/errors"
)

var (
	ErrIllegalTransition = errors.New("非法的状态流转")
	ErrInvalidSource     = errors.New("来源推文不存在")
)

// Op 状态机操作
type Op string

const (
	OpApprove     Op = "approve"
	OpSchedule    Op = "schedule"
	OpUnschedule  Op = "unschedule"
	OpEdit        Op = "edit"
	OpMarkPosted  Op = "mark_posted"
	OpMarkFailed  Op = "mark_failed"
	OpAttachImage Op = "attach_image"
)

type Engine struct {
	allowPostedEdits bool
}

type Option func(*Engine)

// WithPostedEdits 是否允许修改已发布的内容
func WithPostedEdits(allow bool) Option {
	return func(e *Engine) {
		e.allowPostedEdits = allow
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func illegal(op Op, from string) error {
	return errors.Wrapf(ErrIllegalTransition, "%s from %s", op, from)
}
