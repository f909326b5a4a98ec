package service

import (
	"Postdeck/internal/api/dto"
	"Postdeck/internal/repository"
	"context"
	"errors"
	log "log/slog"
)

// saveWithRetry 读取快照 -> 状态机变更 -> 按版本号写回
// 写回时发生版本冲突会重新读取，最多重试 retries 次，之后把冲突返回给调用方
func saveWithRetry[T any](
	ctx context.Context,
	retries int,
	load func() (T, error),
	change func(current T) (T, error),
	save func(next T) (T, error),
) (before T, after T, err error) {
	var zero T
	for attempt := 0; ; attempt++ {
		current, err := load()
		if err != nil {
			return zero, zero, err
		}
		next, err := change(current)
		if err != nil {
			return zero, zero, err
		}
		saved, err := save(next)
		if err == nil {
			return current, saved, nil
		}
		if !errors.Is(err, repository.ErrConcurrentModification) || attempt >= retries {
			return zero, zero, err
		}
		log.WarnContext(ctx, "记录已被修改，重新读取后重试", "attempt", attempt+1, "err", err)
	}
}

// listFilter 把查询参数转换为仓储过滤条件
func listFilter(query *dto.ListQueryDTO, valid func(string) bool) (repository.ListFilter, error) {
	filter := repository.ListFilter{Limit: repository.DefaultListLimit}
	if query == nil {
		return filter, nil
	}
	if query.Status != "" && !valid(query.Status) {
		return filter, ErrStatusInvalid
	}
	if query.Skip < 0 || (query.Limit != nil && *query.Limit < 0) {
		return filter, ErrParamInvalid
	}
	filter.Status = query.Status
	filter.Skip = query.Skip
	if query.Limit != nil {
		filter.Limit = *query.Limit
	}
	return filter, nil
}
