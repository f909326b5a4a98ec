package schedule

import (
	"Postdeck/internal/model"
	"slices"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
)

// ErrInvalidSchedule 发布时间不合法
var ErrInvalidSchedule = errors.New("发布时间必须晚于当前时间")

// 快捷偏移的常用取值
var QuickOffsets = []int{1, 4, 24}

const dateTimeLayout = "2006-01-02 15:04"

// Validate 校验候选发布时间，必须严格晚于 now，返回 UTC 绝对时间
func Validate(candidate, now time.Time) (time.Time, error) {
	if candidate.IsZero() || !candidate.After(now) {
		return time.Time{}, errors.Wrapf(ErrInvalidSchedule, "candidate %s is not after %s",
			candidate.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	}
	return candidate.UTC(), nil
}

// QuickOffset now + hours，仍然走 Validate
func QuickOffset(now time.Time, hours int) (time.Time, error) {
	if hours <= 0 {
		return time.Time{}, errors.Wrapf(ErrInvalidSchedule, "offset must be positive, got %dh", hours)
	}
	return Validate(now.Add(time.Duration(hours)*time.Hour), now)
}

// At 按日期(2006-01-02)、时刻(15:04)和时区解析出候选时间并校验
func At(date, clock, timezone string, now time.Time) (time.Time, error) {
	candidate, err := Parse(date, clock, timezone)
	if err != nil {
		return time.Time{}, err
	}
	return Validate(candidate, now)
}

// Parse 只解析不校验，时区为空时按 UTC 处理
func Parse(date, clock, timezone string) (time.Time, error) {
	loc := time.UTC
	if tz := strings.TrimSpace(timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return time.Time{}, errors.Wrapf(ErrInvalidSchedule, "unknown timezone %q", tz)
		}
		loc = l
	}

	candidate, err := time.ParseInLocation(dateTimeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidSchedule, "malformed date/time %q %q", date, clock)
	}
	return candidate, nil
}

// Compare 按发布时间升序比较，nil 排在所有非 nil 之后，nil 之间视为相等
func Compare(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}

// SortTweets 按发布时间稳定排序
func SortTweets(tweets []*model.Tweet) {
	slices.SortStableFunc(tweets, func(x, y *model.Tweet) int {
		return Compare(x.ScheduledTime, y.ScheduledTime)
	})
}
