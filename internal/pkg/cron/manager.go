package cron

import (
	"Postdeck/internal/job"
	"fmt"
	log "log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	draftJob       *job.DraftGenerationJob
	generationTime string
}

// NewCronManager generationTime 为 HH:MM，按服务器本地时区触发
func NewCronManager(draftJob *job.DraftGenerationJob, generationTime string) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		draftJob:       draftJob,
		generationTime: generationTime,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	spec, err := DailySpec(s.generationTime)
	if err != nil {
		return err
	}
	if _, err = s.engine.AddJob(spec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(s.draftJob)); err != nil {
		return err
	}
	log.Info("已注册每日草稿生成任务", "spec", spec)
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

// Entries 已注册的任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

// DailySpec 把 HH:MM 转成带秒字段的 cron 表达式
func DailySpec(hhmm string) (string, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return "", fmt.Errorf("invalid generation_time %q: %w", hhmm, err)
	}
	return fmt.Sprintf("0 %d %d * * *", t.Minute(), t.Hour()), nil
}
