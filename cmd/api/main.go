package main

import (
	"Postdeck/internal/api/config"
	"Postdeck/internal/pkg/cron"
	"Postdeck/internal/pkg/database"
	"Postdeck/internal/pkg/llm"
	"Postdeck/internal/pkg/logger"
	"Postdeck/internal/pkg/minio"
	"Postdeck/internal/pkg/redis"
	"Postdeck/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 加载配置
	fatalIf(config.LoadConfig(), "failed to load configuration")
	cfg := config.Cfg

	// 初始化日志
	logger.InitLogger()

	// 数据库连接
	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	fatalIf(err, "failed to create database connection")

	// Redis 连接
	fatalIf(redis.InitRedis(cfg.Redis), "failed to create redis connection")

	// MinIO 连接
	fatalIf(minio.Init(), "failed to initialize MinIO")

	// llm 模型初始化，未配置任何来源时只能手动录入草稿
	writer, err := llm.InitLLM()
	fatalIf(err, "failed to initialize llm models")
	if len(writer.Sources()) == 0 {
		log.Warn("No AI source configured, draft generation disabled")
	}

	// 依赖注入
	app, err := wire.BuildApplication(db, writer, cfg)
	fatalIf(err, "failed to create application")
	defer func() {
		if err := app.Publisher.Close(); err != nil {
			log.Error("Status publisher close failed", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	fatalIf(cron.InitCron(app.CronMgr), "failed to start cron jobs")
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Cron Jobs stopping...")
		app.CronMgr.Stop()
		return nil
	})

	// HTTP 服务器
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}
	log.Info("App exited successfully.")
}

func fatalIf(err error, msg string) {
	if err != nil {
		log.Error("Fatal error: "+msg, "err", err)
		panic(err)
	}
}
