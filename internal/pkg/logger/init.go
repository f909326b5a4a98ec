package logger

import (
	"Postdeck/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"time"
)

// LogWriter gin 访问日志的输出目标
var LogWriter io.Writer = os.Stdout

func levelOf(env string) log.Level {
	if env == "development" {
		return log.LevelDebug
	}
	return log.LevelInfo
}

// InitLogger 标准输出 JSON 日志，Logstash 可达时同时上报带 trace_id 的记录
func InitLogger() {
	cfg := config.Cfg
	opts := &log.HandlerOptions{Level: levelOf(cfg.Environment)}

	var finalHandler log.Handler = log.NewJSONHandler(os.Stdout, opts)

	if addr := cfg.Logstash.Address; addr != "" {
		conn, err := net.DialTimeout("tcp", addr, 3*time.Second)
		if err == nil {
			remote := log.NewJSONHandler(conn, opts).WithAttrs([]log.Attr{
				log.String("target_index", cfg.Logstash.Index),
				log.String("log_token", cfg.Logstash.Token),
			})
			finalHandler = NewTeeHandler(finalHandler, &TracedOnlyHandler{next: remote})
			LogWriter = io.MultiWriter(os.Stdout, conn)
		} else {
			log.Warn("Failed to connect to Logstash, logging to stdout only", "err", err)
		}
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
}
