package llm

import (
	"Postdeck/internal/api/config"
	"Postdeck/internal/model"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
)

// InitLLM 按配置初始化各个来源的大模型，未配置 api_key 的来源会被跳过
func InitLLM() (*DraftWriter, error) {
	cfg := config.Cfg.LLM
	models := make(map[string]Source)

	if cfg.Anthropic.ApiKey != "" {
		opts := []anthropic.Option{
			anthropic.WithModel(cfg.Anthropic.Model),
			anthropic.WithToken(cfg.Anthropic.ApiKey),
		}
		if cfg.Anthropic.URL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.Anthropic.URL))
		}
		m, err := anthropic.New(opts...)
		if err != nil {
			log.Error("Claude 模型初始化失败", "err", err)
			return nil, err
		}
		models[model.AISourceClaude] = Source{Model: m, Name: cfg.Anthropic.Model}
	}

	if cfg.OpenAI.ApiKey != "" {
		opts := []openai.Option{
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithToken(cfg.OpenAI.ApiKey),
		}
		if cfg.OpenAI.URL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAI.URL))
		}
		m, err := openai.New(opts...)
		if err != nil {
			log.Error("ChatGPT 模型初始化失败", "err", err)
			return nil, err
		}
		models[model.AISourceChatGPT] = Source{Model: m, Name: cfg.OpenAI.Model}
	}

	if len(models) == 0 {
		log.Warn("未配置任何大模型，草稿生成不可用")
	}

	// 从prompt txt文件中读取prompt
	return NewDraftWriter(models, readPrompt(cfg.PromptPath)), nil
}

// Source 一个草稿来源对应的模型
type Source struct {
	Model llms.Model
	Name  string
}
