package llm

import (
	"context"
	"fmt"
	log "log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnknownSource = errors.New("未配置的草稿来源")

// MaxTweetLength 单条推文的最大长度
const MaxTweetLength = 280

var numbering = regexp.MustCompile(`^\d+[.)]\s*`)

// DraftWriter 按来源调用大模型生成推文草稿
type DraftWriter struct {
	sources map[string]Source
	prompt  string
}

func NewDraftWriter(sources map[string]Source, prompt string) *DraftWriter {
	return &DraftWriter{
		sources: sources,
		prompt:  prompt,
	}
}

// Sources 已配置的来源，按名称排序
func (w *DraftWriter) Sources() []string {
	names := make([]string, 0, len(w.sources))
	for name := range w.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Generate 让指定来源生成 count 条草稿，返回结果可能少于 count
func (w *DraftWriter) Generate(ctx context.Context, source string, count int) ([]string, error) {
	src, ok := w.sources[source]
	if !ok {
		return nil, errors.Wrap(ErrUnknownSource, source)
	}
	if count <= 0 {
		return nil, nil
	}

	userPrompt := fmt.Sprintf("Please generate %d tweet ideas. Return ONLY the tweets as a numbered list, one per line.", count)
	resp, err := fetchModel(ctx, src, w.prompt, userPrompt, 0.8)
	if err != nil {
		log.ErrorContext(ctx, "AI大模型请求失败", "source", source, "err", err)
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}

	drafts := ParseNumberedList(resp.Choices[0].Content)
	if len(drafts) > count {
		drafts = drafts[:count]
	}
	log.InfoContext(ctx, "AI大模型请求成功", "source", source, "drafts", len(drafts))
	return drafts, nil
}

// ParseNumberedList 解析 "1. xxx" 形式的列表，去掉序号与包裹的引号，丢弃空行和超长内容
func ParseNumberedList(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = numbering.ReplaceAllString(line, "")
		line = strings.TrimSpace(strings.Trim(line, `"'`))
		if line == "" || len([]rune(line)) > MaxTweetLength {
			continue
		}
		out = append(out, line)
	}
	return out
}
