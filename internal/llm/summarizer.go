// Package llm generates an optional review summary for an extracted case.
// The summary is advisory text for the editor; it never fills fields,
// changes warnings, or affects confidence.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/casewiki/casewiki/internal/model"
)

// Summarizer produces a short Chinese review note for a parsed case
type Summarizer struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewSummarizer creates a summarizer from the LLM configuration
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY)")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

const systemPrompt = "你是违规App案例库的审核助手。根据已抽取的字段写一段简短的中文审核摘要，" +
	"提示编辑需要核对的内容。只使用给出的字段，缺失的字段照实说明缺失，不要猜测或补全。"

// Summarize asks the model for a review note on the extracted fields
func (s *Summarizer) Summarize(ctx context.Context, c *model.ParsedCase) (string, error) {
	m := s.cfg.Model
	if m == "" {
		m = openai.GPT4oMini
	}

	maxTokens := s.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: m,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(c),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildPrompt renders the extracted fields as labeled lines, marking misses
// explicitly so the model has nothing to invent
func buildPrompt(c *model.ParsedCase) string {
	var sb strings.Builder
	sb.WriteString("已抽取的案例字段：\n")

	fields := []struct {
		label string
		value *string
	}{
		{"通报日期", c.ReportDate},
		{"应用名称", c.AppName},
		{"开发者", c.Developer},
		{"通报部门", c.Department},
		{"下载平台", c.Platform},
		{"违规摘要", c.ViolationSummary},
		{"违规详情", c.ViolationDetail},
	}
	for _, f := range fields {
		if f.value != nil {
			fmt.Fprintf(&sb, "%s：%s\n", f.label, *f.value)
		} else {
			fmt.Fprintf(&sb, "%s：（未识别）\n", f.label)
		}
	}

	fmt.Fprintf(&sb, "置信度：%.2f\n", c.Confidence)
	if len(c.Warnings) > 0 {
		sb.WriteString("警告：\n")
		for _, w := range c.Warnings {
			sb.WriteString("- " + w + "\n")
		}
	}

	return sb.String()
}
