package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/Lry0305/insurtech-insight/internal/config"
	"github.com/Lry0305/insurtech-insight/internal/logger"
)

const (
	maxRetries = 3
	baseDelay  = 2 * time.Second
	// 截断正文防止超出 Token 限制
	maxContentLen = 6000
)

const insightPrompt = `你是一名资深保险科技行业分析师。请阅读用户提供的新闻标题和正文，提取结构化的行业洞察。
请务必严格按照以下 JSON 格式返回，不要包含任何 markdown 标记（如 '''json）：
{
	"情绪": "该报道的整体情绪（正面/负面/中性）",
	"观点": "文章的核心观点（一两句话）",
	"关键词": ["关键词1", "关键词2", "关键词3"],
	"主体": ["文中提到的公司或机构"]
}

文章标题：
%s

文章正文：
%s`

// Analyzer 逐篇调用大模型提取行业洞察，
// 返回模型的原始输出文本，解析与容错交给流水线的解析器
type Analyzer struct {
	cm      model.ChatModel
	limiter *rate.Limiter
}

// New 按配置初始化 LLM 客户端与限流器
func New(ctx context.Context, cfg config.LLMConfig, conc config.ConcurrencyConfig) (*Analyzer, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	limit := rate.Limit(float64(conc.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, conc.QPS)

	return &Analyzer{cm: cm, limiter: limiter}, nil
}

// NewWithModel 直接注入模型实例，测试用
func NewWithModel(cm model.ChatModel, limiter *rate.Limiter) *Analyzer {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Analyzer{cm: cm, limiter: limiter}
}

// ExtractInsight 对单篇文章调用模型，返回原始输出字符串。
// 只在 429 时指数退避重试；最终失败向调用方返回错误，
// 由调用方决定降级策略（整个批次不会因此中断）。
func (a *Analyzer) ExtractInsight(ctx context.Context, title, body string) (string, error) {
	if len(body) > maxContentLen {
		body = body[:maxContentLen]
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: "你是一个 JSON 生成器。请只输出 JSON 字符串，不要输出任何其他内容。"},
		{Role: schema.User, Content: fmt.Sprintf(insightPrompt, title, body)},
	}

	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := a.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("limiter wait error: %w", err)
		}

		resp, err := a.cm.Generate(ctx, messages)
		if err != nil {
			if isRateLimited(err) && i < maxRetries {
				lastErr = err
				delay := baseDelay * time.Duration(1<<i)
				logger.Log.Warnf("触发 429 限流，等待 %v 后重试 (%d/%d)...", delay, i+1, maxRetries)
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(delay):
					continue
				}
			}
			return "", err
		}
		return resp.Content, nil
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func isRateLimited(err error) bool {
	return strings.Contains(err.Error(), "429") ||
		strings.Contains(strings.ToLower(err.Error()), "too many requests")
}
