package parser

import (
	"encoding/json"
	"strings"

	"github.com/Lry0305/insurtech-insight/internal/model"
)

// 大模型输出的字段名（与提示词约定一致）
const (
	fieldSentiment = "情绪"
	fieldOpinion   = "观点"
	fieldKeywords  = "关键词"
	fieldEntities  = "主体"
)

// Parse 将一条原始分析输出解析为 Insight。
// 上游模型的输出并不稳定：可能包裹 markdown 代码块、缺字段、
// 字段类型不对，甚至完全不是 JSON。本函数对所有输入都返回
// 一条完整的 Insight，绝不向调用方抛出错误：
//   - 解析失败时 Sentiment 置为"解析失败"，并保留原始输出；
//   - 解析成功但缺少情绪字段时置为"未提取"；
//   - 关键词/主体字段不是列表时按缺失处理。
func Parse(raw string) model.Insight {
	clean := StripFences(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(clean), &obj); err != nil || obj == nil {
		return model.Insight{
			Sentiment: model.SentimentParseFailed,
			Keywords:  []string{},
			Entities:  []string{},
			Cluster:   model.ClusterUnassigned,
			RawOutput: raw,
		}
	}

	ins := model.Insight{
		Sentiment: model.SentimentUnextracted,
		Keywords:  []string{},
		Entities:  []string{},
		Cluster:   model.ClusterUnassigned,
	}

	if s, ok := obj[fieldSentiment].(string); ok {
		ins.Sentiment = s
	}
	if s, ok := obj[fieldOpinion].(string); ok {
		ins.Opinion = s
	}
	// 关键词保留重复项，后续做频次统计
	ins.Keywords = stringList(obj[fieldKeywords])
	// 主体按集合处理，单条记录内去重
	ins.Entities = uniqueStrings(stringList(obj[fieldEntities]))

	return ins
}

// StripFences 去掉输出中任意位置的 markdown 代码块标记。
// 模型有时只在开头加 ```json、有时首尾都加，直接整体替换最稳妥。
func StripFences(raw string) string {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}

// stringList 把任意类型的字段值转成字符串切片；
// 值不是列表时视为缺失，列表内的非字符串元素跳过。
func stringList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func uniqueStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
