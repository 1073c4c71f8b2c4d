package analytics

import "github.com/Lry0305/insurtech-insight/internal/model"

// DefaultTopKeywords 关键词排行的默认截断宽度
const DefaultTopKeywords = 20

// KeywordCount 单个关键词的出现次数
type KeywordCount struct {
	Keyword string `json:"关键词"`
	Count   int    `json:"出现次数"`
}

// SentimentCount 单个情绪标签的记录数
type SentimentCount struct {
	Sentiment string `json:"情绪"`
	Count     int    `json:"数量"`
}

// SentimentDistribution 统计每个情绪标签在表中出现的次数。
// "未提取"/"解析失败"同样计入：它们反映批次的数据质量，
// 必须在分布里可见。标签按首次出现顺序排列，结果确定。
func SentimentDistribution(table []model.Insight) []SentimentCount {
	counts := make(map[string]int, len(table))
	var order []string
	for _, ins := range table {
		if counts[ins.Sentiment] == 0 {
			order = append(order, ins.Sentiment)
		}
		counts[ins.Sentiment]++
	}

	out := make([]SentimentCount, 0, len(order))
	for _, s := range order {
		out = append(out, SentimentCount{Sentiment: s, Count: counts[s]})
	}
	return out
}

// TopKeywords 统计展平关键词序列中的词频并返回前 n 个，
// 按次数降序排列，次数相同按序列中首见顺序排，保证稳定。
// n <= 0 时使用默认值。
func TopKeywords(keywords []string, n int) []KeywordCount {
	if n <= 0 {
		n = DefaultTopKeywords
	}

	counts := make(map[string]int, len(keywords))
	var order []string
	for _, kw := range keywords {
		if counts[kw] == 0 {
			order = append(order, kw)
		}
		counts[kw]++
	}

	out := make([]KeywordCount, 0, len(order))
	for _, kw := range order {
		out = append(out, KeywordCount{Keyword: kw, Count: counts[kw]})
	}
	// 首见顺序已经保证了同次数之间的稳定性，用稳定插入排序按次数降序排
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Count > out[j-1].Count; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}

	if len(out) > n {
		out = out[:n]
	}
	return out
}
