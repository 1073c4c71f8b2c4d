package model

// 哨兵情绪标签：解析成功但缺少情绪字段时为"未提取"，
// 原始输出无法解析为 JSON 对象时为"解析失败"。
const (
	SentimentUnextracted = "未提取"
	SentimentParseFailed = "解析失败"
)

// ClusterUnassigned 表示该行尚未参与观点聚类
const ClusterUnassigned = -1

// RawRecord 外部采集器产出的一篇原始文章记录，
// RawOutput 为大模型返回的原始文本（可能不是合法 JSON）
type RawRecord struct {
	Title      string `json:"标题"`
	Body       string `json:"正文"`
	URL        string `json:"链接"`
	SourceInfo string `json:"来源信息"`
	RawOutput  string `json:"原始输出"`
}

// Insight 从单篇文章的分析输出解析得到的结构化记录
type Insight struct {
	Title     string   `json:"标题"`
	Body      string   `json:"正文"`
	URL       string   `json:"链接"`
	Sentiment string   `json:"情绪"`
	Opinion   string   `json:"观点"`
	Keywords  []string `json:"关键词"`
	Entities  []string `json:"主体"`
	Date      string   `json:"日期,omitempty"`   // YYYY-MM-DD，未提取到则为空
	Cluster   int      `json:"聚类标签"`           // 聚类完成后回填
	RawOutput string   `json:"原始输出,omitempty"` // 解析失败时保留，便于排查
}

// EntitySentiment 展平后的（主体，情绪）配对
type EntitySentiment struct {
	Entity    string `json:"主体"`
	Sentiment string `json:"情绪"`
}
