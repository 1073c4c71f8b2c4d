package corpus

import (
	"regexp"

	"github.com/Lry0305/insurtech-insight/internal/model"
	"github.com/Lry0305/insurtech-insight/internal/parser"
)

// 日期令牌只做模式匹配，不校验日历合法性，
// 下游把它当作不透明的时间轴分桶键使用
var dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// DateSource 指定日期令牌的提取来源字段
type DateSource string

const (
	// DateFromSourceInfo 从来源信息字段提取（默认，与最终版展示逻辑一致）
	DateFromSourceInfo DateSource = "source_info"
	// DateFromBody 从文章正文提取
	DateFromBody DateSource = "body"
)

// Corpus 一个批次的分析表及其派生侧产物。
// Table 与输入记录序列下标对齐，构建后只允许回填聚类标签，
// 不会重排；Keywords 与 EntitySentiments 构建时展平一次，
// 后续聚合器不再重新解析原始输出。
type Corpus struct {
	Table            []model.Insight
	Keywords         []string
	EntitySentiments []model.EntitySentiment
}

// Build 对全部原始记录逐条调用解析器，生成分析表。
// 任何一条记录解析失败都只降级该条，不会中断整个批次，
// 因此输出表长度恒等于输入序列长度。
func Build(records []model.RawRecord, dateSource DateSource) *Corpus {
	c := &Corpus{
		Table: make([]model.Insight, 0, len(records)),
	}

	for _, rec := range records {
		ins := parser.Parse(rec.RawOutput)
		ins.Title = rec.Title
		ins.Body = rec.Body
		ins.URL = rec.URL
		ins.Date = ExtractDate(dateField(rec, dateSource))

		c.Table = append(c.Table, ins)
	}
	c.Keywords, c.EntitySentiments = Flatten(c.Table)

	return c
}

// Flatten 从分析表重新展平两类侧产物，
// 展示侧从导出文件加载表后用它重建聚合输入
func Flatten(table []model.Insight) ([]string, []model.EntitySentiment) {
	var keywords []string
	var pairs []model.EntitySentiment
	for _, ins := range table {
		keywords = append(keywords, ins.Keywords...)
		for _, ent := range ins.Entities {
			pairs = append(pairs, model.EntitySentiment{Entity: ent, Sentiment: ins.Sentiment})
		}
	}
	return keywords, pairs
}

// AttachClusters 把聚类结果回填到表中，长度不匹配时忽略多余部分
func (c *Corpus) AttachClusters(assignments []int) {
	for i := range c.Table {
		if i < len(assignments) {
			c.Table[i].Cluster = assignments[i]
		}
	}
}

// Opinions 返回与表下标对齐的观点文本序列，供聚类器使用
func (c *Corpus) Opinions() []string {
	out := make([]string, len(c.Table))
	for i, ins := range c.Table {
		out[i] = ins.Opinion
	}
	return out
}

// ExtractDate 从自由文本中提取首个 YYYY-MM-DD 形式的日期令牌，
// 没有匹配时返回空字符串
func ExtractDate(text string) string {
	return dateRe.FindString(text)
}

func dateField(rec model.RawRecord, src DateSource) string {
	if src == DateFromBody {
		return rec.Body
	}
	return rec.SourceInfo
}
