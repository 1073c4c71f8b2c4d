package analytics

import "github.com/Lry0305/insurtech-insight/internal/model"

// DefaultTopEntities 主体排行的默认截断宽度
const DefaultTopEntities = 6

// EntityRow 单个主体在所有观察到的情绪标签上的计数向量，
// Counts 与矩阵的 Sentiments 下标对齐，未出现的组合补零
type EntityRow struct {
	Entity string `json:"主体"`
	Counts []int  `json:"计数"`
	Total  int    `json:"总计"`
}

// EntitySentimentMatrix 主体 × 情绪计数矩阵，
// 只保留按提及总量排序后的前若干个主体
type EntitySentimentMatrix struct {
	Sentiments []string    `json:"情绪标签"`
	Rows       []EntityRow `json:"行"`
}

// Empty 表示批次中没有提取到任何主体，
// 调用方据此渲染"未成功提取公司主体"的降级提示
func (m *EntitySentimentMatrix) Empty() bool {
	return len(m.Rows) == 0
}

// BuildEntityMatrix 从展平的（主体，情绪）配对构建计数矩阵。
// 主体按提及总量降序排列，总量相同按配对序列中的首见顺序；
// topK <= 0 时使用默认值。空输入返回显式的空矩阵而不是错误。
func BuildEntityMatrix(pairs []model.EntitySentiment, topK int) *EntitySentimentMatrix {
	if topK <= 0 {
		topK = DefaultTopEntities
	}

	m := &EntitySentimentMatrix{}
	if len(pairs) == 0 {
		return m
	}

	sentimentIdx := make(map[string]int)
	entityIdx := make(map[string]int)
	var entityOrder []string
	cells := make(map[string]map[string]int)

	for _, p := range pairs {
		if _, ok := sentimentIdx[p.Sentiment]; !ok {
			sentimentIdx[p.Sentiment] = len(m.Sentiments)
			m.Sentiments = append(m.Sentiments, p.Sentiment)
		}
		if _, ok := entityIdx[p.Entity]; !ok {
			entityIdx[p.Entity] = len(entityOrder)
			entityOrder = append(entityOrder, p.Entity)
			cells[p.Entity] = make(map[string]int)
		}
		cells[p.Entity][p.Sentiment]++
	}

	rows := make([]EntityRow, 0, len(entityOrder))
	for _, ent := range entityOrder {
		row := EntityRow{Entity: ent, Counts: make([]int, len(m.Sentiments))}
		for s, n := range cells[ent] {
			row.Counts[sentimentIdx[s]] = n
			row.Total += n
		}
		rows = append(rows, row)
	}

	// 按总量降序的稳定排序，保持首见顺序作平局规则
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && rows[j].Total > rows[j-1].Total; j-- {
			rows[j], rows[j-1] = rows[j-1], rows[j]
		}
	}
	if len(rows) > topK {
		rows = rows[:topK]
	}
	m.Rows = rows

	return m
}
