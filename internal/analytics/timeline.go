package analytics

import (
	"sort"

	"github.com/Lry0305/insurtech-insight/internal/model"
)

// TimelinePoint 一个（日期，情绪）分桶的记录数
type TimelinePoint struct {
	Date      string `json:"日期"`
	Sentiment string `json:"情绪"`
	Count     int    `json:"数量"`
}

// Timeline 按（日期，情绪）分桶统计记录数。
// 没有提取到日期的行不进入时间轴，但仍保留在其他聚合里。
// 结果按日期升序、同日期按情绪升序排列，保证确定性。
func Timeline(table []model.Insight) []TimelinePoint {
	type key struct{ date, sentiment string }
	counts := make(map[key]int)
	for _, ins := range table {
		if ins.Date == "" {
			continue
		}
		counts[key{ins.Date, ins.Sentiment}]++
	}

	out := make([]TimelinePoint, 0, len(counts))
	for k, n := range counts {
		out = append(out, TimelinePoint{Date: k.date, Sentiment: k.sentiment, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Sentiment < out[j].Sentiment
	})
	return out
}
