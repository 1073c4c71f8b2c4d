package display

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/Lry0305/insurtech-insight/internal/analytics"
	"github.com/Lry0305/insurtech-insight/internal/config"
	"github.com/Lry0305/insurtech-insight/internal/corpus"
	"github.com/Lry0305/insurtech-insight/internal/model"
)

// Summary 批次概览
type Summary struct {
	Count      int                        `json:"数量"`
	Sentiments []analytics.SentimentCount `json:"情绪分布"`
}

// Service 在导出的分析表之上提供只读聚合视图。
// 所有视图复用流水线里的同一套聚合器，展示侧不自己算数。
type Service struct {
	summary  Summary
	keywords []analytics.KeywordCount
	entities *analytics.EntitySentimentMatrix
	clusters analytics.ClusterResult
	timeline []analytics.TimelinePoint
	table    []model.Insight
	log      *log.Helper
}

// NewService 按配置在加载的分析表上构建全部聚合视图
func NewService(table []model.Insight, cfg config.AnalysisConfig, logger log.Logger) *Service {
	keywords, pairs := corpus.Flatten(table)

	opinions := make([]string, len(table))
	for i, ins := range table {
		opinions[i] = ins.Opinion
	}

	s := &Service{
		summary: Summary{
			Count:      len(table),
			Sentiments: analytics.SentimentDistribution(table),
		},
		keywords: analytics.TopKeywords(keywords, cfg.TopNKeywords),
		entities: analytics.BuildEntityMatrix(pairs, cfg.TopEntities),
		clusters: analytics.ClusterOpinions(opinions, cfg.ClusterCount, cfg.TFIDFMaxFeatures),
		timeline: analytics.Timeline(table),
		table:    table,
		log:      log.NewHelper(logger),
	}
	s.log.Infof("聚合视图已构建: %d 条记录, %d 个关键词, %d 个主体",
		len(table), len(s.keywords), len(s.entities.Rows))
	return s
}

func (s *Service) Summary() Summary                           { return s.summary }
func (s *Service) Keywords() []analytics.KeywordCount         { return s.keywords }
func (s *Service) Entities() *analytics.EntitySentimentMatrix { return s.entities }
func (s *Service) Clusters() analytics.ClusterResult          { return s.clusters }
func (s *Service) Timeline() []analytics.TimelinePoint        { return s.timeline }
func (s *Service) Table() []model.Insight                     { return s.table }
