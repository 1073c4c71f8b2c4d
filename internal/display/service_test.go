package display

import (
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"

	"github.com/Lry0305/insurtech-insight/internal/config"
	"github.com/Lry0305/insurtech-insight/internal/model"
)

func testAnalysisConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		TopNKeywords:     20,
		TopEntities:      6,
		ClusterCount:     2,
		TFIDFMaxFeatures: 100,
	}
}

func TestNewServiceBuildsViews(t *testing.T) {
	table := []model.Insight{
		{
			Sentiment: "正面",
			Opinion:   "智能核保提升效率",
			Keywords:  []string{"核保", "效率"},
			Entities:  []string{"众安"},
			Date:      "2024-08-01",
		},
		{
			Sentiment: model.SentimentParseFailed,
			Keywords:  []string{},
			Entities:  []string{},
		},
	}

	s := NewService(table, testAnalysisConfig(), log.DefaultLogger)

	require.Equal(t, 2, s.Summary().Count)
	require.Len(t, s.Summary().Sentiments, 2)
	require.Equal(t, "核保", s.Keywords()[0].Keyword)
	require.False(t, s.Entities().Empty())
	require.Len(t, s.Clusters().Assignments, 2)
	require.Len(t, s.Timeline(), 1)
}

func TestNewServiceEmptyTable(t *testing.T) {
	s := NewService(nil, testAnalysisConfig(), log.DefaultLogger)

	require.Equal(t, 0, s.Summary().Count)
	require.True(t, s.Entities().Empty())
	require.Empty(t, s.Timeline())
	require.Empty(t, s.Clusters().Assignments)
}
