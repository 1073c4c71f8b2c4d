package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lry0305/insurtech-insight/internal/model"
)

func TestTopKeywordsRankingStable(t *testing.T) {
	got := TopKeywords([]string{"a", "b", "a", "c", "b", "a"}, 20)

	require.Equal(t, []KeywordCount{
		{Keyword: "a", Count: 3},
		{Keyword: "b", Count: 2},
		{Keyword: "c", Count: 1},
	}, got)
}

func TestTopKeywordsTiesByFirstSeen(t *testing.T) {
	got := TopKeywords([]string{"x", "y", "z", "y", "x", "z"}, 20)

	require.Equal(t, []KeywordCount{
		{Keyword: "x", Count: 2},
		{Keyword: "y", Count: 2},
		{Keyword: "z", Count: 2},
	}, got)
}

func TestTopKeywordsTruncation(t *testing.T) {
	got := TopKeywords([]string{"a", "a", "b", "c"}, 2)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Keyword)

	require.Empty(t, TopKeywords(nil, 5))
}

func TestSentimentDistributionIncludesSentinels(t *testing.T) {
	table := []model.Insight{
		{Sentiment: "正面"},
		{Sentiment: model.SentimentParseFailed},
		{Sentiment: "正面"},
		{Sentiment: model.SentimentUnextracted},
		{Sentiment: "负面"},
	}

	got := SentimentDistribution(table)

	require.Equal(t, []SentimentCount{
		{Sentiment: "正面", Count: 2},
		{Sentiment: model.SentimentParseFailed, Count: 1},
		{Sentiment: model.SentimentUnextracted, Count: 1},
		{Sentiment: "负面", Count: 1},
	}, got)
}

func TestSentimentDistributionEmptyTable(t *testing.T) {
	require.Empty(t, SentimentDistribution(nil))
}
