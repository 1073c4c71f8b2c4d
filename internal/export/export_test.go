package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lry0305/insurtech-insight/internal/model"
)

func sampleTable() []model.Insight {
	return []model.Insight{
		{
			Title:     "众安发布半年报",
			URL:       "https://example.com/a",
			Sentiment: "正面",
			Opinion:   "业绩稳健",
			Keywords:  []string{"半年报", "增长"},
			Entities:  []string{"众安保险"},
			Date:      "2024-08-20",
			Cluster:   1,
		},
		{
			Title:     "解析失败的文章",
			Sentiment: model.SentimentParseFailed,
			Keywords:  []string{},
			Entities:  []string{},
			Cluster:   model.ClusterUnassigned,
			RawOutput: "抱歉，无法分析。",
		},
	}
}

func TestWriteAndReadTableJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.json")
	table := sampleTable()

	require.NoError(t, WriteTableJSON(path, table))

	got, err := ReadTableJSON(path)
	require.NoError(t, err)
	require.Equal(t, table, got)
}

func TestWriteTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, WriteTableCSV(path, sampleTable()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"), "CSV 需要带 BOM")

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), "\xEF\xBB\xBF")))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // 表头 + 两行数据

	require.Equal(t, "标题", rows[0][0])
	require.Equal(t, "众安发布半年报", rows[1][0])
	require.Equal(t, "半年报、增长", rows[1][4])
	require.Equal(t, model.SentimentParseFailed, rows[2][2])
	require.Equal(t, "抱歉，无法分析。", rows[2][8])
}
