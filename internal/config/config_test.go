package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	content := `
llm:
  base_url: https://api.deepseek.com
  model: deepseek-chat
crawler:
  keywords: ["保险科技", "数字保险"]
analysis:
  top_n_keywords: 10
  date_source: body
log:
  level: debug
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "deepseek-chat", cfg.LLM.Model)
	require.Equal(t, []string{"保险科技", "数字保险"}, cfg.Crawler.Keywords)
	require.Equal(t, 10, cfg.Analysis.TopNKeywords)
	require.Equal(t, "body", cfg.Analysis.DateSource)
	// 未配置的选项回落到默认值
	require.Equal(t, 6, cfg.Analysis.TopEntities)
	require.Equal(t, 4, cfg.Analysis.ClusterCount)
	require.Equal(t, 100, cfg.Analysis.TFIDFMaxFeatures)
	require.Equal(t, 10, cfg.Crawler.MaxArticlesPerKeyword)
	require.Equal(t, "insurtech_results.csv", cfg.Output.CSVFile)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: ["), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}
