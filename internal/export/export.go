package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Lry0305/insurtech-insight/internal/model"
)

// WriteTableJSON 把分析表整体写成 JSON 文件，
// 展示服务与后续批次分析都从这个文件加载
func WriteTableJSON(path string, table []model.Insight) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal table failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write json failed: %w", err)
	}
	return nil
}

// ReadTableJSON 从 JSON 文件加载分析表
func ReadTableJSON(path string) ([]model.Insight, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var table []model.Insight
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("unmarshal table failed: %w", err)
	}
	return table, nil
}

// WriteTableCSV 把分析表逐行写成 CSV，每个字段一列。
// 文件带 UTF-8 BOM，Excel 打开中文不乱码。
func WriteTableCSV(path string, table []model.Insight) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv failed: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\xEF\xBB\xBF"); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	header := []string{"标题", "链接", "情绪", "观点", "关键词", "主体", "日期", "聚类标签", "原始输出"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, ins := range table {
		row := []string{
			ins.Title,
			ins.URL,
			ins.Sentiment,
			ins.Opinion,
			strings.Join(ins.Keywords, "、"),
			strings.Join(ins.Entities, "、"),
			ins.Date,
			strconv.Itoa(ins.Cluster),
			ins.RawOutput,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
