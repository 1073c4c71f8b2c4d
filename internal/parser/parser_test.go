package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lry0305/insurtech-insight/internal/model"
)

func TestParseFencedOutput(t *testing.T) {
	raw := "```json\n{\"情绪\": \"正面\", \"关键词\": [\"A\",\"B\"]}\n```"
	ins := Parse(raw)

	require.Equal(t, "正面", ins.Sentiment)
	require.Equal(t, []string{"A", "B"}, ins.Keywords)
	require.Equal(t, "", ins.Opinion)
	require.Empty(t, ins.Entities)
}

func TestParseFencedAndUnfencedIdentical(t *testing.T) {
	body := `{"情绪": "负面", "观点": "承保成本上升", "关键词": ["智能核保"], "主体": ["众安保险"]}`
	fenced := "```json\n" + body + "\n```"

	require.Equal(t, Parse(body), Parse(fenced))
}

func TestParseMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "自然语言", raw: "抱歉，我无法分析这篇文章。"},
		{name: "空字符串", raw: ""},
		{name: "JSON 数组", raw: `["正面", "负面"]`},
		{name: "JSON null", raw: "null"},
		{name: "截断的对象", raw: `{"情绪": "正`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := Parse(tt.raw)
			require.Equal(t, model.SentimentParseFailed, ins.Sentiment)
			require.Equal(t, "", ins.Opinion)
			require.Equal(t, []string{}, ins.Keywords)
			require.Equal(t, []string{}, ins.Entities)
			// 原始输出保留给调用方排查
			require.Equal(t, tt.raw, ins.RawOutput)
		})
	}
}

func TestParseMissingAndWrongTypedFields(t *testing.T) {
	// 情绪缺失 → 未提取；关键词不是列表 → 按缺失处理
	ins := Parse(`{"观点": "行业整体向好", "关键词": "智能核保", "主体": 42}`)

	require.Equal(t, model.SentimentUnextracted, ins.Sentiment)
	require.Equal(t, "行业整体向好", ins.Opinion)
	require.Equal(t, []string{}, ins.Keywords)
	require.Equal(t, []string{}, ins.Entities)
	require.Equal(t, "", ins.RawOutput)
}

func TestParseKeepsDuplicateKeywordsButDedupesEntities(t *testing.T) {
	ins := Parse(`{"情绪": "中性", "关键词": ["风控", "风控"], "主体": ["平安", "平安", "太保"]}`)

	require.Equal(t, []string{"风控", "风控"}, ins.Keywords)
	require.Equal(t, []string{"平安", "太保"}, ins.Entities)
}

func TestParseSkipsNonStringListElements(t *testing.T) {
	ins := Parse(`{"情绪": "正面", "关键词": ["数字保险", 3, null, "理赔"]}`)

	require.Equal(t, []string{"数字保险", "理赔"}, ins.Keywords)
}

func TestStripFences(t *testing.T) {
	require.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	// 标记出现在字符串中间也要去掉
	require.Equal(t, "前缀{\"a\":1}后缀", StripFences("前缀```json{\"a\":1}```后缀"))
}
