package report

import (
	"html/template"
	"os"
	"time"

	"github.com/Lry0305/insurtech-insight/internal/analytics"
	"github.com/Lry0305/insurtech-insight/internal/model"
)

// Data 汇总页面需要的全部聚合视图
type Data struct {
	Date       string
	Count      int
	Sentiments []analytics.SentimentCount
	Keywords   []analytics.KeywordCount
	Entities   *analytics.EntitySentimentMatrix
	Clusters   analytics.ClusterResult
	Timeline   []analytics.TimelinePoint
	Table      []model.Insight
}

const htmlTpl = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>保险科技行业观点分析</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; line-height: 1.6; color: #333; }
        h1 { text-align: center; color: #2c3e50; }
        h2 { color: #2c3e50; border-bottom: 1px solid #eee; padding-bottom: 6px; }
        table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
        th, td { border: 1px solid #eee; padding: 6px 10px; text-align: left; }
        th { background-color: #f9f9f9; }
        .cluster { background-color: #f9f9f9; padding: 12px; border-radius: 5px; border-left: 4px solid #3498db; margin-bottom: 12px; }
        .muted { color: #7f8c8d; }
    </style>
</head>
<body>
    <h1>📊 保险科技行业观点分析</h1>
    <p style="text-align:center;" class="muted">{{ .Date }} • 共 {{ .Count }} 条新闻</p>

    <h2>情绪分布</h2>
    <table>
        <tr><th>情绪</th><th>数量</th></tr>
        {{range .Sentiments}}<tr><td>{{.Sentiment}}</td><td>{{.Count}}</td></tr>{{end}}
    </table>

    <h2>关键词出现频率</h2>
    <table>
        <tr><th>关键词</th><th>出现次数</th></tr>
        {{range .Keywords}}<tr><td>{{.Keyword}}</td><td>{{.Count}}</td></tr>{{end}}
    </table>

    <h2>主体公司情绪关注强度</h2>
    {{if .Entities.Empty}}
    <p class="muted">未成功提取公司主体</p>
    {{else}}
    <table>
        <tr><th>主体</th>{{range .Entities.Sentiments}}<th>{{.}}</th>{{end}}<th>总计</th></tr>
        {{range .Entities.Rows}}<tr><td>{{.Entity}}</td>{{range .Counts}}<td>{{.}}</td>{{end}}<td>{{.Total}}</td></tr>{{end}}
    </table>
    {{end}}

    <h2>观点聚类</h2>
    {{range $i, $samples := .Clusters.Samples}}
    <div class="cluster">
        <strong>🌀 聚类 {{$i}}</strong>（{{index $.Clusters.Sizes $i}} 条）
        {{if $samples}}<ul>{{range $samples}}<li>{{.}}</li>{{end}}</ul>{{else}}<p class="muted">（空簇）</p>{{end}}
    </div>
    {{end}}

    <h2>报道随时间变化</h2>
    {{if .Timeline}}
    <table>
        <tr><th>日期</th><th>情绪</th><th>数量</th></tr>
        {{range .Timeline}}<tr><td>{{.Date}}</td><td>{{.Sentiment}}</td><td>{{.Count}}</td></tr>{{end}}
    </table>
    {{else}}
    <p class="muted">没有可用的日期信息</p>
    {{end}}

    <h2>原始新闻数据</h2>
    <table>
        <tr><th>标题</th><th>情绪</th><th>链接</th></tr>
        {{range .Table}}<tr><td>{{.Title}}</td><td>{{.Sentiment}}</td><td><a href="{{.URL}}">{{.URL}}</a></td></tr>{{end}}
    </table>
</body>
</html>`

// Render 把聚合结果渲染成单文件 HTML 摘要
func Render(path string, data Data) error {
	t, err := template.New("report").Parse(htmlTpl)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if data.Date == "" {
		data.Date = time.Now().Format("2006-01-02")
	}
	return t.Execute(f, data)
}
