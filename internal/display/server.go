package display

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/Lry0305/insurtech-insight/internal/config"
)

// NewHTTPServer 构建展示服务的 HTTP Server，
// 各聚合视图以 JSON 形式暴露给任意前端消费
func NewHTTPServer(c config.ServerConfig, s *Service) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	srv.HandleFunc("/api/summary", jsonHandler(func() any { return s.Summary() }))
	srv.HandleFunc("/api/keywords", jsonHandler(func() any { return s.Keywords() }))
	srv.HandleFunc("/api/entities", jsonHandler(func() any { return s.Entities() }))
	srv.HandleFunc("/api/clusters", jsonHandler(func() any { return s.Clusters() }))
	srv.HandleFunc("/api/timeline", jsonHandler(func() any { return s.Timeline() }))
	srv.HandleFunc("/api/table", jsonHandler(func() any { return s.Table() }))

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexHTML))
	})

	return srv
}

func jsonHandler(view func() any) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(view())
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>保险科技观点分析</title></head>
<body>
  <h1>保险科技行业观点分析</h1>
  <ul>
    <li><a href="/api/summary">批次概览</a></li>
    <li><a href="/api/keywords">关键词排行</a></li>
    <li><a href="/api/entities">主体情绪矩阵</a></li>
    <li><a href="/api/clusters">观点聚类</a></li>
    <li><a href="/api/timeline">时间趋势</a></li>
    <li><a href="/api/table">原始分析表</a></li>
  </ul>
</body>
</html>`
